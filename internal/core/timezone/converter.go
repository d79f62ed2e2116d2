package timezone

import (
	"time"

	"go.uber.org/zap"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// フォールバック先の基準タイムゾーン。IANA 名が引けない環境では
// エイリアス、最終的には固定オフセットへ段階的に切り替えます。
const (
	fallbackZoneIANA  = "America/Los_Angeles"
	fallbackZoneAlias = "US/Pacific"
	fallbackOffset    = -8 * 60 * 60
)

// Converter はローカル暦日と UTC 時刻の相互変換を行います。
// 暦日はリポジトリ全体の規約として UTC 深夜 0 時に正規化した time.Time で表現します。
type Converter struct {
	loc   *time.Location
	clock Clock
}

// New は設定されたタイムゾーン ID から Converter を生成します。
// 解決に失敗しても必ず使用可能なタイムゾーンへフォールバックします。
func New(configuredID string, clock Clock, logger *zap.Logger) *Converter {
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		loc:   resolveLocation(configuredID, logger),
		clock: clock,
	}
}

// Location は解決済みのタイムゾーンを返します。
func (c *Converter) Location() *time.Location {
	return c.loc
}

// LocalDate は UTC 時刻を設定タイムゾーンへ投影し、日付成分のみを返します。
func (c *Converter) LocalDate(utc time.Time) time.Time {
	local := utc.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentLocalDate は現在時刻のローカル暦日を返します。
func (c *Converter) CurrentLocalDate() time.Time {
	return c.LocalDate(c.clock.Now())
}

// ToUTC はローカル暦日と時刻を合成し、設定タイムゾーンのオフセット規則
// (夏時間を含む) に従って UTC 時刻へ変換します。
func (c *Converter) ToUTC(localDate time.Time, timeOfDay time.Duration) time.Time {
	h := int(timeOfDay / time.Hour)
	m := int(timeOfDay % time.Hour / time.Minute)
	s := int(timeOfDay % time.Minute / time.Second)
	ns := int(timeOfDay % time.Second)

	local := time.Date(localDate.Year(), localDate.Month(), localDate.Day(), h, m, s, ns, c.loc)
	return local.UTC()
}

func resolveLocation(configuredID string, logger *zap.Logger) *time.Location {
	if configuredID != "" {
		if loc, err := time.LoadLocation(configuredID); err == nil {
			logger.Info("using configured timezone", zap.String("timezone", configuredID))
			return loc
		}
		logger.Warn("configured timezone not found, falling back to Pacific timezone",
			zap.String("timezone", configuredID))
	}

	if loc, err := time.LoadLocation(fallbackZoneIANA); err == nil {
		logger.Info("using IANA Pacific timezone", zap.String("timezone", fallbackZoneIANA))
		return loc
	}

	if loc, err := time.LoadLocation(fallbackZoneAlias); err == nil {
		logger.Info("using Pacific timezone alias", zap.String("timezone", fallbackZoneAlias))
		return loc
	}

	// タイムゾーンデータベース自体が存在しない環境向けの最終手段。
	// 夏時間の規則は表現できないため標準時の固定オフセットとします。
	logger.Warn("no Pacific timezone in system database, using fixed offset")
	return time.FixedZone("PST", fallbackOffset)
}
