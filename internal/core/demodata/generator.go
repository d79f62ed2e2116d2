package demodata

import (
	"math/rand"
	"time"
)

// Rand は生成に使用する乱数源です。*rand.Rand が満たします。
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Clock は現在時刻を提供するインターフェースです。
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// PlannedShift は生成済みシフト 1 件の計画です。
// Start はローカル深夜 0 時からの経過時間で表します。
type PlannedShift struct {
	Start      time.Duration
	Hours      int
	CreditTips int
	CashTips   int
	Tipout     int
}

// End はローカル深夜 0 時からみたシフト終了時刻を返します。
func (p PlannedShift) End() time.Duration {
	return p.Start + time.Duration(p.Hours)*time.Hour
}

// Generator は 1 暦日分の合成シフトを生成します。
type Generator struct {
	params Parameters
	rng    Rand
}

// NewGenerator は Generator を生成します。rng が nil の場合は時刻シードの乱数源を使用します。
func NewGenerator(params Parameters, rng Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{params: params, rng: rng}
}

// GenerateDay は指定ローカル暦日のシフト計画を返します。
// シフトなしの日は空スライスを返します。
func (g *Generator) GenerateDay(date time.Time) []PlannedShift {
	probability := g.params.ShiftProbability[date.Weekday()]
	if g.rng.Float64() >= probability {
		return nil
	}

	if g.rng.Float64() < g.params.DoubleShiftProbability {
		return g.generateDouble()
	}
	return []PlannedShift{g.generateSingle()}
}

func (g *Generator) generateSingle() PlannedShift {
	start := g.drawStart()
	hours := g.drawHours(g.params.SingleMinHours, g.params.SingleMaxHours)
	hours = clampBeforeMidnight(start, hours, g.params.SingleMinHours)
	return g.withTips(PlannedShift{Start: start, Hours: hours})
}

func (g *Generator) generateDouble() []PlannedShift {
	first := PlannedShift{Start: g.drawStart()}
	first.Hours = g.drawHours(g.params.SingleMinHours, g.params.DoubleFirstMaxHours)
	first.Hours = clampBeforeMidnight(first.Start, first.Hours, g.params.SingleMinHours)
	first = g.withTips(first)

	breakHours := g.params.BreakMinHours + g.rng.Float64()*(g.params.BreakMaxHours-g.params.BreakMinHours)
	secondStart := first.End() + time.Duration(breakHours*float64(time.Hour))

	maxSecond := g.params.MaxDailyHours - first.Hours
	if maxSecond > g.params.SingleMaxHours {
		maxSecond = g.params.SingleMaxHours
	}
	secondHours := g.drawHours(g.params.SingleMinHours, maxSecond)

	// 2 本目が日付をまたぐ場合は 23:59 までに収まるよう切り詰める。
	// 最短勤務時間すら収まらない日は 2 本目を諦めて 1 本のみ返す。
	latestEnd := 23*time.Hour + 59*time.Minute
	if fit := int((latestEnd - secondStart) / time.Hour); fit < secondHours {
		if fit < g.params.SingleMinHours {
			return []PlannedShift{first}
		}
		secondHours = fit
	}

	second := g.withTips(PlannedShift{Start: secondStart, Hours: secondHours})
	return []PlannedShift{first, second}
}

// drawStart は時間帯を 1 つ選び、その中の正時と 15 分刻みの分を抽選します。
func (g *Generator) drawStart() time.Duration {
	window := g.params.Windows[g.rng.Intn(len(g.params.Windows))]
	hour := window.StartHour + g.rng.Intn(window.EndHour-window.StartHour)
	minute := 15 * g.rng.Intn(4)
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}

func (g *Generator) drawHours(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}

func (g *Generator) withTips(p PlannedShift) PlannedShift {
	p.CreditTips = g.params.CreditTipsMin + g.rng.Intn(g.params.CreditTipsMax-g.params.CreditTipsMin+1)
	p.CashTips = g.rng.Intn(g.params.CashTipsMax + 1)
	p.Tipout = g.params.TipoutMin + g.rng.Intn(g.params.TipoutMax-g.params.TipoutMin+1)
	return p
}

// clampBeforeMidnight は終了時刻が深夜 0 時以降になる勤務時間を当日内へ切り詰めます。
// 切り詰め結果が min を下回る場合は min まで戻します。
func clampBeforeMidnight(start time.Duration, hours, min int) int {
	startHour := int(start / time.Hour)
	if startHour+hours > 23 {
		hours = 23 - startHour
		if hours < min {
			hours = min
		}
	}
	return hours
}
