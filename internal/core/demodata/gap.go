package demodata

import (
	"time"

	"github.com/tiptally/tiptally-api/internal/core/shift"
)

// Directive は履歴ギャップ解析が返すシーディング方針です。
type Directive int

const (
	// DirectiveNoOp は履歴が最新で補填不要であることを示します。
	DirectiveNoOp Directive = iota
	// DirectiveFillGap は直近シフトから今日までの欠落分のみ補填します。
	DirectiveFillGap
	// DirectiveFullSeed は履歴が空のためホライズン全体を生成します。
	DirectiveFullSeed
	// DirectiveRegenerateAll は履歴が古すぎるため全削除して再生成します。
	DirectiveRegenerateAll
)

// String は Directive のログ用表記を返します。
func (d Directive) String() string {
	switch d {
	case DirectiveNoOp:
		return "noop"
	case DirectiveFillGap:
		return "fill_gap"
	case DirectiveFullSeed:
		return "full_seed"
	case DirectiveRegenerateAll:
		return "regenerate_all"
	default:
		return "unknown"
	}
}

// Plan はシーディング方針と生成対象のローカル暦日一覧です。
// Dates は昇順で、各要素は UTC 深夜へ正規化した暦日です。
type Plan struct {
	Directive Directive
	Dates     []time.Time
}

// Converter はローカル暦日と UTC タイムスタンプの変換を提供します。
// timezone.Converter が満たします。
type Converter interface {
	LocalDate(utc time.Time) time.Time
	CurrentLocalDate() time.Time
	ToUTC(localDate time.Time, timeOfDay time.Duration) time.Time
}

// AnalyzeHistory は既存履歴とローカル今日からシーディング計画を決定します。
// 比較はタイムスタンプではなくローカル暦日単位で行います。
func AnalyzeHistory(history []*shift.Shift, today time.Time, conv Converter, horizonDays int) Plan {
	if len(history) == 0 {
		return Plan{
			Directive: DirectiveFullSeed,
			Dates:     dateRange(today.AddDate(0, 0, -(horizonDays-1)), today),
		}
	}

	mostRecent := conv.LocalDate(history[0].Date)
	for _, s := range history[1:] {
		if d := conv.LocalDate(s.Date); d.After(mostRecent) {
			mostRecent = d
		}
	}

	gap := daysBetween(mostRecent, today)
	switch {
	case gap > horizonDays:
		return Plan{
			Directive: DirectiveRegenerateAll,
			Dates:     dateRange(today.AddDate(0, 0, -(horizonDays-1)), today),
		}
	case gap <= 0:
		return Plan{Directive: DirectiveNoOp}
	default:
		return Plan{
			Directive: DirectiveFillGap,
			Dates:     dateRange(mostRecent.AddDate(0, 0, 1), today),
		}
	}
}

func dateRange(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// daysBetween は正規化済み暦日同士の日数差を返します。
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
