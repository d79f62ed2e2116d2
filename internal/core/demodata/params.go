package demodata

import "time"

// TimeWindow はシフト開始時刻を引く時間帯です。StartHour を含み EndHour を含みません。
type TimeWindow struct {
	StartHour int
	EndHour   int
}

// Parameters は合成勤務履歴生成アルゴリズムの定数群です。
// ユーザーデータではなく、永続化もされません。
type Parameters struct {
	// ShiftProbability は曜日ごとのシフト発生確率です。
	ShiftProbability map[time.Weekday]float64
	// DoubleShiftProbability はシフトが発生した日に 2 回勤務となる確率です。
	DoubleShiftProbability float64
	// Windows はシフト開始時刻の抽選に使う時間帯 (朝・昼・夜) です。
	Windows []TimeWindow
	// SingleMinHours / SingleMaxHours は単独シフトの勤務時間範囲です。
	SingleMinHours int
	SingleMaxHours int
	// DoubleFirstMaxHours は 2 回勤務の 1 本目の勤務時間上限です。
	// 休憩を挟んで 2 本が 1 日に収まるよう単独シフトより短くします。
	DoubleFirstMaxHours int
	// BreakMinHours / BreakMaxHours は 2 回勤務の間の休憩時間範囲 (実数時間) です。
	BreakMinHours float64
	BreakMaxHours float64
	// MaxDailyHours は 1 日の合計勤務時間の上限です。
	MaxDailyHours int
	// チップ金額の抽選範囲 (両端を含む整数)。
	CreditTipsMin int
	CreditTipsMax int
	CashTipsMax   int
	TipoutMin     int
	TipoutMax     int
	// HistoryDays は補填対象とする履歴の最大日数 (ヒストリーホライズン) です。
	HistoryDays int
}

// DefaultParameters は本番で使用する生成パラメータを返します。
func DefaultParameters() Parameters {
	return Parameters{
		ShiftProbability: map[time.Weekday]float64{
			time.Monday:    0.10,
			time.Tuesday:   0.10,
			time.Wednesday: 0.75,
			time.Thursday:  0.75,
			time.Friday:    0.90,
			time.Saturday:  0.90,
			time.Sunday:    0.90,
		},
		DoubleShiftProbability: 0.25,
		Windows: []TimeWindow{
			{StartHour: 8, EndHour: 12},
			{StartHour: 12, EndHour: 16},
			{StartHour: 16, EndHour: 20},
		},
		SingleMinHours:      3,
		SingleMaxHours:      8,
		DoubleFirstMaxHours: 6,
		BreakMinHours:       1,
		BreakMaxHours:       3,
		MaxDailyHours:       12,
		CreditTipsMin:       50,
		CreditTipsMax:       200,
		CashTipsMax:         100,
		TipoutMin:           1,
		TipoutMax:           10,
		HistoryDays:         60,
	}
}
