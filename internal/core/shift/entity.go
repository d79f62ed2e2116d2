package shift

import "time"

// Shift は 1 回の勤務を表すエンティティです。
// Date は勤務開始の UTC 時刻であり、属するローカル暦日は
// タイムゾーン変換によって導出されます (別途保存しません)。
type Shift struct {
	ID          string
	UserID      string
	Date        time.Time
	CreditTips  float64
	CashTips    float64
	Tipout      float64
	HoursWorked int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
