package shift

import "errors"

var (
	// ErrShiftNotFound はシフトが存在しない場合に返却されます。
	ErrShiftNotFound = errors.New("shift not found")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("invalid shift id")
	// ErrInvalidUserID はユーザー ID が不正な場合に返却されます。
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidDateRange は開始日が終了日より後の場合に返却されます。
	ErrInvalidDateRange = errors.New("start date cannot be after end date")
	// ErrInvalidHours は勤務時間が許容範囲外の場合に返却されます。
	ErrInvalidHours = errors.New("hours worked out of range")
	// ErrNegativeAmount はチップ金額が負の場合に返却されます。
	ErrNegativeAmount = errors.New("tip amount must not be negative")
)
