package shift

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// 手入力シフトの勤務時間の許容範囲。生成エンジンの範囲 [3,8] より広く、
// 実際の勤務記録として物理的にあり得る範囲を上限とします。
const (
	minManualHours = 1
	maxManualHours = 16
)

// Service はシフトに関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
}

// UseCase はシフトユースケースの公開インターフェースです。
type UseCase interface {
	ListShifts(ctx context.Context, in ListShiftsInput) ([]*Shift, error)
	GetShift(ctx context.Context, in GetShiftInput) (*Shift, error)
	CreateShift(ctx context.Context, in CreateShiftInput) (*Shift, error)
	UpdateShift(ctx context.Context, in UpdateShiftInput) (*Shift, error)
	DeleteShift(ctx context.Context, in DeleteShiftInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, clock: clock}
}

// ListShiftsInput は一覧取得時の入力です。期間は省略可能です。
type ListShiftsInput struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// GetShiftInput はシフト取得時の入力です。
type GetShiftInput struct {
	UserID string
	ID     string
}

// CreateShiftInput はシフト作成時の入力です。
type CreateShiftInput struct {
	UserID      string
	Date        time.Time
	CreditTips  float64
	CashTips    float64
	Tipout      float64
	HoursWorked int
}

// UpdateShiftInput はシフト更新時の入力です。nil のフィールドは変更されません。
type UpdateShiftInput struct {
	UserID      string
	ID          string
	Date        *time.Time
	CreditTips  *float64
	CashTips    *float64
	Tipout      *float64
	HoursWorked *int
}

// DeleteShiftInput はシフト削除時の入力です。
type DeleteShiftInput struct {
	UserID string
	ID     string
}

// ListShifts はユーザーのシフト一覧を取得します。
// 期間フィルタを指定する場合、開始日が終了日より後であってはなりません。
func (s *Service) ListShifts(ctx context.Context, in ListShiftsInput) ([]*Shift, error) {
	userID, err := normalizeUserID(in.UserID)
	if err != nil {
		return nil, err
	}

	if in.StartDate != nil && in.EndDate != nil && in.StartDate.After(*in.EndDate) {
		return nil, ErrInvalidDateRange
	}

	return s.repo.List(ctx, userID, in.StartDate, in.EndDate)
}

// GetShift は ID でシフトを取得します。他ユーザーのシフトは存在しない扱いになります。
func (s *Service) GetShift(ctx context.Context, in GetShiftInput) (*Shift, error) {
	userID, err := normalizeUserID(in.UserID)
	if err != nil {
		return nil, err
	}

	id, err := normalizeShiftID(in.ID)
	if err != nil {
		return nil, err
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found.UserID != userID {
		return nil, ErrShiftNotFound
	}

	return found, nil
}

// CreateShift は新しいシフトを作成します。
func (s *Service) CreateShift(ctx context.Context, in CreateShiftInput) (*Shift, error) {
	userID, err := normalizeUserID(in.UserID)
	if err != nil {
		return nil, err
	}

	if err := validateHours(in.HoursWorked); err != nil {
		return nil, err
	}
	if err := validateAmounts(in.CreditTips, in.CashTips, in.Tipout); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	return s.repo.Add(ctx, &Shift{
		UserID:      userID,
		Date:        in.Date.UTC(),
		CreditTips:  in.CreditTips,
		CashTips:    in.CashTips,
		Tipout:      in.Tipout,
		HoursWorked: in.HoursWorked,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// UpdateShift は既存シフトを更新します。
func (s *Service) UpdateShift(ctx context.Context, in UpdateShiftInput) (*Shift, error) {
	existing, err := s.GetShift(ctx, GetShiftInput{UserID: in.UserID, ID: in.ID})
	if err != nil {
		return nil, err
	}

	if in.Date != nil {
		existing.Date = in.Date.UTC()
	}
	if in.CreditTips != nil {
		existing.CreditTips = *in.CreditTips
	}
	if in.CashTips != nil {
		existing.CashTips = *in.CashTips
	}
	if in.Tipout != nil {
		existing.Tipout = *in.Tipout
	}
	if in.HoursWorked != nil {
		existing.HoursWorked = *in.HoursWorked
	}

	if err := validateHours(existing.HoursWorked); err != nil {
		return nil, err
	}
	if err := validateAmounts(existing.CreditTips, existing.CashTips, existing.Tipout); err != nil {
		return nil, err
	}

	existing.UpdatedAt = s.clock.Now()

	return s.repo.Update(ctx, existing)
}

// DeleteShift はシフトを削除します。
func (s *Service) DeleteShift(ctx context.Context, in DeleteShiftInput) error {
	if _, err := s.GetShift(ctx, GetShiftInput(in)); err != nil {
		return err
	}
	return s.repo.Delete(ctx, in.ID)
}

func normalizeUserID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidUserID
	}
	return trimmed, nil
}

func normalizeShiftID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidID
	}
	if _, err := uuid.Parse(trimmed); err != nil {
		return "", fmt.Errorf("%s: %w", trimmed, ErrInvalidID)
	}
	return trimmed, nil
}

func validateHours(hours int) error {
	if hours < minManualHours || hours > maxManualHours {
		return ErrInvalidHours
	}
	return nil
}

func validateAmounts(amounts ...float64) error {
	for _, a := range amounts {
		if a < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}
