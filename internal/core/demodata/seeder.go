package demodata

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tiptally/tiptally-api/internal/core/account"
	"github.com/tiptally/tiptally-api/internal/core/shift"
)

// デモアカウントの固定属性。シーディング対象はこのアカウントのみです。
const (
	demoUserName  = "demouser"
	demoEmail     = "demo@example.com"
	demoFirstName = "Demo"
	demoLastName  = "User"

	defaultDemoPassword = "DemoPassword123!"
)

// TransactionManager はトランザクション境界を提供するインターフェースです。
type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(ctx context.Context) error) error
}

// UseCase はデモデータ管理ユースケースの公開インターフェースです。
type UseCase interface {
	SeedDemoData(ctx context.Context) error
	ResetDemoUser(ctx context.Context) error
	ResetDemoUserShifts(ctx context.Context) error
}

// Seeder はデモアカウントの合成勤務履歴を管理するオーケストレータです。
// 同時実行による重複生成を避けるため、各操作は内部ミューテックスで直列化します。
type Seeder struct {
	accounts account.Directory
	shifts   shift.Repository
	conv     Converter
	tx       TransactionManager
	clock    Clock
	params   Parameters
	newRand  func() Rand
	password string
	logger   *zap.Logger

	mu sync.Mutex
}

// SeederConfig は Seeder の任意設定です。ゼロ値のフィールドには既定値が適用されます。
type SeederConfig struct {
	// Password はデモアカウント作成時のパスワードです。
	Password string
	// Params は生成パラメータです。nil の場合は DefaultParameters を使用します。
	Params *Parameters
	// NewRand はシーディング 1 回ごとの乱数源を返します。テスト時の差し替え用です。
	NewRand func() Rand
	// Clock は作成・更新日時の付与に使用します。
	Clock Clock
}

// NewSeeder は Seeder を生成します。
func NewSeeder(accounts account.Directory, shifts shift.Repository, conv Converter, tx TransactionManager, logger *zap.Logger, cfg SeederConfig) *Seeder {
	params := DefaultParameters()
	if cfg.Params != nil {
		params = *cfg.Params
	}

	password := cfg.Password
	if password == "" {
		password = defaultDemoPassword
	}

	newRand := cfg.NewRand
	if newRand == nil {
		newRand = func() Rand { return nil }
	}

	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Seeder{
		accounts: accounts,
		shifts:   shifts,
		conv:     conv,
		tx:       tx,
		clock:    clock,
		params:   params,
		newRand:  newRand,
		password: password,
		logger:   logger,
	}
}

// SeedDemoData はデモアカウントの存在を保証し、履歴の欠落分を補填します。
// サーバー起動時とデモリセット系操作から呼ばれ、冪等です。
func (s *Seeder) SeedDemoData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seedLocked(ctx)
}

// ResetDemoUser はデモアカウントをシフトごと削除し、ゼロから再作成します。
func (s *Seeder) ResetDemoUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.accounts.FindByUserName(ctx, demoUserName)
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		// アカウントがなければ作成からやり直すだけでよい。
	case err != nil:
		return fmt.Errorf("find demo user: %w", err)
	default:
		err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
			if err := s.shifts.DeleteAllForUser(txCtx, existing.ID); err != nil {
				return fmt.Errorf("delete demo shifts: %w", err)
			}
			if err := s.accounts.Delete(txCtx, existing.ID); err != nil {
				return fmt.Errorf("delete demo user: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		s.logger.Info("demo user deleted", zap.String("user_id", existing.ID))
	}

	return s.seedLocked(ctx)
}

// ResetDemoUserShifts はデモアカウントを残したままシフトのみ全削除し、再生成します。
func (s *Seeder) ResetDemoUserShifts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.accounts.FindByUserName(ctx, demoUserName)
	if errors.Is(err, account.ErrAccountNotFound) {
		s.logger.Warn("demo user not found, nothing to reset")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find demo user: %w", err)
	}

	if err := s.shifts.DeleteAllForUser(ctx, existing.ID); err != nil {
		return fmt.Errorf("delete demo shifts: %w", err)
	}

	return s.seedShiftsFor(ctx, existing.ID)
}

func (s *Seeder) seedLocked(ctx context.Context) error {
	s.logger.Info("starting demo data seeding")

	acc, err := s.accounts.FindByUserName(ctx, demoUserName)
	if errors.Is(err, account.ErrAccountNotFound) {
		acc, err = s.createDemoAccount(ctx)
		if err != nil {
			// アカウントなしでシフトを作ると孤児データになるため、ここで打ち切る。
			// 起動時シーディングでサーバーを落とさないようエラーは返さない。
			s.logger.Error("failed to create demo user", zap.Error(err))
			return nil
		}
		s.logger.Info("demo user created", zap.String("user_id", acc.ID))
	} else if err != nil {
		return fmt.Errorf("find demo user: %w", err)
	}

	return s.seedShiftsFor(ctx, acc.ID)
}

func (s *Seeder) createDemoAccount(ctx context.Context) (*account.Account, error) {
	return s.accounts.Create(ctx, &account.Account{
		UserName:  demoUserName,
		Email:     demoEmail,
		FirstName: demoFirstName,
		LastName:  demoLastName,
	}, s.password)
}

func (s *Seeder) seedShiftsFor(ctx context.Context, userID string) error {
	history, err := s.shifts.List(ctx, userID, nil, nil)
	if err != nil {
		return fmt.Errorf("list demo shifts: %w", err)
	}

	today := s.conv.CurrentLocalDate()
	plan := AnalyzeHistory(history, today, s.conv, s.params.HistoryDays)
	s.logger.Info("demo history analyzed",
		zap.Stringer("directive", plan.Directive),
		zap.Int("dates", len(plan.Dates)))

	switch plan.Directive {
	case DirectiveNoOp:
		s.logger.Info("no dates to seed")
		return nil
	case DirectiveRegenerateAll:
		return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
			if err := s.shifts.DeleteAllForUser(txCtx, userID); err != nil {
				return fmt.Errorf("delete stale demo shifts: %w", err)
			}
			return s.seedDates(txCtx, userID, plan.Dates)
		})
	default:
		return s.seedDates(ctx, userID, plan.Dates)
	}
}

func (s *Seeder) seedDates(ctx context.Context, userID string, dates []time.Time) error {
	if len(dates) == 0 {
		s.logger.Info("no dates to seed")
		return nil
	}

	gen := NewGenerator(s.params, s.newRand())
	now := s.clock.Now()
	added := 0
	for _, date := range dates {
		for _, planned := range gen.GenerateDay(date) {
			record := &shift.Shift{
				UserID:      userID,
				Date:        s.conv.ToUTC(date, planned.Start),
				CreditTips:  float64(planned.CreditTips),
				CashTips:    float64(planned.CashTips),
				Tipout:      float64(planned.Tipout),
				HoursWorked: planned.Hours,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if _, err := s.shifts.Add(ctx, record); err != nil {
				return fmt.Errorf("add demo shift: %w", err)
			}
			added++
		}
	}

	s.logger.Info("demo shifts seeded", zap.Int("dates", len(dates)), zap.Int("shifts", added))
	return nil
}
