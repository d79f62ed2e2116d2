//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	repo "github.com/tiptally/tiptally-api/internal/adapters/repository/postgres"
	"github.com/tiptally/tiptally-api/internal/core/demodata"
	"github.com/tiptally/tiptally-api/internal/core/timezone"
	"github.com/tiptally/tiptally-api/internal/platform/config"
	pg "github.com/tiptally/tiptally-api/internal/platform/db/postgres"
)

const migrationsDir = "../assets/migrations"

func TestDemoSeedingIntegration(t *testing.T) {
	cfgPath := configPathFromEnv()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	accountRepo := repo.NewAccountRepository(pool)
	shiftRepo := repo.NewShiftRepository(pool)
	converter := timezone.New(cfg.Demo.TimeZone, nil, nil)
	txManager := pg.NewTransactionManager(pool)

	seeder := demodata.NewSeeder(accountRepo, shiftRepo, converter, txManager, nil, demodata.SeederConfig{
		Password: cfg.Demo.Password,
	})

	if err := seeder.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData error: %v", err)
	}

	acc, err := accountRepo.FindByUserName(ctx, "demouser")
	if err != nil {
		t.Fatalf("demo account not created: %v", err)
	}

	shifts, err := shiftRepo.List(ctx, acc.ID, nil, nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(shifts) == 0 {
		t.Fatal("expected seeded shifts")
	}

	today := converter.CurrentLocalDate()
	windowStart := today.AddDate(0, 0, -59)
	for _, s := range shifts {
		day := converter.LocalDate(s.Date)
		if day.Before(windowStart) || day.After(today) {
			t.Fatalf("shift outside seeding window: %s", s.Date)
		}
	}

	// 再実行しても履歴は増えない。
	before := len(shifts)
	if err := seeder.SeedDemoData(ctx); err != nil {
		t.Fatalf("second SeedDemoData error: %v", err)
	}
	after, err := shiftRepo.List(ctx, acc.ID, nil, nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(after) != before {
		t.Fatalf("expected idempotent seeding, %d -> %d shifts", before, len(after))
	}

	// シフトのみリセットしてもアカウントは残る。
	if err := seeder.ResetDemoUserShifts(ctx); err != nil {
		t.Fatalf("ResetDemoUserShifts error: %v", err)
	}
	if _, err := accountRepo.FindByID(ctx, acc.ID); err != nil {
		t.Fatalf("demo account should survive shift reset: %v", err)
	}

	authed, err := accountRepo.Authenticate(ctx, "demouser", "DemoPassword123!")
	if err != nil {
		t.Fatalf("demo credentials should work: %v", err)
	}
	if authed.ID != acc.ID {
		t.Fatalf("unexpected account from Authenticate: %+v", authed)
	}
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "../assets/local.yaml"
}
