package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiptally/tiptally-api/internal/core/account"
)

func TestAccountRepository_Create_NormalizesAndHashes(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)
	now := time.Now().UTC()

	query := regexp.QuoteMeta(`
        INSERT INTO accounts (user_name, email, first_name, last_name, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, now(), now())
        RETURNING id, user_name, email, first_name, last_name, created_at, updated_at
    `)

	rows := pgxmock.NewRows([]string{"id", "user_name", "email", "first_name", "last_name", "created_at", "updated_at"}).
		AddRow("acc-1", "demouser", "demo@example.com", "Demo", "User", now, now)

	mock.ExpectQuery(query).
		WithArgs("demouser", "demo@example.com", "Demo", "User", pgxmock.AnyArg()).
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), &account.Account{
		UserName:  " DemoUser ",
		Email:     " Demo@Example.com ",
		FirstName: "Demo",
		LastName:  "User",
	}, "DemoPassword123!")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.ID != "acc-1" || created.UserName != "demouser" {
		t.Fatalf("unexpected account: %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_Create_RejectsWeakPassword(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	_, err = repo.Create(context.Background(), &account.Account{
		UserName: "demouser",
		Email:    "demo@example.com",
	}, "weak")
	if !errors.Is(err, account.ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no queries for rejected password: %v", err)
	}
}

func TestAccountRepository_Authenticate(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("DemoPassword123!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	now := time.Now().UTC()

	query := regexp.QuoteMeta(`
        SELECT id, user_name, email, first_name, last_name, password_hash, created_at, updated_at
          FROM accounts
         WHERE user_name = $1
         LIMIT 1
    `)

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("failed to create mock pool: %v", err)
		}
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "user_name", "email", "first_name", "last_name", "password_hash", "created_at", "updated_at"}).
			AddRow("acc-1", "demouser", "demo@example.com", "Demo", "User", string(hash), now, now)

		mock.ExpectQuery(query).WithArgs("demouser").WillReturnRows(rows)

		repo := NewAccountRepository(mock)
		authed, err := repo.Authenticate(context.Background(), "DemoUser", "DemoPassword123!")
		if err != nil {
			t.Fatalf("Authenticate returned error: %v", err)
		}
		if authed.ID != "acc-1" {
			t.Fatalf("unexpected account: %+v", authed)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("failed to create mock pool: %v", err)
		}
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "user_name", "email", "first_name", "last_name", "password_hash", "created_at", "updated_at"}).
			AddRow("acc-1", "demouser", "demo@example.com", "Demo", "User", string(hash), now, now)

		mock.ExpectQuery(query).WithArgs("demouser").WillReturnRows(rows)

		repo := NewAccountRepository(mock)
		if _, err := repo.Authenticate(context.Background(), "demouser", "wrong"); !errors.Is(err, account.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("failed to create mock pool: %v", err)
		}
		defer mock.Close()

		mock.ExpectQuery(query).WithArgs("ghost").WillReturnError(pgx.ErrNoRows)

		repo := NewAccountRepository(mock)
		if _, err := repo.Authenticate(context.Background(), "ghost", "whatever"); !errors.Is(err, account.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestTranslateAccountPgError(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: accountUniqueViolationCode}
	if !errors.Is(translateAccountPgError(uniqueErr), account.ErrUserNameTaken) {
		t.Fatal("expected unique violation to map to ErrUserNameTaken")
	}

	other := errors.New("other")
	if translateAccountPgError(other) != other {
		t.Fatal("unexpected translation for generic error")
	}
}
