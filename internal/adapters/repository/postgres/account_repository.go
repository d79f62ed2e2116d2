package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiptally/tiptally-api/internal/core/account"
	pgdb "github.com/tiptally/tiptally-api/internal/platform/db/postgres"
)

const accountUniqueViolationCode = "23505"

// AccountRepository は PostgreSQL を利用したアカウント永続化と認証の実装です。
// パスワードは bcrypt ハッシュとして保存し、平文は保持しません。
type AccountRepository struct {
	pool pgdb.Queryer
}

// NewAccountRepository は AccountRepository を生成します。
func NewAccountRepository(pool pgdb.Queryer) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// FindByUserName はユーザー名でアカウントを取得します。
func (r *AccountRepository) FindByUserName(ctx context.Context, userName string) (*account.Account, error) {
	normalized, err := account.NormalizeUserName(userName)
	if err != nil {
		return nil, err
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, user_name, email, first_name, last_name, created_at, updated_at
          FROM accounts
         WHERE user_name = $1
         LIMIT 1
    `, normalized)

	return scanAccount(row)
}

// FindByID は ID でアカウントを取得します。
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*account.Account, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, user_name, email, first_name, last_name, created_at, updated_at
          FROM accounts
         WHERE id = $1
         LIMIT 1
    `, id)

	return scanAccount(row)
}

// Create はアカウントを新規作成します。ユーザー名とメールは正規化され、
// パスワードはポリシー検査のうえハッシュ化して保存されます。
func (r *AccountRepository) Create(ctx context.Context, a *account.Account, password string) (*account.Account, error) {
	userName, err := account.NormalizeUserName(a.UserName)
	if err != nil {
		return nil, err
	}
	email, err := account.NormalizeEmail(a.Email)
	if err != nil {
		return nil, err
	}
	if err := account.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO accounts (user_name, email, first_name, last_name, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, now(), now())
        RETURNING id, user_name, email, first_name, last_name, created_at, updated_at
    `,
		userName,
		email,
		a.FirstName,
		a.LastName,
		string(hash),
	)

	created, err := scanAccount(row)
	if err != nil {
		return nil, translateAccountPgError(err)
	}
	return created, nil
}

// Delete はアカウントを削除します。
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return translateAccountPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// Authenticate はユーザー名とパスワードを照合します。
// アカウント不在とパスワード不一致はどちらも ErrInvalidCredentials を返します。
func (r *AccountRepository) Authenticate(ctx context.Context, userName, password string) (*account.Account, error) {
	normalized, err := account.NormalizeUserName(userName)
	if err != nil {
		return nil, account.ErrInvalidCredentials
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, user_name, email, first_name, last_name, password_hash, created_at, updated_at
          FROM accounts
         WHERE user_name = $1
         LIMIT 1
    `, normalized)

	var (
		a    account.Account
		hash string
	)
	if err := row.Scan(
		&a.ID,
		&a.UserName,
		&a.Email,
		&a.FirstName,
		&a.LastName,
		&hash,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}

	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var (
		a         account.Account
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(
		&a.ID,
		&a.UserName,
		&a.Email,
		&a.FirstName,
		&a.LastName,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}

	a.CreatedAt = createdAt.UTC()
	a.UpdatedAt = updatedAt.UTC()
	return &a, nil
}

func translateAccountPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return account.ErrAccountNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == accountUniqueViolationCode {
		return account.ErrUserNameTaken
	}

	return err
}
