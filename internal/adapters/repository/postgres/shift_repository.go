package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tiptally/tiptally-api/internal/core/account"
	"github.com/tiptally/tiptally-api/internal/core/shift"
	pgdb "github.com/tiptally/tiptally-api/internal/platform/db/postgres"
)

const (
	shiftForeignKeyViolationCode = "23503"
	shiftCheckViolationCode      = "23514"

	shiftHoursCheckConstraint = "shifts_hours_worked_check"
)

// ShiftRepository は PostgreSQL を利用したシフト永続化の実装です。
type ShiftRepository struct {
	pool pgdb.Queryer
}

// NewShiftRepository は ShiftRepository を生成します。
func NewShiftRepository(pool pgdb.Queryer) *ShiftRepository {
	return &ShiftRepository{pool: pool}
}

// List はユーザーのシフト一覧を日付昇順で取得します。
// from は開始日を含み、to は終了日を含みません。
func (r *ShiftRepository) List(ctx context.Context, userID string, from, to *time.Time) ([]*shift.Shift, error) {
	args := []any{userID}
	query := `
        SELECT id, user_id, date, credit_tips, cash_tips, tipout, hours_worked, created_at, updated_at
          FROM shifts
         WHERE user_id = $1`

	if from != nil {
		args = append(args, from.UTC())
		query += " AND date >= $" + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, to.UTC())
		query += " AND date < $" + strconv.Itoa(len(args))
	}
	query += `
         ORDER BY date ASC, id ASC
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	defer rows.Close()

	var shifts []*shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, translateShiftPgError(err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, translateShiftPgError(err)
	}

	return shifts, nil
}

// FindByID は ID でシフトを取得します。
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, user_id, date, credit_tips, cash_tips, tipout, hours_worked, created_at, updated_at
          FROM shifts
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return found, nil
}

// Add はシフトを新規作成します。
func (r *ShiftRepository) Add(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO shifts (user_id, date, credit_tips, cash_tips, tipout, hours_worked, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, user_id, date, credit_tips, cash_tips, tipout, hours_worked, created_at, updated_at
    `,
		s.UserID,
		s.Date.UTC(),
		s.CreditTips,
		s.CashTips,
		s.Tipout,
		s.HoursWorked,
		s.CreatedAt,
		s.UpdatedAt,
	)

	created, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return created, nil
}

// Update は既存シフトを更新します。
func (r *ShiftRepository) Update(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE shifts
           SET date = $1,
               credit_tips = $2,
               cash_tips = $3,
               tipout = $4,
               hours_worked = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING id, user_id, date, credit_tips, cash_tips, tipout, hours_worked, created_at, updated_at
    `,
		s.Date.UTC(),
		s.CreditTips,
		s.CashTips,
		s.Tipout,
		s.HoursWorked,
		s.UpdatedAt,
		s.ID,
	)

	updated, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return updated, nil
}

// Delete はシフトを削除します。
func (r *ShiftRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return translateShiftPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// DeleteAllForUser はユーザーのシフトをすべて削除します。0 件でもエラーにはなりません。
func (r *ShiftRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM shifts WHERE user_id = $1`, userID); err != nil {
		return translateShiftPgError(err)
	}
	return nil
}

func scanShift(row pgx.Row) (*shift.Shift, error) {
	var s shift.Shift
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Date,
		&s.CreditTips,
		&s.CashTips,
		&s.Tipout,
		&s.HoursWorked,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shift.ErrShiftNotFound
		}
		return nil, err
	}

	s.Date = s.Date.UTC()
	return &s, nil
}

func translateShiftPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shift.ErrShiftNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case shiftForeignKeyViolationCode:
			return account.ErrAccountNotFound
		case shiftCheckViolationCode:
			if pgErr.ConstraintName == shiftHoursCheckConstraint {
				return shift.ErrInvalidHours
			}
			return shift.ErrNegativeAmount
		}
	}

	return err
}
