package shift

import (
	"context"
	"time"
)

// Repository はシフトエンティティの永続化を行うインターフェースです。
// List の from は開始日を含み、to は終了日を含みません。
type Repository interface {
	List(ctx context.Context, userID string, from, to *time.Time) ([]*Shift, error)
	FindByID(ctx context.Context, id string) (*Shift, error)
	Add(ctx context.Context, s *Shift) (*Shift, error)
	Update(ctx context.Context, s *Shift) (*Shift, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
