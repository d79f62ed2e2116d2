package account

import "context"

// Directory はアカウントの永続化と認証を行うインターフェースです。
// パスワードのハッシュ化と照合は実装側の責務です。
type Directory interface {
	FindByUserName(ctx context.Context, userName string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, a *Account, password string) (*Account, error)
	Delete(ctx context.Context, id string) error
	Authenticate(ctx context.Context, userName, password string) (*Account, error)
}
