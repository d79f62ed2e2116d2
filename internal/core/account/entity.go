package account

import "time"

// Account はユーザーアカウントのエンティティです。
// 資格情報 (パスワードハッシュ) は永続化層の内部にあり、エンティティには含まれません。
type Account struct {
	ID        string
	UserName  string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
