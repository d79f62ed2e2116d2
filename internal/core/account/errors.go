package account

import "errors"

var (
	// ErrAccountNotFound はアカウントが存在しない場合に返却されます。
	ErrAccountNotFound = errors.New("account not found")
	// ErrUserNameTaken はユーザー名重複時に返却されます。
	ErrUserNameTaken = errors.New("username already taken")
	// ErrInvalidUserName はユーザー名が不正な場合に返却されます。
	ErrInvalidUserName = errors.New("invalid username")
	// ErrInvalidEmail はメールアドレスが不正な場合に返却されます。
	ErrInvalidEmail = errors.New("invalid email")
	// ErrPasswordPolicy はパスワードがポリシーを満たさない場合に返却されます。
	ErrPasswordPolicy = errors.New("password does not meet policy requirements")
	// ErrInvalidCredentials は認証失敗時に返却されます。
	ErrInvalidCredentials = errors.New("invalid credentials")
)
