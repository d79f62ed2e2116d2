package account

import (
	"net/mail"
	"strings"
	"unicode"
)

const minPasswordLength = 8

// ValidatePassword はパスワードポリシーを検査します。
// 8 文字以上で、大文字・小文字・数字・記号を各 1 文字以上含む必要があります。
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordPolicy
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return ErrPasswordPolicy
	}
	return nil
}

// NormalizeUserName はユーザー名を検証し、小文字へ正規化します。
func NormalizeUserName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidUserName
	}
	return strings.ToLower(trimmed), nil
}

// NormalizeEmail はメールアドレスを検証し、小文字へ正規化します。
func NormalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(addr.Address), nil
}
