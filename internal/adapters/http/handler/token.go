package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tiptally/tiptally-api/internal/core/account"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// ErrInvalidToken はトークンの検証に失敗した場合に返却されます。
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer は HS256 署名のアクセストークンを発行・検証します。
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	clock    Clock
}

// NewTokenIssuer は TokenIssuer を生成します。
func NewTokenIssuer(secret, issuer, audience string, ttl time.Duration, clock Clock) *TokenIssuer {
	if clock == nil {
		clock = realClock{}
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		clock:    clock,
	}
}

// Issue はアカウントのアクセストークンと有効期限を返します。
func (i *TokenIssuer) Issue(a *account.Account) (string, time.Time, error) {
	now := i.clock.Now()
	expires := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub":         a.ID,
		"email":       a.Email,
		"unique_name": a.UserName,
		"iat":         now.Unix(),
		"exp":         expires.Unix(),
	}
	if i.issuer != "" {
		claims["iss"] = i.issuer
	}
	if i.audience != "" {
		claims["aud"] = i.audience
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expires, nil
}

// Parse はトークンを検証し、subject のアカウント ID を返します。
func (i *TokenIssuer) Parse(raw string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return i.clock.Now() }),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	if i.audience != "" {
		opts = append(opts, jwt.WithAudience(i.audience))
	}

	parsed, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// TTL はトークンの有効期間を返します。クッキーの寿命に使用します。
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}
