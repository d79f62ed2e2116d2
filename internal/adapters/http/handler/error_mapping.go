package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiptally/tiptally-api/internal/core/account"
	"github.com/tiptally/tiptally-api/internal/core/shift"
)

func statusCode(err error) int {
	switch {
	case errors.Is(err, shift.ErrInvalidID),
		errors.Is(err, shift.ErrInvalidUserID),
		errors.Is(err, shift.ErrInvalidDateRange),
		errors.Is(err, shift.ErrInvalidHours),
		errors.Is(err, shift.ErrNegativeAmount),
		errors.Is(err, account.ErrInvalidUserName),
		errors.Is(err, account.ErrInvalidEmail),
		errors.Is(err, account.ErrPasswordPolicy):
		return http.StatusBadRequest
	case errors.Is(err, account.ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, shift.ErrShiftNotFound), errors.Is(err, account.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, account.ErrUserNameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError はドメインエラーを HTTP レスポンスへ変換します。
// 内部エラーの詳細はクライアントへ出しません。
func respondError(c *gin.Context, err error) {
	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(code, gin.H{"error": message})
}
