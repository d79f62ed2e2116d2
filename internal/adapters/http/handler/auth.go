package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tiptally/tiptally-api/internal/core/account"
)

// CookieSettings はアクセストークンクッキーの発行条件です。
type CookieSettings struct {
	Domain string
	Secure bool
}

// AuthHandler は登録・ログイン・ログアウトとプロフィール取得を提供します。
type AuthHandler struct {
	accounts account.Directory
	tokens   *TokenIssuer
	cookies  CookieSettings
}

// NewAuthHandler は AuthHandler を生成します。
func NewAuthHandler(accounts account.Directory, tokens *TokenIssuer, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, cookies: cookies}
}

type registerRequest struct {
	UserName  string `json:"user_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required"`
}

type loginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type accountResponse struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toAccountResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		UserName:  a.UserName,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

// Register は新規アカウントを作成し、そのままログイン状態にします。
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.accounts.Create(c.Request.Context(), &account.Account{
		UserName:  req.UserName,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.issueSession(c, created); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountResponse(created))
}

// Login は資格情報を検証し、アクセストークンクッキーを発行します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	authed, err := h.accounts.Authenticate(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.issueSession(c, authed); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(authed))
}

// Logout はアクセストークンクッキーを失効させます。
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// Me は認証済みアカウントのプロフィールを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	found, err := h.accounts.FindByID(c.Request.Context(), authedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(found))
}

func (h *AuthHandler) issueSession(c *gin.Context, a *account.Account) error {
	token, _, err := h.tokens.Issue(a)
	if err != nil {
		return err
	}

	maxAge := int(h.tokens.TTL() / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, token, maxAge, "/", h.cookies.Domain, h.cookies.Secure, true)
	return nil
}
