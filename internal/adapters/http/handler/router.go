package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tiptally/tiptally-api/internal/core/account"
	"github.com/tiptally/tiptally-api/internal/core/demodata"
	"github.com/tiptally/tiptally-api/internal/core/shift"
)

// RouterDeps はルーター構築に必要な依存一式です。
type RouterDeps struct {
	Accounts       account.Directory
	Shifts         shift.UseCase
	Seeder         demodata.UseCase
	Tokens         *TokenIssuer
	Cookies        CookieSettings
	Logger         *zap.Logger
	AllowedOrigins []string
}

// NewRouter は API のルーティングを組み立てた gin エンジンを返します。
func NewRouter(deps RouterDeps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	if deps.Logger != nil {
		engine.Use(RequestLogger(deps.Logger))
	}

	if len(deps.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(deps.Accounts, deps.Tokens, deps.Cookies)
	shiftHandler := NewShiftHandler(deps.Shifts)
	demoHandler := NewDemoDataHandler(deps.Seeder)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", AuthRequired(deps.Tokens), authHandler.Me)

	shifts := api.Group("/shifts", AuthRequired(deps.Tokens))
	shifts.GET("", shiftHandler.List)
	shifts.POST("", shiftHandler.Create)
	shifts.GET("/:id", shiftHandler.Get)
	shifts.PUT("/:id", shiftHandler.Update)
	shifts.DELETE("/:id", shiftHandler.Delete)

	demo := api.Group("/demodata")
	demo.POST("/reset", demoHandler.Reset)
	demo.POST("/reset-shifts", demoHandler.ResetShifts)

	return engine
}
