package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiptally/tiptally-api/internal/core/demodata"
)

// DemoDataHandler はデモアカウントのリセット操作を提供します。
type DemoDataHandler struct {
	seeder demodata.UseCase
}

// NewDemoDataHandler は DemoDataHandler を生成します。
func NewDemoDataHandler(seeder demodata.UseCase) *DemoDataHandler {
	return &DemoDataHandler{seeder: seeder}
}

// Reset はデモアカウントを削除し、履歴ごと再作成します。
func (h *DemoDataHandler) Reset(c *gin.Context) {
	if err := h.seeder.ResetDemoUser(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Demo data has been reset."})
}

// ResetShifts はデモアカウントを残したままシフトのみ再生成します。
func (h *DemoDataHandler) ResetShifts(c *gin.Context) {
	if err := h.seeder.ResetDemoUserShifts(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Demo shifts have been reset."})
}
