package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tiptally/tiptally-api/internal/core/shift"
)

// ShiftHandler はシフト CRUD の HTTP エンドポイントを提供します。
type ShiftHandler struct {
	shifts shift.UseCase
}

// NewShiftHandler は ShiftHandler を生成します。
func NewShiftHandler(shifts shift.UseCase) *ShiftHandler {
	return &ShiftHandler{shifts: shifts}
}

type createShiftRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	CreditTips  float64   `json:"credit_tips"`
	CashTips    float64   `json:"cash_tips"`
	Tipout      float64   `json:"tipout"`
	HoursWorked int       `json:"hours_worked" binding:"required"`
}

type updateShiftRequest struct {
	Date        *time.Time `json:"date"`
	CreditTips  *float64   `json:"credit_tips"`
	CashTips    *float64   `json:"cash_tips"`
	Tipout      *float64   `json:"tipout"`
	HoursWorked *int       `json:"hours_worked"`
}

type shiftResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	CreditTips  float64   `json:"credit_tips"`
	CashTips    float64   `json:"cash_tips"`
	Tipout      float64   `json:"tipout"`
	HoursWorked int       `json:"hours_worked"`
}

func toShiftResponse(s *shift.Shift) shiftResponse {
	return shiftResponse{
		ID:          s.ID,
		Date:        s.Date,
		CreditTips:  s.CreditTips,
		CashTips:    s.CashTips,
		Tipout:      s.Tipout,
		HoursWorked: s.HoursWorked,
	}
}

// List は認証ユーザーのシフト一覧を返します。
// start_date / end_date クエリ (RFC3339 または YYYY-MM-DD) で期間を絞り込めます。
func (h *ShiftHandler) List(c *gin.Context) {
	start, err := parseDateQuery(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := parseDateQuery(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	shifts, err := h.shifts.ListShifts(c.Request.Context(), shift.ListShiftsInput{
		UserID:    authedUserID(c),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]shiftResponse, 0, len(shifts))
	for _, s := range shifts {
		responses = append(responses, toShiftResponse(s))
	}
	c.JSON(http.StatusOK, responses)
}

// Get は ID でシフトを取得します。
func (h *ShiftHandler) Get(c *gin.Context) {
	found, err := h.shifts.GetShift(c.Request.Context(), shift.GetShiftInput{
		UserID: authedUserID(c),
		ID:     c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShiftResponse(found))
}

// Create は新しいシフトを登録します。
func (h *ShiftHandler) Create(c *gin.Context) {
	var req createShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.shifts.CreateShift(c.Request.Context(), shift.CreateShiftInput{
		UserID:      authedUserID(c),
		Date:        req.Date,
		CreditTips:  req.CreditTips,
		CashTips:    req.CashTips,
		Tipout:      req.Tipout,
		HoursWorked: req.HoursWorked,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toShiftResponse(created))
}

// Update は既存シフトを部分更新します。
func (h *ShiftHandler) Update(c *gin.Context) {
	var req updateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.shifts.UpdateShift(c.Request.Context(), shift.UpdateShiftInput{
		UserID:      authedUserID(c),
		ID:          c.Param("id"),
		Date:        req.Date,
		CreditTips:  req.CreditTips,
		CashTips:    req.CashTips,
		Tipout:      req.Tipout,
		HoursWorked: req.HoursWorked,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShiftResponse(updated))
}

// Delete はシフトを削除します。
func (h *ShiftHandler) Delete(c *gin.Context) {
	err := h.shifts.DeleteShift(c.Request.Context(), shift.DeleteShiftInput{
		UserID: authedUserID(c),
		ID:     c.Param("id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		utc := t.UTC()
		return &utc, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
