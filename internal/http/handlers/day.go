package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/betterday-backend/internal/http/response"
	"github.com/yungbote/betterday-backend/internal/services"
)

type DayHandler struct {
	days      services.DayService
	dashboard services.DashboardService
}

func NewDayHandler(days services.DayService, dashboard services.DashboardService) *DayHandler {
	return &DayHandler{days: days, dashboard: dashboard}
}

// GET /api/days/:id
func (h *DayHandler) GetDay(c *gin.Context) {
	dayID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid day id"))
		return
	}
	view, err := h.dashboard.GetDashboardForDay(c.Request.Context(), dayID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}

type setTimesRequest struct {
	WakeTime  *string `json:"wake_time"`
	SleepTime *string `json:"sleep_time"`
}

// PUT /api/days/:id/times
func (h *DayHandler) SetTimes(c *gin.Context) {
	dayID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid day id"))
		return
	}
	var req setTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	wake, err := parseClock(req.WakeTime)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_time", fmt.Errorf("wake_time: %w", err))
		return
	}
	sleep, err := parseClock(req.SleepTime)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_time", fmt.Errorf("sleep_time: %w", err))
		return
	}

	day, err := h.days.SetTimes(c.Request.Context(), dayID, wake, sleep)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"day": day})
}

// parseClock accepts "15:04", "15:04:05", or a full RFC 3339 timestamp.
// Empty or absent values clear the stored time. Only the clock portion is
// meaningful downstream, so bare times are anchored to a fixed date.
func parseClock(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			anchored := time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
			return &anchored, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("expected HH:MM, HH:MM:SS, or RFC 3339, got %q", s)
}
