package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/yungbote/betterday-backend/internal/http/response"
	"github.com/yungbote/betterday-backend/internal/services"
	"github.com/yungbote/betterday-backend/internal/types"
)

type DashboardHandler struct {
	svc services.DashboardService
	loc *time.Location
}

func NewDashboardHandler(svc services.DashboardService, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{svc: svc, loc: loc}
}

// GET /api/dashboard?date=YYYY-MM-DD
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("date"))

	var date datatypes.Date
	if raw == "" {
		date = types.DateOf(time.Now().In(h.loc))
	} else {
		parsed, err := types.ParseDate(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
			return
		}
		date = parsed
	}

	view, err := h.svc.GetDashboard(c.Request.Context(), date)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, view)
}
