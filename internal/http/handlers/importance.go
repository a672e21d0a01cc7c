package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/betterday-backend/internal/http/response"
	"github.com/yungbote/betterday-backend/internal/services"
)

type ImportanceHandler struct {
	svc services.ImportanceService
}

func NewImportanceHandler(svc services.ImportanceService) *ImportanceHandler {
	return &ImportanceHandler{svc: svc}
}

// GET /api/importance
func (h *ImportanceHandler) ListImportance(c *gin.Context) {
	levels, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"importance_levels": levels})
}

type createImportanceRequest struct {
	Label string `json:"label" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

// POST /api/importance
func (h *ImportanceHandler) CreateImportance(c *gin.Context) {
	var req createImportanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	level, err := h.svc.Create(c.Request.Context(), req.Label, req.Score)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"importance_level": level})
}

type updateImportanceRequest struct {
	Label *string `json:"label"`
	Score *int    `json:"score"`
}

// PUT /api/importance/:id
func (h *ImportanceHandler) UpdateImportance(c *gin.Context) {
	levelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid importance id"))
		return
	}
	var req updateImportanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	level, err := h.svc.Update(c.Request.Context(), levelID, req.Label, req.Score)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"importance_level": level})
}

// DELETE /api/importance/:id
func (h *ImportanceHandler) DeleteImportance(c *gin.Context) {
	levelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid importance id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), levelID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
