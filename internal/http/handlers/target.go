package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/betterday-backend/internal/http/response"
	"github.com/yungbote/betterday-backend/internal/services"
)

type TargetHandler struct {
	svc services.TargetService
}

func NewTargetHandler(svc services.TargetService) *TargetHandler {
	return &TargetHandler{svc: svc}
}

type createTargetRequest struct {
	DayID        uuid.UUID `json:"day_id" binding:"required"`
	CategoryID   uuid.UUID `json:"category_id" binding:"required"`
	ImportanceID uuid.UUID `json:"importance_id" binding:"required"`
	Name         string    `json:"name" binding:"required"`
}

// POST /api/targets
func (h *TargetHandler) CreateTarget(c *gin.Context) {
	var req createTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	target, err := h.svc.Create(c.Request.Context(), req.DayID, req.CategoryID, req.ImportanceID, req.Name)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"target": target})
}

type toggleTargetRequest struct {
	DayID uuid.UUID `json:"day_id" binding:"required"`
}

// POST /api/targets/:id/toggle
func (h *TargetHandler) ToggleTarget(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid target id"))
		return
	}
	var req toggleTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	target, err := h.svc.ToggleAchievement(c.Request.Context(), req.DayID, targetID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"target": target})
}

type updateTargetRequest struct {
	DayID        uuid.UUID  `json:"day_id" binding:"required"`
	Name         *string    `json:"name"`
	ImportanceID *uuid.UUID `json:"importance_id"`
}

// PUT /api/targets/:id
func (h *TargetHandler) UpdateTarget(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid target id"))
		return
	}
	var req updateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	target, err := h.svc.Update(c.Request.Context(), req.DayID, targetID, req.Name, req.ImportanceID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"target": target})
}

// DELETE /api/targets/:id?day_id=...
func (h *TargetHandler) DeleteTarget(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid target id"))
		return
	}
	dayID, err := uuid.Parse(c.Query("day_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid day_id"))
		return
	}
	if err := h.svc.SoftDelete(c.Request.Context(), dayID, targetID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
