package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/betterthanyou/services"
	"github.com/cppla/betterthanyou/utils"
)

// LogController records daily achievements.
type LogController struct {
	svc *services.Service
}

// NewLogController creates a new LogController instance.
func NewLogController(svc *services.Service) *LogController {
	return &LogController{svc: svc}
}

// ToggleAchievement marks the caller's goal achieved or not on a date. It answers 201 when
// the day's row was created and 200 when an existing row was overwritten.
func (l *LogController) ToggleAchievement(ctx *gin.Context) {
	var req struct {
		ParticipantKey string `json:"participantKey"`
		GoalID         string `json:"goalId" binding:"required"`
		Date           string `json:"date" binding:"required"`
		Achieved       *bool  `json:"achieved" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "goalId, date and achieved are required")
		return
	}

	actor, err := resolveParticipant(ctx, l.svc, req.ParticipantKey)
	if err != nil {
		respondServiceError(ctx, err, 50040, "failed to resolve participant")
		return
	}

	entry, created, err := l.svc.ToggleAchievement(ctx.Request.Context(), actor, req.GoalID, req.Date, *req.Achieved)
	if err != nil {
		respondServiceError(ctx, err, 50041, "failed to save log")
		return
	}

	invalidateSnapshot(ctx.Request.Context(), l.svc, entry.ChallengeID)
	if created {
		utils.Created(ctx, gin.H{"log": entry})
		return
	}
	utils.Success(ctx, gin.H{"log": entry})
}
