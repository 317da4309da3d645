package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/betterthanyou/services"
	"github.com/cppla/betterthanyou/utils"
)

// GoalController manages daily goals and their peer-set point values.
type GoalController struct {
	svc *services.Service
}

// NewGoalController creates a new GoalController instance.
func NewGoalController(svc *services.Service) *GoalController {
	return &GoalController{svc: svc}
}

// CreateGoal adds a goal owned by the calling participant.
func (g *GoalController) CreateGoal(ctx *gin.Context) {
	var req struct {
		ParticipantKey string `json:"participantKey"`
		Description    string `json:"description" binding:"required"`
		Points         *int   `json:"points"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "description is required")
		return
	}

	owner, err := resolveParticipant(ctx, g.svc, req.ParticipantKey)
	if errors.Is(err, services.ErrUnauthorized) {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid participant key")
		return
	}
	if err != nil {
		respondServiceError(ctx, err, 50030, "failed to resolve participant")
		return
	}

	goal, err := g.svc.CreateGoal(ctx.Request.Context(), owner, utils.SanitizeText(req.Description), req.Points)
	if err != nil {
		respondServiceError(ctx, err, 50031, "failed to create goal")
		return
	}

	invalidateSnapshot(ctx.Request.Context(), g.svc, goal.ChallengeID)
	utils.Created(ctx, gin.H{"goal": goal})
}

// AdjustPoints lets a participant price another participant's goal.
func (g *GoalController) AdjustPoints(ctx *gin.Context) {
	var req struct {
		ParticipantKey string `json:"participantKey"`
		GoalID         string `json:"goalId" binding:"required"`
		Points         *int   `json:"points" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "goalId and points are required")
		return
	}

	actor, err := resolveParticipant(ctx, g.svc, req.ParticipantKey)
	if err != nil {
		respondServiceError(ctx, err, 50032, "failed to resolve participant")
		return
	}

	goal, err := g.svc.AdjustPoints(ctx.Request.Context(), actor, req.GoalID, *req.Points)
	if err != nil {
		respondServiceError(ctx, err, 50033, "failed to update points")
		return
	}

	invalidateSnapshot(ctx.Request.Context(), g.svc, goal.ChallengeID)
	utils.Success(ctx, gin.H{"success": true})
}
