package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/betterthanyou/services"
	"github.com/cppla/betterthanyou/utils"
)

// ParticipantController handles joining a challenge.
type ParticipantController struct {
	svc *services.Service
}

// NewParticipantController creates a new ParticipantController instance.
func NewParticipantController(svc *services.Service) *ParticipantController {
	return &ParticipantController{svc: svc}
}

// Join adds a named participant to the challenge behind inviteCode. The response is the
// only place the participant key is ever returned.
func (p *ParticipantController) Join(ctx *gin.Context) {
	var req struct {
		InviteCode string `json:"inviteCode" binding:"required"`
		Name       string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invite code and name are required")
		return
	}

	participant, err := p.svc.Join(ctx.Request.Context(), req.InviteCode, utils.SanitizeText(req.Name))
	if err != nil {
		respondServiceError(ctx, err, 50020, "failed to join challenge")
		return
	}

	invalidateSnapshot(ctx.Request.Context(), p.svc, participant.ChallengeID)
	utils.Created(ctx, gin.H{"participant": participant})
}
