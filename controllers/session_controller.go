package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/betterthanyou/config"
	"github.com/cppla/betterthanyou/middleware"
	"github.com/cppla/betterthanyou/services"
	"github.com/cppla/betterthanyou/utils"
)

// SessionController exchanges a participant key for a signed session token.
type SessionController struct {
	svc *services.Service
}

// NewSessionController creates a new SessionController instance.
func NewSessionController(svc *services.Service) *SessionController {
	return &SessionController{svc: svc}
}

// OpenSession validates a participant key and issues a session token for it.
func (s *SessionController) OpenSession(ctx *gin.Context) {
	var req struct {
		ParticipantKey string `json:"participantKey" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "participantKey is required")
		return
	}

	participant, err := s.svc.Authenticate(ctx.Request.Context(), req.ParticipantKey)
	if err != nil {
		respondServiceError(ctx, err, 50050, "failed to open session")
		return
	}

	ttl := time.Duration(config.Get().SessionTTLHours) * time.Hour
	token, expiresAt, err := utils.GenerateSessionToken(participant.ID, participant.ChallengeID, ttl)
	if err != nil {
		respondServiceError(ctx, err, 50051, "failed to issue session")
		return
	}

	total, err := s.svc.TotalFor(ctx.Request.Context(), participant.ID)
	if err != nil {
		respondServiceError(ctx, err, 50052, "failed to load points")
		return
	}

	utils.Created(ctx, gin.H{
		"token":        token,
		"expires_at":   expiresAt,
		"participant":  participant,
		"total_points": total,
	})
}

// CloseSession revokes the bearer token of the current request until it expires.
func (s *SessionController) CloseSession(ctx *gin.Context) {
	claims, ok := middleware.SessionFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40150, "session required")
		return
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.RevokeSessionToken(ctx.Request.Context(), ctx.GetString(middleware.ContextSessionTokenKey), expiresAt)
	utils.Success(ctx, gin.H{"success": true})
}
