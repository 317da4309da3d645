package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/betterthanyou/config"
	"github.com/cppla/betterthanyou/middleware"
	"github.com/cppla/betterthanyou/services"
	"github.com/cppla/betterthanyou/utils"
)

// ChallengeController serves challenge creation and the read-only challenge views.
type ChallengeController struct {
	svc *services.Service
}

// NewChallengeController creates a new ChallengeController instance.
func NewChallengeController(svc *services.Service) *ChallengeController {
	return &ChallengeController{svc: svc}
}

// CreateChallenge starts a new challenge and returns it with its invite code.
func (c *ChallengeController) CreateChallenge(ctx *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "title is required")
		return
	}

	challenge, err := c.svc.CreateChallenge(ctx.Request.Context(), utils.SanitizeText(req.Title))
	if err != nil {
		respondServiceError(ctx, err, 50010, "failed to create challenge")
		return
	}

	utils.Created(ctx, gin.H{"challenge": challenge})
}

// GetChallenge returns the full snapshot of the challenge behind an invite code.
// Snapshots are cached in Redis when enabled.
func (c *ChallengeController) GetChallenge(ctx *gin.Context) {
	code := ctx.Param("inviteCode")
	// Read the generation before loading so a concurrent write cannot be cached over.
	generation := utils.CacheGetInt64(ctx.Request.Context(), snapshotGenerationKey(code))
	cacheKey := snapshotCacheKey(code, generation)

	var snap services.Snapshot
	if utils.CacheGetJSON(ctx.Request.Context(), cacheKey, &snap) {
		utils.Success(ctx, snap)
		return
	}

	snap, err := c.svc.Snapshot(ctx.Request.Context(), code)
	if err != nil {
		respondServiceError(ctx, err, 50011, "failed to load challenge")
		return
	}

	ttl := time.Duration(config.Get().CacheTTLSeconds) * time.Second
	utils.CacheSetJSON(ctx.Request.Context(), cacheKey, snap, ttl)
	utils.Success(ctx, snap)
}

// GetScores returns per-participant totals and the daily point series.
func (c *ChallengeController) GetScores(ctx *gin.Context) {
	board, err := c.svc.Scores(ctx.Request.Context(), ctx.Param("inviteCode"))
	if err != nil {
		respondServiceError(ctx, err, 50012, "failed to compute scores")
		return
	}
	utils.Success(ctx, board)
}

// GetDay lists every goal of the challenge with its log for one date.
func (c *ChallengeController) GetDay(ctx *gin.Context) {
	view, err := c.svc.Day(ctx.Request.Context(), ctx.Param("inviteCode"), ctx.Param("day"))
	if err != nil {
		respondServiceError(ctx, err, 50013, "failed to load day")
		return
	}
	utils.Success(ctx, view)
}

// MyChallenges lists the challenges joined with the keys in the participant-key header.
func (c *ChallengeController) MyChallenges(ctx *gin.Context) {
	keys := middleware.ParticipantKeysFrom(ctx)
	if len(keys) == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "participant key required")
		return
	}

	challenges, err := c.svc.ChallengesForKeys(ctx.Request.Context(), keys)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			utils.Error(ctx, http.StatusNotFound, 40410, "participant not found")
			return
		}
		respondServiceError(ctx, err, 50014, "failed to load challenges")
		return
	}

	utils.Success(ctx, gin.H{"challenges": challenges})
}
