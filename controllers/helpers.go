package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/betterthanyou/middleware"
	"github.com/cppla/betterthanyou/models"
	"github.com/cppla/betterthanyou/services"
	"github.com/cppla/betterthanyou/utils"
)

const (
	snapshotCachePrefix      = "cache:challenge:snapshot:"
	snapshotGenerationPrefix = "cache:challenge:gen:"
)

// Snapshots are cached per generation. Writes bump the generation after they commit, so a
// snapshot loaded before a write can only be stored under a generation nobody reads any more.
func snapshotCacheKey(inviteCode string, generation int64) string {
	return snapshotCachePrefix + services.NormalizeInviteCode(inviteCode) + ":" + strconv.FormatInt(generation, 10)
}

func snapshotGenerationKey(inviteCode string) string {
	return snapshotGenerationPrefix + services.NormalizeInviteCode(inviteCode)
}

// respondServiceError maps a service error to a status and application code.
// Unclassified errors are logged and reported with internalCode and internalMsg.
func respondServiceError(ctx *gin.Context, err error, internalCode int, internalMsg string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.Error(ctx, http.StatusBadRequest, 40000, detail(err, services.ErrInvalidInput))
	case errors.Is(err, services.ErrUnauthorized):
		utils.Error(ctx, http.StatusUnauthorized, 40100, detail(err, services.ErrUnauthorized))
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40300, detail(err, services.ErrForbidden))
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, detail(err, services.ErrNotFound))
	default:
		utils.Logger.Error(internalMsg,
			zap.Error(err),
			zap.String("path", ctx.FullPath()),
			zap.String(utils.ContextRequestIDKey, ctx.GetString(utils.ContextRequestIDKey)),
		)
		utils.Error(ctx, http.StatusInternalServerError, internalCode, internalMsg)
	}
}

// detail strips the "kind: " prefix so clients see only the specific message.
func detail(err, kind error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, kind.Error()+": "); trimmed != "" {
		return trimmed
	}
	return msg
}

// resolveParticipant authenticates the caller. Credentials are tried in order: the key in
// the request body, a bearer session, then the first key of the participant-key header.
func resolveParticipant(ctx *gin.Context, svc *services.Service, bodyKey string) (models.Participant, error) {
	reqCtx := ctx.Request.Context()
	if key := strings.TrimSpace(bodyKey); key != "" {
		return svc.Authenticate(reqCtx, key)
	}
	if claims, ok := middleware.SessionFrom(ctx); ok {
		return svc.ParticipantByID(reqCtx, claims.ParticipantID)
	}
	if _, rejected := middleware.SessionRejected(ctx); rejected {
		return models.Participant{}, services.ErrSessionInvalid
	}
	if keys := middleware.ParticipantKeysFrom(ctx); len(keys) > 0 {
		return svc.Authenticate(reqCtx, keys[0])
	}
	return models.Participant{}, services.ErrParticipantNotFound
}

// invalidateSnapshot moves the challenge a write touched to a new cache generation.
func invalidateSnapshot(ctx context.Context, svc *services.Service, challengeID string) {
	if utils.GetRedis() == nil {
		return
	}
	challenge, err := svc.ChallengeByID(ctx, challengeID)
	if err != nil {
		utils.Logger.Warn("snapshot invalidation skipped", zap.String("challenge_id", challengeID), zap.Error(err))
		return
	}
	if _, err := utils.CacheIncr(ctx, snapshotGenerationKey(challenge.InviteCode)); err != nil {
		utils.Logger.Warn("snapshot invalidation failed", zap.String("challenge_id", challengeID), zap.Error(err))
	}
}
