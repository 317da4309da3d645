package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/betterthanyou/utils"
)

const (
	// ParticipantKeyHeader carries one participant key or a comma-separated list of them.
	ParticipantKeyHeader = "participant-key"
	// ContextSessionKey stores verified *utils.SessionClaims in the gin context.
	ContextSessionKey = "session_claims"
	// ContextSessionTokenKey stores the raw bearer token of a verified session.
	ContextSessionTokenKey = "session_token"
	// ContextSessionRejectedKey stores why a presented bearer token was not accepted.
	ContextSessionRejectedKey = "session_rejected"
	// ContextParticipantKeysKey stores the keys found in the participant-key header.
	ContextParticipantKeysKey = "participant_keys"
)

// Credentials extracts participant credentials from the request without touching storage.
// A bearer token that is malformed, invalid or revoked is recorded as rejected rather than
// failing the request; only handlers that end up relying on the session answer 401.
func Credentials() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if authHeader := ctx.GetHeader("Authorization"); authHeader != "" {
			if reason := verifySession(ctx, authHeader); reason != "" {
				ctx.Set(ContextSessionRejectedKey, reason)
			}
		}

		if raw := ctx.GetHeader(ParticipantKeyHeader); raw != "" {
			var keys []string
			for _, k := range strings.Split(raw, ",") {
				if k = strings.TrimSpace(k); k != "" {
					keys = append(keys, k)
				}
			}
			if len(keys) > 0 {
				ctx.Set(ContextParticipantKeysKey, keys)
			}
		}

		ctx.Next()
	}
}

// verifySession stores the claims of a valid bearer token and returns the rejection
// reason otherwise.
func verifySession(ctx *gin.Context, authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "invalid authorization header format"
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "empty bearer token"
	}

	if utils.IsSessionRevoked(ctx.Request.Context(), tokenString) {
		return "session revoked"
	}

	claims, err := utils.ParseSessionToken(tokenString)
	if err != nil {
		return "invalid session token"
	}
	ctx.Set(ContextSessionKey, claims)
	ctx.Set(ContextSessionTokenKey, tokenString)
	return ""
}

// SessionRequired rejects requests that did not present a verified session token.
// It must run after Credentials.
func SessionRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if reason, rejected := SessionRejected(ctx); rejected {
			utils.Error(ctx, http.StatusUnauthorized, 40102, reason)
			ctx.Abort()
			return
		}
		if _, ok := SessionFrom(ctx); !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// SessionFrom returns the verified session claims of the request, if any.
func SessionFrom(ctx *gin.Context) (*utils.SessionClaims, bool) {
	v, ok := ctx.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.SessionClaims)
	return claims, ok
}

// SessionRejected reports whether the request carried a bearer token that was not accepted.
func SessionRejected(ctx *gin.Context) (string, bool) {
	reason := ctx.GetString(ContextSessionRejectedKey)
	return reason, reason != ""
}

// ParticipantKeysFrom returns the keys sent in the participant-key header.
func ParticipantKeysFrom(ctx *gin.Context) []string {
	v, ok := ctx.Get(ContextParticipantKeysKey)
	if !ok {
		return nil
	}
	keys, _ := v.([]string)
	return keys
}
