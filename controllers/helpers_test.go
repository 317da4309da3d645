package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cppla/betterthanyou/services"
	"github.com/cppla/betterthanyou/testutil"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    int
		wantMessage string
	}{
		{"invalid input", services.ErrInvalidDate, http.StatusBadRequest, 40000, "date must be YYYY-MM-DD"},
		{"unauthorized", services.ErrParticipantNotFound, http.StatusUnauthorized, 40100, "participant not found"},
		{"forbidden", services.ErrOwnGoalPoints, http.StatusForbidden, 40300, "cannot modify points for your own goal"},
		{"not found", services.ErrChallengeNotFound, http.StatusNotFound, 40400, "challenge not found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", services.ErrGoalNotFound), http.StatusNotFound, 40400, "lookup: not found: goal not found"},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, 59999, "something failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondServiceError(ctx, tt.err, 59999, "something failed")

			testutil.AssertStatus(t, w, tt.wantStatus)
			env := testutil.DecodeData(t, w, nil)
			if env.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", env.Code, tt.wantCode)
			}
			if env.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", env.Message, tt.wantMessage)
			}
		})
	}
}

func TestSnapshotCacheKey(t *testing.T) {
	if got := snapshotCacheKey(" ab12cd ", 0); got != "cache:challenge:snapshot:AB12CD:0" {
		t.Errorf("snapshotCacheKey = %q", got)
	}
	if got := snapshotGenerationKey("ab12cd"); got != "cache:challenge:gen:AB12CD" {
		t.Errorf("snapshotGenerationKey = %q", got)
	}
	// A snapshot stored before a write must not be reachable after the generation moves on.
	if snapshotCacheKey("AB12CD", 3) == snapshotCacheKey("AB12CD", 4) {
		t.Error("cache key does not change with the generation")
	}
}
