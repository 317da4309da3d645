package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/betterthanyou/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Set(config.AppConfig{SessionSecret: "test-session-secret"})
	os.Exit(m.Run())
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateSessionToken("p1", "c1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if time.Until(expiresAt) <= 59*time.Minute {
		t.Errorf("expiresAt = %v, want about an hour from now", expiresAt)
	}

	claims, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.ParticipantID != "p1" || claims.ChallengeID != "c1" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ParseSessionToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}

	expired, _, _ := GenerateSessionToken("p1", "c1", -time.Minute)
	if _, err := ParseSessionToken(expired); err == nil {
		t.Error("expired token accepted")
	}
}

func TestRevokeSessionTokenInMemory(t *testing.T) {
	ctx := context.Background()
	if IsSessionRevoked(ctx, "tok") {
		t.Fatal("fresh token reported revoked")
	}
	RevokeSessionToken(ctx, "tok", time.Now().Add(time.Hour))
	if !IsSessionRevoked(ctx, "tok") {
		t.Fatal("revoked token not reported")
	}

	RevokeSessionToken(ctx, "old", time.Now().Add(-time.Second))
	if IsSessionRevoked(ctx, "old") {
		t.Error("already expired token should not be stored")
	}
}

func TestCacheDisabled(t *testing.T) {
	ctx := context.Background()
	CacheSetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute)
	var out map[string]int
	if CacheGetJSON(ctx, "k", &out) {
		t.Error("cache hit with Redis disabled")
	}
	if n, err := CacheIncr(ctx, "gen"); n != 0 || err != nil {
		t.Errorf("CacheIncr = %d, %v with Redis disabled", n, err)
	}
	if n := CacheGetInt64(ctx, "gen"); n != 0 {
		t.Errorf("CacheGetInt64 = %d with Redis disabled", n)
	}
}

func TestSanitizeText(t *testing.T) {
	tests := map[string]string{
		"  Run 5k ":                                 "Run 5k",
		"<b>Bold</b> move":                          "Bold move",
		"<script>alert(1)</script>Fitness":          "Fitness",
		"Tom & Jerry":                               "Tom & Jerry",
		"5 < 10":                                    "5 < 10",
		"&lt;img src=x onerror=alert(1)&gt;Fitness": "Fitness",
		"&amp;lt;b&amp;gt;Double&amp;lt;/b&amp;gt;": "Double",
	}
	for in, want := range tests {
		if got := SanitizeText(in); got != want {
			t.Errorf("SanitizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResponses(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, gin.H{"id": "x"})
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, http.StatusNotFound, 40400, "missing")
	var body JSONResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusNotFound || body.Code != 40400 || body.Message != "missing" || body.Data != nil {
		t.Errorf("error response = %d %+v", w.Code, body)
	}
}

func TestRecoveryWithZap(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryWithZap(Logger, true))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
