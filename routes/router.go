package routes

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cppla/betterthanyou/config"
	"github.com/cppla/betterthanyou/controllers"
	"github.com/cppla/betterthanyou/middleware"
	"github.com/cppla/betterthanyou/services"
	"github.com/cppla/betterthanyou/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) (*gin.Engine, error) {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	svc, err := services.New(db,
		services.WithInviteCodeLength(cfg.InviteCodeLength),
		services.WithMaxGoalPoints(cfg.MaxGoalPoints),
	)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	// Access log and panic recovery go to their own rolling file
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		utils.Sugar.Warnf("gin file logger unavailable, using default recovery: %v", err)
		r.Use(gin.Recovery())
	}
	r.Use(middleware.Metrics())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.ParticipantKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		// Wildcard origins cannot be combined with credentials
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers{
		challenges:   controllers.NewChallengeController(svc),
		participants: controllers.NewParticipantController(svc),
		goals:        controllers.NewGoalController(svc),
		logs:         controllers.NewLogController(svc),
		sessions:     controllers.NewSessionController(svc),
		writeLimit:   middleware.RateLimitMiddleware(cfg.RateLimitPerMinute),
	}

	// Same API at the root and under /api, where existing clients call it
	h.register(r.Group(""))
	h.register(r.Group("/api"))

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r, nil
}

type handlers struct {
	challenges   *controllers.ChallengeController
	participants *controllers.ParticipantController
	goals        *controllers.GoalController
	logs         *controllers.LogController
	sessions     *controllers.SessionController
	writeLimit   gin.HandlerFunc
}

func (h handlers) register(g *gin.RouterGroup) {
	g.Use(middleware.Credentials())

	g.GET("/challenge/:inviteCode", h.challenges.GetChallenge)
	g.GET("/challenge/:inviteCode/scores", h.challenges.GetScores)
	g.GET("/challenge/:inviteCode/day/:day", h.challenges.GetDay)
	g.GET("/my-challenges", h.challenges.MyChallenges)

	writes := g.Group("")
	writes.Use(h.writeLimit)
	writes.POST("/challenges", h.challenges.CreateChallenge)
	writes.POST("/participants", h.participants.Join)
	writes.POST("/daily-goals", h.goals.CreateGoal)
	writes.POST("/daily-goals/points", h.goals.AdjustPoints)
	writes.POST("/daily-logs", h.logs.ToggleAchievement)
	writes.POST("/sessions", h.sessions.OpenSession)
	writes.DELETE("/sessions", middleware.SessionRequired(), h.sessions.CloseSession)
}
