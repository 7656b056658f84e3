package http

import (
	"context"
	"net/http"

	"github.com/dkeye/ExamRooms/internal/adapters/feed"
	"github.com/dkeye/ExamRooms/internal/app/orch"
	"github.com/dkeye/ExamRooms/internal/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		key := "ct:" + token
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
			// A fresh token is not proof of identity until the client sends it back.
			key = "ip:" + c.ClientIP()
		}
		c.Set("client_token", token)
		c.Set("client_key", key)
		c.Next()
	}
}

// RateLimitMiddleware rejects clients that exceed the configured number of
// requests within the sliding window.
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.GetString("client_key")) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"code": "rate_limited", "error": "too many requests"})
			return
		}
		c.Next()
	}
}

// SetupRouter wires the REST API, the roster feed and the static UI.
func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, hub *feed.Hub) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ExamRoomsSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	h := &Handlers{Orch: o}
	limited := RateLimitMiddleware(NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Interval))

	api := r.Group("/api")

	api.GET("/rooms", h.ListRooms)
	api.POST("/rooms", limited, h.AddRoom)
	api.DELETE("/rooms", limited, h.ClearRooms)
	api.DELETE("/rooms/:id", limited, h.RemoveRoom)

	api.POST("/allocations", limited, h.Allocate)
	api.GET("/allocations/last", h.LastAllocation)

	api.GET("/ws/rooms", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("client", c.GetString("client_token")).Msg("ws roster endpoint hit")
		hub.Handle(ctx, c)
	})

	return r
}
