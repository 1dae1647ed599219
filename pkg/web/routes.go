package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TambayanDev/TambayanBot/pkg/config"
	"github.com/TambayanDev/TambayanBot/pkg/models"
)

// BotStatus reports the gateway state.
type BotStatus interface {
	IsReady() bool
	Uptime() time.Duration
}

// DatabaseStatus reports the journal database state.
type DatabaseStatus interface {
	Status(ctx context.Context) string
	QueueLength() int
}

// ModLogReader reads the moderation journal.
type ModLogReader interface {
	Recent(ctx context.Context, targetID string, limit int64) ([]models.ModerationEvent, error)
}

// AFKLister lists members currently away.
type AFKLister interface {
	AFKUsers() []models.AFKRecord
}

// APIDeps are the sources behind /api. Nil fields are reported as absent.
type APIDeps struct {
	Bot      BotStatus
	Database DatabaseStatus
	ModLogs  ModLogReader
	AFK      AFKLister
	Sinks    []string
}

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server, deps APIDeps) {
	api := s.Group("/api")
	{
		api.GET("/health", healthHandler)
		api.GET("/status", statusHandler(deps))
		api.GET("/modlogs", modlogsHandler(deps.ModLogs))
	}
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Tambayan Bot is running",
	})
}

// statusHandler returns the bot and database status
func statusHandler(deps APIDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		bot := gin.H{"isOnline": false, "version": config.Version}
		if deps.Bot != nil {
			bot["isOnline"] = deps.Bot.IsReady()
			bot["uptimeSeconds"] = int64(deps.Bot.Uptime().Seconds())
		}

		db := gin.H{"status": "disabled"}
		if deps.Database != nil {
			db["status"] = deps.Database.Status(c.Request.Context())
			db["queued"] = deps.Database.QueueLength()
		}

		afk := 0
		if deps.AFK != nil {
			afk = len(deps.AFK.AFKUsers())
		}

		sinks := deps.Sinks
		if sinks == nil {
			sinks = []string{}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"bot":      bot,
			"database": db,
			"journal":  gin.H{"sinks": sinks},
			"afkCount": afk,
		})
	}
}

// modlogsHandler lists recent journal entries, newest first.
func modlogsHandler(reader ModLogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reader == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Unavailable",
				"message": "The moderation journal is not stored.",
			})
			return
		}

		limit := int64(25)
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 1 || n > 100 {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "Bad Request",
					"message": "limit must be between 1 and 100.",
				})
				return
			}
			limit = n
		}

		events, err := reader.Recent(c.Request.Context(), c.Query("user"), limit)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Unavailable",
				"message": err.Error(),
			})
			return
		}
		if events == nil {
			events = []models.ModerationEvent{}
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}
