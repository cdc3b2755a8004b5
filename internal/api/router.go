package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alerting-service/internal/alerting"
	"alerting-service/internal/config"
	"alerting-service/internal/logging"
	"alerting-service/internal/ws"
)

// NewRouter builds the HTTP API around the alerting engine.
func NewRouter(engine *alerting.Engine, hub *ws.Hub, logger *logging.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	h := NewHandler(engine, logger)
	api := r.Group(cfg.API.BasePath)
	{
		// Metric ingestion
		api.POST("/observations", h.PostObservation)

		// Alerts
		api.POST("/alerts/evaluate", h.EvaluateAlert)
		api.POST("/alerts/resolve", h.ResolveAlert)
		api.GET("/alerts/active", h.GetActiveAlerts)

		// Rules
		api.GET("/rules", h.GetRules)
		api.PUT("/rules/:type", h.UpdateRule)

		// Channels
		api.GET("/channels", h.GetChannels)
		api.PUT("/channels/:id", h.ToggleChannel)

		// Introspection
		api.GET("/config", h.GetConfig)
	}

	if hub != nil {
		r.GET("/ws/alerts", func(c *gin.Context) {
			hub.Handle(c.Writer, c.Request)
		})
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
