package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alerting-service/internal/alerting"
	"alerting-service/internal/logging"
	"alerting-service/internal/models"
)

// Handler exposes the alerting engine over HTTP.
type Handler struct {
	engine *alerting.Engine
	logger *logging.Logger
}

// NewHandler creates an API handler.
func NewHandler(engine *alerting.Engine, logger *logging.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// PostObservation classifies a raw metric observation and evaluates the
// resulting alert types.
func (h *Handler) PostObservation(c *gin.Context) {
	var obs models.Observation
	if err := c.ShouldBindJSON(&obs); err != nil {
		h.logger.Errorf("Invalid observation request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	triggered := h.engine.Observe(obs.Metric, obs.Value, obs.Context)
	if triggered == nil {
		triggered = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"triggered": triggered})
}

type evaluateRequest struct {
	Type    string            `json:"type" binding:"required"`
	Value   float64           `json:"value"`
	Context map[string]string `json:"context,omitempty"`
}

// EvaluateAlert runs a single rule evaluation directly.
func (h *Handler) EvaluateAlert(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid evaluate request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	triggered := h.engine.Evaluate(req.Type, req.Value, req.Context)
	c.JSON(http.StatusOK, gin.H{"triggered": triggered})
}

type resolveRequest struct {
	Type    string            `json:"type" binding:"required"`
	Context map[string]string `json:"context,omitempty"`
}

// ResolveAlert removes an active alert by type and context.
func (h *Handler) ResolveAlert(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid resolve request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolved := h.engine.Resolve(req.Type, req.Context)
	if !resolved {
		c.JSON(http.StatusNotFound, gin.H{"resolved": false, "error": "no active alert for that type and context"})
		return
	}
	h.logger.Infof("Alert resolved: type=%s", req.Type)
	c.JSON(http.StatusOK, gin.H{"resolved": true})
}

// GetActiveAlerts lists the currently active alert instances.
func (h *Handler) GetActiveAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.ListActive())
}

// GetRules returns the full rule catalog.
func (h *Handler) GetRules(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Rules().ListRules())
}

// UpdateRule merges a partial update into an existing rule.
func (h *Handler) UpdateRule(c *gin.Context) {
	alertType := c.Param("type")

	var upd models.RuleUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.logger.Errorf("Invalid rule update: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.engine.Rules().UpdateRule(alertType, upd) {
		c.JSON(http.StatusNotFound, gin.H{"updated": false, "error": "rule not found"})
		return
	}
	rule, _ := h.engine.Rules().GetRule(alertType)
	h.logger.Infof("Updated rule: %s", alertType)
	c.JSON(http.StatusOK, rule)
}

// GetChannels returns all notification channel definitions.
func (h *Handler) GetChannels(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Channels().ListChannels())
}

type toggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ToggleChannel explicitly enables or disables a channel.
func (h *Handler) ToggleChannel(c *gin.Context) {
	id := c.Param("id")

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid channel toggle: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.engine.Channels().SetEnabled(id, *req.Enabled) {
		c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
		return
	}
	ch, _ := h.engine.Channels().GetChannel(id)
	h.logger.Infof("Channel %s enabled=%v", id, *req.Enabled)
	c.JSON(http.StatusOK, ch)
}

// GetConfig returns the engine configuration snapshot.
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.ConfigSnapshot())
}
