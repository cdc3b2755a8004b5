package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerting-service/internal/alerting"
	"alerting-service/internal/config"
	"alerting-service/internal/logging"
	"alerting-service/internal/models"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.Discard()
	rules := alerting.NewRuleRegistry(alerting.DefaultRules())
	channels := alerting.NewChannelRegistry(map[string]models.NotificationChannel{
		models.ChannelConsole: {Enabled: true, Severities: []models.Severity{models.SeverityInfo, models.SeverityWarning, models.SeverityCritical}},
	})
	dispatcher := alerting.NewDispatcher(channels, time.Second, logger)
	engine := alerting.NewEngine(rules, channels, alerting.NewClassifier(alerting.DefaultThresholds()), dispatcher, logger)

	var cfg config.Config
	cfg.API.BasePath = "/api/v0"
	return NewRouter(engine, nil, logger, cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPI_EvaluateResolveFlow(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v0/alerts/evaluate",
		`{"type":"rate_limit_critical","value":5,"context":{"resource":"core"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"triggered":true}`, w.Body.String())

	// Second evaluation inside the cooldown
	w = doJSON(t, r, http.MethodPost, "/api/v0/alerts/evaluate",
		`{"type":"rate_limit_critical","value":3,"context":{"resource":"core"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"triggered":false}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v0/alerts/active", "")
	require.Equal(t, http.StatusOK, w.Code)
	var active []models.AlertInstance
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &active))
	require.Len(t, active, 1)
	assert.Equal(t, "rate_limit_critical", active[0].Type)

	w = doJSON(t, r, http.MethodPost, "/api/v0/alerts/resolve",
		`{"type":"rate_limit_critical","context":{"resource":"core"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v0/alerts/resolve",
		`{"type":"rate_limit_critical","context":{"resource":"core"}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_ObservationClassifies(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v0/observations",
		`{"metric":"response_time","value":6000,"context":{"endpoint":"/api/x"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"triggered":["response_time_critical"]}`, w.Body.String())

	// Unknown metrics are soft no-ops, not errors
	w = doJSON(t, r, http.MethodPost, "/api/v0/observations",
		`{"metric":"disk_usage","value":9999}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"triggered":[]}`, w.Body.String())
}

func TestAPI_UpdateRule(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/v0/rules/response_time_warning",
		`{"threshold":2500,"enabled":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rule models.AlertRule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rule))
	assert.Equal(t, 2500.0, rule.Threshold)
	assert.False(t, rule.Enabled)
	// Merge semantics: untouched fields survive
	assert.Equal(t, models.ComparisonGreaterThan, rule.Comparison)

	w = doJSON(t, r, http.MethodPut, "/api/v0/rules/no_such_rule", `{"threshold":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_ToggleChannel(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/v0/channels/console", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	var ch models.NotificationChannel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ch))
	assert.False(t, ch.Enabled)

	w = doJSON(t, r, http.MethodPut, "/api/v0/channels/pager", `{"enabled":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_ConfigSnapshot(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v0/config", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap models.ConfigSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Len(t, snap.Rules, len(alerting.DefaultRules()))
	assert.Contains(t, snap.Channels, models.ChannelConsole)
	assert.Equal(t, 0, snap.ActiveCount)
}

func TestAPI_Health(t *testing.T) {
	r := testRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
