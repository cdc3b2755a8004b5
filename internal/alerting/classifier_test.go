package alerting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alerting-service/internal/models"
)

func testClassifier() *Classifier {
	return NewClassifier(map[string]Thresholds{
		"response_time": {Warning: 2000, Critical: 5000},
	})
}

func TestClassifier_CriticalWinsNeverBoth(t *testing.T) {
	cls := testClassifier().Classify("response_time", 6000)

	require.Len(t, cls, 1, "a single observation must never fire warning and critical together")
	assert.Equal(t, "response_time_critical", cls[0].AlertType)
	assert.Equal(t, models.SeverityCritical, cls[0].Severity)
}

func TestClassifier_WarningBand(t *testing.T) {
	cls := testClassifier().Classify("response_time", 3000)

	require.Len(t, cls, 1)
	assert.Equal(t, "response_time_warning", cls[0].AlertType)
	assert.Equal(t, models.SeverityWarning, cls[0].Severity)
}

func TestClassifier_BelowThresholdsEmitsNothing(t *testing.T) {
	assert.Empty(t, testClassifier().Classify("response_time", 500))
}

func TestClassifier_ThresholdIsExclusive(t *testing.T) {
	// Exactly at a threshold does not exceed it
	assert.Empty(t, testClassifier().Classify("response_time", 2000))

	cls := testClassifier().Classify("response_time", 5000)
	require.Len(t, cls, 1)
	assert.Equal(t, "response_time_warning", cls[0].AlertType)
}

func TestClassifier_UnknownMetricSilentlyIgnored(t *testing.T) {
	assert.Empty(t, testClassifier().Classify("queue_depth", 1e9))
}
