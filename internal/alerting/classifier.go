package alerting

import "alerting-service/internal/models"

// Thresholds holds the warning and critical cut-offs for one metric.
type Thresholds struct {
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

// Classification names the alert type synthesized for a metric observation.
type Classification struct {
	AlertType string
	Severity  models.Severity
}

// Classifier maps raw metric observations to alert types via a static
// per-metric threshold table.
type Classifier struct {
	table map[string]Thresholds
}

// NewClassifier builds a classifier from a metric threshold table.
func NewClassifier(table map[string]Thresholds) *Classifier {
	t := make(map[string]Thresholds, len(table))
	for metric, th := range table {
		t[metric] = th
	}
	return &Classifier{table: t}
}

// Classify returns at most one classification for a metric value: critical if
// the critical threshold is exceeded, else warning if the warning threshold
// is, else nothing. A single observation never produces both. Metrics absent
// from the table are silently ignored so instrumentation hooks may reference
// metrics the classifier does not know yet.
func (c *Classifier) Classify(metric string, value float64) []Classification {
	th, ok := c.table[metric]
	if !ok {
		return nil
	}
	if value > th.Critical {
		return []Classification{{AlertType: metric + "_critical", Severity: models.SeverityCritical}}
	}
	if value > th.Warning {
		return []Classification{{AlertType: metric + "_warning", Severity: models.SeverityWarning}}
	}
	return nil
}
