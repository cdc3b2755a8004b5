package alerting

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alerting-service/internal/logging"
	"alerting-service/internal/models"
)

// Notifier receives triggered alert instances. Implemented by Dispatcher.
type Notifier interface {
	Dispatch(inst models.AlertInstance)
}

// Engine evaluates alert conditions, deduplicates triggers per alert key via
// cooldown windows, and keeps the set of currently active alerts. All state
// is in-memory and lives for the process lifetime.
type Engine struct {
	rules      *RuleRegistry
	channels   *ChannelRegistry
	classifier *Classifier
	notifier   Notifier
	log        *logging.Logger

	// active maps alert key → most recent triggered instance. The mutex
	// guards the cooldown check-and-set so concurrent evaluations of the
	// same key cannot both trigger.
	mu     sync.Mutex
	active map[string]*models.AlertInstance

	now func() time.Time
}

// NewEngine wires an evaluation engine. notifier may be nil, in which case
// triggers are recorded but not delivered anywhere.
func NewEngine(rules *RuleRegistry, channels *ChannelRegistry, classifier *Classifier, notifier Notifier, log *logging.Logger) *Engine {
	return &Engine{
		rules:      rules,
		channels:   channels,
		classifier: classifier,
		notifier:   notifier,
		log:        log,
		active:     make(map[string]*models.AlertInstance),
		now:        time.Now,
	}
}

// Rules exposes the rule registry for API handlers.
func (e *Engine) Rules() *RuleRegistry { return e.rules }

// Channels exposes the channel registry for API handlers.
func (e *Engine) Channels() *ChannelRegistry { return e.channels }

// Observe classifies a raw metric observation and evaluates each resulting
// alert type. Returns the alert types that triggered.
func (e *Engine) Observe(metric string, value float64, context map[string]string) []string {
	var triggered []string
	for _, cls := range e.classifier.Classify(metric, value) {
		if e.Evaluate(cls.AlertType, value, context) {
			triggered = append(triggered, cls.AlertType)
		}
	}
	return triggered
}

// Evaluate checks value against the rule for alertType and, when the rule
// condition holds outside the cooldown window, records a new active alert
// and hands it to the notifier. Returns whether a trigger happened.
//
// Failures are reported as a false return, never as an error: an unknown or
// disabled rule is a no-op, and an unrecognized comparison operator logs a
// warning and aborts the evaluation.
func (e *Engine) Evaluate(alertType string, value float64, context map[string]string) bool {
	rule, ok := e.rules.GetRule(alertType)
	if !ok {
		e.log.Debugf("No rule for alert type %q, skipping", alertType)
		return false
	}
	if !rule.Enabled {
		return false
	}

	key := alertKey(alertType, context)
	now := e.now()

	e.mu.Lock()
	if existing, ok := e.active[key]; ok && now.Sub(existing.LastTriggered) < rule.Cooldown {
		e.mu.Unlock()
		return false
	}

	match, ok := compare(rule.Comparison, value, rule.Threshold)
	if !ok {
		e.mu.Unlock()
		e.log.Warnf("Rule %s has unsupported comparison %q, skipping evaluation", alertType, rule.Comparison)
		return false
	}
	if !match {
		// A failed condition never creates or refreshes a store entry.
		e.mu.Unlock()
		return false
	}

	inst := &models.AlertInstance{
		ID:            uuid.NewString(),
		Type:          alertType,
		Value:         value,
		Context:       copyContext(context),
		Rule:          rule,
		Timestamp:     now,
		LastTriggered: now,
	}
	e.active[key] = inst
	e.mu.Unlock()

	e.log.Infof("Alert triggered: type=%s severity=%s value=%.2f threshold=%.2f", alertType, rule.Severity, value, rule.Threshold)
	if e.notifier != nil {
		e.notifier.Dispatch(*inst)
	}
	return true
}

// Resolve removes the active alert for (alertType, context). Returns whether
// an entry was removed. Cooldown state of other keys is untouched.
func (e *Engine) Resolve(alertType string, context map[string]string) bool {
	key := alertKey(alertType, context)
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.active[key]; !ok {
		return false
	}
	delete(e.active, key)
	return true
}

// ListActive returns copies of all currently active alert instances.
// Iteration order is not meaningful.
func (e *Engine) ListActive() []models.AlertInstance {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.AlertInstance, 0, len(e.active))
	for _, inst := range e.active {
		out = append(out, *inst)
	}
	return out
}

// ConfigSnapshot returns the current rules, channels, and active alert count.
func (e *Engine) ConfigSnapshot() models.ConfigSnapshot {
	e.mu.Lock()
	activeCount := len(e.active)
	e.mu.Unlock()
	return models.ConfigSnapshot{
		Rules:       e.rules.ListRules(),
		Channels:    e.channels.ListChannels(),
		ActiveCount: activeCount,
	}
}

// alertKey derives the deterministic identity of an alert occurrence from
// its type and context tags. Context keys are sorted so equal tag sets always
// collapse into the same store slot.
func alertKey(alertType string, context map[string]string) string {
	if len(context) == 0 {
		return alertType
	}
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(alertType)
	for _, k := range keys {
		b.WriteString("|")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(context[k])
	}
	return b.String()
}

// compare applies a comparison operator. The second return is false for an
// unrecognized operator.
func compare(op models.Comparison, value, threshold float64) (match, ok bool) {
	switch op {
	case models.ComparisonGreaterThan:
		return value > threshold, true
	case models.ComparisonLessThan:
		return value < threshold, true
	case models.ComparisonEquals:
		return value == threshold, true
	case models.ComparisonNotEquals:
		return value != threshold, true
	default:
		return false, false
	}
}

func copyContext(context map[string]string) map[string]string {
	if len(context) == 0 {
		return nil
	}
	out := make(map[string]string, len(context))
	for k, v := range context {
		out[k] = v
	}
	return out
}
