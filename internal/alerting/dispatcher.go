package alerting

import (
	"context"
	"sync"
	"time"

	"alerting-service/internal/logging"
	"alerting-service/internal/models"
)

// Sender delivers a formatted alert payload to one channel's destination.
type Sender interface {
	Send(ctx context.Context, payload models.AlertPayload) error
}

// Dispatcher fans a triggered alert out to every enabled channel whose
// severity set matches. Channel sends run concurrently; a failure or timeout
// in one channel is logged and never affects the others. Delivery is strictly
// best-effort — no retry queue, no dead-lettering.
type Dispatcher struct {
	channels *ChannelRegistry
	timeout  time.Duration
	log      *logging.Logger

	mu      sync.RWMutex
	senders map[string]Sender
}

// NewDispatcher creates a dispatcher with a per-channel send timeout.
func NewDispatcher(channels *ChannelRegistry, timeout time.Duration, log *logging.Logger) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		timeout:  timeout,
		log:      log,
		senders:  make(map[string]Sender),
	}
}

// Register attaches a sender implementation to a channel id.
func (d *Dispatcher) Register(channelID string, s Sender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.senders[channelID] = s
}

// Dispatch delivers inst to all matching channels and waits for every send
// to settle before returning.
func (d *Dispatcher) Dispatch(inst models.AlertInstance) {
	payload := models.NewAlertPayload(inst)

	var wg sync.WaitGroup
	for _, ch := range d.channels.ListChannels() {
		if !ch.Enabled || !ch.Allows(payload.Severity) {
			continue
		}
		d.mu.RLock()
		sender := d.senders[ch.ID]
		d.mu.RUnlock()
		if sender == nil {
			d.log.Warnf("Channel %s enabled but has no sender registered", ch.ID)
			continue
		}

		wg.Add(1)
		go func(id string, s Sender) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()
			if err := s.Send(ctx, payload); err != nil {
				d.log.Errorf("Channel %s delivery failed for alert %s: %v", id, payload.Type, err)
				return
			}
			d.log.Debugf("Channel %s delivered alert %s", id, payload.Type)
		}(ch.ID, sender)
	}
	wg.Wait()
}
