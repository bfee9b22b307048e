// Package channel manages the messaging frontends attached to the engine.
package channel

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/soyeahso/parley/internal/domain"
	"github.com/soyeahso/parley/internal/logging"
)

// StatusReporter is implemented by channels that track their own connection
// state. Channels without it are reported from the registry's start/stop
// bookkeeping only.
type StatusReporter interface {
	Status() domain.ChannelStatus
}

// Registry holds the configured channels by ID.
type Registry struct {
	mu       sync.RWMutex
	log      *logging.Logger
	channels map[string]domain.Channel
	running  map[string]bool
	lastErr  map[string]string
}

// NewRegistry creates an empty channel registry.
func NewRegistry(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{
		log:      log.Sub("channel"),
		channels: make(map[string]domain.Channel),
		running:  make(map[string]bool),
		lastErr:  make(map[string]string),
	}
}

// Register adds a channel. IDs must be unique.
func (r *Registry) Register(c domain.Channel) error {
	id := c.ID()
	if id == "" {
		return fmt.Errorf("channel has empty id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.channels[id]; exists {
		return fmt.Errorf("channel %q already registered", id)
	}
	r.channels[id] = c
	return nil
}

// Get returns a channel by ID.
func (r *Registry) Get(id string) (domain.Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.channels[id]
	return c, ok
}

// IDs returns the registered channel IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.channels))
	for id := range r.channels {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// StartAll starts every channel. A channel that fails to start is logged
// and skipped; the rest keep going.
func (r *Registry) StartAll(ctx context.Context) {
	for _, id := range r.IDs() {
		c, _ := r.Get(id)
		err := c.Start(ctx)
		r.mu.Lock()
		if err != nil {
			r.lastErr[id] = err.Error()
			r.running[id] = false
			r.mu.Unlock()
			r.log.Error().Err(err).Str("channel", id).Msg("channel start failed")
			continue
		}
		r.running[id] = true
		r.lastErr[id] = ""
		r.mu.Unlock()
		r.log.Info().Str("channel", id).Msg("channel started")
	}
}

// StopAll stops every running channel.
func (r *Registry) StopAll(ctx context.Context) {
	for _, id := range r.IDs() {
		c, _ := r.Get(id)
		if err := c.Stop(ctx); err != nil {
			r.log.Warn().Err(err).Str("channel", id).Msg("channel stop failed")
		}
		r.mu.Lock()
		r.running[id] = false
		r.mu.Unlock()
	}
}

// Statuses reports the state of every channel.
func (r *Registry) Statuses() []domain.ChannelStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ChannelStatus, 0, len(r.channels))
	for id, c := range r.channels {
		if sr, ok := c.(StatusReporter); ok {
			out = append(out, sr.Status())
			continue
		}
		out = append(out, domain.ChannelStatus{
			ChannelID: id,
			Running:   r.running[id],
			Connected: r.running[id],
			LastError: r.lastErr[id],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChannelID < out[j].ChannelID })
	return out
}
