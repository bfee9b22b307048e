// Package skill defines the pluggable task-execution interface and the
// built-in skills: calculator, datetime, code generator, translator, and
// summarizer. Skills are synchronous and must never panic through Execute;
// the registry converts panics and errors into failed results.
package skill

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/soyeahso/parley/internal/logging"
)

// Result is the outcome of one skill invocation. Data keys are
// skill-specific and consumed by the response generator.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Skill is one executable capability.
type Skill interface {
	Name() string
	Description() string
	Execute(ctx context.Context, params map[string]string) (Result, error)
}

// Info describes a registered skill.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Registry holds skills by unique name.
type Registry struct {
	mu     sync.RWMutex
	log    *logging.Logger
	skills map[string]Skill
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{
		log:    log.Sub("skill"),
		skills: make(map[string]Skill),
	}
}

// Register adds a skill. Names must be non-empty and unique.
func (r *Registry) Register(s Skill) error {
	name := s.Name()
	if name == "" {
		return fmt.Errorf("skill has empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.skills[name]; exists {
		return fmt.Errorf("skill %q already registered", name)
	}
	r.skills[name] = s
	r.log.Debug().Str("skill", name).Msg("registered")
	return nil
}

// Get returns a skill by name.
func (r *Registry) Get(name string) (Skill, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.skills[name]
	return s, ok
}

// List returns registered skills sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, 0, len(r.skills))
	for _, s := range r.skills {
		out = append(out, Info{Name: s.Name(), Description: s.Description()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Execute runs a skill by name. Unknown skills, returned errors, and panics
// all surface as a failed Result rather than propagating.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]string) (res Result) {
	s, ok := r.Get(name)
	if !ok {
		return Result{Error: fmt.Sprintf("unknown skill %q", name)}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Str("skill", name).Interface("panic", rec).Msg("skill panicked")
			res = Result{Error: fmt.Sprintf("skill %q panicked", name)}
		}
	}()

	out, err := s.Execute(ctx, params)
	if err != nil {
		r.log.Warn().Str("skill", name).Err(err).Msg("skill failed")
		return Result{Error: err.Error()}
	}
	return out
}
