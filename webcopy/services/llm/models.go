// webcopy/services/llm/models.go
package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownModel is returned by Lookup for identifiers missing from the registry.
var ErrUnknownModel = errors.New("unknown model")

// RateLimit pauses the run for Window after every Calls generation calls.
type RateLimit struct {
	Calls  int
	Window time.Duration
}

// ModelDescriptor is immutable once the registry is built.
// A nil RateLimit or zero DailyLimit means the model has no such limit.
type ModelDescriptor struct {
	ID          string
	Description string
	RateLimit   *RateLimit
	DailyLimit  int
}

// Entry is one line of the interactive listing. Index is 1-based.
type Entry struct {
	Index       int
	ID          string
	Description string
}

// Registry is a read-only, ordered table of selectable models.
type Registry struct {
	models []ModelDescriptor
	byID   map[string]int
}

// DefaultModels returns the built-in model table in listing order.
func DefaultModels() []ModelDescriptor {
	return []ModelDescriptor{
		{
			ID:          "gemini-1.5-flash-latest",
			Description: "Powerful model capable of handling text and image inputs, optimized for various language tasks like code generation, text editing, and problem solving.",
			RateLimit:   &RateLimit{Calls: 15, Window: 60 * time.Second},
			DailyLimit:  1000,
		},
		{
			ID:          "gemini-1.0-pro-latest",
			Description: "Versatile model for text generation and multi-turn conversations, suitable for zero-shot, one-shot, and few-shot tasks.",
			RateLimit:   &RateLimit{Calls: 60, Window: 60 * time.Second},
		},
		{
			ID:          "gemini-1.5-pro-latest",
			Description: "Versatile model for text generation and multi-turn conversations, suitable for zero-shot, one-shot, and few-shot tasks.",
			RateLimit:   &RateLimit{Calls: 2, Window: 60 * time.Second},
		},
	}
}

// NewRegistry copies models into a registry, preserving their order.
func NewRegistry(models []ModelDescriptor) (*Registry, error) {
	if len(models) == 0 {
		return nil, errors.New("model registry is empty")
	}
	r := &Registry{
		models: make([]ModelDescriptor, 0, len(models)),
		byID:   make(map[string]int, len(models)),
	}
	for _, m := range models {
		if m.ID == "" {
			return nil, errors.New("model identifier is required")
		}
		if _, dup := r.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate model identifier %q", m.ID)
		}
		if m.RateLimit != nil {
			if m.RateLimit.Calls <= 0 || m.RateLimit.Window <= 0 {
				return nil, fmt.Errorf("model %s: rate limit calls and window must be positive", m.ID)
			}
			rl := *m.RateLimit
			m.RateLimit = &rl
		}
		r.byID[m.ID] = len(r.models)
		r.models = append(r.models, m)
	}
	return r, nil
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (ModelDescriptor, error) {
	i, ok := r.byID[id]
	if !ok {
		return ModelDescriptor{}, fmt.Errorf("%w: %s", ErrUnknownModel, id)
	}
	return r.models[i], nil
}

// At returns the model listed at the 1-based index.
func (r *Registry) At(index int) (ModelDescriptor, bool) {
	if index < 1 || index > len(r.models) {
		return ModelDescriptor{}, false
	}
	return r.models[index-1], true
}

func (r *Registry) Len() int {
	return len(r.models)
}

// Entries lists the models in definition order with stable 1-based indices.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, len(r.models))
	for i, m := range r.models {
		entries[i] = Entry{Index: i + 1, ID: m.ID, Description: m.Description}
	}
	return entries
}
