package fieldtypes

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formrender/pkg/model"
)

// Kind is the value class of a field type. The renderer falls back to raw
// input values only for string kinds.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindDecimal Kind = "decimal"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindSubform Kind = "subform"
)

// Descriptor lists the include targets a field type renders with, one per
// purpose, plus its value class and default CSS.
type Descriptor struct {
	ID            string
	EditTarget    string
	DisplayTarget string
	SearchTarget  string
	Kind          Kind
	CSSStyle      string
}

// Target returns the include target for a render mode. Modes without a
// target, such as template editing, return "".
func (d Descriptor) Target(mode model.RenderMode) string {
	switch {
	case mode.IsEdit():
		return d.EditTarget
	case mode.IsDisplay():
		return d.DisplayTarget
	case mode == model.RenderModeSearch:
		return d.SearchTarget
	default:
		return ""
	}
}

// IsString reports whether values of this type are plain strings.
func (d Descriptor) IsString() bool {
	return d.Kind == KindString
}

// Registry maps stable type identifiers to descriptors.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]Descriptor)}
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for id, descriptor := range r.types {
		cloned.types[id] = descriptor
	}
	return cloned
}

// Register associates a descriptor with id, replacing existing entries.
func (r *Registry) Register(id string, descriptor Descriptor) error {
	if id = normalize(id); id == "" {
		return fmt.Errorf("fieldtypes: type id is required")
	}
	if descriptor.Kind == "" {
		return fmt.Errorf("fieldtypes: kind for %q is required", id)
	}
	if descriptor.Kind != KindSubform && descriptor.EditTarget == "" && descriptor.DisplayTarget == "" && descriptor.SearchTarget == "" {
		return fmt.Errorf("fieldtypes: %q declares no include targets", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.ID = id
	r.types[id] = descriptor
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(id string, descriptor Descriptor) {
	if err := r.Register(id, descriptor); err != nil {
		panic(err)
	}
}

// Lookup fetches a descriptor by type id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.types[normalize(id)]
	return descriptor, ok
}

// IDs returns the registered type ids sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
