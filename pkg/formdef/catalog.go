package formdef

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formrender/pkg/model"
)

var (
	// ErrDuplicateForm is returned when two definitions share an id.
	ErrDuplicateForm = errors.New("formdef: duplicate form")
	// ErrUnknownSubform is returned when a field references a missing form.
	ErrUnknownSubform = errors.New("formdef: unknown sub-form")
	// ErrSubformCycle is returned when forms contain each other.
	ErrSubformCycle = errors.New("formdef: sub-form cycle")
	// ErrInvalidForm wraps validation failures of a single definition.
	ErrInvalidForm = errors.New("formdef: invalid form")
)

// Catalog holds form definitions by id.
type Catalog struct {
	mu      sync.RWMutex
	forms   map[string]*model.Form
	sources map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		forms:   make(map[string]*model.Form),
		sources: make(map[string]string),
	}
}

// Add validates and stores a copy of form. source names where it came from
// in error messages.
func (c *Catalog) Add(form model.Form, source string) error {
	if err := validate(form); err != nil {
		return fmt.Errorf("%w %q (%s): %v", ErrInvalidForm, form.ID, source, err)
	}
	stored := form
	stored.Fields = slices.Clone(form.Fields)

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, exists := c.sources[form.ID]; exists {
		return fmt.Errorf("%w %q (%s, %s)", ErrDuplicateForm, form.ID, prev, source)
	}
	c.forms[form.ID] = &stored
	c.sources[form.ID] = source
	return nil
}

// Form returns the definition with id.
func (c *Catalog) Form(id string) (*model.Form, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	form, ok := c.forms[strings.TrimSpace(id)]
	return form, ok
}

// IDs returns the form ids sorted.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.forms))
	for id := range c.forms {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len reports the number of forms.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.forms)
}

// Merge adds every form of other.
func (c *Catalog) Merge(other *Catalog) error {
	if other == nil {
		return nil
	}
	for _, id := range other.IDs() {
		form, _ := other.Form(id)
		other.mu.RLock()
		source := other.sources[id]
		other.mu.RUnlock()
		if err := c.Add(*form, source); err != nil {
			return err
		}
	}
	return nil
}

// Resolve links sub-form fields to the forms they reference and rejects
// cycles, which the renderer could never finish.
func (c *Catalog) Resolve() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range sortedKeys(c.forms) {
		form := c.forms[id]
		for i := range form.Fields {
			field := &form.Fields[i]
			if field.SubformID == "" {
				continue
			}
			target, ok := c.forms[field.SubformID]
			if !ok {
				return fmt.Errorf("%w %q referenced by %s.%s", ErrUnknownSubform, field.SubformID, id, field.Name)
			}
			field.Subform = target
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(c.forms))
	var visit func(id string, path []string) error
	visit = func(id string, path []string) error {
		switch state[id] {
		case visiting:
			return fmt.Errorf("%w: %s", ErrSubformCycle, strings.Join(append(path, id), " -> "))
		case done:
			return nil
		}
		state[id] = visiting
		for _, field := range c.forms[id].Fields {
			if field.Subform == nil {
				continue
			}
			if err := visit(field.Subform.ID, append(path, id)); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}
	for _, id := range sortedKeys(c.forms) {
		if err := visit(id, nil); err != nil {
			return err
		}
	}
	return nil
}

func validate(form model.Form) error {
	if strings.TrimSpace(form.ID) == "" {
		return errors.New("id is required")
	}
	if form.DisplayMode != "" && !form.DisplayMode.Valid() {
		return fmt.Errorf("unknown display mode %q", form.DisplayMode)
	}
	if form.LabelMode != "" && !form.LabelMode.Valid() {
		return fmt.Errorf("unknown label mode %q", form.LabelMode)
	}
	seen := make(map[string]struct{}, len(form.Fields))
	for idx, field := range form.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("field %d has no name", idx)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate field %q", name)
		}
		seen[name] = struct{}{}
		if strings.TrimSpace(field.Type) == "" {
			return fmt.Errorf("field %q has no type", name)
		}
	}
	return nil
}

func sortedKeys(forms map[string]*model.Form) []string {
	keys := make([]string, 0, len(forms))
	for id := range forms {
		keys = append(keys, id)
	}
	slices.Sort(keys)
	return keys
}
