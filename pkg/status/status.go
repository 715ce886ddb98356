package status

import (
	"context"
	"sort"

	"github.com/goliatone/go-formrender/pkg/model"
)

// Store is the namespace-scoped form status collaborator. Clear must be
// idempotent and Load must be visible to an immediately following Read.
type Store interface {
	Read(ctx context.Context, form *model.Form, namespace string) (*FormStatusData, error)
	Clear(ctx context.Context, formID, namespace string) error
	Load(ctx context.Context, formID, namespace string, values map[string]any, renderMode model.RenderMode) error
}

// FormStatusData is a snapshot of a form's state inside one namespace.
type FormStatusData struct {
	// New is true until values have been loaded for the namespace.
	New bool
	// CurrentValues holds typed values keyed by field name.
	CurrentValues map[string]any
	// InputValues holds raw submitted values keyed by
	// namespace:formID:fieldName.
	InputValues map[string][]string
	// WrongFields lists fields currently failing validation.
	WrongFields map[string]struct{}
	// Attributes carries per-field overrides such as "<field>.cssStyle".
	Attributes map[string]any
	// RenderMode is the mode values were last loaded with.
	RenderMode model.RenderMode
}

// IsWrong reports whether the named field fails validation.
func (d *FormStatusData) IsWrong(fieldName string) bool {
	if d == nil || len(d.WrongFields) == 0 {
		return false
	}
	_, ok := d.WrongFields[fieldName]
	return ok
}

// WrongFieldNames returns the failing field names sorted.
func (d *FormStatusData) WrongFieldNames() []string {
	if d == nil || len(d.WrongFields) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.WrongFields))
	for name := range d.WrongFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CurrentValue returns the typed value of a field.
func (d *FormStatusData) CurrentValue(fieldName string) any {
	if d == nil || d.CurrentValues == nil {
		return nil
	}
	return d.CurrentValues[fieldName]
}

// InputValue returns the raw submitted values under a namespaced key.
func (d *FormStatusData) InputValue(key string) []string {
	if d == nil || d.InputValues == nil {
		return nil
	}
	return d.InputValues[key]
}

// Attribute returns an attribute override.
func (d *FormStatusData) Attribute(key string) (any, bool) {
	if d == nil || d.Attributes == nil {
		return nil, false
	}
	value, ok := d.Attributes[key]
	return value, ok
}

// Clone returns a copy whose maps can be mutated independently.
func (d *FormStatusData) Clone() *FormStatusData {
	if d == nil {
		return nil
	}
	clone := &FormStatusData{New: d.New, RenderMode: d.RenderMode}
	if d.CurrentValues != nil {
		clone.CurrentValues = make(map[string]any, len(d.CurrentValues))
		for key, value := range d.CurrentValues {
			clone.CurrentValues[key] = value
		}
	}
	if d.InputValues != nil {
		clone.InputValues = make(map[string][]string, len(d.InputValues))
		for key, values := range d.InputValues {
			clone.InputValues[key] = append([]string(nil), values...)
		}
	}
	if d.WrongFields != nil {
		clone.WrongFields = make(map[string]struct{}, len(d.WrongFields))
		for key := range d.WrongFields {
			clone.WrongFields[key] = struct{}{}
		}
	}
	if d.Attributes != nil {
		clone.Attributes = make(map[string]any, len(d.Attributes))
		for key, value := range d.Attributes {
			clone.Attributes[key] = value
		}
	}
	return clone
}
