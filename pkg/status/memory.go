package status

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formrender/pkg/model"
)

type key struct {
	formID    string
	namespace string
}

// Memory is a concurrency-safe in-process Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[key]*FormStatusData
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[key]*FormStatusData)}
}

// Read returns a copy of the status for the form in namespace, creating a
// new empty entry on first access.
func (m *Memory) Read(ctx context.Context, form *model.Form, namespace string) (*FormStatusData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if form == nil {
		return nil, fmt.Errorf("status: form is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entry(form.ID, namespace).Clone(), nil
}

// Clear removes the entry for formID in namespace. Clearing a missing entry
// is a no-op.
func (m *Memory) Clear(ctx context.Context, formID, namespace string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key{formID: formID, namespace: namespace})
	return nil
}

// Load merges values into the entry. Keys starting with an underscore are
// kept as attributes rather than field values.
func (m *Memory) Load(ctx context.Context, formID, namespace string, values map[string]any, renderMode model.RenderMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := m.entry(formID, namespace)
	entry.New = false
	entry.RenderMode = renderMode
	for name, value := range values {
		if strings.HasPrefix(name, "_") {
			entry.Attributes[name] = value
			continue
		}
		entry.CurrentValues[name] = value
	}
	return nil
}

// SetWrongFields replaces the failing field set.
func (m *Memory) SetWrongFields(formID, namespace string, names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := m.entry(formID, namespace)
	entry.WrongFields = make(map[string]struct{}, len(names))
	for _, name := range names {
		entry.WrongFields[name] = struct{}{}
	}
}

// SetInputValue records raw submitted values for a field.
func (m *Memory) SetInputValue(formID, namespace, fieldName string, values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := m.entry(formID, namespace)
	entry.InputValues[model.FieldKey(namespace, formID, fieldName)] = append([]string(nil), values...)
}

// SetAttribute records an attribute override such as "<field>.cssStyle".
func (m *Memory) SetAttribute(formID, namespace, name string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry(formID, namespace).Attributes[name] = value
}

// Len reports the number of live entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// entry must be called with the write lock held.
func (m *Memory) entry(formID, namespace string) *FormStatusData {
	k := key{formID: formID, namespace: namespace}
	if entry, ok := m.entries[k]; ok {
		return entry
	}
	entry := &FormStatusData{
		New:           true,
		CurrentValues: make(map[string]any),
		InputValues:   make(map[string][]string),
		WrongFields:   make(map[string]struct{}),
		Attributes:    make(map[string]any),
	}
	m.entries[k] = entry
	return entry
}
