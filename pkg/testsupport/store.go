package testsupport

import (
	"context"
	"maps"
	"sync"

	"github.com/goliatone/go-formrender/pkg/model"
	"github.com/goliatone/go-formrender/pkg/status"
)

// CountingStore wraps an in-memory store, counting calls and optionally
// failing them.
type CountingStore struct {
	*status.Memory

	mu     sync.Mutex
	reads  int
	clears map[string]int
	loads  []map[string]any

	ReadErr  error
	ClearErr error
	LoadErr  error
}

var _ status.Store = (*CountingStore)(nil)

// NewCountingStore returns a CountingStore over a fresh memory store.
func NewCountingStore() *CountingStore {
	return &CountingStore{
		Memory: status.NewMemory(),
		clears: make(map[string]int),
	}
}

func (s *CountingStore) Read(ctx context.Context, form *model.Form, namespace string) (*status.FormStatusData, error) {
	s.mu.Lock()
	s.reads++
	err := s.ReadErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Memory.Read(ctx, form, namespace)
}

func (s *CountingStore) Clear(ctx context.Context, formID, namespace string) error {
	s.mu.Lock()
	s.clears[formID+"|"+namespace]++
	err := s.ClearErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Memory.Clear(ctx, formID, namespace)
}

func (s *CountingStore) Load(ctx context.Context, formID, namespace string, values map[string]any, renderMode model.RenderMode) error {
	s.mu.Lock()
	s.loads = append(s.loads, maps.Clone(values))
	err := s.LoadErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Memory.Load(ctx, formID, namespace, values, renderMode)
}

// Clears returns how many times Clear ran for a form and namespace.
func (s *CountingStore) Clears(formID, namespace string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears[formID+"|"+namespace]
}

// Loads returns the values passed to each Load call.
func (s *CountingStore) Loads() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.loads...)
}

// Reads returns how many times Read ran.
func (s *CountingStore) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}
