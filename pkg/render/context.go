package render

import (
	"sync"

	"github.com/goliatone/go-formrender/pkg/model"
)

// Snapshot is the presentation state of one render. It is a plain value so
// saving it never fails.
type Snapshot struct {
	Form        *model.Form
	Namespace   string
	DisplayMode model.DisplayMode
	LabelMode   model.LabelMode
	RenderMode  model.RenderMode
}

// RenderingContext holds the active Snapshot and the snapshots it replaced.
// Nested renders Enter on the way in and Exit on the way out so the
// enclosing render sees its own state again.
type RenderingContext struct {
	mu      sync.Mutex
	current Snapshot
	stack   []Snapshot
}

// NewRenderingContext returns an empty context.
func NewRenderingContext() *RenderingContext {
	return &RenderingContext{}
}

// Current returns a copy of the active snapshot.
func (c *RenderingContext) Current() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Enter saves the active snapshot and installs next.
func (c *RenderingContext) Enter(next Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stack = append(c.stack, c.current)
	c.current = next
}

// Exit restores the most recently saved snapshot. Exiting an empty context
// is a no-op.
func (c *RenderingContext) Exit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) == 0 {
		return
	}
	last := len(c.stack) - 1
	c.current = c.stack[last]
	c.stack[last] = Snapshot{}
	c.stack = c.stack[:last]
}

// Scope enters next and returns a func that exits exactly once, meant to be
// deferred.
func (c *RenderingContext) Scope(next Snapshot) func() {
	c.Enter(next)
	var once sync.Once
	return func() {
		once.Do(c.Exit)
	}
}

// Depth reports how many snapshots are saved.
func (c *RenderingContext) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stack)
}

// Contains reports whether a form with formID is active or saved.
func (c *RenderingContext) Contains(formID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.Form != nil && c.current.Form.ID == formID {
		return true
	}
	for _, snapshot := range c.stack {
		if snapshot.Form != nil && snapshot.Form.ID == formID {
			return true
		}
	}
	return false
}
