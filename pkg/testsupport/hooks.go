package testsupport

import (
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-formrender/pkg/model"
	"github.com/goliatone/go-formrender/pkg/render"
)

// Call is one recorded hook invocation.
type Call struct {
	// Kind is "fragment" or "include".
	Kind  string
	Name  string
	Attrs render.Attributes
}

// RecordingHooks records every hook call and writes a short marker so tests
// can assert ordering on the output: "[name]" for fragments and
// "{target:field=value}" for includes.
type RecordingHooks struct {
	mu    sync.Mutex
	calls []Call

	// FragmentErr, when set, is returned for the named fragment.
	FragmentErr map[string]error
	// IncludeErr, when set, is returned for the named target.
	IncludeErr map[string]error
	// Silent suppresses markers for fragments.
	Silent bool
}

var _ render.Hooks = (*RecordingHooks)(nil)

// NewRecordingHooks returns empty recording hooks.
func NewRecordingHooks() *RecordingHooks {
	return &RecordingHooks{}
}

func (h *RecordingHooks) Fragment(w io.Writer, name string, attrs render.Attributes) error {
	h.record(Call{Kind: "fragment", Name: name, Attrs: attrs})
	if err := h.FragmentErr[name]; err != nil {
		return err
	}
	if h.Silent {
		return nil
	}
	_, err := io.WriteString(w, "["+name+"]")
	return err
}

func (h *RecordingHooks) Include(w io.Writer, target string, attrs render.Attributes) error {
	h.record(Call{Kind: "include", Name: target, Attrs: attrs})
	if err := h.IncludeErr[target]; err != nil {
		return err
	}
	field, _ := attrs[render.AttrField].(model.Field)
	value := attrs[render.AttrValue]
	if value == nil {
		value = ""
	}
	_, err := fmt.Fprintf(w, "{%s:%s=%v}", target, field.Name, value)
	return err
}

func (h *RecordingHooks) record(call Call) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, call)
}

// Calls returns a copy of the recorded calls.
func (h *RecordingHooks) Calls() []Call {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Call(nil), h.calls...)
}

// Names returns "kind:name" for each recorded call, in order.
func (h *RecordingHooks) Names() []string {
	calls := h.Calls()
	out := make([]string, len(calls))
	for i, call := range calls {
		out[i] = call.Kind + ":" + call.Name
	}
	return out
}

// Fragments returns the recorded calls for one fragment name.
func (h *RecordingHooks) Fragments(name string) []Call {
	var out []Call
	for _, call := range h.Calls() {
		if call.Kind == "fragment" && call.Name == name {
			out = append(out, call)
		}
	}
	return out
}

// Includes returns the recorded include calls.
func (h *RecordingHooks) Includes() []Call {
	var out []Call
	for _, call := range h.Calls() {
		if call.Kind == "include" {
			out = append(out, call)
		}
	}
	return out
}

// Reset drops recorded calls.
func (h *RecordingHooks) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = nil
}
