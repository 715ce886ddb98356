package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrender/pkg/model"
)

// ContactForm returns a small form with one grouped row:
//
//	name
//	email | phone
//	notes
func ContactForm() *model.Form {
	return &model.Form{
		ID:   "contact",
		Name: "Contact",
		Fields: []model.Field{
			{Name: "name", Type: "text", Label: "Name", Position: 0, Required: true},
			{Name: "email", Type: "email", Label: "Email", Position: 1},
			{Name: "phone", Type: "text", Label: "Phone", Position: 2, GroupWithPrevious: true},
			{Name: "notes", Type: "textarea", Label: "Notes", Position: 3},
		},
	}
}

// SingleFieldForm returns a form holding one text field called name.
func SingleFieldForm(id, fieldName string) *model.Form {
	return &model.Form{
		ID: id,
		Fields: []model.Field{
			{Name: fieldName, Type: "text", Label: fieldName},
		},
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CancelledContext returns a context that is already cancelled.
func CancelledContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx, cancel
}

// Diff returns a cmp diff of want and got, empty when equal.
func Diff(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// MustReadGolden reads a golden file and returns its content.
func MustReadGolden(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written and the test should stop.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
