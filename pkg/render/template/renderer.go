package template

import (
	"io"
)

// TemplateRenderer executes named or inline templates into a writer.
type TemplateRenderer interface {
	// Exists reports whether a named template can be loaded.
	Exists(name string) bool
	RenderTemplate(w io.Writer, name string, data any) error
	RenderString(w io.Writer, body string, data any) error
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
