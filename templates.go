package formrender

import (
	"io/fs"

	"github.com/goliatone/go-formrender/pkg/fragments"
)

// EmbeddedTemplates exposes the built-in fragment and field templates so
// callers can copy or extend them.
func EmbeddedTemplates() fs.FS {
	return fragments.Templates()
}
