package render

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formrender/pkg/fieldtypes"
	"github.com/goliatone/go-formrender/pkg/formtemplate"
)

// DefaultUIDPrefix prefixes element identifiers when no prefix is configured.
const DefaultUIDPrefix = "formrender"

// Option customises a Renderer.
type Option func(*Renderer)

// WithHooks sets the fragment and include hooks. Required.
func WithHooks(hooks Hooks) Option {
	return func(r *Renderer) {
		r.hooks = hooks
	}
}

// WithLogger sets the logger used for degraded-render warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFieldTypes replaces the built-in field-type registry.
func WithFieldTypes(registry *fieldtypes.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.types = registry
		}
	}
}

// WithTranslator resolves field label keys.
func WithTranslator(t Translator) Option {
	return func(r *Renderer) {
		r.translator = t
	}
}

// WithMissingTranslationHandler controls the label shown when a key cannot
// be translated. The default shows the literal label, then the key.
func WithMissingTranslationHandler(handler MissingTranslationHandler) Option {
	return func(r *Renderer) {
		if handler != nil {
			r.onMissing = handler
		}
	}
}

// WithUIDPrefix sets the prefix of generated element identifiers.
func WithUIDPrefix(prefix string) Option {
	return func(r *Renderer) {
		r.uidPrefix = prefix
	}
}

// WithTemplateCache shares a parsed-template cache between renderers.
func WithTemplateCache(cache *formtemplate.Cache) Option {
	return func(r *Renderer) {
		if cache != nil {
			r.templates = cache
		}
	}
}
