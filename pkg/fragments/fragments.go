package fragments

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formrender/pkg/render"
	"github.com/goliatone/go-formrender/pkg/render/template"
	"github.com/goliatone/go-formrender/pkg/render/template/gotemplate"
)

// FragmentDir holds fragment templates; include targets are paths of their
// own, usually under fields/.
const FragmentDir = "fragments"

// ErrUnknownInclude is returned when an include target has no template.
var ErrUnknownInclude = errors.New("fragments: unknown include target")

//go:embed templates
var embedded embed.FS

// Templates returns the embedded default template bundle.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(fmt.Sprintf("fragments: embedded templates: %v", err))
	}
	return sub
}

// Option configures a Set.
type Option func(*Set)

// WithRenderer uses an existing template renderer instead of building one.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(s *Set) {
		s.renderer = renderer
	}
}

// WithFS replaces the embedded template bundle.
func WithFS(files fs.FS) Option {
	return func(s *Set) {
		if files != nil {
			s.files = files
		}
	}
}

// WithDir loads templates from a directory first, falling back to the
// bundle for names it does not contain.
func WithDir(dir string) Option {
	return func(s *Set) {
		s.dir = strings.TrimSpace(dir)
	}
}

// WithTheme applies a go-theme renderer configuration. Its Partials map
// template keys such as "fragments.groupStart" or "fields.input-text" to
// replacement template names; tokens and CSS variables are exposed to
// templates as the "theme" global.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Set) {
		s.theme = cfg
	}
}

// WithPartials overrides templates by key. Entries win over theme partials.
func WithPartials(partials map[string]string) Option {
	return func(s *Set) {
		if len(partials) == 0 {
			return
		}
		if s.overrides == nil {
			s.overrides = make(map[string]string, len(partials))
		}
		maps.Copy(s.overrides, partials)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Set) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Set implements render.Hooks over a template renderer.
type Set struct {
	renderer  template.TemplateRenderer
	files     fs.FS
	dir       string
	theme     *theme.RendererConfig
	overrides map[string]string
	partials  map[string]string
	logger    *zap.Logger
}

var _ render.Hooks = (*Set)(nil)

// New builds a Set. Without WithRenderer a pongo2 engine over the bundle is
// created.
func New(opts ...Option) (*Set, error) {
	s := &Set{
		files:  Templates(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.partials = make(map[string]string)
	if s.theme != nil {
		for key, value := range s.theme.Partials {
			s.partials[normalizeKey(key)] = strings.TrimSpace(value)
		}
	}
	for key, value := range s.overrides {
		s.partials[normalizeKey(key)] = strings.TrimSpace(value)
	}

	globals := themeGlobals(s.theme)
	if s.renderer == nil {
		engineOpts := []gotemplate.Option{
			gotemplate.WithFS(s.files),
			gotemplate.WithGlobalData(globals),
		}
		if s.dir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(s.dir))
		}
		if s.theme != nil && s.theme.AssetURL != nil {
			engineOpts = append(engineOpts, gotemplate.WithTemplateFunc(map[string]any{"asset": s.theme.AssetURL}))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("fragments: template engine: %w", err)
		}
		s.renderer = engine
		return s, nil
	}
	if err := s.renderer.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("fragments: theme globals: %w", err)
	}
	return s, nil
}

// Fragment renders fragments/<name>. Fragments without a template emit
// nothing.
func (s *Set) Fragment(w io.Writer, name string, attrs render.Attributes) error {
	path := s.resolve(FragmentDir + "/" + name)
	if !s.renderer.Exists(path) {
		s.logger.Debug("fragment has no template", zap.String("fragment", name), zap.String("template", path))
		return nil
	}
	if err := s.renderer.RenderTemplate(w, path, map[string]any(attrs)); err != nil {
		return fmt.Errorf("fragments: render %q: %w", name, err)
	}
	return nil
}

// Include renders the template of a field-type include target.
func (s *Set) Include(w io.Writer, target string, attrs render.Attributes) error {
	path := s.resolve(target)
	if !s.renderer.Exists(path) {
		return fmt.Errorf("%w: %q", ErrUnknownInclude, target)
	}
	if err := s.renderer.RenderTemplate(w, path, map[string]any(attrs)); err != nil {
		return fmt.Errorf("fragments: include %q: %w", target, err)
	}
	return nil
}

// Template reports the template name a fragment or include key maps to.
func (s *Set) Template(key string) string {
	return s.resolve(key)
}

func (s *Set) resolve(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if override, ok := s.partials[normalizeKey(path)]; ok && override != "" {
		return override
	}
	return path
}

// normalizeKey maps "fragments/groupStart" and "fragments.groupStart" to
// the same key.
func normalizeKey(key string) string {
	key = strings.Trim(strings.TrimSpace(key), "/.")
	return strings.ReplaceAll(key, "/", ".")
}
