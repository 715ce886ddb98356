package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formrender/pkg/render/template"
)

// DefaultExtension is appended to template names without one.
const DefaultExtension = ".tmpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	templateFn map[string]any
	globalData map[string]any
}

// WithBaseDir loads templates from a directory on disk. Files found there
// take precedence over WithFS.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTemplateFunc registers pongo2 filters or global functions.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine is a pongo2 template set with a compiled template cache.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	files       fs.FS
	baseDir     string
	tplExt      string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Either WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: DefaultExtension,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("formrender", loaders...),
		templates:   make(map[string]*pongo2.Template),
		files:       cfg.templates,
		baseDir:     cfg.baseDir,
		tplExt:      cfg.extension,
	}
	registerDefaultFilters()

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	for name, fn := range cfg.templateFn {
		if err := engine.registerTemplateFunc(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register template func %q: %w", name, err)
		}
	}

	return engine, nil
}

// Exists reports whether name resolves to a template file.
func (e *Engine) Exists(name string) bool {
	if e == nil || strings.TrimSpace(name) == "" {
		return false
	}
	file := e.fileName(name)

	e.mu.RLock()
	_, cached := e.templates[file]
	e.mu.RUnlock()
	if cached {
		return true
	}
	if e.baseDir != "" {
		if info, err := os.Stat(filepath.Join(e.baseDir, filepath.FromSlash(file))); err == nil && !info.IsDir() {
			return true
		}
	}
	if e.files != nil {
		if info, err := fs.Stat(e.files, path.Clean(file)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// RenderTemplate executes the named template into w.
func (e *Engine) RenderTemplate(w io.Writer, name string, data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if w == nil {
		return errors.New("gotemplate: writer is required")
	}
	file := e.fileName(name)

	tmpl, err := e.getTemplate(file)
	if err != nil {
		return err
	}
	viewContext, err := convertToContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: convert data: %w", err)
	}

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, w)
	e.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("gotemplate: execute template %q: %w", file, err)
	}
	return nil
}

// RenderString parses body and executes it into w.
func (e *Engine) RenderString(w io.Writer, body string, data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if w == nil {
		return errors.New("gotemplate: writer is required")
	}

	tmpl, err := e.templateSet.FromString(body)
	if err != nil {
		return fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	viewContext, err := convertToContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: convert data: %w", err)
	}

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, w)
	e.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("gotemplate: execute template string: %w", err)
	}
	return nil
}

// RegisterFilter registers a pongo2 filter. Filters are process-wide in
// pongo2, so registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}

// GlobalContext merges data into the globals of every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}

	globalCtx, err := convertToContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals.Update(globalCtx)
	return nil
}

func (e *Engine) fileName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if strings.HasSuffix(name, e.tplExt) {
		return name
	}
	return name + e.tplExt
}

func (e *Engine) registerTemplateFunc(name string, fn any) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || fn == nil {
		return nil
	}

	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(trimmed) {
			return nil
		}
		return pongo2.RegisterFilter(trimmed, filter)
	}
	if !isCallable(fn) {
		return fmt.Errorf("gotemplate: %T is not a function", fn)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals[trimmed] = fn
	return nil
}

func (e *Engine) getTemplate(file string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[file]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[file]; ok {
		return tmpl, nil
	}
	tmpl, err := e.templateSet.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", file, err)
	}
	e.templates[file] = tmpl
	return tmpl, nil
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

// convertToContext turns data into plain maps, slices and scalars so
// templates address struct fields by their JSON names.
func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return convertMap(map[string]any(v))
	case map[string]any:
		return convertMap(v)
	default:
		raw, err := roundTrip(v)
		if err != nil {
			return nil, err
		}
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("gotemplate: %T does not convert to an object", data)
		}
		return convertMap(m)
	}
}

func convertMap(in map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		converted, err := convertValue(value)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: convert %q: %w", key, err)
		}
		out[key] = converted
	}
	return out, nil
}

func convertValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	case pongo2.Context:
		return convertMap(map[string]any(v))
	case map[string]any:
		return convertMap(v)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			converted, err := convertValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	}
	if isCallable(value) {
		return value, nil
	}
	raw, err := roundTrip(value)
	if err != nil {
		return nil, err
	}
	if m, ok := raw.(map[string]any); ok {
		return convertMap(m)
	}
	return raw, nil
}

func roundTrip(v any) (any, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := sonic.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("percent") {
		_ = pongo2.RegisterFilter("percent", filterPercent)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterPercent renders numbers as CSS percentages and passes strings
// through, so "100%" and 50 both work as widths.
func filterPercent(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	switch {
	case in.IsNil():
		return pongo2.AsValue(""), nil
	case in.IsNumber():
		return pongo2.AsValue(fmt.Sprintf("%d%%", in.Integer())), nil
	default:
		return pongo2.AsValue(in.String()), nil
	}
}
