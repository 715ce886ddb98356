package formrender

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formrender/pkg/fragments"
	"github.com/goliatone/go-formrender/pkg/model"
	"github.com/goliatone/go-formrender/pkg/render"
	"github.com/goliatone/go-formrender/pkg/status"
)

// Form aliases model.Form.
type Form = model.Form

// Field aliases model.Field.
type Field = model.Field

// Request aliases render.Request.
type Request = render.Request

// Link aliases render.Link.
type Link = render.Link

// Option configures New.
type Option func(*config)

type config struct {
	logger      *zap.Logger
	store       status.Store
	theme       *theme.RendererConfig
	templates   fs.FS
	templateDir string
	partials    map[string]string
	render      []render.Option
}

// WithLogger sets the logger shared by the renderer and fragment set.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithStore sets the status store. Defaults to an in-memory store.
func WithStore(store status.Store) Option {
	return func(cfg *config) {
		cfg.store = store
	}
}

// WithTheme applies a go-theme renderer configuration to the templates.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithTemplates replaces the embedded template bundle.
func WithTemplates(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithTemplateDir loads templates from dir before the bundle.
func WithTemplateDir(dir string) Option {
	return func(cfg *config) {
		cfg.templateDir = dir
	}
}

// WithPartials overrides individual templates by key.
func WithPartials(partials map[string]string) Option {
	return func(cfg *config) {
		cfg.partials = partials
	}
}

// WithRenderOptions forwards options to render.New.
func WithRenderOptions(opts ...render.Option) Option {
	return func(cfg *config) {
		cfg.render = append(cfg.render, opts...)
	}
}

// New wires a renderer over the pongo2 fragment set.
func New(opts ...Option) (*render.Renderer, error) {
	cfg := &config{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.store == nil {
		cfg.store = status.NewMemory()
	}

	setOpts := []fragments.Option{
		fragments.WithLogger(cfg.logger),
		fragments.WithTheme(cfg.theme),
		fragments.WithPartials(cfg.partials),
	}
	if cfg.templates != nil {
		setOpts = append(setOpts, fragments.WithFS(cfg.templates))
	}
	if cfg.templateDir != "" {
		setOpts = append(setOpts, fragments.WithDir(cfg.templateDir))
	}
	set, err := fragments.New(setOpts...)
	if err != nil {
		return nil, fmt.Errorf("formrender: %w", err)
	}

	renderOpts := append([]render.Option{
		render.WithHooks(set),
		render.WithLogger(cfg.logger),
	}, cfg.render...)
	renderer, err := render.New(cfg.store, renderOpts...)
	if err != nil {
		return nil, fmt.Errorf("formrender: %w", err)
	}
	return renderer, nil
}

// RenderHTML renders req with a renderer built from opts and returns the
// markup. Partial output is discarded on failure.
func RenderHTML(ctx context.Context, req Request, opts ...Option) ([]byte, error) {
	renderer, err := New(opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := renderer.Render(ctx, &buf, req); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
