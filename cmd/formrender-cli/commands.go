package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	formrender "github.com/goliatone/go-formrender"
	"github.com/goliatone/go-formrender/pkg/formdef"
	"github.com/goliatone/go-formrender/pkg/model"
	"github.com/goliatone/go-formrender/pkg/prompt"
	"github.com/goliatone/go-formrender/pkg/render"
)

type sourceFlags struct {
	defs    []string
	openapi string
}

type renderFlags struct {
	sourceFlags
	namespace      string
	renderMode     string
	labelMode      string
	displayMode    string
	forceLabelMode bool
	valuesFile     string
	interactive    bool
	output         string
	templateDir    string
	uidPrefix      string
	disabled       bool
	readonly       bool
	links          []string
	verbose        bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "formrender-cli",
		Short: "Render form definitions to HTML",
		Long: `Render form definitions loaded from YAML/JSON catalogs or OpenAPI
component schemas.

Examples:
  formrender-cli list --defs forms/
  formrender-cli render person --defs forms/ --values person.yaml
  formrender-cli render Person --openapi api.yaml --mode display
  formrender-cli render --defs forms/ --interactive`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newListCmd())
	return root
}

func addSourceFlags(cmd *cobra.Command, flags *sourceFlags) {
	cmd.Flags().StringArrayVarP(&flags.defs, "defs", "d", nil, "Form definition file or directory, can be repeated")
	cmd.Flags().StringVar(&flags.openapi, "openapi", "", "OpenAPI document whose component schemas become forms")
}

func newListCmd() *cobra.Command {
	flags := &sourceFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the forms of the loaded catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(cmd.Context(), *flags)
			if err != nil {
				return err
			}
			for _, id := range catalog.IDs() {
				form, _ := catalog.Form(id)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d fields\n", id, len(form.Fields))
			}
			return nil
		},
	}
	addSourceFlags(cmd, flags)
	return cmd
}

func newRenderCmd() *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [form-id]",
		Short: "Render one form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, args)
		},
	}
	addSourceFlags(cmd, &flags.sourceFlags)
	f := cmd.Flags()
	f.StringVarP(&flags.namespace, "namespace", "n", "", "Namespace of the render")
	f.StringVarP(&flags.renderMode, "mode", "m", string(model.RenderModeForm), "Render mode (form, display, search, templateEdit, ...)")
	f.StringVar(&flags.labelMode, "label-mode", "", "Label mode (before, after, left, right, hidden)")
	f.StringVar(&flags.displayMode, "display-mode", "", "Display mode (default, aligned, none, template)")
	f.BoolVar(&flags.forceLabelMode, "force-label-mode", false, "Ignore the label mode configured on the form")
	f.StringVar(&flags.valuesFile, "values", "", "YAML or JSON file with form values")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "Prompt for the form and its values")
	f.StringVarP(&flags.output, "output", "o", "", "Output file (stdout if empty)")
	f.StringVar(&flags.templateDir, "templates", "", "Directory with template overrides")
	f.StringVar(&flags.uidPrefix, "uid-prefix", render.DefaultUIDPrefix, "Prefix of generated element ids")
	f.BoolVar(&flags.disabled, "disabled", false, "Render fields disabled")
	f.BoolVar(&flags.readonly, "readonly", false, "Render fields read-only")
	f.StringArrayVarP(&flags.links, "link", "l", nil, "Display link field=url, or *=url for every field, can be repeated")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output")
	return cmd
}

func runRender(cmd *cobra.Command, flags *renderFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := loadCatalog(ctx, flags.sourceFlags)
	if err != nil {
		return err
	}

	var collector *prompt.Collector
	if flags.interactive {
		collector = prompt.New()
	}

	formID := ""
	if len(args) > 0 {
		formID = args[0]
	}
	if formID == "" {
		if collector == nil {
			return errors.New("form id is required unless --interactive is set")
		}
		if formID, err = collector.ChooseForm(ctx, catalog.IDs()); err != nil {
			return err
		}
	}
	form, ok := catalog.Form(formID)
	if !ok {
		return fmt.Errorf("unknown form %q (known: %s)", formID, strings.Join(catalog.IDs(), ", "))
	}

	values, err := loadValues(flags.valuesFile)
	if err != nil {
		return err
	}
	if collector != nil {
		collected, err := collector.Collect(ctx, form)
		if err != nil {
			return err
		}
		values = mergeValues(values, collected)
	}

	links, err := parseLinks(flags.links)
	if err != nil {
		return err
	}

	req := render.Request{
		Form:           form,
		Namespace:      flags.namespace,
		RenderMode:     model.RenderMode(flags.renderMode),
		LabelMode:      model.LabelMode(flags.labelMode),
		DisplayMode:    model.DisplayMode(flags.displayMode),
		ForceLabelMode: flags.forceLabelMode,
		FormValues:     values,
		Disabled:       flags.disabled,
		Readonly:       flags.readonly,
		Links:          links,
	}
	if !req.RenderMode.Valid() {
		return fmt.Errorf("unknown render mode %q", flags.renderMode)
	}

	opts := []formrender.Option{
		formrender.WithLogger(logger),
		formrender.WithRenderOptions(render.WithUIDPrefix(flags.uidPrefix)),
	}
	if flags.templateDir != "" {
		opts = append(opts, formrender.WithTemplateDir(flags.templateDir))
	}
	html, err := formrender.RenderHTML(ctx, req, opts...)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), flags.output, html)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func loadCatalog(ctx context.Context, flags sourceFlags) (*formdef.Catalog, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(flags.defs) == 0 && flags.openapi == "" {
		return nil, errors.New("provide --defs or --openapi")
	}
	catalog := formdef.NewCatalog()
	for _, path := range flags.defs {
		loaded, err := loadDefs(path)
		if err != nil {
			return nil, err
		}
		if err := catalog.Merge(loaded); err != nil {
			return nil, err
		}
	}
	if flags.openapi != "" {
		data, err := os.ReadFile(flags.openapi)
		if err != nil {
			return nil, fmt.Errorf("read openapi document: %w", err)
		}
		loaded, err := formdef.FromOpenAPI(ctx, data)
		if err != nil {
			return nil, err
		}
		if err := catalog.Merge(loaded); err != nil {
			return nil, err
		}
	}
	if err := catalog.Resolve(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func loadDefs(path string) (*formdef.Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("definitions %s: %w", path, err)
	}
	if info.IsDir() {
		return formdef.LoadFS(os.DirFS(path))
	}
	return formdef.LoadFile(path)
}

func loadValues(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return values, nil
}

func mergeValues(base, overrides map[string]any) map[string]any {
	if base == nil {
		return overrides
	}
	for key, value := range overrides {
		base[key] = value
	}
	return base
}

func parseLinks(raw []string) (map[string]render.Link, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	links := make(map[string]render.Link, len(raw))
	for _, entry := range raw {
		field, url, ok := strings.Cut(entry, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" || strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("invalid link %q, want field=url", entry)
		}
		links[field] = render.Link{URL: strings.TrimSpace(url)}
	}
	return links, nil
}

func writeOutput(stdout io.Writer, path string, html []byte) error {
	if path == "" {
		_, err := stdout.Write(append(html, '\n'))
		return err
	}
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
