package render_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formrender/pkg/model"
	"github.com/goliatone/go-formrender/pkg/render"
	"github.com/goliatone/go-formrender/pkg/testsupport"
)

type harness struct {
	renderer *render.Renderer
	hooks    *testsupport.RecordingHooks
	store    *testsupport.CountingStore
	logs     *observer.ObservedLogs
}

func newHarness(t *testing.T, opts ...render.Option) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	h := &harness{
		hooks: testsupport.NewRecordingHooks(),
		store: testsupport.NewCountingStore(),
		logs:  logs,
	}
	opts = append([]render.Option{render.WithHooks(h.hooks), render.WithLogger(zap.New(core))}, opts...)
	renderer, err := render.New(h.store, opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	h.renderer = renderer
	return h
}

func (h *harness) render(t *testing.T, req render.Request) string {
	t.Helper()
	var buf bytes.Buffer
	if err := h.renderer.Render(testsupport.Context(), &buf, req); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestNewRequiresHooks(t *testing.T) {
	if _, err := render.New(testsupport.NewCountingStore()); err == nil {
		t.Fatalf("expected error without hooks")
	}
	if _, err := render.New(nil, render.WithHooks(testsupport.NewRecordingHooks())); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestRenderDefaultLayoutSequence(t *testing.T) {
	h := newHarness(t)
	form := &model.Form{
		ID: "pair",
		Fields: []model.Field{
			{Name: "a", Type: "text", Label: "A"},
			{Name: "b", Type: "text", Label: "B", GroupWithPrevious: true},
		},
	}
	h.hooks.Silent = true
	h.render(t, render.Request{Form: form, Namespace: "ns", LabelMode: model.LabelModeLeft})

	want := []string{
		"fragment:formErrors",
		"fragment:outputStart",
		"fragment:formHeader",
		"fragment:groupStart",
		"fragment:beforeInputElement",
		"fragment:beforeLabel",
		"fragment:afterLabel",
		"fragment:beforeField",
		"include:fields/input-text",
		"fragment:afterField",
		"fragment:afterInputElement",
		"fragment:beforeInputElement",
		"fragment:beforeLabel",
		"fragment:afterLabel",
		"fragment:beforeField",
		"include:fields/input-text",
		"fragment:afterField",
		"fragment:afterInputElement",
		"fragment:groupEnd",
		"fragment:formFooter",
		"fragment:outputEnd",
	}
	if diff := cmp.Diff(want, h.hooks.Names()); diff != "" {
		t.Fatalf("call sequence mismatch (-want +got):\n%s", diff)
	}

	start := h.hooks.Fragments(render.FragmentOutputStart)[0]
	if got := start.Attrs[render.AttrWidth]; got != "1%" {
		t.Fatalf("expected form width 1%%, got %v", got)
	}
	group := h.hooks.Fragments(render.FragmentGroupStart)[0]
	if got := group.Attrs[render.AttrGroupPosition]; got != 1 {
		t.Fatalf("expected group position 1, got %v", got)
	}
	if got := group.Attrs[render.AttrColspan]; got != 2 {
		t.Fatalf("expected group colspan 2, got %v", got)
	}
}

func TestRenderLabelPlacement(t *testing.T) {
	form := testsupport.SingleFieldForm("profile", "nickname")

	tests := []struct {
		name       string
		mode       model.LabelMode
		labelFirst bool
		hasLabel   bool
		separator  bool
	}{
		{name: "before", mode: model.LabelModeBefore, labelFirst: true, hasLabel: true, separator: true},
		{name: "left", mode: model.LabelModeLeft, labelFirst: true, hasLabel: true},
		{name: "after", mode: model.LabelModeAfter, hasLabel: true, separator: true},
		{name: "right", mode: model.LabelModeRight, hasLabel: true},
		{name: "hidden", mode: model.LabelModeHidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			out := h.render(t, render.Request{Form: form, Namespace: "ns", LabelMode: tt.mode})

			label := strings.Index(out, `_label"`)
			field := strings.Index(out, "{fields/input-text:nickname=")
			if field < 0 {
				t.Fatalf("expected field include in output: %s", out)
			}
			if !tt.hasLabel {
				if label >= 0 || len(h.hooks.Fragments(render.FragmentBeforeLabel)) != 0 {
					t.Fatalf("expected no label output: %s", out)
				}
				return
			}
			if label < 0 {
				t.Fatalf("expected label in output: %s", out)
			}
			if (label < field) != tt.labelFirst {
				t.Fatalf("unexpected label order (label=%d field=%d): %s", label, field, out)
			}
			separators := len(h.hooks.Fragments(render.FragmentLineBetweenLabelAndField))
			if (separators > 0) != tt.separator {
				t.Fatalf("unexpected separator count %d", separators)
			}
		})
	}
}

func TestRenderLabelMarkup(t *testing.T) {
	h := newHarness(t)
	form := &model.Form{
		ID: "contact",
		Fields: []model.Field{
			{Name: "name", Type: "text", Label: "Name <b>", Required: true, LabelCSSClass: "wide"},
		},
	}
	h.store.SetWrongFields("contact", "ns", "name")
	out := h.render(t, render.Request{Form: form, Namespace: "ns"})

	want := `<div style="padding-top: 3px; padding-right:3px;" id="formrender:ns:contact:name_label_container">` +
		`<span id="formrender:ns:contact:name_label" class="dynInputStyle wide">` +
		`<span class="skn-error"><label for="formrender:ns:contact:name">*Name </label>[afterRequiredLabel]</span></span></div>`
	if !strings.Contains(out, want) {
		t.Fatalf("expected label markup %q in %s", want, out)
	}
	if len(h.hooks.Fragments(render.FragmentBeforeWrongField)) != 1 {
		t.Fatalf("expected beforeWrongField fragment")
	}
	errs := h.hooks.Fragments(render.FragmentFormErrors)
	if len(errs) != 1 {
		t.Fatalf("expected one formErrors fragment, got %d", len(errs))
	}
	if diff := cmp.Diff([]string{"name"}, errs[0].Attrs[render.AttrWrongFields]); diff != "" {
		t.Fatalf("wrong fields mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLabelTranslation(t *testing.T) {
	h := newHarness(t, render.WithTranslator(translatorFunc(func(locale, key string) (string, error) {
		if locale == "es" && key == "labels.name" {
			return "Nombre", nil
		}
		return "", errors.New("missing")
	})))
	form := &model.Form{
		ID:     "contact",
		Fields: []model.Field{{Name: "name", Type: "text", Label: "Name", LabelKey: "labels.name"}},
	}

	out := h.render(t, render.Request{Form: form, Namespace: "ns", Locale: "es"})
	if !strings.Contains(out, ">Nombre</label>") {
		t.Fatalf("expected translated label: %s", out)
	}
	out = h.render(t, render.Request{Form: form, Namespace: "ns", Locale: "fr"})
	if !strings.Contains(out, ">Name</label>") {
		t.Fatalf("expected fallback label: %s", out)
	}
}

type translatorFunc func(locale, key string) (string, error)

func (f translatorFunc) Translate(locale, key string, _ ...any) (string, error) {
	return f(locale, key)
}

func TestRenderDisplayModeHidesLabelsAndClearsOnce(t *testing.T) {
	h := newHarness(t)
	form := testsupport.ContactForm()
	form.LabelMode = model.LabelModeLeft

	out := h.render(t, render.Request{
		Form:           form,
		Namespace:      "ns",
		RenderMode:     model.RenderModeDisplay,
		LabelMode:      model.LabelModeBefore,
		ForceLabelMode: true,
	})

	if strings.Contains(out, `_label"`) {
		t.Fatalf("expected no labels in display mode: %s", out)
	}
	if got := h.store.Clears("contact", "ns"); got != 1 {
		t.Fatalf("expected exactly one clear, got %d", got)
	}
	if len(h.hooks.Fragments(render.FragmentFormFooter)) != 0 {
		t.Fatalf("expected no footer in display mode")
	}
	if got := h.hooks.Fragments(render.FragmentOutputStart)[0].Attrs[render.AttrWidth]; got != "100%" {
		t.Fatalf("expected width 100%%, got %v", got)
	}
}

func TestRenderFormModeNeverClears(t *testing.T) {
	h := newHarness(t)
	h.render(t, render.Request{Form: testsupport.ContactForm(), Namespace: "ns"})
	if got := h.store.Clears("contact", "ns"); got != 0 {
		t.Fatalf("expected no clear, got %d", got)
	}
}

func TestRenderTemplateEditClearsEvenOnFailure(t *testing.T) {
	h := newHarness(t)
	h.hooks.FragmentErr = map[string]error{render.FragmentBeforeFieldInTemplate: errors.New("boom")}
	form := testsupport.ContactForm()
	form.Template = "<p>$field{name}</p>"

	var buf bytes.Buffer
	err := h.renderer.Render(testsupport.Context(), &buf, render.Request{
		Form:        form,
		Namespace:   "ns",
		RenderMode:  model.RenderModeTemplateEdit,
		DisplayMode: model.DisplayModeTemplate,
	})
	if err == nil {
		t.Fatalf("expected render error")
	}
	if got := h.store.Clears("contact", "ns"); got != 1 {
		t.Fatalf("expected exactly one clear, got %d", got)
	}
}

func TestRenderReturnsSingleErrorAndRestoresContext(t *testing.T) {
	h := newHarness(t)
	cause := errors.New("include failed")
	h.hooks.IncludeErr = map[string]error{"fields/input-email": cause}

	rc := render.NewRenderingContext()
	outer := render.Snapshot{Namespace: "outer", RenderMode: model.RenderModeSearch}
	rc.Enter(outer)

	var buf bytes.Buffer
	err := h.renderer.Render(testsupport.Context(), &buf, render.Request{
		Form:      testsupport.ContactForm(),
		Namespace: "ns",
		Context:   rc,
	})
	var renderErr *render.Error
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected *render.Error, got %T: %v", err, err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if renderErr.FormID != "contact" || renderErr.Namespace != "ns" {
		t.Fatalf("unexpected error identity: %+v", renderErr)
	}
	if diff := cmp.Diff(outer, rc.Current()); diff != "" {
		t.Fatalf("context not restored (-want +got):\n%s", diff)
	}
	if strings.Contains(buf.String(), "notes") {
		t.Fatalf("expected rendering to stop at the failing field: %s", buf.String())
	}
}

func TestRenderStatusReadFailure(t *testing.T) {
	h := newHarness(t)
	cause := errors.New("store down")
	h.store.ReadErr = cause

	err := h.renderer.Render(testsupport.Context(), &bytes.Buffer{}, render.Request{Form: testsupport.ContactForm(), Namespace: "ns"})
	if !errors.Is(err, cause) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRenderNilForm(t *testing.T) {
	h := newHarness(t)
	err := h.renderer.Render(testsupport.Context(), &bytes.Buffer{}, render.Request{Namespace: "ns"})
	if !errors.Is(err, render.ErrNilForm) {
		t.Fatalf("expected ErrNilForm, got %v", err)
	}
}

func TestRenderUnknownFieldType(t *testing.T) {
	h := newHarness(t)
	form := &model.Form{ID: "f", Fields: []model.Field{{Name: "x", Type: "hologram"}}}
	err := h.renderer.Render(testsupport.Context(), &bytes.Buffer{}, render.Request{Form: form, Namespace: "ns"})
	if !errors.Is(err, render.ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
}

func TestRenderEmptyNamespaceWarnsOnce(t *testing.T) {
	h := newHarness(t)
	out := h.render(t, render.Request{Form: testsupport.ContactForm()})

	if got := h.logs.Len(); got != 1 {
		t.Fatalf("expected exactly one warning, got %d: %v", got, h.logs.All())
	}
	if got := h.logs.FilterMessage("empty namespace, using default").Len(); got != 1 {
		t.Fatalf("expected empty namespace warning")
	}
	if !strings.Contains(out, "formrender:"+model.DefaultNamespace+":contact:name_container") {
		t.Fatalf("expected default namespace in ids: %s", out)
	}
}

func TestRenderIllegalNamespaceWarnsAndContinues(t *testing.T) {
	h := newHarness(t)
	out := h.render(t, render.Request{Form: testsupport.ContactForm(), Namespace: "9lives"})

	if got := h.logs.FilterField(zap.String("namespace", "9lives")).Len(); got != 1 {
		t.Fatalf("expected one namespace warning, got %d", got)
	}
	if !strings.Contains(out, "formrender:9lives:contact:name_container") {
		t.Fatalf("expected render to continue: %s", out)
	}
}

func TestRenderTemplateLayout(t *testing.T) {
	h := newHarness(t)
	form := testsupport.ContactForm()
	form.DisplayMode = model.DisplayModeTemplate
	form.Template = "<table><tr><td>$label{name}</td><td>$field{name}</td></tr>$field{foo}$label{bar}</table>"

	out := h.render(t, render.Request{Form: form, Namespace: "ns"})

	for _, want := range []string{
		"<table><tr><td>[beforeLabelInTemplateMode]",
		">*Name</label>",
		"{fields/input-text:name=}",
		"[beforeFieldInTemplateMode]$field{foo}[afterFieldInTemplateMode]",
		"[beforeLabelInTemplateMode]$label{bar}[afterLabelInTemplateMode]",
		"</table>[templateFormFooter]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
	if strings.Contains(out, "[outputStart]") {
		t.Fatalf("template layout must not use the default layout: %s", out)
	}
}

func TestRenderTemplateEditWritesPlaceholders(t *testing.T) {
	h := newHarness(t)
	form := testsupport.ContactForm()
	form.Template = "$label{name}:$field{name}"

	out := h.render(t, render.Request{
		Form:        form,
		Namespace:   "ns",
		RenderMode:  model.RenderModeTemplateEdit,
		DisplayMode: model.DisplayModeTemplate,
	})
	if !strings.Contains(out, "$label{name}") || !strings.Contains(out, "$field{name}") {
		t.Fatalf("expected placeholders: %s", out)
	}
	if len(h.hooks.Includes()) != 0 {
		t.Fatalf("expected no includes in template edit mode")
	}
}

func TestRenderNoneModeSeparatesGroups(t *testing.T) {
	h := newHarness(t)
	h.render(t, render.Request{Form: testsupport.ContactForm(), Namespace: "ns", DisplayMode: model.DisplayModeNone})

	if got := len(h.hooks.Fragments(render.FragmentOutputStart)); got != 3 {
		t.Fatalf("expected three output blocks, got %d", got)
	}
	if got := len(h.hooks.Fragments(render.FragmentOutputEnd)); got != 3 {
		t.Fatalf("expected three output block ends, got %d", got)
	}
}

func TestRenderUnsupportedDisplayModeWarns(t *testing.T) {
	h := newHarness(t)
	h.render(t, render.Request{Form: testsupport.ContactForm(), Namespace: "ns", DisplayMode: "carousel"})

	if got := h.logs.FilterMessage("unsupported display mode").Len(); got != 1 {
		t.Fatalf("expected unsupported display mode warning, got %d", got)
	}
	if len(h.hooks.Includes()) != 0 || len(h.hooks.Fragments(render.FragmentOutputStart)) != 0 {
		t.Fatalf("expected no layout output")
	}
}

func TestRenderLinks(t *testing.T) {
	h := newHarness(t)
	out := h.render(t, render.Request{
		Form:       testsupport.ContactForm(),
		Namespace:  "ns",
		RenderMode: model.RenderModeDisplay,
		Links: map[string]render.Link{
			render.LinkWildcard: {URL: "/all", OnClick: "track()"},
			"name":              {URL: "/people?id=1&x=2"},
		},
	})

	for _, want := range []string{
		` <a href="/people?id=1&amp;x=2" onclick="track()">{fields/display:name=}</a>`,
		` <a href="/all" onclick="track()">{fields/display:email=}</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
}

func TestRenderLinksOnlyInDisplayMode(t *testing.T) {
	h := newHarness(t)
	out := h.render(t, render.Request{
		Form:      testsupport.ContactForm(),
		Namespace: "ns",
		Links:     map[string]render.Link{render.LinkWildcard: {URL: "/all"}},
	})
	if strings.Contains(out, "<a href") {
		t.Fatalf("expected no links outside display mode: %s", out)
	}
}

func TestRenderValues(t *testing.T) {
	h := newHarness(t)
	form := &model.Form{
		ID: "order",
		Fields: []model.Field{
			{Name: "code", Type: "text"},
			{Name: "qty", Type: "integer"},
			{Name: "comment", Type: "text"},
		},
	}
	h.store.SetInputValue("order", "ns", "code", "raw-code", "second")
	h.store.SetInputValue("order", "ns", "qty", "12")

	out := h.render(t, render.Request{
		Form:       form,
		Namespace:  "ns",
		FormValues: map[string]any{"comment": "typed"},
		Disabled:   true,
	})

	for _, want := range []string{
		"{fields/input-text:code=raw-code}",
		"{fields/input-number:qty=}",
		"{fields/input-text:comment=typed}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
	include := h.hooks.Includes()[0]
	if include.Attrs[render.AttrFieldIsDisabled] != true {
		t.Fatalf("expected disabled flag")
	}
	if _, ok := include.Attrs[render.AttrFieldIsReadonly]; ok {
		t.Fatalf("expected no readonly flag")
	}
	if got := include.Attrs[render.AttrName]; got != "ns:order:code" {
		t.Fatalf("unexpected field key %v", got)
	}
}

func TestRenderFormModeMarker(t *testing.T) {
	h := newHarness(t)
	form := testsupport.SingleFieldForm("f", "a")

	h.render(t, render.Request{Form: form, Namespace: "new"})
	h.render(t, render.Request{Form: form, Namespace: "edit", FormValues: map[string]any{"a": "x"}})
	h.render(t, render.Request{Form: form, Namespace: "show", RenderMode: model.RenderModeDisplay})

	var modes []any
	for _, values := range h.store.Loads() {
		modes = append(modes, values[model.FormModeKey])
	}
	if diff := cmp.Diff([]any{"create", "edit", "display"}, modes); diff != "" {
		t.Fatalf("form mode markers mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderReuseStatus(t *testing.T) {
	h := newHarness(t)
	form := testsupport.SingleFieldForm("f", "a")

	h.render(t, render.Request{Form: form, Namespace: "ns", FormValues: map[string]any{"a": "first"}})
	out := h.render(t, render.Request{Form: form, Namespace: "ns"})
	if !strings.Contains(out, "{fields/input-text:a=first}") {
		t.Fatalf("expected reused value: %s", out)
	}

	reuse := false
	out = h.render(t, render.Request{Form: form, Namespace: "ns", ReuseStatus: &reuse})
	if strings.Contains(out, "first") {
		t.Fatalf("expected status to be reset: %s", out)
	}
	if got := h.store.Clears("f", "ns"); got != 1 {
		t.Fatalf("expected one clear for the reset, got %d", got)
	}
}

func TestRenderContainerStyles(t *testing.T) {
	h := newHarness(t)
	form := &model.Form{
		ID: "f",
		Fields: []model.Field{
			{Name: "hidden", Type: "text", CSSStyle: "color: red; display: none"},
			{Name: "shown", Type: "text", CSSStyle: "color: red"},
			{Name: "overridden", Type: "text"},
		},
	}
	h.store.SetAttribute("f", "ns", "overridden.cssStyle", "DISPLAY:NONE")

	out := h.render(t, render.Request{Form: form, Namespace: "ns"})
	for _, want := range []string{
		`<div style="display:none" id="formrender:ns:f:hidden_container">`,
		`<div style="padding-top: 3px; padding-right:3px;" id="formrender:ns:f:shown_container">`,
		`<div style="display:none" id="formrender:ns:f:overridden_container">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
}

func TestRenderFooterAttributes(t *testing.T) {
	h := newHarness(t, render.WithUIDPrefix("app"))
	h.render(t, render.Request{Form: testsupport.ContactForm(), Namespace: "ns", RenderMode: model.RenderModeSearch})

	footers := h.hooks.Fragments(render.FragmentFormFooter)
	if len(footers) != 1 {
		t.Fatalf("expected one footer, got %d", len(footers))
	}
	if got := footers[0].Attrs[render.AttrName]; got != "ns:contact::initialFormRefresher" {
		t.Fatalf("unexpected footer name %v", got)
	}
	if got := footers[0].Attrs[render.AttrUID]; got != "app:ns:contact::initialFormRefresher" {
		t.Fatalf("unexpected footer uid %v", got)
	}
}

func TestRenderSubform(t *testing.T) {
	h := newHarness(t)
	address := &model.Form{
		ID:     "address",
		Fields: []model.Field{{Name: "street", Type: "text", Label: "Street"}},
	}
	form := &model.Form{
		ID: "person",
		Fields: []model.Field{
			{Name: "name", Type: "text", Label: "Name"},
			{Name: "home", Type: "subform", Label: "Home", Subform: address},
		},
	}

	out := h.render(t, render.Request{
		Form:       form,
		Namespace:  "ns",
		FormValues: map[string]any{"home": map[string]any{"street": "Main"}},
	})

	if !strings.Contains(out, `id="formrender:ns:person:home_container"`) {
		t.Fatalf("expected sub-form container: %s", out)
	}
	if !strings.Contains(out, `id="formrender:ns:person:home:address:street_container"`) {
		t.Fatalf("expected nested namespace: %s", out)
	}
	if !strings.Contains(out, "{fields/input-text:street=Main}") {
		t.Fatalf("expected nested value: %s", out)
	}
	if got := len(h.hooks.Fragments(render.FragmentFormErrors)); got != 1 {
		t.Fatalf("expected formErrors only for the outer form, got %d", got)
	}
}

func TestRenderRecursiveSubform(t *testing.T) {
	h := newHarness(t)
	form := &model.Form{ID: "loop"}
	form.Fields = []model.Field{{Name: "self", Type: "subform", Subform: form}}

	err := h.renderer.Render(testsupport.Context(), &bytes.Buffer{}, render.Request{Form: form, Namespace: "ns"})
	if !errors.Is(err, render.ErrRecursiveSubform) {
		t.Fatalf("expected ErrRecursiveSubform, got %v", err)
	}
}

func TestRenderCancelledContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := testsupport.CancelledContext()
	defer cancel()
	if err := h.renderer.Render(ctx, &bytes.Buffer{}, render.Request{Form: testsupport.ContactForm()}); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
