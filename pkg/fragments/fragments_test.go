package fragments_test

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formrender/pkg/fragments"
	"github.com/goliatone/go-formrender/pkg/model"
	"github.com/goliatone/go-formrender/pkg/render"
	"github.com/goliatone/go-formrender/pkg/testsupport"
)

func TestEmbeddedBundleCoversDefaultTargets(t *testing.T) {
	files := fragments.Templates()
	for _, name := range []string{
		"fragments/outputStart.tmpl",
		"fragments/formFooter.tmpl",
		"fields/input-text.tmpl",
		"fields/input-number.tmpl",
		"fields/textarea.tmpl",
		"fields/checkbox.tmpl",
		"fields/display.tmpl",
		"fields/display-boolean.tmpl",
		"fields/search.tmpl",
		"fields/select.tmpl",
	} {
		if _, err := fs.Stat(files, name); err != nil {
			t.Fatalf("expected %s in bundle: %v", name, err)
		}
	}
}

func TestSetRendersFormWithDefaultBundle(t *testing.T) {
	set, err := fragments.New()
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	renderer, err := render.New(testsupport.NewCountingStore(), render.WithHooks(set))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	var buf bytes.Buffer
	err = renderer.Render(testsupport.Context(), &buf, render.Request{
		Form:       testsupport.ContactForm(),
		Namespace:  "ns",
		FormValues: map[string]any{"email": "ada@example.com"},
		Readonly:   true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<table class="formrender" width="1%">`,
		`<tr data-group="1">`,
		`<td colspan="1" width="50%">`,
		`<input type="text" name="ns:contact:name" id="formrender:ns:contact:name" value="" readonly required/>`,
		`<input type="email" name="ns:contact:email" id="formrender:ns:contact:email" value="ada@example.com" readonly/>`,
		`<textarea name="ns:contact:notes" id="formrender:ns:contact:notes" readonly></textarea>`,
		`<input type="hidden" name="ns:contact::initialFormRefresher" id="formrender:ns:contact::initialFormRefresher" value="true"/>`,
		`</table>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSetMissingFragmentWritesNothing(t *testing.T) {
	set, err := fragments.New(fragments.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	var buf bytes.Buffer
	if err := set.Fragment(&buf, "groupStart", render.Attributes{}); err != nil {
		t.Fatalf("fragment: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestSetMissingIncludeFails(t *testing.T) {
	set, err := fragments.New(fragments.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	err = set.Include(&bytes.Buffer{}, "fields/hologram", render.Attributes{})
	if !errors.Is(err, fragments.ErrUnknownInclude) {
		t.Fatalf("expected ErrUnknownInclude, got %v", err)
	}
}

func TestSetThemeOverrides(t *testing.T) {
	files := fstest.MapFS{
		"fragments/outputStart.tmpl": {Data: []byte(`<div style="{{ theme.cssVarsStyle }}" data-theme="{{ theme.name }}-{{ theme.variant }}">`)},
		"acme/group.tmpl":            {Data: []byte(`<section data-brand="{{ theme.tokens.brand }}">`)},
		"acme/text.tmpl":             {Data: []byte(`<x-text name="{{ field.name }}" src="{{ asset("icon.svg") }}"/>`)},
		"acme/plain-text.tmpl":       {Data: []byte(`<plain/>`)},
	}
	cfg := &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens:  map[string]string{"brand": "#123456"},
		CSSVars: map[string]string{"--brand": "#123456", "--accent": "#fff"},
		Partials: map[string]string{
			"fragments.groupStart": "acme/group",
			"fields.input-text":    "acme/plain-text",
		},
		AssetURL: func(key string) string { return "/themes/acme/" + key },
	}
	set, err := fragments.New(
		fragments.WithFS(files),
		fragments.WithTheme(cfg),
		fragments.WithPartials(map[string]string{"fields/input-text": "acme/text"}),
	)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}

	var buf bytes.Buffer
	if err := set.Fragment(&buf, render.FragmentOutputStart, render.Attributes{}); err != nil {
		t.Fatalf("outputStart: %v", err)
	}
	if err := set.Fragment(&buf, render.FragmentGroupStart, render.Attributes{}); err != nil {
		t.Fatalf("groupStart: %v", err)
	}
	if err := set.Include(&buf, "fields/input-text", render.Attributes{
		render.AttrField: model.Field{Name: "city"},
	}); err != nil {
		t.Fatalf("include: %v", err)
	}

	want := `<div style="--accent: #fff; --brand: #123456;" data-theme="acme-dark">` +
		`<section data-brand="#123456">` +
		`<x-text name="city" src="/themes/acme/icon.svg"/>`
	if got := buf.String(); got != want {
		t.Fatalf("themed output mismatch\nwant: %q\n got: %q", want, got)
	}
	if got := set.Template("fragments/groupStart"); got != "acme/group" {
		t.Fatalf("unexpected template resolution %q", got)
	}
}
