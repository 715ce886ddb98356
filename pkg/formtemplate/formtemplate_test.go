package formtemplate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrender/pkg/formtemplate"
)

func TestParse(t *testing.T) {
	got := formtemplate.Parse(`<p>$label{name}: $field{name}</p><i>$field{ email }</i>`)
	want := []formtemplate.Instruction{
		formtemplate.Text("<p>"),
		formtemplate.LabelRef("name"),
		formtemplate.Text(": "),
		formtemplate.FieldRef("name"),
		formtemplate.Text("</p><i>"),
		formtemplate.FieldRef("email"),
		formtemplate.Text("</i>"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKeepsMalformedReferencesAsText(t *testing.T) {
	body := `cost $5 $field{} $label{open $other{x} $field{a`
	got := formtemplate.Parse(body)
	want := []formtemplate.Instruction{formtemplate.Text(body)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	if got := formtemplate.Parse(""); len(got) != 0 {
		t.Fatalf("expected no instructions, got %v", got)
	}
}

type recordingTarget struct {
	calls []string
	fail  string
}

func (r *recordingTarget) WriteText(text string) error {
	r.calls = append(r.calls, "text:"+text)
	return nil
}

func (r *recordingTarget) RenderField(name string) error {
	if name == r.fail {
		return errors.New("boom")
	}
	r.calls = append(r.calls, "field:"+name)
	return nil
}

func (r *recordingTarget) RenderLabel(name string) error {
	r.calls = append(r.calls, "label:"+name)
	return nil
}

func TestExecuteReplaysInOrder(t *testing.T) {
	target := &recordingTarget{}
	err := formtemplate.Execute(formtemplate.Parse("a$label{x}b$field{x}"), target)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := []string{"text:a", "label:x", "text:b", "field:x"}
	if diff := cmp.Diff(want, target.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteStopsOnError(t *testing.T) {
	target := &recordingTarget{fail: "x"}
	err := formtemplate.Execute(formtemplate.Parse("$field{x}tail"), target)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected target error, got %v", err)
	}
	if len(target.calls) != 0 {
		t.Fatalf("expected no calls after failure, got %v", target.calls)
	}
}

func TestPlaceholders(t *testing.T) {
	if got := formtemplate.FieldPlaceholder("foo"); got != "$field{foo}" {
		t.Fatalf("unexpected field placeholder %q", got)
	}
	if got := formtemplate.LabelPlaceholder("foo"); got != "$label{foo}" {
		t.Fatalf("unexpected label placeholder %q", got)
	}
}

func TestCacheReusesParsedBodies(t *testing.T) {
	cache := formtemplate.NewCache()
	first := cache.Instructions("$field{a}")
	second := cache.Instructions("$field{a}")
	if cache.Len() != 1 {
		t.Fatalf("expected one cached body, got %d", cache.Len())
	}
	if &first[0] != &second[0] {
		t.Fatalf("expected cached slice to be reused")
	}
}
