package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrender/pkg/model"
)

func TestSortedFieldsKeepsDeclarationOrderOnTies(t *testing.T) {
	form := &model.Form{
		ID: "contact",
		Fields: []model.Field{
			{Name: "c", Position: 2},
			{Name: "a", Position: 1},
			{Name: "d", Position: 2},
			{Name: "b", Position: 1},
		},
	}

	var got []string
	for _, field := range form.SortedFields() {
		got = append(got, field.Name)
	}
	want := []string{"a", "b", "c", "d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted order mismatch (-want +got):\n%s", diff)
	}
	if form.Fields[0].Name != "c" {
		t.Fatalf("SortedFields must not reorder the form itself")
	}
}

func TestFormFieldLookup(t *testing.T) {
	form := &model.Form{Fields: []model.Field{{Name: "email", Label: "Email"}}}

	field, ok := form.Field("email")
	if !ok || field.Label != "Email" {
		t.Fatalf("expected email field, got %+v (ok=%v)", field, ok)
	}
	if _, ok := form.Field("missing"); ok {
		t.Fatalf("expected missing field lookup to fail")
	}

	var nilForm *model.Form
	if _, ok := nilForm.Field("email"); ok {
		t.Fatalf("nil form must not resolve fields")
	}
}

func TestNamespaceHelpers(t *testing.T) {
	if got := model.FieldKey("ns", "contact", "email"); got != "ns:contact:email" {
		t.Fatalf("unexpected field key %q", got)
	}
	if got := model.RefresherName("ns", "contact"); got != "ns:contact::initialFormRefresher" {
		t.Fatalf("unexpected refresher name %q", got)
	}

	cases := map[string]bool{
		"orders": true,
		"_x":     true,
		"$ns":    true,
		"9lives": false,
		"-dash":  false,
		"":       false,
	}
	for ns, want := range cases {
		if got := model.ValidNamespaceStart(ns); got != want {
			t.Errorf("ValidNamespaceStart(%q) = %v, want %v", ns, got, want)
		}
	}
}

func TestModeHelpers(t *testing.T) {
	if !model.LabelModeLeft.SameLine() || model.LabelModeBefore.SameLine() {
		t.Fatalf("same-line detection mismatch")
	}
	if !model.RenderModeWysiwygForm.IsEdit() || model.RenderModeSearch.IsEdit() {
		t.Fatalf("edit detection mismatch")
	}
	if !model.RenderModeWysiwygDisplay.IsDisplay() || model.RenderModeForm.IsDisplay() {
		t.Fatalf("display detection mismatch")
	}
	if model.DisplayMode("grid").Valid() || !model.DisplayModeTemplate.Valid() {
		t.Fatalf("display mode validation mismatch")
	}
}
