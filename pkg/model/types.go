package model

import (
	"sort"
	"strings"
)

// Field models a single typed entry of a Form.
type Field struct {
	Name              string `json:"name" yaml:"name"`
	Type              string `json:"type" yaml:"type"`
	Label             string `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey          string `json:"labelKey,omitempty" yaml:"labelKey,omitempty"`
	Position          int    `json:"position" yaml:"position"`
	GroupWithPrevious bool   `json:"groupWithPrevious,omitempty" yaml:"groupWithPrevious,omitempty"`
	Required          bool   `json:"required,omitempty" yaml:"required,omitempty"`
	CSSStyle          string `json:"cssStyle,omitempty" yaml:"cssStyle,omitempty"`
	LabelCSSStyle     string `json:"labelCssStyle,omitempty" yaml:"labelCssStyle,omitempty"`
	LabelCSSClass     string `json:"labelCssClass,omitempty" yaml:"labelCssClass,omitempty"`
	// SubformID names the nested form of a sub-form field in a catalog.
	SubformID string `json:"subform,omitempty" yaml:"subform,omitempty"`
	// Subform holds the resolved nested form.
	Subform *Form `json:"-" yaml:"-"`
}

// Form is the top-level definition renderers consume.
type Form struct {
	ID            string            `json:"id" yaml:"id"`
	Name          string            `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayMode   DisplayMode       `json:"displayMode,omitempty" yaml:"displayMode,omitempty"`
	LabelMode     LabelMode         `json:"labelMode,omitempty" yaml:"labelMode,omitempty"`
	Template      string            `json:"template,omitempty" yaml:"template,omitempty"`
	Fields        []Field           `json:"fields" yaml:"fields"`
	BindingColors map[string]string `json:"bindingColors,omitempty" yaml:"bindingColors,omitempty"`
}

// Field returns the field with the supplied name.
func (f *Form) Field(name string) (Field, bool) {
	if f == nil {
		return Field{}, false
	}
	name = strings.TrimSpace(name)
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// SortedFields returns a copy of the fields ordered by Position. Fields
// sharing a position keep their declaration order.
func (f *Form) SortedFields() []Field {
	if f == nil || len(f.Fields) == 0 {
		return nil
	}
	sorted := append([]Field(nil), f.Fields...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// BindingColor returns the colour hint bound to a field, or "" when none is
// configured.
func (f *Form) BindingColor(fieldName string) string {
	if f == nil || len(f.BindingColors) == 0 {
		return ""
	}
	return f.BindingColors[fieldName]
}
