package render

import "github.com/goliatone/go-formrender/pkg/model"

// LinkWildcard keys the link applied to every field without its own.
const LinkWildcard = "*"

// Link wraps a displayed field value in an anchor.
type Link struct {
	URL     string
	OnClick string
}

// Request describes one render.
type Request struct {
	Form        *model.Form
	Namespace   string
	RenderMode  model.RenderMode
	LabelMode   model.LabelMode
	DisplayMode model.DisplayMode
	// ForceLabelMode keeps LabelMode even when the form configures its own.
	ForceLabelMode bool
	// ReuseStatus keeps the namespace's existing status when true or nil.
	// False clears it and reloads FormValues.
	ReuseStatus *bool
	FormValues  map[string]any
	IsSubForm   bool
	IsMultiple  bool
	Disabled    bool
	Readonly    bool
	// Links are keyed by field name, or LinkWildcard for every field.
	Links  map[string]Link
	Locale string
	// Context is shared with nested renders. A fresh one is used when nil.
	Context *RenderingContext
}

func (req Request) modeRequest() ModeRequest {
	return ModeRequest{
		RenderMode:     req.RenderMode,
		LabelMode:      req.LabelMode,
		DisplayMode:    req.DisplayMode,
		ForceLabelMode: req.ForceLabelMode,
	}
}

// link resolves the URL and onclick handler for a field. A field-specific
// value wins over the wildcard; each part resolves on its own.
func (req Request) link(fieldName string) Link {
	if len(req.Links) == 0 {
		return Link{}
	}
	specific := req.Links[fieldName]
	wildcard := req.Links[LinkWildcard]
	out := specific
	if out.URL == "" {
		out.URL = wildcard.URL
	}
	if out.OnClick == "" {
		out.OnClick = wildcard.OnClick
	}
	return out
}

func (req Request) formMode(renderMode model.RenderMode) string {
	if !renderMode.IsEdit() {
		return string(renderMode)
	}
	if req.FormValues != nil {
		return "edit"
	}
	return "create"
}
