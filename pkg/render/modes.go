package render

import "github.com/goliatone/go-formrender/pkg/model"

// ModeRequest carries the modes a caller asked for. Empty values mean "not
// supplied".
type ModeRequest struct {
	RenderMode     model.RenderMode
	LabelMode      model.LabelMode
	DisplayMode    model.DisplayMode
	ForceLabelMode bool
}

// Modes are the effective modes of a render.
type Modes struct {
	Render  model.RenderMode
	Label   model.LabelMode
	Display model.DisplayMode
}

// ResolveModes applies the mode precedence rules:
//
//   - render mode defaults to form;
//   - label mode defaults to before, and a label mode configured on the form
//     (other than undefined) replaces the requested one unless the request
//     forces its own;
//   - display renders always hide labels, regardless of any other source;
//   - a requested display mode wins outright, otherwise the form's applies,
//     otherwise default.
func ResolveModes(form *model.Form, req ModeRequest) Modes {
	modes := Modes{
		Render:  req.RenderMode,
		Label:   req.LabelMode,
		Display: req.DisplayMode,
	}
	if modes.Render == "" {
		modes.Render = model.RenderModeForm
	}
	if modes.Label == "" {
		modes.Label = model.LabelModeBefore
	}
	if form != nil && !req.ForceLabelMode {
		if configured := form.LabelMode; configured != "" && configured != model.LabelModeUndefined {
			modes.Label = configured
		}
	}
	if modes.Render == model.RenderModeDisplay {
		modes.Label = model.LabelModeHidden
	}
	if modes.Display == "" && form != nil {
		modes.Display = form.DisplayMode
	}
	if modes.Display == "" {
		modes.Display = model.DisplayModeDefault
	}
	return modes
}
