package model

// RenderMode selects how fields are presented: editable, read-only, search
// criteria, or template authoring placeholders.
type RenderMode string

const (
	RenderModeForm           RenderMode = "form"
	RenderModeWysiwygForm    RenderMode = "wysiwyg-form"
	RenderModeDisplay        RenderMode = "display"
	RenderModeWysiwygDisplay RenderMode = "wysiwyg-display"
	RenderModeSearch         RenderMode = "search"
	RenderModeTemplateEdit   RenderMode = "templateEdit"
)

// Valid reports whether the mode is one of the known render modes.
func (m RenderMode) Valid() bool {
	switch m {
	case RenderModeForm, RenderModeWysiwygForm, RenderModeDisplay,
		RenderModeWysiwygDisplay, RenderModeSearch, RenderModeTemplateEdit:
		return true
	default:
		return false
	}
}

// IsEdit reports whether the mode renders editable inputs.
func (m RenderMode) IsEdit() bool {
	return m == RenderModeForm || m == RenderModeWysiwygForm
}

// IsDisplay reports whether the mode renders read-only values.
func (m RenderMode) IsDisplay() bool {
	return m == RenderModeDisplay || m == RenderModeWysiwygDisplay
}

// LabelMode places a field label relative to its input.
type LabelMode string

const (
	LabelModeBefore    LabelMode = "before"
	LabelModeAfter     LabelMode = "after"
	LabelModeLeft      LabelMode = "left"
	LabelModeRight     LabelMode = "right"
	LabelModeHidden    LabelMode = "hidden"
	LabelModeUndefined LabelMode = "undefined"
)

// Valid reports whether the mode is one of the known label modes.
func (m LabelMode) Valid() bool {
	switch m {
	case LabelModeBefore, LabelModeAfter, LabelModeLeft, LabelModeRight,
		LabelModeHidden, LabelModeUndefined:
		return true
	default:
		return false
	}
}

// SameLine reports whether label and field share a line, which suppresses
// the separator fragment between them.
func (m LabelMode) SameLine() bool {
	return m == LabelModeLeft || m == LabelModeRight
}

// LabelFirst reports whether the label is emitted ahead of the field.
func (m LabelMode) LabelFirst() bool {
	return m == LabelModeBefore || m == LabelModeLeft
}

// LabelLast reports whether the label is emitted after the field.
func (m LabelMode) LabelLast() bool {
	return m == LabelModeAfter || m == LabelModeRight
}

// DisplayMode selects the layout algorithm.
type DisplayMode string

const (
	DisplayModeDefault  DisplayMode = "default"
	DisplayModeAligned  DisplayMode = "aligned"
	DisplayModeNone     DisplayMode = "none"
	DisplayModeTemplate DisplayMode = "template"
)

// Valid reports whether the mode is one of the known display modes.
func (m DisplayMode) Valid() bool {
	switch m {
	case DisplayModeDefault, DisplayModeAligned, DisplayModeNone, DisplayModeTemplate:
		return true
	default:
		return false
	}
}
