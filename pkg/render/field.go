package render

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formrender/pkg/fieldtypes"
	"github.com/goliatone/go-formrender/pkg/formtemplate"
	"github.com/goliatone/go-formrender/pkg/model"
	"github.com/goliatone/go-formrender/pkg/status"
)

// FieldContainerStyle is the inline style of field and label containers
// unless the effective CSS hides them.
const FieldContainerStyle = "padding-top: 3px; padding-right:3px;"

const (
	cssStyleAttribute      = ".cssStyle"
	labelCSSStyleAttribute = ".labelCSSStyle"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

// containerStyle returns "display:none" when css hides the element.
func containerStyle(css string) string {
	compact := strings.ReplaceAll(strings.ToLower(css), " ", "")
	for _, declaration := range strings.Split(compact, ";") {
		if declaration == "display:none" {
			return declaration
		}
	}
	return FieldContainerStyle
}

// styleOverride reads a per-field CSS override from the status attributes.
func styleOverride(data *status.FormStatusData, key string) (string, bool) {
	value, ok := data.Attribute(key)
	if !ok || value == nil {
		return "", false
	}
	return fmt.Sprint(value), true
}

func fieldCSS(field model.Field, descriptor fieldtypes.Descriptor, data *status.FormStatusData) string {
	css := descriptor.CSSStyle
	if field.CSSStyle != "" {
		css = field.CSSStyle
	}
	if override, ok := styleOverride(data, field.Name+cssStyleAttribute); ok {
		css = override
	}
	return css
}

func (s *session) openContainer(id, css string) {
	s.write(`<div style="` + html.EscapeString(containerStyle(css)) + `" id="` + html.EscapeString(id) + `">`)
}

func (s *session) closeContainer() {
	s.write("</div>")
}

func (s *session) renderField(run *formRun, field model.Field) {
	if s.err != nil {
		return
	}
	descriptor, ok := s.r.types.Lookup(field.Type)
	if !ok {
		s.fail(fmt.Errorf("%w %q for field %q", ErrUnknownFieldType, field.Type, field.Name))
		return
	}
	data := s.readStatus(run)
	if data == nil {
		return
	}
	uid := s.uid(run.namespace, run.form.ID, field.Name)

	s.openContainer(uid+"_container", fieldCSS(field, descriptor, data))
	defer s.closeContainer()

	if descriptor.Kind == fieldtypes.KindSubform {
		s.renderSubform(run, field, data)
		return
	}

	target := descriptor.Target(run.modes.Render)
	if target == "" {
		if run.modes.Render == model.RenderModeTemplateEdit {
			s.write(formtemplate.FieldPlaceholder(field.Name))
			return
		}
		s.r.logger.Warn("field type has no target for render mode",
			zap.String("form", run.form.ID),
			zap.String("field", field.Name),
			zap.String("type", descriptor.ID),
			zap.String("render_mode", string(run.modes.Render)))
		return
	}

	wrong := data.IsWrong(field.Name)
	attrs := s.fieldAttributes(run, field, descriptor, data, uid, wrong)
	marker := Attributes{AttrForm: run.form, AttrField: field, AttrNamespace: run.namespace}

	if wrong {
		s.fragment(FragmentBeforeWrongField, marker)
	}
	if field.Required {
		s.fragment(FragmentBeforeRequiredField, marker)
	}
	link := run.req.link(field.Name)
	linked := link.URL != "" && run.modes.Render == model.RenderModeDisplay
	if linked {
		s.write(` <a href="` + html.EscapeString(link.URL) + `"`)
		if link.OnClick != "" {
			s.write(` onclick="` + html.EscapeString(link.OnClick) + `"`)
		}
		s.write(">")
	}
	s.include(target, attrs)
	if linked {
		s.write("</a>")
	}
	if field.Required {
		s.fragment(FragmentAfterRequiredField, marker)
	}
	if wrong {
		s.fragment(FragmentAfterWrongField, marker)
	}
}

func (s *session) fieldAttributes(run *formRun, field model.Field, descriptor fieldtypes.Descriptor, data *status.FormStatusData, uid string, wrong bool) Attributes {
	key := model.FieldKey(run.namespace, run.form.ID, field.Name)
	input := data.InputValue(key)
	value := data.CurrentValue(field.Name)
	if value == nil && descriptor.IsString() && len(input) > 0 {
		value = input[0]
	}
	attrs := Attributes{
		AttrForm:         run.form,
		AttrField:        field,
		AttrNamespace:    run.namespace,
		AttrName:         key,
		AttrUID:          uid,
		AttrValue:        value,
		AttrInputValue:   input,
		AttrFieldIsWrong: wrong,
		AttrRenderMode:   string(run.modes.Render),
	}
	if run.req.Disabled {
		attrs[AttrFieldIsDisabled] = true
	}
	if run.req.Readonly {
		attrs[AttrFieldIsReadonly] = true
	}
	return attrs
}

func (s *session) renderSubform(run *formRun, field model.Field, data *status.FormStatusData) {
	if field.Subform == nil {
		s.fail(fmt.Errorf("%w: %q", ErrMissingSubform, field.Name))
		return
	}
	var values map[string]any
	if current, ok := data.CurrentValue(field.Name).(map[string]any); ok {
		values = current
	}
	err := s.render(Request{
		Form:       field.Subform,
		Namespace:  model.FieldKey(run.namespace, run.form.ID, field.Name),
		RenderMode: run.modes.Render,
		LabelMode:  run.modes.Label,
		FormValues: values,
		IsSubForm:  true,
		Disabled:   run.req.Disabled,
		Readonly:   run.req.Readonly,
		Locale:     run.req.Locale,
	})
	if err != nil {
		s.err = err
	}
}

func (s *session) renderLabel(run *formRun, field model.Field) {
	data := s.readStatus(run)
	if data == nil {
		return
	}
	uid := s.uid(run.namespace, run.form.ID, field.Name)
	style := field.LabelCSSStyle
	if override, ok := styleOverride(data, field.Name+labelCSSStyleAttribute); ok {
		style = override
	}

	s.openContainer(uid+"_label_container", style)
	defer s.closeContainer()

	if run.modes.Render == model.RenderModeTemplateEdit {
		s.write(formtemplate.LabelPlaceholder(field.Name))
		return
	}

	display := run.modes.Render == model.RenderModeDisplay
	wrong := data.IsWrong(field.Name)
	required := field.Required && !display
	text := s.labelText(run, field)

	class := strings.TrimSpace("dynInputStyle " + field.LabelCSSClass)
	s.write(`<span id="` + html.EscapeString(uid) + `_label" class="` + html.EscapeString(class) + `"`)
	if style != "" {
		s.write(` style="` + html.EscapeString(style) + `"`)
	}
	s.write(">")
	if wrong {
		s.write(`<span class="skn-error">`)
	}
	linked := text != "" && !display
	if linked {
		s.write(`<label for="` + html.EscapeString(uid) + `">`)
	}
	if required {
		s.write("*")
	}
	s.write(text)
	if linked {
		s.write("</label>")
	}
	if required {
		s.fragment(FragmentAfterRequiredLabel, Attributes{
			AttrForm:      run.form,
			AttrField:     field,
			AttrNamespace: run.namespace,
		})
	}
	if wrong {
		s.write("</span>")
	}
	s.write("</span>")
}

func (s *session) labelText(run *formRun, field model.Field) string {
	text := field.Label
	if field.LabelKey != "" {
		text = translate(run.req.Locale, field.LabelKey, field.Label, s.r.translator, s.r.onMissing)
	}
	return labelSanitizer().Sanitize(text)
}
