package render

import (
	"github.com/goliatone/go-formrender/pkg/formtemplate"
)

func (s *session) templateDisplay(run *formRun) {
	instructions := s.r.templates.Instructions(run.form.Template)
	if err := formtemplate.Execute(instructions, &templateTarget{s: s, run: run}); err != nil {
		s.fail(err)
		return
	}
	s.displayFooter(run)
}

// templateTarget replays template instructions into a session. Unknown
// references are written back as placeholders so the template stays
// editable.
type templateTarget struct {
	s   *session
	run *formRun
}

func (t *templateTarget) WriteText(text string) error {
	t.s.write(text)
	return t.s.err
}

func (t *templateTarget) RenderField(name string) error {
	field, ok := t.run.form.Field(name)
	attrs := t.attrs(name, field, ok)
	t.s.fragment(FragmentBeforeFieldInTemplate, attrs)
	if ok {
		t.s.renderField(t.run, field)
	} else {
		t.s.write(formtemplate.FieldPlaceholder(name))
	}
	t.s.fragment(FragmentAfterFieldInTemplate, attrs)
	return t.s.err
}

func (t *templateTarget) RenderLabel(name string) error {
	field, ok := t.run.form.Field(name)
	attrs := t.attrs(name, field, ok)
	t.s.fragment(FragmentBeforeLabelInTemplate, attrs)
	if ok {
		t.s.renderLabel(t.run, field)
	} else {
		t.s.write(formtemplate.LabelPlaceholder(name))
	}
	t.s.fragment(FragmentAfterLabelInTemplate, attrs)
	return t.s.err
}

func (t *templateTarget) attrs(name string, field any, known bool) Attributes {
	attrs := Attributes{
		AttrForm:      t.run.form,
		AttrNamespace: t.run.namespace,
		AttrFieldName: name,
	}
	if known {
		attrs[AttrField] = field
	}
	return attrs
}
