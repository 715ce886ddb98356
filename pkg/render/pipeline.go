package render

import (
	"github.com/goliatone/go-formrender/pkg/layout"
	"github.com/goliatone/go-formrender/pkg/model"
)

func (s *session) defaultDisplay(run *formRun) {
	fields := run.form.SortedFields()
	plan := layout.Compute(fields, run.modes.Display)
	start := Attributes{}
	if width, ok := formWidth(run.modes); ok {
		start[AttrWidth] = width
	}

	s.fragment(FragmentOutputStart, start)
	s.fragment(FragmentFormHeader, Attributes{AttrForm: run.form, AttrNamespace: run.namespace})
	for _, group := range plan.Groups {
		if group.Index > 0 && plan.SeparateBlocks() {
			s.fragment(FragmentOutputEnd, Attributes{})
			s.fragment(FragmentOutputStart, start)
		}
		s.displayGroup(run, plan, group)
	}
	s.displayFooter(run)
	s.fragment(FragmentOutputEnd, Attributes{})
}

// formWidth is the width handed to outputStart. Template layouts get none.
func formWidth(modes Modes) (string, bool) {
	switch {
	case modes.Display == model.DisplayModeTemplate:
		return "", false
	case modes.Render == model.RenderModeDisplay:
		if modes.Display == model.DisplayModeNone {
			return "", true
		}
		return "100%", true
	default:
		return "1%", true
	}
}

func (s *session) displayGroup(run *formRun, plan layout.Plan, group layout.Group) {
	if len(group.Cells) == 0 {
		return
	}
	attrs := func(field model.Field) Attributes {
		return Attributes{
			AttrForm:          run.form,
			AttrNamespace:     run.namespace,
			AttrField:         field,
			AttrGroupPosition: group.Position,
			AttrGroupIndex:    group.Index,
			AttrColspan:       plan.MCM,
			AttrIsFirst:       group.Index == 0,
			AttrIsLast:        group.Index == len(plan.Groups)-1,
		}
	}
	s.fragment(FragmentGroupStart, attrs(group.Cells[0].Field))
	for _, cell := range group.Cells {
		s.renderInputElement(run, cell)
	}
	s.fragment(FragmentGroupEnd, attrs(group.Cells[len(group.Cells)-1].Field))
}

func (s *session) renderInputElement(run *formRun, cell layout.Cell) {
	attrs := func() Attributes {
		return Attributes{
			AttrForm:      run.form,
			AttrNamespace: run.namespace,
			AttrField:     cell.Field,
			AttrIndex:     cell.Index,
			AttrColspan:   cell.Colspan,
			AttrWidth:     cell.Width,
		}
	}
	label := run.modes.Label

	s.fragment(FragmentBeforeInputElement, attrs())
	if label.LabelFirst() {
		s.labelStep(run, cell.Field, attrs())
		if !label.SameLine() {
			s.fragment(FragmentLineBetweenLabelAndField, attrs())
		}
	}
	s.fragment(FragmentBeforeField, attrs())
	s.renderField(run, cell.Field)
	s.fragment(FragmentAfterField, attrs())
	if label.LabelLast() {
		if !label.SameLine() {
			s.fragment(FragmentLineBetweenLabelAndField, attrs())
		}
		s.labelStep(run, cell.Field, attrs())
	}
	s.fragment(FragmentAfterInputElement, attrs())
}

func (s *session) labelStep(run *formRun, field model.Field, attrs Attributes) {
	attrs[AttrRenderHolderColor] = run.form.BindingColor(field.Name)
	s.fragment(FragmentBeforeLabel, attrs)
	s.renderLabel(run, field)
	s.fragment(FragmentAfterLabel, attrs)
}

// displayFooter runs only for editable and search renders.
func (s *session) displayFooter(run *formRun) {
	if run.modes.Render != model.RenderModeForm && run.modes.Render != model.RenderModeSearch {
		return
	}
	name := model.RefresherName(run.namespace, run.form.ID)
	uid := name
	if s.r.uidPrefix != "" {
		uid = s.r.uidPrefix + model.NamespaceSeparator + name
	}
	attrs := Attributes{
		AttrForm:      run.form,
		AttrNamespace: run.namespace,
		AttrName:      name,
		AttrUID:       uid,
	}
	if run.form.DisplayMode == model.DisplayModeTemplate {
		s.fragment(FragmentTemplateFormFooter, attrs)
		return
	}
	s.fragment(FragmentFormFooter, attrs)
}
