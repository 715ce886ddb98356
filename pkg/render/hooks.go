package render

import "io"

// Attributes are the values passed to hooks for one call.
type Attributes map[string]any

// Hooks produce markup around structural transitions and render fields.
// Fragment is called by name at every transition; implementations may emit
// nothing for names they do not know. Include renders a field through a
// field type's include target and must fail when the target is unknown.
type Hooks interface {
	Fragment(w io.Writer, name string, attrs Attributes) error
	Include(w io.Writer, target string, attrs Attributes) error
}

// Fragment names.
const (
	FragmentOutputStart              = "outputStart"
	FragmentOutputEnd                = "outputEnd"
	FragmentFormHeader               = "formHeader"
	FragmentFormFooter               = "formFooter"
	FragmentTemplateFormFooter       = "templateFormFooter"
	FragmentFormErrors               = "formErrors"
	FragmentGroupStart               = "groupStart"
	FragmentGroupEnd                 = "groupEnd"
	FragmentBeforeInputElement       = "beforeInputElement"
	FragmentAfterInputElement        = "afterInputElement"
	FragmentBeforeLabel              = "beforeLabel"
	FragmentAfterLabel               = "afterLabel"
	FragmentLineBetweenLabelAndField = "lineBetweenLabelAndField"
	FragmentBeforeField              = "beforeField"
	FragmentAfterField               = "afterField"
	FragmentBeforeWrongField         = "beforeWrongField"
	FragmentAfterWrongField          = "afterWrongField"
	FragmentBeforeRequiredField      = "beforeRequiredField"
	FragmentAfterRequiredField       = "afterRequiredField"
	FragmentAfterRequiredLabel       = "afterRequiredLabel"
	FragmentBeforeFieldInTemplate    = "beforeFieldInTemplateMode"
	FragmentAfterFieldInTemplate     = "afterFieldInTemplateMode"
	FragmentBeforeLabelInTemplate    = "beforeLabelInTemplateMode"
	FragmentAfterLabelInTemplate     = "afterLabelInTemplateMode"
)

// Attribute keys.
const (
	AttrForm              = "form"
	AttrField             = "field"
	AttrFieldName         = "fieldName"
	AttrNamespace         = "namespace"
	AttrWidth             = "width"
	AttrColspan           = "colspan"
	AttrIndex             = "index"
	AttrGroupPosition     = "groupPosition"
	AttrGroupIndex        = "groupIndex"
	AttrIsFirst           = "isFirst"
	AttrIsLast            = "isLast"
	AttrRenderHolderColor = "renderHolderColor"
	AttrName              = "name"
	AttrUID               = "uid"
	AttrValue             = "value"
	AttrInputValue        = "inputValue"
	AttrFieldIsWrong      = "fieldIsWrong"
	AttrRenderMode        = "renderMode"
	AttrFieldIsDisabled   = "fieldIsDisabled"
	AttrFieldIsReadonly   = "fieldIsReadonly"
	AttrWrongFields       = "wrongFields"
)
