package fieldtypes

// Built-in type identifiers.
const (
	TypeText     = "text"
	TypeTextarea = "textarea"
	TypeEmail    = "email"
	TypeInteger  = "integer"
	TypeDecimal  = "decimal"
	TypeBoolean  = "boolean"
	TypeDate     = "date"
	TypeSelect   = "select"
	TypeSubform  = "subform"
)

const targetPrefix = "fields/"

// NewDefaultRegistry returns a registry populated with the built-in types.
// Include targets name templates under fields/ in the fragment bundle.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(TypeText, inputDescriptor(KindString, "text"))
	registry.MustRegister(TypeEmail, inputDescriptor(KindString, "email"))
	registry.MustRegister(TypeInteger, inputDescriptor(KindInteger, "number"))
	registry.MustRegister(TypeDecimal, inputDescriptor(KindDecimal, "decimal"))
	registry.MustRegister(TypeDate, inputDescriptor(KindDate, "date"))
	registry.MustRegister(TypeTextarea, Descriptor{
		EditTarget:    targetPrefix + "textarea",
		DisplayTarget: targetPrefix + "display",
		SearchTarget:  targetPrefix + "search",
		Kind:          KindString,
	})
	registry.MustRegister(TypeBoolean, Descriptor{
		EditTarget:    targetPrefix + "checkbox",
		DisplayTarget: targetPrefix + "display-boolean",
		SearchTarget:  targetPrefix + "checkbox",
		Kind:          KindBoolean,
	})
	registry.MustRegister(TypeSelect, Descriptor{
		EditTarget:    targetPrefix + "select",
		DisplayTarget: targetPrefix + "display",
		SearchTarget:  targetPrefix + "select",
		Kind:          KindString,
	})
	registry.MustRegister(TypeSubform, Descriptor{
		Kind: KindSubform,
	})

	return registry
}

func inputDescriptor(kind Kind, variant string) Descriptor {
	return Descriptor{
		EditTarget:    targetPrefix + "input-" + variant,
		DisplayTarget: targetPrefix + "display",
		SearchTarget:  targetPrefix + "search",
		Kind:          kind,
	}
}
