package model

import "unicode"

const (
	// DefaultNamespace replaces empty namespaces supplied by callers.
	DefaultNamespace = "formrender_default"
	// NamespaceSeparator joins namespace, form id, and field name segments.
	NamespaceSeparator = ":"
	// FormModeKey carries the create/edit marker inside loaded form values.
	FormModeKey = "_formMode"

	refresherSuffix = ":initialFormRefresher"
)

// FieldKey builds the namespaced key used for raw input values and attribute
// lookups: namespace:formID:fieldName.
func FieldKey(namespace, formID, fieldName string) string {
	return namespace + NamespaceSeparator + formID + NamespaceSeparator + fieldName
}

// RefresherName builds the footer refresher token for a form render.
func RefresherName(namespace, formID string) string {
	return FieldKey(namespace, formID, refresherSuffix)
}

// ValidNamespaceStart reports whether the namespace begins with a letter,
// underscore, or dollar sign. Other leading characters break element ids in
// some browsers.
func ValidNamespaceStart(namespace string) bool {
	for _, r := range namespace {
		return unicode.IsLetter(r) || r == '_' || r == '$'
	}
	return false
}
