package formdef

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formrender/pkg/fieldtypes"
	"github.com/goliatone/go-formrender/pkg/model"
)

// ExtensionKey is the vendor extension read from schemas and properties.
//
// On a schema: displayMode, labelMode, template, label, skip.
// On a property: type, label, labelKey, position, groupWithPrevious,
// cssStyle, labelCssStyle, labelCssClass, skip.
const ExtensionKey = "x-formrender"

const componentRefPrefix = "#/components/schemas/"

// FromOpenAPI derives one form per object schema under components.schemas.
// Properties that reference another component become sub-form fields.
func FromOpenAPI(ctx context.Context, data []byte) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("formdef: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("formdef: load openapi document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("formdef: openapi document has no component schemas")
	}

	catalog := NewCatalog()
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil || !hasType(ref.Value.Type, openapi3.TypeObject) {
			continue
		}
		ext := extension(ref.Value.Extensions)
		if truthy(ext["skip"]) {
			continue
		}
		form := formFromSchema(name, ref.Value, ext)
		if err := catalog.Add(form, componentRefPrefix+name); err != nil {
			return nil, err
		}
	}
	if err := catalog.Resolve(); err != nil {
		return nil, err
	}
	return catalog, nil
}

type propertyField struct {
	field       model.Field
	position    int
	hasPosition bool
}

func formFromSchema(name string, schema *openapi3.Schema, ext map[string]any) model.Form {
	form := model.Form{
		ID:          name,
		Name:        firstNonEmpty(stringValue(ext["label"]), schema.Title, name),
		DisplayMode: model.DisplayMode(stringValue(ext["displayMode"])),
		LabelMode:   model.LabelMode(stringValue(ext["labelMode"])),
		Template:    stringValue(ext["template"]),
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, key := range schema.Required {
		required[key] = struct{}{}
	}

	var props []propertyField
	for propName, propRef := range schema.Properties {
		if propRef == nil || propRef.Value == nil {
			continue
		}
		propExt := extension(propRef.Value.Extensions)
		if truthy(propExt["skip"]) {
			continue
		}
		fieldType, subformID, ok := fieldType(propRef, propExt)
		if !ok {
			continue
		}
		_, isRequired := required[propName]
		field := model.Field{
			Name:              propName,
			Type:              fieldType,
			Label:             firstNonEmpty(stringValue(propExt["label"]), propRef.Value.Title, propName),
			LabelKey:          stringValue(propExt["labelKey"]),
			GroupWithPrevious: truthy(propExt["groupWithPrevious"]),
			Required:          isRequired,
			CSSStyle:          stringValue(propExt["cssStyle"]),
			LabelCSSStyle:     stringValue(propExt["labelCssStyle"]),
			LabelCSSClass:     stringValue(propExt["labelCssClass"]),
			SubformID:         subformID,
		}
		position, hasPosition := toInt(propExt["position"])
		props = append(props, propertyField{field: field, position: position, hasPosition: hasPosition})
	}

	slices.SortFunc(props, func(a, b propertyField) int {
		switch {
		case a.hasPosition && !b.hasPosition:
			return -1
		case !a.hasPosition && b.hasPosition:
			return 1
		case a.hasPosition && a.position != b.position:
			return a.position - b.position
		}
		return strings.Compare(a.field.Name, b.field.Name)
	})
	for idx, prop := range props {
		prop.field.Position = idx
		form.Fields = append(form.Fields, prop.field)
	}
	return form
}

// fieldType maps a property schema onto a built-in field type. Arrays and
// untyped properties have no form representation and are skipped.
func fieldType(ref *openapi3.SchemaRef, ext map[string]any) (string, string, bool) {
	if strings.HasPrefix(ref.Ref, componentRefPrefix) && hasType(ref.Value.Type, openapi3.TypeObject) {
		return fieldtypes.TypeSubform, strings.TrimPrefix(ref.Ref, componentRefPrefix), true
	}
	if override := stringValue(ext["type"]); override != "" {
		return override, "", true
	}
	schema := ref.Value
	switch {
	case len(schema.Enum) > 0:
		return fieldtypes.TypeSelect, "", true
	case hasType(schema.Type, openapi3.TypeString):
		switch schema.Format {
		case "email":
			return fieldtypes.TypeEmail, "", true
		case "date", "date-time":
			return fieldtypes.TypeDate, "", true
		}
		if schema.MaxLength != nil && *schema.MaxLength > 255 {
			return fieldtypes.TypeTextarea, "", true
		}
		return fieldtypes.TypeText, "", true
	case hasType(schema.Type, openapi3.TypeInteger):
		return fieldtypes.TypeInteger, "", true
	case hasType(schema.Type, openapi3.TypeNumber):
		return fieldtypes.TypeDecimal, "", true
	case hasType(schema.Type, openapi3.TypeBoolean):
		return fieldtypes.TypeBoolean, "", true
	default:
		return "", "", false
	}
}

func hasType(types *openapi3.Types, want string) bool {
	if types == nil {
		return false
	}
	return slices.Contains(types.Slice(), want)
}

func extension(raw map[string]any) map[string]any {
	value, ok := raw[ExtensionKey]
	if !ok {
		return nil
	}
	mapped, _ := value.(map[string]any)
	return mapped
}

func stringValue(value any) string {
	s, _ := value.(string)
	return strings.TrimSpace(s)
}

func truthy(value any) bool {
	b, _ := value.(bool)
	return b
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
