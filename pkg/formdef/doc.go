// Package formdef loads form definitions into a Catalog. Definitions come
// from JSON or YAML documents, or from the component schemas of an OpenAPI
// document. Sub-form fields reference other forms by id and are linked when
// the catalog is resolved.
package formdef
