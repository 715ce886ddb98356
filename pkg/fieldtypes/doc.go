// Package fieldtypes is the capability table the renderer consults for each
// field. A Descriptor names the include target used to render the field for
// editing, display, and search, and the value class that decides whether raw
// submitted input can stand in for a missing typed value.
package fieldtypes
