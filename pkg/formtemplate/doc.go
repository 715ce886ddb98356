// Package formtemplate turns a form template body into rendering
// instructions and replays them against a Target. A body is free text with
// embedded references of the shape $field{name} and $label{name}; anything
// that does not form a complete reference is kept as literal text.
package formtemplate
