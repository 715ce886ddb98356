// Package template defines the template engine seam used by fragment hooks.
// Engines live in subpackages.
package template
