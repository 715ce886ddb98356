// Package status defines the per-(form, namespace) state store the renderer
// reads current values and validation failures from, plus an in-memory
// implementation suitable for tests, the CLI, and single-process servers.
package status
