// Package model defines the form definition types the rendering engine
// consumes. A Form is an immutable, ordered collection of typed Fields plus
// the layout preferences configured by its author (display mode, label mode,
// template body). Forms are owned by the caller; renderers only read them.
//
// The render, label, and display mode enumerations are closed string sets.
// The empty string means "not supplied" and lets the mode resolver fall back
// to form or engine defaults.
package model
