// Package fragments renders the decoration fragments and field includes of
// a form through pongo2 templates. A default HTML table bundle is embedded;
// themes and callers can replace any template by name.
package fragments
