package fragments

import (
	"maps"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"
)

type themeContext struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"cssVarsStyle,omitempty"`
}

func themeGlobals(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{"theme": themeContext{}}
	}
	ctx := themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  maps.Clone(cfg.Tokens),
		CSSVars: maps.Clone(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	return map[string]any{"theme": ctx}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}
