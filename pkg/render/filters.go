package render

import (
	"strings"
	"unicode"

	"github.com/flosch/pongo2/v6"
)

// Built-in filters useful for code generation. Generator-registered helpers
// with the same name take precedence via ReplaceFilter.
func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("lowerfirst") {
		_ = pongo2.RegisterFilter("lowerfirst", filterLowerFirst)
	}
	if !pongo2.FilterExists("pascalcase") {
		_ = pongo2.RegisterFilter("pascalcase", filterPascalCase)
	}
	if !pongo2.FilterExists("camelcase") {
		_ = pongo2.RegisterFilter("camelcase", filterCamelCase)
	}
	if !pongo2.FilterExists("snakecase") {
		_ = pongo2.RegisterFilter("snakecase", filterSnakeCase)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterLowerFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	s := in.String()
	if s == "" {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.ToLower(s[:1]) + s[1:]), nil
}

func filterPascalCase(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(pascalCase(in.String())), nil
}

func filterCamelCase(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	s := pascalCase(in.String())
	if s == "" {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.ToLower(s[:1]) + s[1:]), nil
}

func filterSnakeCase(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var sb strings.Builder
	for i, r := range in.String() {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		case r == '-' || r == ' ':
			sb.WriteRune('_')
		default:
			sb.WriteRune(r)
		}
	}
	return pongo2.AsValue(sb.String()), nil
}

func pascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
