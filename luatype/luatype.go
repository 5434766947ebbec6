// Package luatype maps Java types to the type names used in Lua
// language-server annotations.
package luatype

import "strings"

// Lua type names produced by Map.
const (
	None     = ""
	Any      = "any"
	Variadic = "any..."
	Boolean  = "boolean"
	Number   = "number"
	String   = "string"
	Table    = "table"
)

var javaToLua = map[string]string{
	"void":                None,
	"boolean":             Boolean,
	"Boolean":             Boolean,
	"int":                 Number,
	"Integer":             Number,
	"long":                Number,
	"Long":                Number,
	"double":              Number,
	"Double":              Number,
	"float":               Number,
	"Float":               Number,
	"String":              String,
	"Map":                 Table,
	"LuaTable":            Table,
	"Object[]":            Variadic,
	"ByteBuffer":          String,
	"Coerced<String>":     String,
	"Coerced<ByteBuffer>": String,
	"IArguments":          Variadic,
}

var optionalMarkers = []string{"Optional<", "Nullable"}

// Map converts a Java type to its Lua counterpart. Unknown types map to
// Any; void maps to None.
func Map(javaType string) string {
	raw := strings.Join(strings.Fields(javaType), "")
	if lua, ok := javaToLua[raw]; ok {
		return lua
	}

	if inner, ok := unwrap(raw, "Optional"); ok {
		return Map(inner)
	}

	name := stripGenerics(raw)
	if strings.Contains(name, "[]") || strings.HasSuffix(name, "...") {
		return Variadic
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if lua, ok := javaToLua[name]; ok {
		return lua
	}
	return Any
}

// IsOptional reports whether the raw type text marks the value as
// optional, either through Optional<...> or a @Nullable annotation.
func IsOptional(javaType string) bool {
	for _, marker := range optionalMarkers {
		if strings.Contains(javaType, marker) {
			return true
		}
	}
	return false
}

// unwrap returns T for wrapper<T>.
func unwrap(t, wrapper string) (string, bool) {
	prefix := wrapper + "<"
	if !strings.HasPrefix(t, prefix) || !strings.HasSuffix(t, ">") {
		return "", false
	}
	return t[len(prefix) : len(t)-1], true
}

// stripGenerics removes every <...> section, honouring nesting.
func stripGenerics(t string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range t {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
