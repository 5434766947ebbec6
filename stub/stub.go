// Package stub renders extracted peripherals as Lua language-server
// definition files.
package stub

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/ccstub/config"
	"github.com/dhamidi/ccstub/javadoc"
	"github.com/dhamidi/ccstub/peripheral"
)

// Render produces the definition file for c. The output only depends on
// its inputs: methods are deduplicated by name (first wins) and sorted.
func Render(cfg *config.Config, c *peripheral.Class) string {
	w := &writer{}
	typeName := Capitalize(c.ScriptType)
	docsPage := cfg.DocsURL + c.ScriptType + ".html"

	w.line("---@meta")
	w.line("")

	if summary := summarize(c.Description); summary != "" {
		w.line("---" + summary)
		w.line("")
	}

	w.line("------")
	w.linef("---[Official Documentation](%s)", docsPage)
	if parent := parentType(cfg, c); parent != "" {
		w.linef("---@class %s.%s: %s", cfg.ClassNamespace, typeName, parent)
	} else {
		w.linef("---@class %s.%s", cfg.ClassNamespace, typeName)
	}
	w.linef("%s = {}", typeName)
	w.line("")

	for _, m := range Methods(c) {
		if m.SourceFile != "" {
			w.line("---@source " + m.SourceFile)
		}
		if desc := clean(m.Description); desc != "" {
			w.line("---" + desc)
			w.line("---")
		}

		names := make([]string, 0, len(m.Params))
		for _, p := range m.Params {
			optional := ""
			if p.Optional {
				optional = "?"
			}
			desc := clean(p.Description)
			if desc == "" {
				desc = "The " + p.Name
			}
			w.linef("---@param %s%s %s %s", p.Name, optional, p.LuaType, desc)
			names = append(names, p.Name)
		}

		retDesc := clean(m.ReturnDescription)
		for _, t := range m.ReturnTypes {
			if retDesc != "" {
				w.linef("---@return %s %s", t, retDesc)
			} else {
				w.linef("---@return %s", t)
			}
		}

		for _, cond := range m.Throws {
			w.line("---@throws " + clean(cond))
		}
		if m.Since != "" {
			w.line("---@since " + m.Since)
		}

		w.line("------")
		w.linef("---[Official Documentation](%s#v:%s)", docsPage, m.Name)
		w.linef("function %s.%s(%s) end", typeName, m.Name, strings.Join(names, ", "))
		w.line("")
	}

	return w.String()
}

// Methods returns the methods of c that end up in a stub: one per name,
// keeping the first occurrence, ordered by name.
func Methods(c *peripheral.Class) []peripheral.Method {
	seen := make(map[string]bool, len(c.Methods))
	methods := make([]peripheral.Method, 0, len(c.Methods))
	for _, m := range c.Methods {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		methods = append(methods, m)
	}
	slices.SortStableFunc(methods, func(a, b peripheral.Method) int {
		return strings.Compare(a.Name, b.Name)
	})
	return methods
}

// FileName is the stub file name for a script type, e.g. Monitor.lua.
func FileName(cfg *config.Config, scriptType string) string {
	return Capitalize(scriptType) + cfg.StubExtension
}

// Write renders c into dir, replacing any existing file, and returns the
// path written.
func Write(cfg *config.Config, dir string, c *peripheral.Class) (string, error) {
	path := filepath.Join(dir, FileName(cfg, c.ScriptType))
	if err := os.WriteFile(path, []byte(Render(cfg, c)), 0o644); err != nil {
		return "", fmt.Errorf("write stub %s: %w", path, err)
	}
	return path, nil
}

// Capitalize upper-cases the first character of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func parentType(cfg *config.Config, c *peripheral.Class) string {
	for _, p := range c.Parents {
		if t, ok := cfg.ParentTypes[p]; ok {
			return t
		}
	}
	return ""
}

// summarize returns the first paragraph of a class description.
func summarize(desc string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(desc), "\n\n")
	return clean(first)
}

func clean(s string) string {
	return javadoc.Collapse(javadoc.StripHTML(s))
}

// writer collects lines; the result joins them with newlines, so the
// trailing empty line leaves a single final newline.
type writer struct {
	lines []string
}

func (w *writer) line(s string) {
	w.lines = append(w.lines, s)
}

func (w *writer) linef(format string, args ...any) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func (w *writer) String() string {
	return strings.Join(w.lines, "\n")
}
