// Package peripheral extracts Lua-visible methods from the Java sources of
// CC: Tweaked peripherals.
package peripheral

import "slices"

// Parameter is one caller-facing argument of a Lua function.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	JavaType    string `json:"javaType" yaml:"javaType"`
	LuaType     string `json:"luaType" yaml:"luaType"`
	Optional    bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Method is one Lua-visible name. A Java method exposed under several
// aliases produces one Method per alias, all sharing the same data.
type Method struct {
	Name              string      `json:"name" yaml:"name"`
	Aliases           []string    `json:"aliases" yaml:"aliases"`
	Params            []Parameter `json:"params,omitempty" yaml:"params,omitempty"`
	ReturnTypes       []string    `json:"returnTypes,omitempty" yaml:"returnTypes,omitempty"`
	ReturnDescription string      `json:"returnDescription,omitempty" yaml:"returnDescription,omitempty"`
	// Description is only set on the first alias so it is rendered once.
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Throws      []string `json:"throws,omitempty" yaml:"throws,omitempty"`
	Since       string   `json:"since,omitempty" yaml:"since,omitempty"`
	// SourceFile is the defining Java file, relative to the source root.
	SourceFile string `json:"sourceFile" yaml:"sourceFile"`
}

// Clone returns a deep copy.
func (m Method) Clone() Method {
	m.Aliases = slices.Clone(m.Aliases)
	m.Params = slices.Clone(m.Params)
	m.ReturnTypes = slices.Clone(m.ReturnTypes)
	m.Throws = slices.Clone(m.Throws)
	return m
}

// Class is an extracted peripheral (or base) class.
type Class struct {
	Name       string `json:"name" yaml:"name"`
	SourceFile string `json:"sourceFile" yaml:"sourceFile"`
	// ScriptType is the peripheral type, e.g. "monitor".
	ScriptType  string   `json:"type" yaml:"type"`
	Parents     []string `json:"parents,omitempty" yaml:"parents,omitempty"`
	Methods     []Method `json:"methods" yaml:"methods"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// HasMethod reports whether a method with the given Lua name exists.
func (c *Class) HasMethod(name string) bool {
	for _, m := range c.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}
