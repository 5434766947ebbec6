package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/ccstub/peripheral"
)

// LineEncoder writes one tab-separated record per class and per method,
// suitable for grep and cut.
type LineEncoder struct {
	w     io.Writer
	class *peripheral.Class
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *peripheral.Class) error {
	e.class = class
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "class\t%s\t%s\t%s\t%s\n",
		c.Name,
		c.ScriptType,
		strings.Join(c.Parents, ","),
		c.SourceFile,
	)

	for _, m := range c.Methods {
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\n",
			m.Name,
			e.parametersStr(m.Params),
			e.returnsStr(m.ReturnTypes),
			m.SourceFile,
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) parametersStr(params []peripheral.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		name := p.Name
		if p.Optional {
			name += "?"
		}
		parts = append(parts, name+":"+p.LuaType)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (e *LineEncoder) returnsStr(types []string) string {
	if len(types) == 0 {
		return "-"
	}
	return strings.Join(types, ",")
}
