// Package format encodes extracted peripheral classes for inspection.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/ccstub/peripheral"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *peripheral.Class) error
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"json", "yaml", "line"}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected json, yaml, or line)", name)
	}
}

func write(w io.Writer, e encoding.TextMarshaler) error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
