package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/ccstub/peripheral"
)

type JSONEncoder struct {
	w     io.Writer
	class *peripheral.Class
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *peripheral.Class) error {
	e.class = class
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(e.class, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
