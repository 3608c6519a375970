package models

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Decode unmarshals a collection body into dest. On failure dest is reset to
// its zero value and the decode error is returned for the caller to report.
func Decode(data []byte, dest any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		resetToZero(dest)
		return err
	}
	return nil
}

// Encode marshals a collection body. indent selects the 2-space file layout.
// HTML characters are written unescaped.
func Encode(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if indent {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resetToZero(dest any) {
	v := reflect.ValueOf(dest)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}
