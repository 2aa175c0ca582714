package ui

import (
	"encoding/json"
	"io"
)

// jsonRenderer writes indented JSON for machine consumption.
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSON(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) RenderResult(result any) error {
	return r.encoder.Encode(result)
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]any{
		"error":    err.Error(),
		"problems": Problems(err),
	})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
