package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONWriter prints one JSON record per line.
type JSONWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONWriter {
	return &JSONWriter{out: os.Stdout}
}

// NewJSONWriter creates a JSONWriter writing to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{out: w}
}

// Write outputs a record in JSON format.
func (w *JSONWriter) Write(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}
