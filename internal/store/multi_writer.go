package store

import "errors"

// MultiWriter fans records out to several writers. Every writer sees every
// record; errors are joined.
type MultiWriter struct {
	writers []ResultWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...ResultWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Write sends a record to all writers.
func (mw *MultiWriter) Write(rec Record) error {
	var errs []error
	for _, w := range mw.writers {
		if err := w.Write(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteBatch sends multiple records to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(recs []Record) error {
	var errs []error
	for _, w := range mw.writers {
		if err := WriteAll(w, recs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
