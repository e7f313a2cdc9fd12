package store

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// FileWriter appends records to a JSONL file. Paths ending in ".zst" are
// zstd compressed.
type FileWriter struct {
	file *os.File
	zw   *zstd.Encoder
	enc  *json.Encoder
}

// NewFileWriter creates (or truncates) path.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{file: f}
	var out io.Writer = f
	if compressed(path) {
		zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			return nil, err
		}
		fw.zw = zw
		out = zw
	}
	fw.enc = json.NewEncoder(out)
	return fw, nil
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// Write logs a single record.
func (f *FileWriter) Write(rec Record) error {
	return f.enc.Encode(rec)
}

// WriteBatch logs multiple records.
func (f *FileWriter) WriteBatch(recs []Record) error {
	for _, r := range recs {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the compressor, if any, and closes the file.
func (f *FileWriter) Close() error {
	var err error
	if f.zw != nil {
		err = f.zw.Close()
	}
	if e := f.file.Close(); e != nil && err == nil {
		err = e
	}
	return err
}
