// Package mmfile maps project files into memory for a single parse.
package mmfile

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned by Open when the file exceeds the size limit.
var ErrTooLarge = errors.New("mmfile: file exceeds size limit")

// File is the read-only contents of a file. Data is invalid after Close.
type File struct {
	Data    []byte
	release func() error
}

// Close releases the mapping. Calling Close twice is a no-op.
func (f *File) Close() error {
	if f.release == nil {
		return nil
	}
	err := f.release()
	f.release = nil
	f.Data = nil
	return err
}

func tooLarge(path string, size, limit int64) error {
	return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, size, limit)
}
