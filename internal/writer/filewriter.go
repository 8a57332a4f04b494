// Package writer exposes sinks for serialized project files.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives one serialized project.
type Sink interface {
	WriteProject(buf []byte) error
}

// FileWriter writes project bytes to a filesystem path atomically.
type FileWriter struct {
	Path string

	// Backup copies the existing file to Path+".bak" before replacing it.
	Backup bool

	// Mode applies to newly created files. Zero means 0o644. An existing
	// file keeps its mode.
	Mode os.FileMode
}

// WriteProject writes buf to the configured path via temp file + rename.
func (w *FileWriter) WriteProject(buf []byte) error {
	mode := w.Mode
	if mode == 0 {
		mode = 0o644
	}
	if st, err := os.Stat(w.Path); err == nil {
		mode = st.Mode().Perm()
		if w.Backup {
			if err := copyFile(w.Path, w.Path+".bak", mode); err != nil {
				return fmt.Errorf("backup %s: %w", w.Path, err)
			}
		}
	}

	// Create temp file in same directory to ensure atomic rename
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".pbxkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if chmodErr := tmpFile.Chmod(mode); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil // Don't clean up in defer

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// MemWriter captures project bytes in memory.
type MemWriter struct {
	Buf []byte
}

// WriteProject stores a copy of buf.
func (w *MemWriter) WriteProject(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	return nil
}
