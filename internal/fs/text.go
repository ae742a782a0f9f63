package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// ErrNotExist is matched by a FileAccessError for a missing target file.
var ErrNotExist = os.ErrNotExist

// FileAccessError reports a target file that could not be opened, read or
// written.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// DecodingError reports a file whose content is not valid UTF-8 text.
type DecodingError struct {
	Path string
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode %s: invalid UTF-8 at byte %d", e.Path, e.Offset)
}

// Writer persists transformed text for a path.
type Writer interface {
	WriteText(path, content string) error
}

// ReadText reads the whole file at path and checks that it is UTF-8 text.
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &FileAccessError{Path: path, Op: "read", Err: err}
	}
	if off := invalidUTF8Offset(data); off >= 0 {
		return "", &DecodingError{Path: path, Offset: off}
	}
	return string(data), nil
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// DiskWriter overwrites files on disk. With Atomic set, content is written to
// a temporary file in the same directory and renamed over the target.
type DiskWriter struct {
	Atomic bool
}

var _ Writer = DiskWriter{}

// WriteText replaces the content of path, keeping its permissions.
func (w DiskWriter) WriteText(path, content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return &FileAccessError{Path: path, Op: "stat", Err: err}
	}

	if !w.Atomic {
		if err := os.WriteFile(path, []byte(content), mode); err != nil {
			return &FileAccessError{Path: path, Op: "write", Err: err}
		}
		return nil
	}
	return writeAtomic(path, content, mode)
}

func writeAtomic(path, content string, mode os.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".transplant-*")
	if err != nil {
		return &FileAccessError{Path: path, Op: "create temp", Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.WriteString(content); err != nil {
		return &FileAccessError{Path: tmpPath, Op: "write", Err: err}
	}
	if err = tmp.Chmod(mode); err != nil {
		return &FileAccessError{Path: tmpPath, Op: "chmod", Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &FileAccessError{Path: tmpPath, Op: "close", Err: err}
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return &FileAccessError{Path: path, Op: "rename", Err: err}
	}
	return nil
}
