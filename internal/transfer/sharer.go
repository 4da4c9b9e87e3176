package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sharer hands an exported file to the user and returns where it ended up
type Sharer interface {
	ShareFile(name string, content []byte) (string, error)
}

// Picker returns the bytes of a file the user chose. It returns ErrCanceled when nothing was picked.
type Picker interface {
	PickFile() ([]byte, error)
}

// DirSharer writes exports into a directory
type DirSharer struct {
	Dir string
}

func (d DirSharer) ShareFile(name string, content []byte) (string, error) {
	if err := os.MkdirAll(d.Dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// WriterSharer streams the export, for piping to stdout
type WriterSharer struct {
	W io.Writer
}

func (w WriterSharer) ShareFile(name string, content []byte) (string, error) {
	if _, err := w.W.Write(append(content, '\n')); err != nil {
		return "", err
	}
	return name, nil
}

// FilePicker reads a path, or the reader when the path is "-"
type FilePicker struct {
	Path  string
	Stdin io.Reader
}

func (f FilePicker) PickFile() ([]byte, error) {
	switch f.Path {
	case "":
		return nil, ErrCanceled
	case "-":
		if f.Stdin == nil {
			return nil, ErrCanceled
		}
		return io.ReadAll(f.Stdin)
	default:
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read import file: %w", err)
		}
		return data, nil
	}
}

// BytesPicker returns fixed content
type BytesPicker []byte

func (b BytesPicker) PickFile() ([]byte, error) {
	if b == nil {
		return nil, ErrCanceled
	}
	return b, nil
}
