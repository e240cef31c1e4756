// Package filesystem implements the rename and copy operations on the local
// disk. It never overwrites an existing file.
package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
)

// Ensure FileSystem implements the interface.
var _ driven.FileSystem = (*FileSystem)(nil)

// FileSystem operates on the local disk.
type FileSystem struct{}

// New creates a local FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// Occupied reports whether dst exists and is not the same file as src.
// The same-file check matters on case-insensitive filesystems.
func (f *FileSystem) Occupied(src, dst string) (bool, error) {
	dstInfo, err := os.Lstat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}

	srcInfo, err := os.Lstat(src)
	if err == nil && os.SameFile(srcInfo, dstInfo) {
		return false, nil
	}
	return true, nil
}

// Rename moves src to dst after re-checking that dst is free.
func (f *FileSystem) Rename(src, dst string) error {
	if err := f.ensureFree(src, dst); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	return nil
}

// Copy writes a copy of src at dst, creating dst's directory if needed and
// preserving the modification time. dst must not exist.
func (f *FileSystem) Copy(src, dst string) (err error) {
	if err := f.ensureFree(src, dst); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", domain.ErrDestinationOccupied, filepath.Base(dst))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	defer func() {
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	if err = os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	return nil
}

func (f *FileSystem) ensureFree(src, dst string) error {
	occupied, err := f.Occupied(src, dst)
	if err != nil {
		return err
	}
	if occupied {
		return fmt.Errorf("%w: %s", domain.ErrDestinationOccupied, filepath.Base(dst))
	}
	return nil
}
