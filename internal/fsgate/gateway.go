package fsgate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

var (
	// ErrDestinationExists reports a move target that is already occupied.
	ErrDestinationExists = errors.New("destination exists")
	// ErrNotEmpty reports a directory removal refused because contents remain.
	ErrNotEmpty = errors.New("directory not empty")
)

// Gateway abstracts the filesystem operations the pipeline performs. Each
// call is synchronous and individually atomic from the caller's perspective:
// it either fully succeeds or leaves storage unchanged.
type Gateway interface {
	// Move renames src to dst, creating intermediate directories for dst as
	// needed. It fails with ErrDestinationExists when dst is occupied.
	Move(src, dst string) error
	Exists(path string) bool
	FileSize(path string) (int64, error)
	IsEmptyDir(path string) (bool, error)
	// RemoveEmptyDir removes path, failing with ErrNotEmpty when contents
	// remain. It never force-deletes.
	RemoveEmptyDir(path string) error
}

// OS is the production Gateway backed by the local filesystem.
type OS struct{}

// NewOS returns a Gateway backed by the local filesystem.
func NewOS() *OS { return &OS{} }

func (OS) Move(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("move %s: %w", dst, ErrDestinationExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat destination %s: %w", dst, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}
	err := renameNoReplace(src, dst)
	if err == nil {
		return nil
	}
	if isCrossDevice(err) {
		return moveAcrossDevices(src, dst)
	}
	if errors.Is(err, ErrDestinationExists) {
		return err
	}
	return fmt.Errorf("rename %s -> %s: %w", src, dst, err)
}

func (OS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (OS) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (OS) IsEmptyDir(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

func (g OS) RemoveEmptyDir(path string) error {
	empty, err := g.IsEmptyDir(path)
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("remove %s: %w", path, ErrNotEmpty)
	}
	return os.Remove(path)
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, syscall.EXDEV)
	}
	return errors.Is(err, syscall.EXDEV)
}

// moveAcrossDevices copies src to dst with integrity verification, then
// removes src. The partially written dst is removed on any failure so the
// move stays all-or-nothing.
func moveAcrossDevices(src, dst string) error {
	if err := copyFileVerified(src, dst); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
