//go:build linux

package fsgate

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// renameNoReplace renames src to dst and fails with ErrDestinationExists if
// dst appears between Move's existence check and the rename itself. The
// kernel rejects an occupied target atomically, so a concurrent writer can
// never be clobbered.
func renameNoReplace(src, dst string) error {
	err := unix.Renameat2(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EEXIST), errors.Is(err, unix.ENOTEMPTY):
		return fmt.Errorf("rename %s: %w", dst, ErrDestinationExists)
	case errors.Is(err, unix.EINVAL), errors.Is(err, unix.ENOSYS):
		// Filesystem without RENAME_NOREPLACE support. Move's prior
		// existence check is the only guard on this path.
		return os.Rename(src, dst)
	default:
		return err
	}
}
