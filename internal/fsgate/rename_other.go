//go:build !linux

package fsgate

import "os"

// renameNoReplace falls back to a plain rename on platforms without an
// atomic no-replace primitive. Move's prior existence check is the guard
// there; the run lock keeps concurrent organizers out in any case.
func renameNoReplace(src, dst string) error {
	return os.Rename(src, dst)
}
