package fsgate

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// copyFileVerified copies src to dst for a cross-device move. The source is
// hashed while it streams out; the destination is then synced and read back
// from disk, so the verification covers what actually landed on the target
// device. dst is removed on any failure.
func copyFileVerified(src, dst string) error {
	written, srcSum, err := copyAndHash(src, dst)
	if err != nil {
		_ = os.Remove(dst)
		return err
	}

	info, err := os.Stat(src)
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("stat source: %w", err)
	}
	if written != info.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}

	dstSum, err := hashFile(dst)
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("verify destination: %w", err)
	}
	if !bytes.Equal(srcSum, dstSum) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: %s differs from %s after copy", dst, src)
	}
	return nil
}

func copyAndHash(src, dst string) (int64, []byte, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, nil, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, nil, err
	}

	hasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, hasher))
	if err != nil {
		_ = out.Close()
		return 0, nil, err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return 0, nil, fmt.Errorf("sync destination: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, nil, err
	}
	return written, hasher.Sum(nil), nil
}

func hashFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return nil, err
	}
	return hasher.Sum(nil), nil
}
