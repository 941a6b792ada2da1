// Package fileutil holds small file copy helpers shared by the exporters
// and the collection store.
package fileutil

import (
	"crypto/md5" //nolint:gosec // G501: digest matches the collection's content hash.
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
)

// CopyFile streams src to dst with default permissions (0o644).
func CopyFile(src, dst string) error {
	_, err := copyFile(src, dst, 0o644, false)
	return err
}

// CopyFileDigest streams src to dst and returns the lowercase hex MD5 of
// the bytes written. dst appears only once the copy is complete, so a
// watcher on the destination never sees a partial file.
func CopyFileDigest(src, dst string) (string, error) {
	return copyFile(src, dst, 0o644, true)
}

func copyFile(src, dst string, mode os.FileMode, atomic bool) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	target := dst
	if atomic {
		target = filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+".partial")
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return "", err
	}
	defer out.Close()

	h := md5.New() //nolint:gosec // G401: content digest only.
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		_ = os.Remove(target)
		return "", err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(target)
		return "", err
	}
	if atomic {
		if err := os.Rename(target, dst); err != nil {
			_ = os.Remove(target)
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
