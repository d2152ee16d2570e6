package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// WriteFileAtomic writes data to a temp file in the destination directory and
// renames it over destPath, so readers never see a partial file.
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename temp -> %s: %w", destPath, err)
	}
	return nil
}

// Backup copies path to path+".bak", or to path+".bak.<unix seconds>" when
// that name is taken. It returns the backup path.
func Backup(path string, now time.Time) (string, error) {
	dest := path + ".bak"
	if Exists(dest) {
		dest = fmt.Sprintf("%s.bak.%d", path, now.Unix())
	}
	if err := CopyFile(path, dest); err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	return dest, nil
}

// CopyFile copies src to dst, keeping src's permissions. The copy is synced
// before returning.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Exists reports whether path can be stat'ed.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var invalidFileRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// SanitizeName turns a character label into a usable directory name.
func SanitizeName(name string) string {
	clean := strings.TrimSpace(invalidFileRunes.ReplaceAllString(name, "_"))
	clean = strings.TrimRight(clean, ".")
	if clean == "" {
		return "unknown"
	}
	return clean
}
