package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultBackupCount is the default number of backups to keep
const DefaultBackupCount = 3

// BackupSuffix is the suffix used for backup files
const BackupSuffix = ".bak"

// AtomicWriteFile writes data to a file atomically by first writing to a
// temporary file and then renaming it to the target path. This prevents
// a half-written canonical config from ever being visible to the file
// watcher that restarts mcpo.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	// The temp file must live in the same directory so the rename stays
	// on one filesystem.
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// Touch updates the modification time of an existing file without
// changing its content. The mcpo watcher treats an mtime bump the same
// as a content change, so this is the manual-restart signal.
func Touch(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("touching %s: %w", path, err)
	}
	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		return fmt.Errorf("touching %s: %w", path, err)
	}
	return nil
}

// CreateBackup creates a timestamped backup of the file at the given path.
// Returns the backup path or empty string if the source file doesn't exist.
func CreateBackup(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("checking source file: %w", err)
	}

	// Nanoseconds keep names unique across rapid successive deploys.
	timestamp := time.Now().Format("20060102-150405.000000000")
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	backupPath := fmt.Sprintf("%s%s.%s%s", base, BackupSuffix, timestamp, ext)

	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}

	return backupPath, nil
}

// RotateBackups keeps only the most recent N backups for the given file.
// It looks for files matching the pattern: base.bak.TIMESTAMP.ext
func RotateBackups(path string, keepCount int) error {
	if keepCount < 0 {
		keepCount = DefaultBackupCount
	}

	backups, err := ListBackups(path)
	if err != nil {
		return err
	}

	if len(backups) > keepCount {
		for _, backup := range backups[:len(backups)-keepCount] {
			if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("removing old backup %s: %w", backup, err)
			}
		}
	}

	return nil
}

// ListBackups returns all backup files for the given path, sorted from
// oldest to newest (the timestamp is in the name, so a lexicographic
// sort is chronological).
func ListBackups(path string) ([]string, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext) + BackupSuffix + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ext) {
			backups = append(backups, filepath.Join(dir, name))
		}
	}

	sort.Strings(backups)
	return backups, nil
}

// SafeWriteFile combines backup creation, atomic write, and backup
// rotation. Canonical config writes go through here.
func SafeWriteFile(path string, data []byte, perm os.FileMode, keepBackups int) error {
	if _, err := CreateBackup(path); err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}

	if err := AtomicWriteFile(path, data, perm); err != nil {
		return fmt.Errorf("atomic write: %w", err)
	}

	// The write already succeeded; rotation failure isn't worth failing
	// the caller over.
	_ = RotateBackups(path, keepBackups)

	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}
