package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	if err := AtomicWriteFile(path, []byte(`{"a":1}`), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("content = %q", data)
	}

	// No temp files should be left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestAtomicWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := AtomicWriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}
}

func TestTouch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	if err := Touch(path); err != nil {
		t.Fatalf("Touch() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.ModTime().Before(time.Now().Add(-time.Minute)) {
		t.Errorf("mtime not bumped: %v", info.ModTime())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{}" {
		t.Errorf("Touch changed content: %q", data)
	}
}

func TestTouchMissingFile(t *testing.T) {
	if err := Touch(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Touch on a missing file should fail")
	}
}

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	backupPath, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if backupPath == "" {
		t.Fatal("expected a backup path")
	}
	if !strings.Contains(filepath.Base(backupPath), BackupSuffix) {
		t.Errorf("backup name should contain %s: %s", BackupSuffix, backupPath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("backup content = %q", data)
	}
}

func TestCreateBackupMissingSource(t *testing.T) {
	backupPath, err := CreateBackup(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if backupPath != "" {
		t.Errorf("missing source should yield no backup, got %s", backupPath)
	}
}

func TestSafeWriteFileRotatesBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	for i := 0; i < 6; i++ {
		data := []byte(strings.Repeat("x", i+1))
		if err := SafeWriteFile(path, data, 0644, 3); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	backups, err := ListBackups(path)
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	// First write had no prior file to back up, so 5 were created and
	// rotation trims to 3.
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3: %v", len(backups), backups)
	}

	// The newest backup holds the second-to-last content.
	data, err := os.ReadFile(backups[len(backups)-1])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != strings.Repeat("x", 5) {
		t.Errorf("newest backup content = %q", data)
	}
}

func TestListBackupsEmptyDir(t *testing.T) {
	backups, err := ListBackups(filepath.Join(t.TempDir(), "missing", "config.json"))
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %v", backups)
	}
}
