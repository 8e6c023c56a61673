package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriter(t *testing.T) {
	t.Run("WriteFileAtomic", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token.json")

		if err := WriteFileAtomic(path, []byte(`{"a":1}`), 0600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(data) != `{"a":1}` {
			t.Errorf("unexpected content %q", data)
		}

		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
		}
	})

	t.Run("overwrite leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.xlsx")

		for _, content := range []string{"first", "second"} {
			if err := WriteFileAtomic(path, []byte(content), 0644); err != nil {
				t.Fatalf("write failed: %v", err)
			}
		}

		data, _ := os.ReadFile(path)
		if string(data) != "second" {
			t.Errorf("expected second write to win, got %q", data)
		}

		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("expected only the target file, got %d entries", len(entries))
		}
	})

	t.Run("Abort", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "never.json")

		w, err := NewAtomicWriter(path, 0600)
		if err != nil {
			t.Fatalf("failed to create writer: %v", err)
		}
		w.Write([]byte("partial"))

		if err := w.Abort(); err != nil {
			t.Fatalf("abort failed: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("target must not exist after abort")
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("expected temp file to be removed, got %d entries", len(entries))
		}
	})
}
