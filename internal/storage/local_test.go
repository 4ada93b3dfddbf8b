package storage

import (
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpen(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	name, size, err := store.Save(strings.NewReader("hello media"), "photo.JPG")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if size != int64(len("hello media")) {
		t.Errorf("size = %d, want %d", size, len("hello media"))
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("stored name should keep lowercase extension, got %q", name)
	}

	f, err := store.Open(name)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "hello media" {
		t.Errorf("content = %q, want %q", data, "hello media")
	}
}

func TestSave_UniqueNames(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	a, _, err := store.Save(strings.NewReader("a"), "x.png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	b, _, err := store.Save(strings.NewReader("b"), "x.png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if a == b {
		t.Error("two saves of the same file name should get distinct object names")
	}
}

func TestRemove_MissingIsNoError(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	if err := store.Remove("does-not-exist.bin"); err != nil {
		t.Errorf("Remove of missing file should be nil, got %v", err)
	}
}

func TestSanitizeExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", ".jpg"},
		{"PHOTO.JPG", ".jpg"},
		{"clip.mp4", ".mp4"},
		{"noext", ""},
		{"weird.j$g", ""},
		{"trailingdot.", ""},
		{"../../etc/passwd", ""},
	}

	for _, tt := range tests {
		if got := sanitizeExt(tt.in); got != tt.want {
			t.Errorf("sanitizeExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
