package collective

import (
	"errors"
	"testing"
)

func setupTestBlobs(t *testing.T) *BlobStore {
	t.Helper()
	b, err := NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create blob store: %v", err)
	}
	return b
}

func TestBlobPutGetDelete(t *testing.T) {
	b := setupTestBlobs(t)

	if err := b.Put("article_1.html", []byte("<p>hi</p>")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	data, err := b.Get("article_1.html")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "<p>hi</p>" {
		t.Errorf("Get = %q, want %q", data, "<p>hi</p>")
	}

	if err := b.Delete("article_1.html"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := b.Get("article_1.html"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestBlobGetMissing(t *testing.T) {
	b := setupTestBlobs(t)
	if _, err := b.Get("nope.html"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBlobDeleteMissingIsNoop(t *testing.T) {
	b := setupTestBlobs(t)
	if err := b.Delete("nope.html"); err != nil {
		t.Errorf("Delete on missing key should not error, got %v", err)
	}
}

func TestBlobRejectsBadKeys(t *testing.T) {
	b := setupTestBlobs(t)
	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := b.Put(key, []byte("x")); !errors.Is(err, ErrBadBlobKey) {
			t.Errorf("Put(%q) error = %v, want ErrBadBlobKey", key, err)
		}
	}
}

func TestBlobOverwrite(t *testing.T) {
	b := setupTestBlobs(t)

	if err := b.Put("about_content", []byte("one")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := b.Put("about_content", []byte("two")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	data, err := b.Get("about_content")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "two" {
		t.Errorf("Get = %q, want %q", data, "two")
	}
}
