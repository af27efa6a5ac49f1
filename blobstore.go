package collective

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Singleton blob keys for editable site content.
const (
	AboutContentKey = "about_content"
	PopupContentKey = "popup_content"
)

var validBlobKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ErrBadBlobKey is returned for keys that could escape the blob root.
var ErrBadBlobKey = errors.New("invalid blob key")

// BlobStore is a flat, key-addressed object store on the local
// filesystem. It holds article bodies, uploaded images and the editable
// about/popup blobs. Keys are opaque single-segment names; image keys are
// content hashes so identical uploads collapse onto one object.
type BlobStore struct {
	root string
}

// NewBlobStore creates the store root if needed.
func NewBlobStore(root string) (*BlobStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &BlobStore{root: root}, nil
}

func (b *BlobStore) path(key string) (string, error) {
	if !validBlobKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrBadBlobKey, key)
	}
	return filepath.Join(b.root, key), nil
}

// Put writes data under key, replacing any existing object.
func (b *BlobStore) Put(key string, data []byte) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Get returns the object stored under key, or ErrNotFound.
func (b *BlobStore) Get(key string) ([]byte, error) {
	path, err := b.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

// Delete removes the object under key. Deleting a missing object is not
// an error.
func (b *BlobStore) Delete(key string) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
