package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const blobPrefix = "blob:mockchat/"

// ErrUnknownBlob is returned for URLs the store never issued or already revoked.
var ErrUnknownBlob = errors.New("unknown blob url")

// Blob describes a stored media blob.
type Blob struct {
	URL      string
	Path     string
	MIMEType string
	Size     int64
}

// Blobs keeps recorded media on disk behind revocable blob: URLs.
type Blobs struct {
	mu    sync.Mutex
	dir   string
	blobs map[string]Blob
}

// NewBlobs creates a blob store writing into dir.
func NewBlobs(dir string) (*Blobs, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Blobs{dir: dir, blobs: make(map[string]Blob)}, nil
}

// Put stores data and returns its blob. fallbackMIME is used when the
// content cannot be identified.
func (b *Blobs) Put(data []byte, fallbackMIME string) (Blob, error) {
	mt := mimetype.Detect(data)
	mime := mt.String()
	ext := mt.Extension()
	if mt.Is("application/octet-stream") || mt.Is("text/plain") {
		mime = fallbackMIME
		ext = extensionFor(fallbackMIME)
	}

	id := uuid.New().String()
	path := filepath.Join(b.dir, id+ext)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return Blob{}, fmt.Errorf("write blob: %w", err)
	}

	blob := Blob{URL: blobPrefix + id, Path: path, MIMEType: mime, Size: int64(len(data))}
	b.mu.Lock()
	b.blobs[blob.URL] = blob
	b.mu.Unlock()
	return blob, nil
}

// Get looks up a blob by URL.
func (b *Blobs) Get(url string) (Blob, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	blob, ok := b.blobs[url]
	return blob, ok
}

// Revoke forgets url and deletes its file.
func (b *Blobs) Revoke(url string) error {
	b.mu.Lock()
	blob, ok := b.blobs[url]
	delete(b.blobs, url)
	b.mu.Unlock()
	if !ok {
		return ErrUnknownBlob
	}
	if err := os.Remove(blob.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// RevokeAll revokes every outstanding blob.
func (b *Blobs) RevokeAll() error {
	b.mu.Lock()
	urls := make([]string, 0, len(b.blobs))
	for u := range b.blobs {
		urls = append(urls, u)
	}
	b.mu.Unlock()

	var errs []error
	for _, u := range urls {
		if err := b.Revoke(u); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func extensionFor(mime string) string {
	if _, sub, ok := strings.Cut(mime, "/"); ok && sub != "" {
		return "." + sub
	}
	return ""
}
