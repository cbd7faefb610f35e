package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/webcms/cms-api/internal/domain"
)

type memBlobs struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	seq     int
	failOn  string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{files: make(map[string][]byte)}
}

func (b *memBlobs) Save(_ context.Context, namespace string, upload domain.Upload) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if namespace == b.failOn {
		return "", errors.New("disk full")
	}

	data, err := io.ReadAll(upload.Content)
	if err != nil {
		return "", err
	}

	b.seq++
	path := fmt.Sprintf("%s/%d-%s", namespace, b.seq, upload.Filename)
	b.files[path] = data

	return path, nil
}

func (b *memBlobs) Delete(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.files, path)
	b.deleted = append(b.deleted, path)

	return nil
}

func (b *memBlobs) URL(path string) string {
	return "http://cdn.test/storage/" + path
}

func (b *memBlobs) has(path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.files[path]

	return ok
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw

	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.entries, k)
	}

	return nil
}

type stubThumbnailer struct {
	err error
}

func (t stubThumbnailer) Make(_ context.Context, srcPath, namespace string) (string, error) {
	if t.err != nil {
		return "", t.err
	}

	return namespace + "/thumb-" + srcPath[len(NamespaceGallery)+1:], nil
}

func strPtr(s string) *string { return &s }
