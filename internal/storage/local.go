// Package storage persists uploaded booking images on local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes uploads under a base directory and serves them via
// a URL prefix. Filenames are generated, never taken from the client.
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if basePath == "" {
		basePath = "uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStore{basePath: basePath, baseURL: baseURL}, nil
}

// BasePath is the directory uploads live in, for static file serving.
func (s *LocalStore) BasePath() string { return s.basePath }

// Save stores the reader under "<dir>/<field>-<unixnano><ext>" and
// returns that relative name. The extension comes from the original
// filename; an unrecognized or missing one falls back to ".bin".
func (s *LocalStore) Save(dir, field, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		ext = ".bin"
	}
	if err := os.MkdirAll(filepath.Join(s.basePath, dir), 0o755); err != nil {
		return "", fmt.Errorf("create storage directory: %w", err)
	}
	name := fmt.Sprintf("%s/%s-%d%s", dir, field, time.Now().UnixNano(), ext)

	f, err := os.Create(filepath.Join(s.basePath, filepath.FromSlash(name)))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return name, nil
}

// URL returns the public path of a stored file.
func (s *LocalStore) URL(name string) string {
	base := s.baseURL
	if base == "" {
		base = "/images"
	}
	return strings.TrimRight(base, "/") + "/" + name
}

// Remove deletes a stored file; a missing file is not an error.
func (s *LocalStore) Remove(name string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}
