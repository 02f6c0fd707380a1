// Package localfs keeps original uploads on the local filesystem with a JSON
// metadata sidecar next to each file.
package localfs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const sidecarSuffix = ".meta.json"

type Storage struct {
	basePath string
}

// Sidecar is the JSON document written next to every stored blob.
type Sidecar struct {
	Key         string            `json:"key"`
	ContentType string            `json:"content_type"`
	Size        int               `json:"size"`
	StoredAt    time.Time         `json:"stored_at"`
	Metadata    map[string]string `json:"metadata"`
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/storage"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

func (s *Storage) Put(ctx context.Context, key string, data []byte, contentType string, meta map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}

	sidecar, err := json.MarshalIndent(Sidecar{
		Key:         key,
		ContentType: contentType,
		Size:        len(data),
		StoredAt:    time.Now().UTC(),
		Metadata:    meta,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal blob metadata: %w", err)
	}
	if err := writeAtomic(path+sidecarSuffix, sidecar); err != nil {
		return fmt.Errorf("write blob metadata: %w", err)
	}
	return nil
}

// Delete removes the blob and its sidecar. Missing files are not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	for _, p := range []string{path, path + sidecarSuffix} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove blob: %w", err)
		}
	}
	return nil
}

// ReadSidecar loads the metadata stored for key.
func (s *Storage) ReadSidecar(key string) (Sidecar, error) {
	path, err := s.resolve(key)
	if err != nil {
		return Sidecar{}, err
	}
	raw, err := os.ReadFile(path + sidecarSuffix)
	if err != nil {
		return Sidecar{}, fmt.Errorf("read blob metadata: %w", err)
	}
	var out Sidecar
	if err := json.Unmarshal(raw, &out); err != nil {
		return Sidecar{}, fmt.Errorf("decode blob metadata: %w", err)
	}
	return out, nil
}

func (s *Storage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimSpace(key)))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.basePath, clean), nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
