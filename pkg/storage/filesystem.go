package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage persists export files on disk under a base directory.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save writes data to the relative path under the base dir, creating parent
// directories, and returns the absolute path written.
func (s *LocalStorage) Save(filename string, data []byte) (string, error) {
	path := s.resolve(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// Path exposes the absolute location of a relative export path.
func (s *LocalStorage) Path(filename string) string {
	return s.resolve(filename)
}

func (s *LocalStorage) resolve(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	path := filepath.Join(s.baseDir, filename)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// SanitizeName makes raw safe as a single path element: separators and
// reserved characters become "-", whitespace becomes "_".
func SanitizeName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "na"
	}
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		case strings.ContainsRune(`/\:*?"<>|`, r), r < 0x20:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	result := strings.Trim(b.String(), ".")
	for strings.Contains(result, "__") {
		result = strings.ReplaceAll(result, "__", "_")
	}
	if result == "" {
		return "na"
	}
	if len(result) > 100 {
		result = result[:100]
	}
	return result
}
