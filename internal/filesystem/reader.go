package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadContainerFile reads a file from a folder container
func ReadContainerFile(root, name string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// ReadDirNames returns the entry names of a directory in directory order
func ReadDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// IsDir reports whether path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// GetExtension returns the file extension without dot
func GetExtension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
