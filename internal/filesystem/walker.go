package filesystem

import (
	"os"
	"path/filepath"

	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"go.uber.org/zap"
)

// Walker walks folder containers
type Walker struct {
	logger *zap.Logger
}

// NewWalker creates a new filesystem walker
func NewWalker(logger *zap.Logger) *Walker {
	return &Walker{
		logger: logger,
	}
}

// Walk recursively walks the directory tree below root.
// The root itself is not reported.
func (w *Walker) Walk(root string, callback func(*models.FileInfo) error) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil // Continue walking
		}

		if path == root {
			return nil
		}

		// Get relative path
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		fileInfo := &models.FileInfo{
			Path:    path,
			RelPath: relPath,
			Size:    info.Size(),
			IsDir:   info.IsDir(),
		}

		return callback(fileInfo)
	})
}

// ListFiles returns the relative paths of all files in a folder container.
// Paths keep the separator of the platform, which is also what the archive tool prints there.
func (w *Walker) ListFiles(root string) ([]string, error) {
	var files []string
	err := w.Walk(root, func(fileInfo *models.FileInfo) error {
		if !fileInfo.IsDir {
			files = append(files, fileInfo.RelPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
