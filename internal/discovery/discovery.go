// Package discovery finds the mod containers of the local mod directory and
// the Steam workshop.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lRainZz/scs-mod-comp-checker/internal/archive"
	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"go.uber.org/zap"
)

// Discovery collects containers
type Discovery struct {
	exclude []string
	logger  *zap.Logger
}

// New creates a discovery excluding containers whose id matches one of the glob patterns
func New(exclude []string, logger *zap.Logger) (*Discovery, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return &Discovery{
		exclude: exclude,
		logger:  logger,
	}, nil
}

// LocalContainers returns the archives of the local mod directory.
// The game only mounts .scs and .zip archives from there.
func (d *Discovery) LocalContainers(modDir string) ([]models.Container, error) {
	entries, err := os.ReadDir(modDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mod directory: %w", err)
	}

	var containers []models.Container
	for _, entry := range entries {
		if entry.IsDir() || !archive.IsArchive(entry.Name()) {
			continue
		}
		if d.isExcluded(entry.Name()) {
			continue
		}

		path, err := filepath.Abs(filepath.Join(modDir, entry.Name()))
		if err != nil {
			return nil, err
		}

		containers = append(containers, models.Container{
			ID:        entry.Name(),
			Path:      path,
			IsArchive: true,
			Origin:    models.OriginLocal,
		})
	}

	d.logger.Info("Gathered local mods",
		zap.String("dir", modDir),
		zap.Int("count", len(containers)))

	return containers, nil
}

// WorkshopContainers returns one container per workshop item directory.
// The workshop id is the directory name.
func (d *Discovery) WorkshopContainers(workshopDir string) ([]models.Container, error) {
	entries, err := os.ReadDir(workshopDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read workshop directory: %w", err)
	}

	var containers []models.Container
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if d.isExcluded(entry.Name()) {
			continue
		}

		containers = append(containers, models.Container{
			ID:         entry.Name(),
			Path:       filepath.Join(workshopDir, entry.Name()),
			WorkshopID: entry.Name(),
			Origin:     models.OriginWorkshop,
		})
	}

	d.logger.Info("Gathered workshop mods",
		zap.String("dir", workshopDir),
		zap.Int("count", len(containers)))

	return containers, nil
}

// isExcluded checks the container id against the exclude patterns
func (d *Discovery) isExcluded(id string) bool {
	for _, pattern := range d.exclude {
		if ok, err := doublestar.Match(pattern, id); err == nil && ok {
			d.logger.Debug("Skipping excluded container", zap.String("id", id), zap.String("pattern", pattern))
			return true
		}
	}
	return false
}
