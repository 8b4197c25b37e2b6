package games

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader loads additional game profiles from YAML files
type Loader struct {
	path string
}

// NewLoader creates a new profile loader for a file or directory
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// ProfileFile represents a YAML profile file
type ProfileFile struct {
	Games []*Profile `yaml:"games"`
}

// Load returns the built-in registry extended by the profiles found at the loader path
func (l *Loader) Load() (*Registry, error) {
	registry := NewRegistry()

	if l.path == "" {
		return registry, nil
	}

	info, err := os.Stat(l.path)
	if os.IsNotExist(err) {
		return registry, nil // Built-in profiles only
	}
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return registry, l.loadFile(l.path, registry)
	}

	err = filepath.Walk(l.path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories and non-YAML files
		if info.IsDir() || (filepath.Ext(path) != ".yaml" && filepath.Ext(path) != ".yml") {
			return nil
		}

		if err := l.loadFile(path, registry); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}

		return nil
	})

	return registry, err
}

// loadFile loads profiles from a single YAML file
func (l *Loader) loadFile(path string, registry *Registry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var profileFile ProfileFile
	if err := yaml.Unmarshal(data, &profileFile); err != nil {
		return err
	}

	for _, profile := range profileFile.Games {
		if profile.Name == "" {
			profile.Name = profile.Folder
		}
		if err := profile.Validate(); err != nil {
			return err
		}
		registry.Add(profile)
	}

	return nil
}
