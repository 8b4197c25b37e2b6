package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lRainZz/scs-mod-comp-checker/internal/archive"
	"github.com/lRainZz/scs-mod-comp-checker/internal/filesystem"
	"github.com/lRainZz/scs-mod-comp-checker/internal/listing"
	"github.com/lRainZz/scs-mod-comp-checker/internal/sii"
	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"go.uber.org/zap"
)

// ArchiveTool lists and reads files of archive containers
type ArchiveTool interface {
	List(ctx context.Context, archivePath string) (string, error)
	ReadFile(ctx context.Context, archivePath, name string) ([]byte, error)
}

// NameStrategy decides where the name of a mod comes from
type NameStrategy string

const (
	// NamesFromFile uses the container id
	NamesFromFile NameStrategy = "file"
	// NamesFromManifest reads display_name. Without one, workshop mods are named
	// sii.NoDisplayName and local mods keep their container id.
	NamesFromManifest NameStrategy = "manifest"
	// NamesStrict reads display_name and fails the mod without one
	NamesStrict NameStrategy = "strict"
)

// MaterializerOptions configures a Materializer
type MaterializerOptions struct {
	IncludeAutomat bool
	GameVersion    string
	LocalNames     NameStrategy
	WorkshopNames  NameStrategy
}

// Materializer turns containers into mods with their file lists
type Materializer struct {
	tool    ArchiveTool
	walker  *filesystem.Walker
	options MaterializerOptions
	logger  *zap.Logger
}

// NewMaterializer creates a new materializer
func NewMaterializer(tool ArchiveTool, opts MaterializerOptions, logger *zap.Logger) *Materializer {
	if opts.LocalNames == "" {
		opts.LocalNames = NamesFromFile
	}
	if opts.WorkshopNames == "" {
		opts.WorkshopNames = NamesFromManifest
	}

	return &Materializer{
		tool:    tool,
		walker:  filesystem.NewWalker(logger),
		options: opts,
		logger:  logger,
	}
}

// Materialize resolves the payload of a container, names it and lists its
// files. Failures are recorded on the returned mod and never returned.
func (m *Materializer) Materialize(ctx context.Context, c models.Container) *models.Mod {
	mod := &models.Mod{
		Name:        c.ID,
		WorkshopID:  c.WorkshopID,
		Origin:      c.Origin,
		ContainerID: c.ID,
	}

	if err := m.materialize(ctx, c, mod); err != nil {
		mod.Files = nil
		mod.Err = withContainer(c, err)

		m.logger.Warn("Could not analyze mod",
			zap.String("container", c.ID),
			zap.String("kind", string(models.KindOf(mod.Err))),
			zap.Error(mod.Err))
		return mod
	}

	m.logger.Debug("Materialized mod",
		zap.String("container", c.ID),
		zap.String("name", mod.Name),
		zap.String("payload", mod.PayloadPath),
		zap.Int("files", len(mod.Files)))

	return mod
}

func (m *Materializer) materialize(ctx context.Context, c models.Container, mod *models.Mod) error {
	payload, isArchive := c.Path, c.IsArchive
	if c.IsWorkshop() {
		var err error
		if payload, err = m.resolvePayload(c); err != nil {
			return err
		}
		isArchive = archive.IsArchive(payload)
	}
	mod.PayloadPath = payload
	mod.IsArchive = isArchive

	name, err := m.displayName(ctx, c, payload, isArchive)
	if err != nil {
		return err
	}
	mod.Name = name

	files, err := m.listFiles(ctx, payload, isArchive)
	if err != nil {
		return err
	}
	mod.Files = files

	return nil
}

// resolvePayload picks the archive or folder of a workshop item.
// A single entry besides versions.sii is used directly, otherwise versions.sii
// decides which package matches the game version.
func (m *Materializer) resolvePayload(c models.Container) (string, error) {
	names, err := filesystem.ReadDirNames(c.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read workshop item: %w", err)
	}

	var candidates []string
	hasVersions := false
	for _, name := range names {
		if strings.Contains(name, sii.VersionsFile) {
			hasVersions = hasVersions || name == sii.VersionsFile
			continue
		}
		candidates = append(candidates, name)
	}

	switch {
	case len(candidates) == 1:
		return filepath.Join(c.Path, candidates[0]), nil
	case len(candidates) == 0:
		return "", models.NewModError(models.KindAmbiguousContainer, c.ID, c.Path,
			"workshop item contains no payload", nil)
	case !hasVersions:
		return "", models.NewModError(models.KindAmbiguousContainer, c.ID, c.Path,
			fmt.Sprintf("%d payloads and no %s", len(candidates), sii.VersionsFile), nil)
	}

	content, err := filesystem.ReadContainerFile(c.Path, sii.VersionsFile)
	if err != nil {
		return "", err
	}

	pkg, err := sii.ResolvePackage(string(content), m.options.GameVersion)
	if err != nil {
		msg := "could not resolve package"
		if m.options.GameVersion == "" {
			msg += ", game version unknown"
		}
		return "", models.NewModError(models.KindVersionResolution, c.ID, c.Path, msg, err)
	}

	if chosen, ok := matchPackage(candidates, pkg); ok {
		m.logger.Debug("Resolved workshop package",
			zap.String("container", c.ID),
			zap.String("package", pkg),
			zap.String("payload", chosen))
		return filepath.Join(c.Path, chosen), nil
	}

	return "", models.NewModError(models.KindVersionResolution, c.ID, c.Path,
		fmt.Sprintf("package %q not found", pkg), nil)
}

// matchPackage picks the entry named like the package: exact name first, then
// name without extension, then any name containing the package name
func matchPackage(candidates []string, pkg string) (string, bool) {
	for _, name := range candidates {
		if name == pkg {
			return name, true
		}
	}
	for _, name := range candidates {
		if strings.TrimSuffix(name, filepath.Ext(name)) == pkg {
			return name, true
		}
	}
	for _, name := range candidates {
		if strings.Contains(name, pkg) {
			return name, true
		}
	}
	return "", false
}

func (m *Materializer) strategyFor(c models.Container) NameStrategy {
	if c.IsWorkshop() {
		return m.options.WorkshopNames
	}
	return m.options.LocalNames
}

func (m *Materializer) displayName(ctx context.Context, c models.Container, payload string, isArchive bool) (string, error) {
	strategy := m.strategyFor(c)
	if strategy == NamesFromFile {
		return c.ID, nil
	}

	content, err := m.readFile(ctx, payload, isArchive, sii.ManifestFile)
	if err == nil {
		if name, ok := sii.DisplayName(string(content)); ok {
			return name, nil
		}
	}

	if strategy == NamesStrict {
		return "", models.NewModError(models.KindManifestNotFound, c.ID, payload, "", err)
	}

	m.logger.Debug("No display name, using fallback",
		zap.String("container", c.ID),
		zap.NamedError("cause", err))
	if !c.IsWorkshop() {
		// Local identifiers carry no workshop suffix to keep them apart
		return c.ID, nil
	}
	return sii.NoDisplayName, nil
}

func (m *Materializer) readFile(ctx context.Context, payload string, isArchive bool, name string) ([]byte, error) {
	if isArchive {
		return m.tool.ReadFile(ctx, payload, name)
	}
	return filesystem.ReadContainerFile(payload, name)
}

func (m *Materializer) listFiles(ctx context.Context, payload string, isArchive bool) ([]string, error) {
	if isArchive {
		raw, err := m.tool.List(ctx, payload)
		if err != nil {
			return nil, err
		}
		return listing.Parse(raw, m.options.IncludeAutomat), nil
	}

	all, err := m.walker.ListFiles(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder: %w", err)
	}

	var files []string
	for _, path := range all {
		if listing.Keep(path, m.options.IncludeAutomat) {
			files = append(files, path)
		}
	}
	return files, nil
}

// withContainer fills in the container id of a ModError raised by a collaborator
func withContainer(c models.Container, err error) error {
	var modErr *models.ModError
	if errors.As(err, &modErr) && modErr.ContainerID == "" {
		modErr.ContainerID = c.ID
	}
	return err
}
