// Package archive drives the external 7-Zip binary used to read mod archives.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lRainZz/scs-mod-comp-checker/internal/filesystem"
	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"go.uber.org/zap"
)

// DefaultBinary is looked up in PATH when no explicit binary is configured
const DefaultBinary = "7z"

// Extensions of the archive formats the games can mount
var Extensions = []string{"scs", "zip"}

// Runner executes the tool and returns its standard output
type Runner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// SevenZip lists and extracts archive contents through 7-Zip
type SevenZip struct {
	binary     string
	scratchDir string
	run        Runner
	logger     *zap.Logger
}

// NewSevenZip creates a new 7-Zip adapter. Extracted files are staged below scratchDir.
func NewSevenZip(binary, scratchDir string, logger *zap.Logger) *SevenZip {
	if binary == "" {
		binary = DefaultBinary
	}
	return &SevenZip{
		binary:     binary,
		scratchDir: scratchDir,
		run:        execRunner,
		logger:     logger,
	}
}

// SetRunner replaces the process runner
func (z *SevenZip) SetRunner(run Runner) {
	z.run = run
}

// IsArchive reports whether the file name carries a supported archive extension
func IsArchive(name string) bool {
	ext := filesystem.GetExtension(name)
	for _, e := range Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// List returns the raw bare-format listing of an archive
func (z *SevenZip) List(ctx context.Context, archivePath string) (string, error) {
	z.logger.Debug("Listing archive", zap.String("path", archivePath))

	out, err := z.run(ctx, z.binary, "l", "-ba", archivePath)
	if err != nil {
		return "", models.NewModError(models.KindToolInvocation, "", archivePath, "could not list archive", err)
	}
	return string(out), nil
}

// ReadFile extracts a single file of an archive into a private scratch
// directory and returns its content. A missing file yields an error matching
// fs.ErrNotExist.
func (z *SevenZip) ReadFile(ctx context.Context, archivePath, name string) ([]byte, error) {
	if err := os.MkdirAll(z.scratchDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	// one directory per extraction so concurrent reads never overwrite each other
	dir, err := os.MkdirTemp(z.scratchDir, "extract-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	z.logger.Debug("Extracting file",
		zap.String("archive", archivePath),
		zap.String("file", name),
		zap.String("scratch", dir))

	if _, err := z.run(ctx, z.binary, "x", archivePath, name, "-o"+dir, "-y"); err != nil {
		return nil, models.NewModError(models.KindToolInvocation, "", archivePath, "could not extract "+name, err)
	}

	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s not found in %s: %w", name, archivePath, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read extracted %s: %w", name, err)
	}
	return content, nil
}

// execRunner runs the binary and captures stdout; stderr is attached to failures
func execRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", binary, args[0], err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", binary, args[0], err)
	}
	return stdout.Bytes(), nil
}
