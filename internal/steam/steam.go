// Package steam locates the game installation, workshop content and mod
// directory of a Steam game.
package steam

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lRainZz/scs-mod-comp-checker/internal/games"
	"go.uber.org/zap"
)

// Locations of one installed game
type Locations struct {
	Name        string
	GameDir     string
	ModDir      string
	WorkshopDir string
}

// Locator finds game locations below a Steam root
type Locator struct {
	steamRoot string
	logger    *zap.Logger
}

// NewLocator creates a new locator
func NewLocator(steamRoot string, logger *zap.Logger) *Locator {
	return &Locator{
		steamRoot: steamRoot,
		logger:    logger,
	}
}

// Find locates the installation of the game. customModDir replaces the
// default Documents/<game>/mod directory when set.
func (l *Locator) Find(game *games.Profile, customModDir string) (*Locations, error) {
	if l.steamRoot == "" {
		return nil, fmt.Errorf("steam directory is not set, use --steam-dir or --exclude-workshop-mods with --mod-dir")
	}

	vdfPath := filepath.Join(l.steamRoot, "steamapps", "libraryfolders.vdf")
	raw, err := os.ReadFile(vdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read steam libraries: %w", err)
	}

	var library *Library
	libraries := ParseLibraryFolders(string(raw))
	for i := range libraries {
		if libraries[i].HasApp(game.AppID) {
			library = &libraries[i]
			break
		}
	}
	if library == nil {
		return nil, fmt.Errorf("could not determine library of app %s", game.AppID)
	}

	l.logger.Debug("Found steam library",
		zap.String("path", library.Path),
		zap.String("app", game.AppID))

	acfPath := filepath.Join(library.Path, "steamapps", fmt.Sprintf("appmanifest_%s.acf", game.AppID))
	acf, err := os.ReadFile(acfPath)
	if err != nil {
		return nil, fmt.Errorf("could not read acf %q in library %q: %w", acfPath, library.Path, err)
	}

	installDir := ParseInstallDir(string(acf))
	if installDir == "" {
		return nil, fmt.Errorf("could not determine install folder of %s in library %q", game.AppID, library.Path)
	}

	modDir := customModDir
	if modDir == "" {
		modDir, err = DefaultModDir(game)
		if err != nil {
			return nil, err
		}
	}

	return &Locations{
		Name:        installDir,
		GameDir:     filepath.Join(library.Path, "steamapps", "common", installDir),
		ModDir:      modDir,
		WorkshopDir: WorkshopDir(library.Path, game.AppID),
	}, nil
}

// WorkshopDir returns the workshop content directory of an app inside a library
func WorkshopDir(libraryPath, appID string) string {
	return filepath.Join(libraryPath, "steamapps", "workshop", "content", appID)
}

// DefaultModDir returns <home>/Documents/<game folder>/mod
func DefaultModDir(game *games.Profile) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory, please provide a mod directory via --mod-dir: %w", err)
	}
	return filepath.Join(home, "Documents", game.Folder, "mod"), nil
}

// DetectGameVersion reads the FileVersion of the game executable. Only
// Windows exposes it; elsewhere the version has to be configured.
func DetectGameVersion(ctx context.Context, gameDir string, game *games.Profile) (string, error) {
	if runtime.GOOS != "windows" {
		return "", fmt.Errorf("game version detection requires windows, use --game-version")
	}

	exePath := filepath.Join(gameDir, "bin", "win_x64", game.Executable)
	query := fmt.Sprintf("(Get-Item '%s').VersionInfo.FileVersion", exePath)

	out, err := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", query).Output()
	if err != nil {
		return "", fmt.Errorf("could not determine game version: %w", err)
	}

	version := ParseFileVersion(string(out))
	if version == "" {
		return "", fmt.Errorf("could not determine game version of %s", exePath)
	}
	return version, nil
}

// ParseFileVersion cuts the build hash off a version string such as
// "1.57.2.4 (a7624b40b34b6135e6ed1cd5b813b17346746798)".
func ParseFileVersion(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
