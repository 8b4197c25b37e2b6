package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the checker configuration
type Config struct {
	// Game settings
	Game        string `mapstructure:"game"`         // ets2, ats or a key from games_file
	GamesFile   string `mapstructure:"games_file"`   // YAML file or directory with extra game profiles
	GameVersion string `mapstructure:"game_version"` // e.g. 1.53.2.4, detected on windows when empty

	// Location settings
	ModDir      string `mapstructure:"mod_dir"`      // local mod directory (default Documents/<game>/mod)
	SteamDir    string `mapstructure:"steam_dir"`    // steam root containing steamapps/libraryfolders.vdf
	WorkshopDir string `mapstructure:"workshop_dir"` // workshop content directory, overrides steam lookup

	// Analysis settings
	IncludeAutomat  bool     `mapstructure:"include_automat"`  // include automat/ files
	ExcludeWorkshop bool     `mapstructure:"exclude_workshop"` // skip workshop mods
	Exclude         []string `mapstructure:"exclude"`          // glob patterns over container ids
	Workers         int      `mapstructure:"workers"`          // number of materializer goroutines
	LocalNames      string   `mapstructure:"local_names"`      // file, manifest, strict
	WorkshopNames   string   `mapstructure:"workshop_names"`   // file, manifest, strict

	// Archive tool settings
	SevenZipPath string `mapstructure:"seven_zip_path"` // 7-Zip binary
	ScratchDir   string `mapstructure:"scratch_dir"`    // staging directory for extracted manifests

	// Report settings
	ReportFormat string `mapstructure:"report_format"`  // text, json, yaml, md
	OutputFile   string `mapstructure:"output_file"`    // output file path
	ShowAllFiles bool   `mapstructure:"show_all_files"` // list every conflicting file
	ModNamesOnly bool   `mapstructure:"mod_names_only"` // list no files at all
	ReportTiming bool   `mapstructure:"report_timing"`  // write start time and duration into the report
}

// How a mod gets its name:
// file uses the container id. manifest reads display_name and falls back to the
// container id for local mods and to a sentinel for workshop mods. strict reads
// display_name and fails the mod without one.
const (
	NamesFromFile     = "file"
	NamesFromManifest = "manifest"
	NamesStrict       = "strict"
)

var (
	validFormats    = []string{"text", "txt", "json", "yaml", "yml", "md", "markdown"}
	validStrategies = []string{NamesFromFile, NamesFromManifest, NamesStrict}
)

// DefaultOutputFile is written to the working directory
const DefaultOutputFile = "mod-analysis-result.txt"

// LoadConfig loads configuration from an optional config file, environment
// variables and defaults
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("game", "ets2")
	v.SetDefault("games_file", "")
	v.SetDefault("game_version", "")
	v.SetDefault("mod_dir", "")
	v.SetDefault("steam_dir", defaultSteamDir())
	v.SetDefault("workshop_dir", "")
	v.SetDefault("include_automat", false)
	v.SetDefault("exclude_workshop", false)
	v.SetDefault("exclude", []string{})
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("local_names", NamesFromFile)
	v.SetDefault("workshop_names", NamesFromManifest)
	v.SetDefault("seven_zip_path", "")
	v.SetDefault("scratch_dir", filepath.Join(os.TempDir(), "smcc"))
	v.SetDefault("report_format", "text")
	v.SetDefault("output_file", "")
	v.SetDefault("show_all_files", false)
	v.SetDefault("mod_names_only", false)
	v.SetDefault("report_timing", false)

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("smcc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.SetEnvPrefix("SMCC")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks option combinations
func (c *Config) Validate() error {
	if c.ShowAllFiles && c.ModNamesOnly {
		return fmt.Errorf("can not show all conflicting files and none at the same time, use either --all-conflicting-files or --mod-names-only")
	}
	if !contains(validFormats, c.ReportFormat) {
		return fmt.Errorf("report format must be one of: %s (got: %s)", strings.Join(validFormats, ", "), c.ReportFormat)
	}
	if !contains(validStrategies, c.LocalNames) {
		return fmt.Errorf("local_names must be one of: %s (got: %s)", strings.Join(validStrategies, ", "), c.LocalNames)
	}
	if !contains(validStrategies, c.WorkshopNames) {
		return fmt.Errorf("workshop_names must be one of: %s (got: %s)", strings.Join(validStrategies, ", "), c.WorkshopNames)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative (got: %d)", c.Workers)
	}
	return nil
}

// TruncateFiles reports whether conflict file lists are cut to a few entries
func (c *Config) TruncateFiles() bool {
	return !c.ShowAllFiles
}

// ResolveOutputFile returns the report path, picking a default per format
func (c *Config) ResolveOutputFile() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	switch c.ReportFormat {
	case "json":
		return "mod-analysis-result.json"
	case "yaml", "yml":
		return "mod-analysis-result.yaml"
	case "md", "markdown":
		return "mod-analysis-result.md"
	default:
		return DefaultOutputFile
	}
}

// defaultSteamDir returns the usual Steam root of the platform
func defaultSteamDir() string {
	switch runtime.GOOS {
	case "windows":
		return `C:\Program Files (x86)\Steam`
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "Steam")
		}
	default:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", "Steam")
		}
	}
	return ""
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
