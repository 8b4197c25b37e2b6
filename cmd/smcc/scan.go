package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lRainZz/scs-mod-comp-checker/internal/archive"
	"github.com/lRainZz/scs-mod-comp-checker/internal/config"
	"github.com/lRainZz/scs-mod-comp-checker/internal/core"
	"github.com/lRainZz/scs-mod-comp-checker/internal/discovery"
	"github.com/lRainZz/scs-mod-comp-checker/internal/filesystem"
	"github.com/lRainZz/scs-mod-comp-checker/internal/games"
	"github.com/lRainZz/scs-mod-comp-checker/internal/steam"
	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanFlags holds the CLI overrides of the scan command
type scanFlags struct {
	game            string
	ats             bool
	gamesFile       string
	gameVersion     string
	modDir          string
	steamDir        string
	workshopDir     string
	includeAutomat  bool
	allFiles        bool
	modNamesOnly    bool
	excludeWorkshop bool
	exclude         []string
	workers         int
	sevenZip        string
	reportFormat    string
	outputFile      string
	timing          bool
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Analyze local and workshop mods for conflicting files",
		Long: `Lists the files of every local and workshop mod and reports every mod that
installs a file at the same path as another mod.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			defer logger.Sync()

			cfg, err := loadScanConfig(cmd, &flags)
			if err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runScan(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&flags.game, "game", "", "Game profile: ets2, ats or a key from --games-file")
	cmd.Flags().BoolVar(&flags.ats, "ats", false, "Analyze American Truck Simulator instead of ETS2")
	cmd.Flags().StringVar(&flags.gamesFile, "games-file", "", "YAML file or directory with additional game profiles")
	cmd.Flags().StringVar(&flags.gameVersion, "game-version", "", "Game version, detected on Windows when empty")
	cmd.Flags().StringVar(&flags.modDir, "mod-dir", "", "Mod directory (default: Documents/<game>/mod)")
	cmd.Flags().StringVar(&flags.steamDir, "steam-dir", "", "Steam root directory")
	cmd.Flags().StringVar(&flags.workshopDir, "workshop-dir", "", "Workshop content directory, skips the Steam lookup")
	cmd.Flags().BoolVarP(&flags.includeAutomat, "include-automat", "i", false, "Include automat files in the result")
	cmd.Flags().BoolVarP(&flags.allFiles, "all-conflicting-files", "a", false, "Include all conflicting files in the result")
	cmd.Flags().BoolVarP(&flags.modNamesOnly, "mod-names-only", "m", false, "Exclude all conflicting files from the result")
	cmd.Flags().BoolVarP(&flags.excludeWorkshop, "exclude-workshop-mods", "e", false, "Exclude workshop mods from the analysis")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "Glob patterns of mod files or workshop ids to skip (comma-separated)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Number of parallel workers (default: CPU cores)")
	cmd.Flags().StringVar(&flags.sevenZip, "seven-zip", "", "7-Zip binary (default: 7z from PATH)")
	cmd.Flags().StringVarP(&flags.reportFormat, "report", "r", "", "Report format: text, json, yaml, md (default: text)")
	cmd.Flags().StringVarP(&flags.outputFile, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&flags.timing, "timing", false, "Write start time and duration into the report")

	return cmd
}

// loadScanConfig loads the configuration and applies the CLI flags on top
func loadScanConfig(cmd *cobra.Command, flags *scanFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return nil, err
	}

	applyScanFlags(cfg, cmd, flags)

	if flags.modDir != "" && !filesystem.IsDir(flags.modDir) {
		return nil, fmt.Errorf("invalid mod directory %q, directory either does not exist or is not a directory", flags.modDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyScanFlags overrides config with CLI flags
func applyScanFlags(cfg *config.Config, cmd *cobra.Command, flags *scanFlags) {
	if flags.game != "" {
		cfg.Game = flags.game
	}
	if flags.ats {
		cfg.Game = "ats"
	}
	if flags.gamesFile != "" {
		cfg.GamesFile = flags.gamesFile
	}
	if flags.gameVersion != "" {
		cfg.GameVersion = flags.gameVersion
	}
	if flags.modDir != "" {
		cfg.ModDir = flags.modDir
	}
	if flags.steamDir != "" {
		cfg.SteamDir = flags.steamDir
	}
	if flags.workshopDir != "" {
		cfg.WorkshopDir = flags.workshopDir
	}
	if cmd.Flags().Changed("include-automat") {
		cfg.IncludeAutomat = flags.includeAutomat
	}
	if cmd.Flags().Changed("all-conflicting-files") {
		cfg.ShowAllFiles = flags.allFiles
	}
	if cmd.Flags().Changed("mod-names-only") {
		cfg.ModNamesOnly = flags.modNamesOnly
	}
	if cmd.Flags().Changed("exclude-workshop-mods") {
		cfg.ExcludeWorkshop = flags.excludeWorkshop
	}
	if len(flags.exclude) > 0 {
		cfg.Exclude = flags.exclude
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.sevenZip != "" {
		cfg.SevenZipPath = flags.sevenZip
	}
	if flags.reportFormat != "" {
		cfg.ReportFormat = flags.reportFormat
	}
	if flags.outputFile != "" {
		cfg.OutputFile = flags.outputFile
	}
	if cmd.Flags().Changed("timing") {
		cfg.ReportTiming = flags.timing
	}
}

// runScan gathers the containers, analyzes them and writes the report
func runScan(ctx context.Context, cfg *config.Config) error {
	game, err := loadGame(cfg)
	if err != nil {
		return err
	}

	loc, err := resolveLocations(ctx, cfg, game)
	if err != nil {
		logger.Error("Failed to locate game", zap.Error(err))
		return err
	}

	printBanner(game, cfg, loc)

	containers, err := gatherContainers(cfg, loc)
	if err != nil {
		return err
	}

	tool := archive.NewSevenZip(cfg.SevenZipPath, cfg.ScratchDir, logger)
	checker := core.NewChecker(cfg, tool, logger)
	checker.SetRunInfo(version, game.Name)
	checker.SetProgressCallback(progressPrinter())

	result, err := checker.Run(ctx, containers)
	if err != nil {
		logger.Error("Analysis failed", zap.Error(err))
		return err
	}

	checker.Reporter().PrintSummary(os.Stdout, result)

	if result.ReportPath != "" {
		fmt.Printf("  %sReport:%s    %s%s%s\n", colorGray, colorReset, colorOrange, result.ReportPath, colorReset)
		fmt.Println()
	}

	return nil
}

// loadGame returns the profile selected by the config
func loadGame(cfg *config.Config) (*games.Profile, error) {
	registry, err := games.NewLoader(cfg.GamesFile).Load()
	if err != nil {
		return nil, err
	}
	return registry.Get(cfg.Game)
}

// resolveLocations finds mod and workshop directories and the game version.
// Steam is only consulted for what the config does not provide.
func resolveLocations(ctx context.Context, cfg *config.Config, game *games.Profile) (*steam.Locations, error) {
	loc := &steam.Locations{
		Name:        game.Name,
		ModDir:      cfg.ModDir,
		WorkshopDir: cfg.WorkshopDir,
	}

	needsWorkshop := !cfg.ExcludeWorkshop
	if needsWorkshop && (loc.WorkshopDir == "" || cfg.GameVersion == "") {
		found, err := steam.NewLocator(cfg.SteamDir, logger).Find(game, cfg.ModDir)
		if err != nil {
			if loc.WorkshopDir == "" {
				return nil, err
			}
			logger.Warn("Steam lookup failed", zap.Error(err))
		} else {
			loc.Name = found.Name
			loc.GameDir = found.GameDir
			if loc.WorkshopDir == "" {
				loc.WorkshopDir = found.WorkshopDir
			}
		}
	}

	if loc.ModDir == "" {
		modDir, err := steam.DefaultModDir(game)
		if err != nil {
			return nil, err
		}
		loc.ModDir = modDir
	}

	if needsWorkshop && cfg.GameVersion == "" && loc.GameDir != "" {
		gameVersion, err := steam.DetectGameVersion(ctx, loc.GameDir, game)
		if err != nil {
			fmt.Printf("  %s⚠ %s, multi-version workshop mods fall back to their universal package%s\n",
				colorYellow, err.Error(), colorReset)
			logger.Warn("Game version unknown", zap.Error(err))
		} else {
			cfg.GameVersion = gameVersion
		}
	}

	return loc, nil
}

// gatherContainers collects local and, unless excluded, workshop containers
func gatherContainers(cfg *config.Config, loc *steam.Locations) ([]models.Container, error) {
	d, err := discovery.New(cfg.Exclude, logger)
	if err != nil {
		return nil, err
	}

	fmt.Printf("  %s... gathering local mods ...%s\n", colorGray, colorReset)
	containers, err := d.LocalContainers(loc.ModDir)
	if err != nil {
		return nil, err
	}

	if !cfg.ExcludeWorkshop {
		fmt.Printf("  %s... gathering workshop mods ...%s\n", colorGray, colorReset)
		workshop, err := d.WorkshopContainers(loc.WorkshopDir)
		if err != nil {
			return nil, err
		}
		containers = append(containers, workshop...)
	}

	return containers, nil
}

// progressPrinter draws a progress bar for the materialize phase
func progressPrinter() core.ProgressCallback {
	lastPhase := ""
	return func(phase string, current, total int, message string) {
		// Clear previous line if same phase
		if lastPhase == phase && phase == core.PhaseMaterialized {
			fmt.Print("\033[1A\033[K")
		}
		lastPhase = phase

		switch phase {
		case core.PhaseStarted:
			fmt.Printf("\n  %sAnalyzing %d mods...%s\n", colorReset, total, colorReset)
		case core.PhaseMaterialized:
			if total > 0 {
				pct := float64(current) / float64(total) * 100
				barWidth := 30
				filled := int(float64(barWidth) * float64(current) / float64(total))
				bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
				fmt.Printf("  %sMods:%s      [%s%s%s] %s%.1f%%%s (%d/%d)\n",
					colorGray, colorReset, colorOrange, bar, colorReset, colorOrange, pct, colorReset, current, total)
			}
		case core.PhaseDetecting:
			fmt.Printf("  %s%s%s\n", colorGray, message, colorReset)
		}
	}
}

// printBanner prints the startup banner
func printBanner(game *games.Profile, cfg *config.Config, loc *steam.Locations) {
	printMainBanner()
	gameVersion := cfg.GameVersion
	if gameVersion == "" {
		gameVersion = "unknown"
	}
	fmt.Printf("  %sGame:%s      %s - v %s\n", colorGray, colorReset, game.Name, gameVersion)
	fmt.Printf("  %sMods:%s      %s\n", colorGray, colorReset, loc.ModDir)
	if !cfg.ExcludeWorkshop {
		fmt.Printf("  %sWorkshop:%s  %s\n", colorGray, colorReset, loc.WorkshopDir)
	}
	fmt.Println()
}
