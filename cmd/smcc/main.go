package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorOrange = "\033[38;5;208m"
	colorYellow = "\033[38;5;220m"
	colorGray   = "\033[38;5;245m"
	colorCyan   = "\033[36m"
)

var (
	version    = "1.0.0"
	logger     *zap.Logger
	verbose    bool
	configFile string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smcc",
		Short: "SMCC - SCS Mod Compatibility Checker",
		Long: `Finds mods of Euro Truck Simulator 2 and American Truck Simulator that
install files at the same path and therefore override each other.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()
			cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./smcc.yaml)")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(gamesCmd())
	rootCmd.AddCommand(versionInfoCmd())
	rootCmd.AddCommand(helpCmd())

	return rootCmd
}

// initLogger builds the logger selected by the verbose flag
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		// Silent logger - only errors
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// printMainBanner prints the main banner
func printMainBanner() {
	fmt.Println()
	fmt.Printf("%s", colorOrange)
	fmt.Println("▄████▄ ██▄  ▄██ ▄████▄ ▄████▄")
	fmt.Println("▀▀▄▄▄  ██ ▀▀ ██ ██     ██    ")
	fmt.Println("▀████▀ ██    ██ ▀████▀ ▀████▀")
	fmt.Printf("%s", colorReset)
	fmt.Println()
	fmt.Printf("%sSCS Mod Compatibility Checker v%s%s\n", colorGray, version, colorReset)
	fmt.Println()
}

// helpCmd creates a detailed help command
func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show detailed help and documentation",
		Long:  `Display complete documentation including all commands, flags, and examples.`,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()

			fmt.Printf("%s%sABOUT%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  SMCC lists every pair of mods that install a file at the same path.\n")
			fmt.Printf("  The game loads only one of them, so one mod silently overrides the other.\n\n")
			fmt.Printf("  By default automat/ files are ignored and up to 3 conflicting files per\n")
			fmt.Printf("  mod are printed, together with how many more files are conflicting.\n\n")

			fmt.Printf("%s%sCOMMANDS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %sscan%s              Analyze local and workshop mods\n", colorBold, colorReset)
			fmt.Printf("  %sgames%s             List known game profiles\n", colorBold, colorReset)
			fmt.Printf("  %sversion-info%s      Show game locations and version\n", colorBold, colorReset)

			fmt.Printf("\n%s%sSCAN FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %s-i, --include-automat%s        Include automat files in the result\n", colorBold, colorReset)
			fmt.Printf("  %s-a, --all-conflicting-files%s  Include all conflicting files in the result\n", colorBold, colorReset)
			fmt.Printf("  %s-m, --mod-names-only%s         Exclude all conflicting files from the result\n", colorBold, colorReset)
			fmt.Printf("  %s-e, --exclude-workshop-mods%s  Exclude workshop mods from the analysis\n", colorBold, colorReset)
			fmt.Printf("  %s--ats%s                        Analyze American Truck Simulator instead of ETS2\n", colorBold, colorReset)
			fmt.Printf("  %s--game%s <key>                 Game profile: %sets2%s, %sats%s or one from --games-file\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Printf("  %s--mod-dir%s <dir>              Analyze another mod folder than Documents/<game>/mod\n", colorBold, colorReset)
			fmt.Printf("  %s--steam-dir%s <dir>            Steam root containing steamapps/libraryfolders.vdf\n", colorBold, colorReset)
			fmt.Printf("  %s--workshop-dir%s <dir>         Workshop content folder, skips the Steam lookup\n", colorBold, colorReset)
			fmt.Printf("  %s--game-version%s <ver>         Game version used for multi-version workshop mods\n", colorBold, colorReset)
			fmt.Printf("  %s--exclude%s <glob>             Skip mods whose file or workshop id matches\n", colorBold, colorReset)
			fmt.Printf("  %s--workers%s <n>                Number of parallel workers (default: CPU cores)\n", colorBold, colorReset)
			fmt.Printf("  %s--seven-zip%s <path>           7-Zip binary (default: 7z from PATH)\n", colorBold, colorReset)

			fmt.Printf("\n%s%sREPORT FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %s-r, --report%s <fmt>           Report format: %stext%s, %sjson%s, %syaml%s, %smd%s\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Printf("  %s-o, --output%s <file>          Output file (default: mod-analysis-result.txt)\n", colorBold, colorReset)
			fmt.Printf("  %s--timing%s                     Write start time and duration into the report\n", colorBold, colorReset)

			fmt.Printf("\n%s%sGLOBAL FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %s-v, --verbose%s      Enable verbose logging\n", colorBold, colorReset)
			fmt.Printf("  %s--config%s <file>    Config file (default: ./smcc.yaml)\n", colorBold, colorReset)
			fmt.Printf("  %s-h, --help%s         Show help for any command\n", colorBold, colorReset)
			fmt.Printf("  %s--version%s          Show version\n", colorBold, colorReset)

			fmt.Printf("\n%s%sEXAMPLES%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %s# Analyze ETS2 mods%s\n", colorGray, colorReset)
			fmt.Printf("  smcc scan\n\n")

			fmt.Printf("  %s# Analyze ATS local mods only, listing every file%s\n", colorGray, colorReset)
			fmt.Printf("  smcc scan --ats -e -a\n\n")

			fmt.Printf("  %s# JSON report of a custom mod folder%s\n", colorGray, colorReset)
			fmt.Printf("  smcc scan -e --mod-dir ./mods --report json -o result.json\n\n")
		},
	}
}
