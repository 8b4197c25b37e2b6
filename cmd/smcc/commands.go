package main

import (
	"context"
	"fmt"

	"github.com/lRainZz/scs-mod-comp-checker/internal/config"
	"github.com/lRainZz/scs-mod-comp-checker/internal/games"
	"github.com/lRainZz/scs-mod-comp-checker/internal/steam"
	"github.com/spf13/cobra"
)

// gamesCmd lists the known game profiles
func gamesCmd() *cobra.Command {
	var gamesFile string

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List known game profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if gamesFile == "" {
				cfg, err := config.LoadConfig(configFile)
				if err != nil {
					return err
				}
				gamesFile = cfg.GamesFile
			}

			registry, err := games.NewLoader(gamesFile).Load()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "GAME PROFILES:")
			for _, key := range registry.Keys() {
				p, _ := registry.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %-8s %s\n", p.Key, p.AppID, p.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gamesFile, "games-file", "", "YAML file or directory with additional game profiles")

	return cmd
}

// versionInfoCmd prints the resolved locations and version of a game
func versionInfoCmd() *cobra.Command {
	var (
		game     string
		ats      bool
		steamDir string
	)

	cmd := &cobra.Command{
		Use:   "version-info",
		Short: "Show game locations and version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			if game != "" {
				cfg.Game = game
			}
			if ats {
				cfg.Game = "ats"
			}
			if steamDir != "" {
				cfg.SteamDir = steamDir
			}

			profile, err := loadGame(cfg)
			if err != nil {
				return err
			}

			loc, err := steam.NewLocator(cfg.SteamDir, logger).Find(profile, cfg.ModDir)
			if err != nil {
				return err
			}

			gameVersion := cfg.GameVersion
			if gameVersion == "" {
				gameVersion, err = steam.DetectGameVersion(context.Background(), loc.GameDir, profile)
				if err != nil {
					gameVersion = "unknown (" + err.Error() + ")"
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%sGame:%s      %s (%s)\n", colorGray, colorReset, profile.Name, profile.AppID)
			fmt.Fprintf(out, "%sVersion:%s   %s\n", colorGray, colorReset, gameVersion)
			fmt.Fprintf(out, "%sInstall:%s   %s\n", colorGray, colorReset, loc.GameDir)
			fmt.Fprintf(out, "%sMods:%s      %s\n", colorGray, colorReset, loc.ModDir)
			fmt.Fprintf(out, "%sWorkshop:%s  %s\n", colorGray, colorReset, loc.WorkshopDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Game profile key")
	cmd.Flags().BoolVar(&ats, "ats", false, "Use American Truck Simulator")
	cmd.Flags().StringVar(&steamDir, "steam-dir", "", "Steam root directory")

	return cmd
}
