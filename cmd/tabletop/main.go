// Package main is the entry point for the tabletop screens
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/config"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/logging"
)

var (
	cfg  *config.Config
	seed int64
)

var rootCmd = &cobra.Command{
	Use:   "tabletop",
	Short: "Tabletop RPG screens",
	Long: `Tabletop runs the game screens as separate processes. Log in first,
then create a character and play. The logged in player is passed between
screens through a handoff file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the environment may already be set
		_ = godotenv.Load()

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Setup(cfg.Log.Level, cfg.Log.Format)
		slog.Debug("Configuration loaded",
			"db_path", cfg.Storage.Path,
			"redis_enabled", cfg.Redis.Enabled(),
		)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "dice seed (0 picks a random seed)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(createCharacterCmd)
	rootCmd.AddCommand(playCmd)
}
