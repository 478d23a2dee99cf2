// Command ec4x-replay replays a persisted game's checkpoint history and
// verifies that re-resolving each turn from its predecessor reproduces
// the persisted state bit-for-bit (spec.md section 6).
//
// Usage:
//
//	ec4x-replay verify --game-id ID [--mongo-uri URI] [--database NAME]
//	ec4x-replay dump --game-id ID [--mongo-uri URI] [--database NAME]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	gameIDFlag   string
	mongoURI     string
	databaseFlag string
	configFlag   string
)

// rootCmd is ec4x-replay's entry point.
var rootCmd = &cobra.Command{
	Use:   "ec4x-replay",
	Short: "Replay and verify persisted EC4X games",
	Long: `Replay reads a game's append-only checkpoint history and either
verifies that deterministic re-resolution reproduces it exactly, or
dumps the history for inspection.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gameIDFlag, "game-id", "", "Game id (uuid) to replay")
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "Mongo connection URI; uses an in-memory store if omitted")
	rootCmd.PersistentFlags().StringVar(&databaseFlag, "database", "ec4x", "Mongo database name")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "YAML rules override file used for the original run (defaults to config.Default())")
	_ = rootCmd.MarkPersistentFlagRequired("game-id")

	rootCmd.AddCommand(verifyCmd, dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
