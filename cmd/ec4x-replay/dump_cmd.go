package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every persisted turn's summary (turn, seed, event count)",
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	gameID, err := uuid.Parse(gameIDFlag)
	if err != nil {
		return fmt.Errorf("invalid --game-id: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	history, err := store.History(ctx, gameID)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	for _, cp := range history {
		fmt.Printf("turn %4d  seed=%-20d  engine=%-16s  events=%-4d  houses=%d\n",
			cp.Turn, cp.Seed, cp.EngineVersion, len(cp.Events), len(cp.State.Houses))
	}
	return nil
}
