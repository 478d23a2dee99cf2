package main

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/elog"
	"github.com/greenm01/ec4x/internal/engine"
	"github.com/greenm01/ec4x/internal/persistence"
	"github.com/greenm01/ec4x/internal/starmap"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Re-resolve every persisted turn and compare against the checkpoint log",
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
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
	if len(history) == 0 {
		return ec4xerr.ErrGameNotFound
	}

	rules := config.Default()
	if configFlag != "" {
		loaded, err := config.Load(configFlag)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		rules = loaded
	}
	current := history[0].State

	for _, cp := range history[1:] {
		graph := starmap.Build(current)
		result := engine.ResolveTurn(current, rules, graph, cp.Packets, gameID)
		if result.Poisoned != nil {
			return fmt.Errorf("%w: turn %d poisoned on replay: %s", ec4xerr.ErrChecksumMismatch, cp.Turn, result.Poisoned.Reason)
		}
		if !reflect.DeepEqual(result.State, cp.State) {
			return fmt.Errorf("%w: turn %d state diverged from persisted checkpoint", ec4xerr.ErrChecksumMismatch, cp.Turn)
		}
		elog.Info("turn verified", elog.F("gameId", gameID.String()), elog.F("turn", cp.Turn))
		current = result.State
	}

	fmt.Printf("OK: %d turns verified bit-exact for game %s\n", len(history)-1, gameID)
	return nil
}
