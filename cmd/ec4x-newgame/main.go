// Command ec4x-newgame creates a fresh EC4X game and persists its turn-0
// checkpoint, printing the new game's id to stdout.
//
// Usage:
//
//	ec4x-newgame [--seed N] [--mongo-uri URI] [--database NAME] [--config PATH]
//
// World/scenario generation (systems, lanes, starting houses and
// fleets) is intentionally out of scope here: the engine does not own
// map generation (spec.md section 1), so this command only seeds the
// empty canonical state a separate generator would populate.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/elog"
	"github.com/greenm01/ec4x/internal/engine"
	"github.com/greenm01/ec4x/internal/persistence"
	"github.com/greenm01/ec4x/internal/persistence/mongostore"
)

type options struct {
	Seed     uint64 `long:"seed" description:"Game seed; a random one is generated if omitted"`
	MongoURI string `long:"mongo-uri" description:"Mongo connection URI; uses an in-memory store if omitted"`
	Database string `long:"database" default:"ec4x" description:"Mongo database name"`
	Config   string `long:"config" description:"YAML rules override file (defaults to config.Default())"`
}

var description = `Creates a new EC4X game: allocates a game id, seeds the initial
canonical state, and persists its turn-0 checkpoint.`

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "ec4x-newgame"
	parser.LongDescription = description

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Config != "" {
		if _, err := config.Load(opts.Config); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		elog.Info("rules override validated", elog.F("path", opts.Config))
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	gameID := uuid.New()
	st := engine.NewGame(seed)

	store, err := openStore(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}

	cp := persistence.Checkpoint{
		GameID:        gameID,
		Turn:          st.Turn,
		Version:       0,
		Seed:          seed,
		EngineVersion: persistence.EngineVersion,
		State:         st,
	}
	if err := store.Append(context.Background(), cp); err != nil {
		fmt.Fprintf(os.Stderr, "Error persisting turn 0: %v\n", err)
		os.Exit(1)
	}

	elog.Info("new game created", elog.F("gameId", gameID.String()), elog.F("seed", seed))
	fmt.Println(gameID.String())
}

func openStore(opts options) (persistence.Store, error) {
	if opts.MongoURI == "" {
		return persistence.NewMemoryStore(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := mongostore.Connect(ctx, opts.MongoURI, opts.Database)
	if err != nil {
		return nil, err
	}
	if err := st.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return st, nil
}
