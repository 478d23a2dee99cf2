// Package persistence defines the append-only per-turn checkpoint
// contract (spec.md section 6): every resolved turn is written once
// and never updated in place, so a game's full history is always
// replayable from turn 0. Grounded on the teacher's
// players.PlayerGameState / diplomacy.State documents (flat,
// bson-tagged structs dedicated to one collection) generalized from
// live per-player documents into one whole-game snapshot per turn.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/state"
)

// EngineVersion tags every checkpoint with the resolver build that
// produced it, so a replay can detect a version skew before trusting a
// bit-exact comparison (spec.md section 6 "engine-version tag").
const EngineVersion = "ec4x-engine/1"

// Checkpoint is one turn's persisted record: the post-resolution
// canonical state, the event log that turn produced, and the inputs
// (seed, engine version) needed to reproduce it deterministically.
type Checkpoint struct {
	GameID        uuid.UUID    `bson:"gameId"`
	Turn          int          `bson:"turn"`
	Version       int64        `bson:"version"` // stored as given; neither Store sets or checks it (append-only ordering is enforced on Turn)
	Seed          uint64       `bson:"seed"`
	EngineVersion string       `bson:"engineVersion"`
	CreatedAt     time.Time    `bson:"createdAt"`
	State         *state.State `bson:"state"`
	Events        []event.Event `bson:"events"`

	// Packets is every house's submitted command packet that turn,
	// kept alongside the resulting state so a replay can re-run
	// resolveTurn from the prior checkpoint and compare outputs
	// bit-for-bit (spec.md section 6 "verify bit-exact re-resolution").
	Packets []command.CommandPacket `bson:"packets"`
}

// Store is the persistence boundary internal/engine's resolver is
// never allowed to depend on (spec.md section 1/6: the engine core is
// a pure function; persistence is host-side plumbing). Implementations
// must reject any Append whose Turn is not exactly one past the
// store's current latest turn for that game, with
// internal/ec4xerr.ErrTurnMismatch (append-only: no update, no gap,
// no replay-divergent overwrite).
type Store interface {
	// Append persists cp as the next turn for cp.GameID. Returns
	// internal/ec4xerr.ErrTurnMismatch if cp.Turn is not immediately
	// after the store's current latest turn for this game (0 for a
	// brand-new game).
	Append(ctx context.Context, cp Checkpoint) error

	// Load returns the checkpoint for (gameID, turn), or
	// internal/ec4xerr.ErrGameNotFound if no such turn has been
	// persisted.
	Load(ctx context.Context, gameID uuid.UUID, turn int) (Checkpoint, error)

	// Latest returns the highest-turn checkpoint persisted for gameID,
	// or internal/ec4xerr.ErrGameNotFound if the game has no
	// checkpoints at all.
	Latest(ctx context.Context, gameID uuid.UUID) (Checkpoint, error)

	// History returns every checkpoint for gameID in ascending turn
	// order, used by the replay CLI's "dump" subcommand.
	History(ctx context.Context, gameID uuid.UUID) ([]Checkpoint, error)
}
