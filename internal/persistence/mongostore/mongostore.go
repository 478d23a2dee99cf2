// Package mongostore is the Mongo-backed persistence.Store (spec.md
// section 6): an append-only "games_turns" collection keyed
// {gameId, turn}, storing a BSON-marshaled canonical-state snapshot,
// the turn's event log, the RNG seed, and an engine-version tag.
// Grounded on the teacher's bson-tagged-document style throughout
// players/game_state.go and diplomacy/state.go, generalized from
// per-player live documents to one immutable document per turn.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/google/uuid"

	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/elog"
	"github.com/greenm01/ec4x/internal/persistence"
)

const collectionName = "games_turns"

// Store is a persistence.Store backed by a Mongo collection. The
// {gameId, turn} compound index (created by EnsureIndexes) is unique,
// so a concurrent double-Append for the same turn fails at the
// database rather than silently overwriting history.
type Store struct {
	coll *mongo.Collection
}

// Connect dials uri and returns a Store bound to database/"games_turns".
// Wire compression and SCRAM/TLS auth are negotiated by the driver
// itself from uri; this function does not configure them beyond
// mongo.Connect's own URI parsing (spec.md's dependency-wiring table:
// the driver's compressors/auth transitive deps are exercised here
// whenever uri carries credentials or a compressor option).
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}
	return &Store{coll: client.Database(database).Collection(collectionName)}, nil
}

// EnsureIndexes creates the unique {gameId, turn} index the append-only
// guarantee relies on. Safe to call repeatedly.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "gameId", Value: 1}, {Key: "turn", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongostore: ensure indexes: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, cp persistence.Checkpoint) error {
	latest, err := s.Latest(ctx, cp.GameID)
	switch {
	case err == nil:
		if cp.Turn != latest.Turn+1 {
			return ec4xerr.ErrTurnMismatch
		}
	case err == ec4xerr.ErrGameNotFound:
		if cp.Turn != 0 {
			return ec4xerr.ErrTurnMismatch
		}
	default:
		return err
	}

	cp.EngineVersion = persistence.EngineVersion
	if _, err := s.coll.InsertOne(ctx, cp); err != nil {
		return fmt.Errorf("mongostore: append turn %d: %w", cp.Turn, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, gameID uuid.UUID, turn int) (persistence.Checkpoint, error) {
	var cp persistence.Checkpoint
	err := s.coll.FindOne(ctx, bson.M{"gameId": gameID, "turn": turn}).Decode(&cp)
	if err == mongo.ErrNoDocuments {
		return persistence.Checkpoint{}, ec4xerr.ErrGameNotFound
	}
	if err != nil {
		return persistence.Checkpoint{}, fmt.Errorf("mongostore: load turn %d: %w", turn, err)
	}
	return cp, nil
}

func (s *Store) Latest(ctx context.Context, gameID uuid.UUID) (persistence.Checkpoint, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "turn", Value: -1}})
	var cp persistence.Checkpoint
	err := s.coll.FindOne(ctx, bson.M{"gameId": gameID}, opts).Decode(&cp)
	if err == mongo.ErrNoDocuments {
		return persistence.Checkpoint{}, ec4xerr.ErrGameNotFound
	}
	if err != nil {
		return persistence.Checkpoint{}, fmt.Errorf("mongostore: latest: %w", err)
	}
	return cp, nil
}

func (s *Store) History(ctx context.Context, gameID uuid.UUID) ([]persistence.Checkpoint, error) {
	opts := options.Find().SetSort(bson.D{{Key: "turn", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{"gameId": gameID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongostore: history: %w", err)
	}
	defer cur.Close(ctx)

	var out []persistence.Checkpoint
	for cur.Next(ctx) {
		var cp persistence.Checkpoint
		if err := cur.Decode(&cp); err != nil {
			return nil, fmt.Errorf("mongostore: decode history entry: %w", err)
		}
		out = append(out, cp)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongostore: history cursor: %w", err)
	}
	if len(out) == 0 {
		return nil, ec4xerr.ErrGameNotFound
	}
	elog.Debug("mongostore: loaded history", elog.F("gameId", gameID), elog.F("turns", len(out)))
	return out, nil
}
