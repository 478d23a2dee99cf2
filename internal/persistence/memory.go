package persistence

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/greenm01/ec4x/internal/ec4xerr"
)

// MemoryStore is an in-process Store, grounded on the teacher's
// MemoryProvider (diplomacy/memory_provider.go): no locking, since one
// game is always driven by a single resolver loop. Used by this
// package's tests and by cmd/ec4x-newgame/cmd/ec4x-replay when no
// Mongo URI is configured.
type MemoryStore struct {
	byGame map[uuid.UUID]map[int]Checkpoint
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byGame: make(map[uuid.UUID]map[int]Checkpoint)}
}

func (m *MemoryStore) Append(ctx context.Context, cp Checkpoint) error {
	turns, ok := m.byGame[cp.GameID]
	if !ok {
		turns = make(map[int]Checkpoint)
		m.byGame[cp.GameID] = turns
	}
	if cp.Turn != len(turns) {
		return ec4xerr.ErrTurnMismatch
	}
	turns[cp.Turn] = cp
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, gameID uuid.UUID, turn int) (Checkpoint, error) {
	turns, ok := m.byGame[gameID]
	if !ok {
		return Checkpoint{}, ec4xerr.ErrGameNotFound
	}
	cp, ok := turns[turn]
	if !ok {
		return Checkpoint{}, ec4xerr.ErrGameNotFound
	}
	return cp, nil
}

func (m *MemoryStore) Latest(ctx context.Context, gameID uuid.UUID) (Checkpoint, error) {
	turns, ok := m.byGame[gameID]
	if !ok || len(turns) == 0 {
		return Checkpoint{}, ec4xerr.ErrGameNotFound
	}
	return turns[len(turns)-1], nil
}

func (m *MemoryStore) History(ctx context.Context, gameID uuid.UUID) ([]Checkpoint, error) {
	turns, ok := m.byGame[gameID]
	if !ok {
		return nil, ec4xerr.ErrGameNotFound
	}
	nums := make([]int, 0, len(turns))
	for t := range turns {
		nums = append(nums, t)
	}
	sort.Ints(nums)
	out := make([]Checkpoint, len(nums))
	for i, t := range nums {
		out[i] = turns[t]
	}
	return out, nil
}
