package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/greenm01/ec4x/internal/ec4xerr"
	"github.com/greenm01/ec4x/internal/state"
)

func TestMemoryStoreAppendEnforcesSequentialTurns(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	gameID := uuid.New()

	if err := store.Append(ctx, Checkpoint{GameID: gameID, Turn: 0, State: state.New()}); err != nil {
		t.Fatalf("Append turn 0: %v", err)
	}
	if err := store.Append(ctx, Checkpoint{GameID: gameID, Turn: 2, State: state.New()}); err != ec4xerr.ErrTurnMismatch {
		t.Fatalf("Append out-of-order turn = %v, want ErrTurnMismatch", err)
	}
	if err := store.Append(ctx, Checkpoint{GameID: gameID, Turn: 1, State: state.New()}); err != nil {
		t.Fatalf("Append turn 1: %v", err)
	}
}

func TestMemoryStoreLatestAndHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	gameID := uuid.New()

	for turn := 0; turn < 3; turn++ {
		st := state.New()
		st.Turn = turn
		if err := store.Append(ctx, Checkpoint{GameID: gameID, Turn: turn, State: st}); err != nil {
			t.Fatalf("Append turn %d: %v", turn, err)
		}
	}

	latest, err := store.Latest(ctx, gameID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Turn != 2 {
		t.Errorf("Latest.Turn = %d, want 2", latest.Turn)
	}

	history, err := store.History(ctx, gameID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("History length = %d, want 3", len(history))
	}
	for i, cp := range history {
		if cp.Turn != i {
			t.Errorf("History[%d].Turn = %d, want %d", i, cp.Turn, i)
		}
	}
}

func TestMemoryStoreUnknownGameReturnsErrGameNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Latest(ctx, uuid.New()); err != ec4xerr.ErrGameNotFound {
		t.Errorf("Latest on unknown game = %v, want ErrGameNotFound", err)
	}
	if _, err := store.Load(ctx, uuid.New(), 0); err != ec4xerr.ErrGameNotFound {
		t.Errorf("Load on unknown game = %v, want ErrGameNotFound", err)
	}
}
