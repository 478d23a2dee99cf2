// Package rng provides the single deterministic source of randomness
// threaded through a turn's resolution (spec.md sections 5/9). Split
// out from the phase-resolver orchestrator package so that every phase
// package (combat, research, espionage) can depend on it without
// creating an import cycle back through the orchestrator.
package rng

import (
	"hash/fnv"
	"math/rand"

	"github.com/google/uuid"
)

// SeedFor derives the deterministic per-turn RNG seed named in spec.md
// sections 5/6/9: rngSeed = hash(gameId, turn). Strengthened from the
// teacher-adjacent prior-art convention of seeding from turn alone, so
// that replays of different games never correlate.
func SeedFor(gameID uuid.UUID, turn int) uint64 {
	h := fnv.New64a()
	b := gameID[:]
	h.Write(b)
	var tb [8]byte
	t := uint64(turn)
	for i := 0; i < 8; i++ {
		tb[i] = byte(t >> (8 * i))
	}
	h.Write(tb[:])
	return h.Sum64()
}

// RNG is the single source of randomness for a turn's resolution. All
// intra-phase randomness must draw from it in a fixed traversal order
// (spec.md section 5); no phase may construct its own source or read
// wall-clock time.
type RNG struct {
	r *rand.Rand
}

// New builds an RNG from a 64-bit seed.
func New(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(int64(seed)))}
}

// Intn returns a deterministic pseudo-random integer in [0,n).
func (g *RNG) Intn(n int) int { return g.r.Intn(n) }

// D100 rolls a deterministic 1..100 die, the unit spec.md's CER/
// detection/breakthrough tables are expressed against.
func (g *RNG) D100() int { return g.r.Intn(100) + 1 }

// Float64 returns a deterministic value in [0,1).
func (g *RNG) Float64() float64 { return g.r.Float64() }
