// Package id implements the opaque typed identifiers and generational
// arena tables that every entity kind in the canonical state is stored
// in. Ids of different kinds are never interchangeable even though
// their underlying representation is the same uint32 pair.
package id

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Kind tags an id with the entity table it belongs to, so that two
// numerically equal ids of different kinds are never confused.
type Kind uint8

const (
	KindHouse Kind = iota + 1
	KindSystem
	KindLane
	KindColony
	KindNeoria
	KindKastra
	KindFleet
	KindShip
	KindGroundUnit
	KindProject
	KindTransit
	KindEffect
	KindProposal
)

// ID is an opaque handle: an index into a Kind's arena table plus a
// generation counter that invalidates stale handles after the slot is
// recycled. The zero value is never a valid id (index 0 is reserved).
type ID struct {
	kind Kind
	idx  uint32
	gen  uint32
}

// Nil is the zero-value, always-invalid id.
var Nil = ID{}

func (i ID) Kind() Kind   { return i.kind }
func (i ID) IsNil() bool  { return i.idx == 0 && i.gen == 0 }
func (i ID) Index() int   { return int(i.idx) }
func (i ID) String() string {
	if i.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d.%d", kindName(i.kind), i.idx, i.gen)
}

// MarshalText renders i in the same "Kind#idx.gen" form as String, so
// an ID can serve as a map key wherever a persistence codec (BSON,
// JSON) requires string-keyed maps (internal/persistence's checkpoint
// snapshot).
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText parses the "Kind#idx.gen" form back into an ID,
// inverting MarshalText/String.
func (i *ID) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "<nil>" || s == "" {
		*i = Nil
		return nil
	}
	name, rest, ok := strings.Cut(s, "#")
	if !ok {
		return fmt.Errorf("id: malformed id %q", s)
	}
	idxStr, genStr, ok := strings.Cut(rest, ".")
	if !ok {
		return fmt.Errorf("id: malformed id %q", s)
	}
	kind, ok := parseKind(name)
	if !ok {
		return fmt.Errorf("id: unknown kind %q in %q", name, s)
	}
	idx, err := strconv.ParseUint(idxStr, 10, 32)
	if err != nil {
		return fmt.Errorf("id: malformed index in %q: %w", s, err)
	}
	gen, err := strconv.ParseUint(genStr, 10, 32)
	if err != nil {
		return fmt.Errorf("id: malformed generation in %q: %w", s, err)
	}
	*i = ID{kind: kind, idx: uint32(idx), gen: uint32(gen)}
	return nil
}

// MarshalBSONValue encodes i as a BSON string in its "Kind#idx.gen"
// form. ID's fields are unexported so the driver's reflection-based
// struct codec cannot see them; without this, every id.ID embedded in
// a persisted internal/state.State would round-trip as an empty
// document. Needed for internal/persistence/mongostore, which persists
// state.State (and everything it references by id.ID) directly.
func (i ID) MarshalBSONValue() (bson.Type, []byte, error) {
	return bson.MarshalValue(i.String())
}

// UnmarshalBSONValue is the inverse of MarshalBSONValue.
func (i *ID) UnmarshalBSONValue(t bson.Type, data []byte) error {
	var s string
	if err := bson.UnmarshalValue(t, data, &s); err != nil {
		return fmt.Errorf("id: decoding bson value: %w", err)
	}
	return i.UnmarshalText([]byte(s))
}

func parseKind(name string) (Kind, bool) {
	switch name {
	case "House":
		return KindHouse, true
	case "System":
		return KindSystem, true
	case "Lane":
		return KindLane, true
	case "Colony":
		return KindColony, true
	case "Neoria":
		return KindNeoria, true
	case "Kastra":
		return KindKastra, true
	case "Fleet":
		return KindFleet, true
	case "Ship":
		return KindShip, true
	case "GroundUnit":
		return KindGroundUnit, true
	case "Project":
		return KindProject, true
	case "Transit":
		return KindTransit, true
	case "Effect":
		return KindEffect, true
	case "Proposal":
		return KindProposal, true
	default:
		return 0, false
	}
}

func kindName(k Kind) string {
	switch k {
	case KindHouse:
		return "House"
	case KindSystem:
		return "System"
	case KindLane:
		return "Lane"
	case KindColony:
		return "Colony"
	case KindNeoria:
		return "Neoria"
	case KindKastra:
		return "Kastra"
	case KindFleet:
		return "Fleet"
	case KindShip:
		return "Ship"
	case KindGroundUnit:
		return "GroundUnit"
	case KindProject:
		return "Project"
	case KindTransit:
		return "Transit"
	case KindEffect:
		return "Effect"
	case KindProposal:
		return "Proposal"
	default:
		return "Unknown"
	}
}

type slot struct {
	gen  uint32
	live bool
}

// Table is a dense, generational arena for one entity Kind: a stable,
// reusable index space with a free list. It carries no payload itself;
// callers keep a parallel slice/map of the same length for the actual
// entity data, indexed by ID.Index().
type Table struct {
	kind  Kind
	slots []slot
	free  []uint32
}

// NewTable creates an empty arena for the given entity kind.
func NewTable(kind Kind) *Table {
	// index 0 is reserved so the zero ID stays invalid.
	return &Table{kind: kind, slots: []slot{{}}}
}

// Alloc reserves a new id, reusing a freed slot when one is available.
func (t *Table) Alloc() ID {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[idx].live = true
		return ID{kind: t.kind, idx: idx, gen: t.slots[idx].gen}
	}
	idx := uint32(len(t.slots))
	t.slots = append(t.slots, slot{gen: 1, live: true})
	return ID{kind: t.kind, idx: idx, gen: 1}
}

// Free releases an id back to the free list, bumping its generation so
// any previously-issued handle to this slot becomes stale.
func (t *Table) Free(i ID) {
	if i.kind != t.kind || int(i.idx) >= len(t.slots) {
		return
	}
	s := &t.slots[i.idx]
	if !s.live || s.gen != i.gen {
		return
	}
	s.live = false
	s.gen++
	t.free = append(t.free, i.idx)
}

// Valid reports whether i currently refers to a live slot in this table.
func (t *Table) Valid(i ID) bool {
	if i.kind != t.kind || i.idx == 0 || int(i.idx) >= len(t.slots) {
		return false
	}
	s := t.slots[i.idx]
	return s.live && s.gen == i.gen
}

// Len returns the number of currently-live ids in the table.
func (t *Table) Len() int {
	n := 0
	for _, s := range t.slots {
		if s.live {
			n++
		}
	}
	return n
}

// Clone deep-copies the table, used whenever the resolver needs to
// produce a fresh canonical state without mutating the previous turn's.
func (t *Table) Clone() *Table {
	c := &Table{kind: t.kind}
	c.slots = append([]slot(nil), t.slots...)
	c.free = append([]uint32(nil), t.free...)
	return c
}

// SlotSnapshot is one Table slot's persisted generation/liveness, used
// only by internal/persistence to round-trip a Table across a
// checkpoint write/read.
type SlotSnapshot struct {
	Gen  uint32 `bson:"gen"`
	Live bool   `bson:"live"`
}

// TableSnapshot is the exported form of a Table, since slots/free are
// unexported and would otherwise be dropped by a reflection-based
// codec (internal/persistence/mongostore).
type TableSnapshot struct {
	Kind  Kind           `bson:"kind"`
	Slots []SlotSnapshot `bson:"slots"`
	Free  []uint32       `bson:"free"`
}

// Snapshot exports t's full slot/free-list state.
func (t *Table) Snapshot() TableSnapshot {
	snap := TableSnapshot{Kind: t.kind, Free: append([]uint32(nil), t.free...)}
	snap.Slots = make([]SlotSnapshot, len(t.slots))
	for i, s := range t.slots {
		snap.Slots[i] = SlotSnapshot{Gen: s.gen, Live: s.live}
	}
	return snap
}

// RestoreTable rebuilds a Table from a TableSnapshot previously produced
// by Snapshot, preserving every slot's generation so ids issued before
// the checkpoint stay valid (or correctly stale) after reload.
func RestoreTable(snap TableSnapshot) *Table {
	t := &Table{kind: snap.Kind, free: append([]uint32(nil), snap.Free...)}
	t.slots = make([]slot, len(snap.Slots))
	for i, s := range snap.Slots {
		t.slots[i] = slot{gen: s.Gen, live: s.Live}
	}
	return t
}
