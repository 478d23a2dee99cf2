package id

import "testing"

func TestIDTextRoundTrip(t *testing.T) {
	tbl := NewTable(KindShip)
	want := tbl.Alloc()

	text, err := want.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var got ID
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if got != want {
		t.Errorf("round-trip = %v, want %v", got, want)
	}
}

func TestNilIDTextRoundTrip(t *testing.T) {
	text, err := Nil.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var got ID
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if !got.IsNil() {
		t.Errorf("round-tripped nil id = %v, want IsNil", got)
	}
}

func TestTableSnapshotRestorePreservesGenerationsAndFreeList(t *testing.T) {
	tbl := NewTable(KindFleet)
	a := tbl.Alloc()
	b := tbl.Alloc()
	tbl.Free(a)

	snap := tbl.Snapshot()
	restored := RestoreTable(snap)

	if restored.Valid(a) {
		t.Errorf("restored table reports freed id %v as valid", a)
	}
	if !restored.Valid(b) {
		t.Errorf("restored table reports live id %v as invalid", b)
	}

	reused := restored.Alloc()
	if reused.Index() != a.Index() {
		t.Fatalf("Alloc after restore reused index %d, want freed index %d", reused.Index(), a.Index())
	}
	if reused.gen == a.gen {
		t.Errorf("reused slot %v kept the freed generation %d", reused, a.gen)
	}
}
