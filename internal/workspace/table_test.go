package workspace

import "testing"

func TestNewTableStartsOnWorkspaceZero(t *testing.T) {
	tbl := New()
	if tbl.Current() != tbl.List(0) {
		t.Fatalf("expected workspace 0 to be current at startup")
	}
	if tbl.Current().Len() != 0 {
		t.Fatalf("expected empty workspaces at startup")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tbl := New()
	tbl.Current().Append(42)

	tbl.Save(0)
	tbl.Load(2)
	if tbl.Current().Len() != 0 {
		t.Fatalf("expected workspace 2 to start empty")
	}

	tbl.Save(2)
	tbl.Load(0)

	if tbl.Current().Len() != 1 || tbl.Current().Head.Window != 42 {
		t.Fatalf("expected workspace 0's client to survive the round trip")
	}
}

func TestListAccessesSlotWithoutChangingCurrent(t *testing.T) {
	tbl := New()
	before := tbl.Current()
	tbl.List(5).Append(7)
	if tbl.Current() != before {
		t.Fatalf("List() must not change which slot is current")
	}
	if tbl.List(5).Len() != 1 {
		t.Fatalf("expected append to land in slot 5")
	}
}
