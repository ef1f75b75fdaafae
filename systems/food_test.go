package systems

import (
	"testing"

	"github.com/pthm-cable/burrow/components"
)

func TestFoodPruneKeepsOrder(t *testing.T) {
	fs := NewFoodSources()
	fs.Add(components.Position{X: 0}, 3)
	fs.Add(components.Position{X: 10}, 0)
	fs.Add(components.Position{X: 20}, 5)
	fs.Add(components.Position{X: 30}, 0)

	if removed := fs.Prune(); removed != 2 {
		t.Errorf("Prune removed %d, want 2", removed)
	}
	all := fs.All()
	if len(all) != 2 || all[0].Position.X != 0 || all[1].Position.X != 20 {
		t.Errorf("after prune = %+v", all)
	}
	if fs.Remaining() != 8 {
		t.Errorf("Remaining = %d, want 8", fs.Remaining())
	}
}

func TestFoodFindFirstInRange(t *testing.T) {
	fs := NewFoodSources()
	fs.Add(components.Position{X: 50, Y: 50}, 0) // cell (10,10), empty
	fs.Add(components.Position{X: 60, Y: 50}, 4) // cell (12,10)
	fs.Add(components.Position{X: 55, Y: 50}, 4) // cell (11,10), closer but later

	got := fs.Find(components.Cell{X: 10, Y: 10}, 2, 5)
	if got == nil || got.Position.X != 60 {
		t.Fatalf("Find = %+v, want first non-empty source in range", got)
	}
	if fs.Find(components.Cell{X: 0, Y: 0}, 5, 5) != nil {
		t.Error("Find matched a source out of range")
	}

	got.Amount--
	if fs.All()[1].Amount != 3 {
		t.Error("Find did not return a live pointer")
	}
}

func TestTunnelMapDig(t *testing.T) {
	tm := NewTunnelMap(3, 2)
	c := components.Cell{X: 2, Y: 1}

	if !tm.Dig(c) {
		t.Error("first Dig returned false")
	}
	if tm.Dig(c) {
		t.Error("second Dig returned true")
	}
	if tm.Dig(components.Cell{X: 3, Y: 0}) || tm.IsDug(components.Cell{X: -1, Y: 0}) {
		t.Error("out-of-grid cell dug")
	}
	if !tm.IsDug(c) || tm.Count() != 1 {
		t.Errorf("IsDug=%v Count=%d", tm.IsDug(c), tm.Count())
	}
}
