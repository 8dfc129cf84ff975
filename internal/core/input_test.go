package core

import "testing"

func TestInputFramePressedAndHeld(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionBomb)
	f.Hold(ActionUp)

	if !f.Has(ActionBomb) || !f.JustPressed(ActionBomb) {
		t.Error("Set should mark the action pressed and held")
	}
	if !f.Has(ActionUp) {
		t.Error("Hold should make Has true")
	}
	if f.JustPressed(ActionUp) {
		t.Error("Hold should not count as a fresh press")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !clone.Has(ActionBomb) || !clone.Has(ActionUp) {
		t.Error("Clone should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionLeft) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionLeft)
	if !f.JustPressed(ActionLeft) {
		t.Error("Set on a zero frame should allocate and record")
	}
}

func TestParseAction(t *testing.T) {
	for a := ActionUp; a <= ActionPause; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("Jump"); ok {
		t.Error("unknown action names should not parse")
	}
}
