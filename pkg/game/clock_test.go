package game

import (
	"math"
	"testing"
)

func TestClock(t *testing.T) {
	const dt = 1.0 / 60.0
	c := NewClock()

	c.Tick(dt)
	if c.Delta() != dt || c.UnscaledDelta() != dt {
		t.Errorf("scale 1: delta %v unscaled %v", c.Delta(), c.UnscaledDelta())
	}

	c.SetTimeScale(0)
	if !c.Paused() {
		t.Error("time scale 0 should report paused")
	}
	c.Tick(dt)
	if c.Delta() != 0 {
		t.Errorf("paused delta: %v", c.Delta())
	}
	if c.UnscaledDelta() != dt {
		t.Errorf("unscaled delta should ignore time scale, got %v", c.UnscaledDelta())
	}

	c.SetTimeScale(2)
	c.Tick(dt)
	if math.Abs(c.Time()-3*dt) > 1e-12 {
		t.Errorf("total scaled time: %v, want %v", c.Time(), 3*dt)
	}

	c.SetTimeScale(-1)
	if c.TimeScale() != 0 {
		t.Errorf("negative scale should clamp to 0, got %v", c.TimeScale())
	}
}
