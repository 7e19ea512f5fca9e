package components

import "testing"

func TestFadeTweenLifecycle(t *testing.T) {
	var tween FadeTween
	if tween.Active() || tween.Finished() {
		t.Fatal("zero tween should be idle")
	}

	tween.Start(FadingOut, 0.5)
	if tween.Direction() != -1 {
		t.Errorf("Direction: got %v, want -1", tween.Direction())
	}

	tween.Advance(0.25)
	if tween.Finished() {
		t.Error("tween should not finish halfway")
	}
	if tween.Remaining() != 0.25 {
		t.Errorf("Remaining: got %v, want 0.25", tween.Remaining())
	}

	tween.Advance(0.25)
	if !tween.Finished() {
		t.Error("tween should finish once elapsed reaches duration")
	}

	tween.Stop()
	if tween.Active() || tween.Direction() != 0 {
		t.Error("Stop should return to idle")
	}

	// 空闲时推进不累计时间
	tween.Advance(1)
	if tween.Elapsed != 0 {
		t.Errorf("idle tween accumulated time: %v", tween.Elapsed)
	}
}

func TestFadeTweenRestartReplaces(t *testing.T) {
	var tween FadeTween
	tween.Start(FadingIn, 1)
	tween.Advance(0.7)

	tween.Start(FadingIn, 1)
	if tween.Elapsed != 0 || tween.Phase != FadingIn {
		t.Errorf("restart should reset elapsed, got %+v", tween)
	}
}

func TestFadePhaseString(t *testing.T) {
	cases := map[FadePhase]string{
		FadeIdle:  "Idle",
		FadingIn:  "FadingIn",
		FadingOut: "FadingOut",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", phase, got, want)
		}
	}
}
