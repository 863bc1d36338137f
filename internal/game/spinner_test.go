package game

import (
	"errors"
	"math"
	"testing"
	"time"

	"tg-wheel-bot/gamble"
)

func referenceWheel(t testing.TB) *gamble.Wheel {
	t.Helper()
	w, err := gamble.NewWheel([]gamble.Outcome{
		{Label: "1x", Value: 1, Weight: 25},
		{Label: "2x", Value: 2, Weight: 25},
		{Label: "3x", Value: 3, Weight: 25},
		{Label: "5x", Value: 5, Weight: 12},
		{Label: "10x", Value: 10, Weight: 8},
		{Label: "20x", Value: 20, Weight: 3},
		{Label: "0x", Value: 0, Weight: 2},
	})
	if err != nil {
		t.Fatalf("NewWheel: %v", err)
	}
	return w
}

var t0 = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.Local)

func TestSpinnerEasing(t *testing.T) {
	w := referenceWheel(t)
	s := NewSpinner(w, 4*time.Second)

	target, err := s.Start(t0, 3, 6)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	cases := []struct {
		elapsed time.Duration
		eased   float64
	}{
		{0, 0},
		{1 * time.Second, 1 - math.Pow(0.75, 3)},
		{2 * time.Second, 1 - math.Pow(0.5, 3)},
		{3 * time.Second, 1 - math.Pow(0.25, 3)},
	}

	prev := -1.0
	for _, tc := range cases {
		f := s.Advance(t0.Add(tc.elapsed))
		if f.Done {
			t.Fatalf("done too early at %v", tc.elapsed)
		}
		if want := target * tc.eased; math.Abs(f.Rotation-want) > 1e-9 {
			t.Errorf("at %v: want rotation %v, got %v", tc.elapsed, want, f.Rotation)
		}
		if f.Rotation <= prev {
			t.Errorf("rotation not increasing at %v", tc.elapsed)
		}
		prev = f.Rotation
	}

	f := s.Advance(t0.Add(4 * time.Second))
	if !f.Done || f.Rotation != target || f.Landed != 3 {
		t.Errorf("final frame: %+v, target %v", f, target)
	}
	if s.State() != Idle {
		t.Errorf("state after completion: %v", s.State())
	}
}

func TestSpinnerClampsProgress(t *testing.T) {
	s := NewSpinner(referenceWheel(t), time.Second)
	target, _ := s.Start(t0, 0, 5)

	// часы пошли назад
	if f := s.Advance(t0.Add(-time.Second)); f.Rotation != 0 || f.Done {
		t.Errorf("negative elapsed: %+v", f)
	}

	// кадр сильно позже конца
	f := s.Advance(t0.Add(time.Hour))
	if !f.Done || f.Rotation != target {
		t.Errorf("late frame: %+v", f)
	}
}

func TestSpinnerRejectsReentrantStart(t *testing.T) {
	s := NewSpinner(referenceWheel(t), time.Second)

	target, err := s.Start(t0, 2, 5)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Start(t0.Add(100*time.Millisecond), 6, 8); !errors.Is(err, ErrSpinning) {
		t.Fatalf("want ErrSpinning, got %v", err)
	}
	if s.Target() != target || !s.StartedAt().Equal(t0) {
		t.Errorf("rejected start changed state")
	}

	if f := s.Advance(t0.Add(time.Second)); f.Landed != 2 {
		t.Errorf("landed %d, want 2", f.Landed)
	}
	if _, err := s.Start(t0.Add(2*time.Second), 1, 5); err != nil {
		t.Errorf("start after completion: %v", err)
	}
}

func TestSpinnerEasesFromZeroEverySpin(t *testing.T) {
	s := NewSpinner(referenceWheel(t), time.Second)

	s.Start(t0, 1, 5)
	s.Advance(t0.Add(time.Second))
	if s.Rotation() == 0 {
		t.Fatal("first spin did not move")
	}

	start := t0.Add(10 * time.Second)
	s.Start(start, 4, 5)
	if f := s.Advance(start); f.Rotation != 0 {
		t.Errorf("second spin should restart at 0, got %v", f.Rotation)
	}
}

func TestSpinnerRoundTripAllIndices(t *testing.T) {
	w := referenceWheel(t)

	for i := 0; i < w.Len(); i++ {
		for turns := DefaultMinTurns; turns <= DefaultMaxTurns; turns++ {
			s := NewSpinner(w, DefaultSpinDuration)
			if _, err := s.Start(t0, i, turns); err != nil {
				t.Fatal(err)
			}

			var f Frame
			for step := time.Duration(0); !f.Done; step += 16 * time.Millisecond {
				f = s.Advance(t0.Add(step))
			}
			if f.Landed != i {
				t.Errorf("index %d turns %d: landed on %d", i, turns, f.Landed)
			}
		}
	}
}

func TestRotationAtDoesNotMutate(t *testing.T) {
	s := NewSpinner(referenceWheel(t), time.Second)
	target, _ := s.Start(t0, 5, 7)

	if got := s.RotationAt(t0.Add(time.Second)); got != target {
		t.Errorf("RotationAt(end): want %v, got %v", target, got)
	}
	if s.State() != Spinning || s.Rotation() != 0 {
		t.Errorf("RotationAt changed state")
	}
}

func TestAdvanceWhileIdle(t *testing.T) {
	s := NewSpinner(referenceWheel(t), time.Second)
	if f := s.Advance(t0); f.Done || f.Rotation != 0 {
		t.Errorf("idle advance: %+v", f)
	}
}
