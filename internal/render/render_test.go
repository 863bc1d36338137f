package render

import (
	"bytes"
	"image/color"
	"testing"
	"time"

	"tg-wheel-bot/gamble"
	"tg-wheel-bot/internal/game"
)

func referenceWheel(t testing.TB) *gamble.Wheel {
	t.Helper()
	w, err := gamble.NewWheel([]gamble.Outcome{
		{Label: "1x", Value: 1, Weight: 25, Color: "#FF6B6B"},
		{Label: "2x", Value: 2, Weight: 25, Color: "#4ECDC4"},
		{Label: "3x", Value: 3, Weight: 25, Color: "#45B7D1"},
		{Label: "5x", Value: 5, Weight: 12, Color: "#FFA07A"},
		{Label: "10x", Value: 10, Weight: 8, Color: "#98D8C8"},
		{Label: "20x", Value: 20, Weight: 3, Color: "#FFD93D"},
		{Label: "0x", Value: 0, Weight: 2, Color: "#A8E6CF"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{in: "#FF6B6B", want: color.RGBA{0xFF, 0x6B, 0x6B, 0xFF}, ok: true},
		{in: "4ecdc4", want: color.RGBA{0x4E, 0xCD, 0xC4, 0xFF}, ok: true},
		{in: "#FFF", want: colorFallback},
		{in: "#GGGGGG", want: colorFallback},
		{in: "", want: colorFallback},
	}

	for _, tc := range cases {
		got, ok := ParseHex(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseHex(%q): want (%v, %t), got (%v, %t)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestFramePointerPixelMatchesPointerHit(t *testing.T) {
	w := referenceWheel(t)
	r := New(w, 200, "%dx")
	cx, cy, radius, _ := r.geometry()

	for i := 0; i < w.Len(); i++ {
		rotation := w.TargetRotation(i, 5)
		img := r.Frame(rotation, false)

		x, y := int(cx), int(cy-radius*0.8)
		got := img.ColorIndexAt(x, y)
		if want := idxFirstOutcome + uint8(w.PointerHit(rotation)); got != want {
			t.Errorf("index %d: pixel under pointer has palette index %d, want %d", i, got, want)
		}
	}
}

func TestFrameBoostedRim(t *testing.T) {
	r := New(referenceWheel(t), 200, "%dx")
	cx, cy, radius, _ := r.geometry()
	x, y := int(cx), int(cy+radius)

	if got := r.Frame(0, false).ColorIndexAt(x, y); got != idxWhite {
		t.Errorf("plain rim: want white, got %d", got)
	}
	if got := r.Frame(0, true).ColorIndexAt(x, y); got != idxGold {
		t.Errorf("boosted rim: want gold, got %d", got)
	}
	if got := r.Frame(0, false).ColorIndexAt(0, r.size-1); got != idxBackground {
		t.Errorf("corner: want background, got %d", got)
	}
}

func TestAnimation(t *testing.T) {
	w := referenceWheel(t)
	sp := game.NewSpinner(w, 4*time.Second)
	start := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)
	if _, err := sp.Start(start, 4, 5); err != nil {
		t.Fatal(err)
	}

	r := New(w, 96, "%dx")
	anim := r.Animation(sp, false, 20)

	if len(anim.Image) != 81 || len(anim.Delay) != 81 {
		t.Fatalf("frames: %d images, %d delays", len(anim.Image), len(anim.Delay))
	}
	if anim.Delay[0] != 5 || anim.Delay[80] != holdLastFrame {
		t.Errorf("delays: first %d, last %d", anim.Delay[0], anim.Delay[80])
	}
	if sp.State() != game.Spinning || sp.Rotation() != 0 {
		t.Errorf("rendering mutated the spinner")
	}

	data, err := EncodeGIF(anim)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("GIF89a")) {
		t.Errorf("not a GIF: %q", data[:6])
	}
}

func TestCells(t *testing.T) {
	w := referenceWheel(t)
	const cols, rows = 80, 40

	for i := 0; i < w.Len(); i++ {
		rotation := w.TargetRotation(i, 6)
		grid := Cells(w, rotation, cols, rows)

		if len(grid) != rows || len(grid[0]) != cols {
			t.Fatalf("grid size %dx%d", len(grid[0]), len(grid))
		}
		if grid[0][0] != CellOutside {
			t.Errorf("corner should be outside, got %d", grid[0][0])
		}
		if grid[rows/2][cols/2] != CellHub {
			t.Errorf("center should be hub, got %d", grid[rows/2][cols/2])
		}
		if got := grid[3][cols/2-1]; got != i {
			t.Errorf("index %d: cell under pointer is %d", i, got)
		}
	}

	if got := Cells(w, 0, 0, 0); len(got) != 0 {
		t.Errorf("empty grid expected")
	}
}
