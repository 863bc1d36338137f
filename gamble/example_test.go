package gamble

import "fmt"

func ExampleWheel_IndexAt() {
	w, _ := NewWheel([]Outcome{
		{Label: "1x", Value: 1, Weight: 25},
		{Label: "2x", Value: 2, Weight: 25},
		{Label: "3x", Value: 3, Weight: 25},
		{Label: "5x", Value: 5, Weight: 12},
		{Label: "10x", Value: 10, Weight: 8},
		{Label: "20x", Value: 20, Weight: 3},
		{Label: "0x", Value: 0, Weight: 2},
	})

	for _, r := range []float64{24.9, 25.1, 99.99} {
		fmt.Printf("r=%.2f -> %s\n", r, w.Outcome(w.IndexAt(r)).Label)
	}
	// Output:
	// r=24.90 -> 1x
	// r=25.10 -> 2x
	// r=99.99 -> 0x
}

func ExampleWheel_TargetRotation() {
	w, _ := NewWheel([]Outcome{
		{Label: "left", Value: 1, Weight: 1},
		{Label: "right", Value: 2, Weight: 1},
	})

	target := w.TargetRotation(1, 5)
	fmt.Println(w.Outcome(w.PointerHit(target)).Label)
	// Output: right
}
