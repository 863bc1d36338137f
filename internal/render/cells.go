package render

import (
	"math"

	"tg-wheel-bot/gamble"
)

// Особые значения в сетке ячеек
const (
	CellOutside = -1
	CellHub     = -2
	CellEdge    = -3
)

// CellAspect высота символа терминала относительно ширины
const CellAspect = 2.0

// CellGeometry центр и радиус колеса в сетке cols x rows (радиус в ширинах ячейки)
func CellGeometry(cols, rows int) (cx, cy, radius float64) {
	cx = float64(cols) / 2
	cy = float64(rows) / 2
	radius = math.Min(cx, cy*CellAspect) - 1
	return cx, cy, radius
}

// Cells растр колеса для терминала: индекс сектора в каждой ячейке
// или одно из значений Cell*. Ячейки вытянуты по вертикали в CellAspect раз.
func Cells(w *gamble.Wheel, rotation float64, cols, rows int) [][]int {
	grid := make([][]int, rows)
	if cols <= 0 || rows <= 0 {
		return grid
	}

	cx, cy, radius := CellGeometry(cols, rows)
	hub := radius * 0.15

	arcs := make([]gamble.Arc, w.Len())
	for i := range arcs {
		arcs[i] = w.ArcOf(i)
	}

	for y := 0; y < rows; y++ {
		grid[y] = make([]int, cols)
		for x := 0; x < cols; x++ {
			dx := float64(x) + 0.5 - cx
			dy := (float64(y) + 0.5 - cy) * CellAspect
			dist := math.Hypot(dx, dy)

			switch {
			case dist > radius:
				grid[y][x] = CellOutside
			case dist <= hub:
				grid[y][x] = CellHub
			default:
				a := gamble.Normalize(math.Atan2(dy, dx) - rotation)
				i := w.IndexAtAngle(a)
				if math.Min(a-arcs[i].Start, arcs[i].End-a)*dist < 0.5 {
					grid[y][x] = CellEdge
				} else {
					grid[y][x] = i
				}
			}
		}
	}
	return grid
}
