// Package render рисует колесо: GIF-кадры для бота и растр ячеек для терминала
package render

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"tg-wheel-bot/gamble"
	"tg-wheel-bot/internal/game"
)

// Renderer рисует колесо заданного размера
type Renderer struct {
	wheel       *gamble.Wheel
	arcs        []gamble.Arc
	size        int
	labelFormat string
}

// New создает рендерер квадратных кадров стороной size
func New(w *gamble.Wheel, size int, labelFormat string) *Renderer {
	arcs := make([]gamble.Arc, w.Len())
	for i := range arcs {
		arcs[i] = w.ArcOf(i)
	}
	return &Renderer{
		wheel:       w,
		arcs:        arcs,
		size:        size,
		labelFormat: labelFormat,
	}
}

func (r *Renderer) geometry() (cx, cy, radius, hub float64) {
	half := float64(r.size) / 2
	radius = half - 12
	hub = math.Max(8, radius*0.2)
	return half, half + 6, radius, hub
}

// Frame рисует колесо при повороте rotation
func (r *Renderer) Frame(rotation float64, boosted bool) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, r.size, r.size), Palette(r.wheel))
	cx, cy, radius, hub := r.geometry()

	border := idxWhite
	lineWidth := 3.0
	hubFill, hubBorder := idxWhite, idxHubBorder
	if boosted {
		border = idxGold
		lineWidth = 4.0
		hubFill, hubBorder = idxGold, idxOrange
	}

	for y := 0; y < r.size; y++ {
		for x := 0; x < r.size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Hypot(dx, dy)

			switch {
			case dist > radius+lineWidth/2:
				img.SetColorIndex(x, y, idxBackground)
			case dist > radius-lineWidth/2:
				img.SetColorIndex(x, y, border)
			case dist <= hub:
				img.SetColorIndex(x, y, hubFill)
			case dist <= hub+4:
				img.SetColorIndex(x, y, hubBorder)
			default:
				a := gamble.Normalize(math.Atan2(dy, dx) - rotation)
				i := r.wheel.IndexAtAngle(a)
				arc := r.arcs[i]
				edge := math.Min(a-arc.Start, arc.End-a) * dist
				if edge < lineWidth/2 {
					img.SetColorIndex(x, y, border)
				} else {
					img.SetColorIndex(x, y, idxFirstOutcome+uint8(i))
				}
			}
		}
	}

	r.drawLabels(img, rotation, boosted)
	r.drawPointer(img)
	if boosted {
		drawText(img, "*", int(cx), int(cy), idxWhite)
	}

	return img
}

func (r *Renderer) drawLabels(img *image.Paletted, rotation float64, boosted bool) {
	cx, cy, radius, _ := r.geometry()
	textColor := idxWhite
	if boosted {
		textColor = idxGold
	}

	for i, arc := range r.arcs {
		_, label := game.Display(r.wheel.Outcome(i), boosted, r.labelFormat)
		mid := arc.Center() + rotation
		x := cx + radius*0.65*math.Cos(mid)
		y := cy + radius*0.65*math.Sin(mid)
		drawText(img, label, int(x), int(y), textColor)
	}
}

// drawPointer стрелка сверху, острием к центру
func (r *Renderer) drawPointer(img *image.Paletted) {
	cx, cy, radius, _ := r.geometry()
	top := cy - radius - 6
	const height, halfWidth = 18.0, 10.0

	for y := int(top); y < int(top+height); y++ {
		t := (float64(y) - top) / height
		w := halfWidth * (1 - t)
		for x := int(cx - w); x <= int(cx+w); x++ {
			if image.Pt(x, y).In(img.Rect) {
				img.SetColorIndex(x, y, idxPointer)
			}
		}
	}
}

// drawText пишет строку с центром в (x, y)
func drawText(img *image.Paletted, s string, x, y int, idx uint8) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(img.Palette[idx]),
		Face: face,
	}
	width := d.MeasureString(s)
	metrics := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.I(x) - width/2,
		Y: fixed.I(y) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(s)
}
