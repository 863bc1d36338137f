package render

import (
	"image/color"
	"strconv"
	"strings"

	"tg-wheel-bot/gamble"
)

var (
	colorBackground = color.RGBA{0xF5, 0xF5, 0xFA, 0xFF}
	colorWhite      = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colorGold       = color.RGBA{0xFF, 0xD7, 0x00, 0xFF}
	colorOrange     = color.RGBA{0xFF, 0xA5, 0x00, 0xFF}
	colorHubBorder  = color.RGBA{0x66, 0x7E, 0xEA, 0xFF}
	colorPointer    = color.RGBA{0x33, 0x33, 0x33, 0xFF}
	colorFallback   = color.RGBA{0x99, 0x99, 0x99, 0xFF}
)

// Индексы служебных цветов в палитре; цвета секторов идут следом
const (
	idxBackground uint8 = iota
	idxWhite
	idxGold
	idxOrange
	idxHubBorder
	idxPointer
	idxFirstOutcome
)

// ParseHex разбирает цвет вида #RRGGBB; при ошибке возвращает ok=false
func ParseHex(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return colorFallback, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorFallback, false
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xFF}, true
}

// Palette палитра кадра: служебные цвета и по одному цвету на сектор
func Palette(w *gamble.Wheel) color.Palette {
	p := color.Palette{
		colorBackground,
		colorWhite,
		colorGold,
		colorOrange,
		colorHubBorder,
		colorPointer,
	}
	for _, o := range w.Outcomes() {
		c, _ := ParseHex(o.Color)
		p = append(p, c)
	}
	return p
}
