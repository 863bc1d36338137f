package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tg-wheel-bot/internal/game"
	"tg-wheel-bot/internal/render"
)

// panelWidth ширина правой панели со списком секторов
const panelWidth = 28

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleGold    = tcell.StyleDefault.Foreground(tcell.GetColor("#FFD700")).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePointer = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// wheelArea размер области колеса: слева от панели, под строкой стрелки,
// над тремя строками статуса
func wheelArea(w, h int) (cols, rows int) {
	cols = w - panelWidth
	if cols < 10 {
		cols = w
	}
	rows = h - 4
	if rows < 5 {
		rows = h
	}
	return cols, rows
}

// Draw перерисовывает экран
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	cols, rows := wheelArea(w, h)
	a.drawWheel(cols, rows)
	if cols < w {
		a.drawPanel(cols+1, w-cols-1)
	}
	a.drawStatus(w, h)

	a.screen.Show()
}

func (a *App) drawWheel(cols, rows int) {
	wheel := a.session.Wheel()
	boosted := a.session.Boosted()

	edge := tcell.StyleDefault.Background(tcell.ColorWhite)
	if boosted {
		edge = tcell.StyleDefault.Background(tcell.GetColor("#FFD700"))
	}

	grid := render.Cells(wheel, a.session.Rotation(), cols, rows)
	for y, row := range grid {
		for x, cell := range row {
			switch cell {
			case render.CellOutside:
				continue
			case render.CellHub:
				r := ' '
				if boosted {
					r = '★'
				}
				a.screen.SetContent(x, y+1, r, nil, edge.Foreground(tcell.ColorOrange))
			case render.CellEdge:
				a.screen.SetContent(x, y+1, ' ', nil, edge)
			default:
				color := tcell.GetColor(wheel.Outcome(cell).Color)
				a.screen.SetContent(x, y+1, ' ', nil, tcell.StyleDefault.Background(color))
			}
		}
	}

	cx, _, _ := render.CellGeometry(cols, rows)
	a.screen.SetContent(int(cx)-1, 0, '▼', nil, stylePointer)
}

func (a *App) drawPanel(x, width int) {
	wheel := a.session.Wheel()
	boosted := a.session.Boosted()
	landed := -1
	if a.result != nil && !a.session.Spinning() {
		landed = a.result.Index
	}

	drawText(a.screen, x, 0, width, "КОЛЕСО ПРИЗОВ", styleTitle)
	if boosted {
		drawText(a.screen, x, 1, width, "✨ БУСТ x10", styleGold)
	}

	for i := 0; i < wheel.Len(); i++ {
		o := wheel.Outcome(i)
		_, label := game.Display(o, boosted, a.session.LabelFormat())
		y := 3 + i

		a.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(tcell.GetColor(o.Color)))
		a.screen.SetContent(x+1, y, ' ', nil, tcell.StyleDefault.Background(tcell.GetColor(o.Color)))

		chance := float64(o.Weight) * 100 / float64(wheel.TotalWeight())
		line := fmt.Sprintf("%-6s %5.1f%%", label, chance)
		style := styleDefault
		if i == landed {
			line += " ◀"
			style = styleTitle
		}
		drawText(a.screen, x+3, y, width-3, line, style)
	}
}

func (a *App) drawStatus(w, h int) {
	y := h - 3
	if a.result != nil {
		text := fmt.Sprintf("Выпало: %s", a.result.Label)
		if a.result.Boosted {
			text += " (буст x10)"
		}
		drawText(a.screen, 0, y, w, text, styleGold)
	}

	drawText(a.screen, 0, y+1, w, a.notice, styleDefault)
	if a.mode == modePhrase {
		drawText(a.screen, 0, y+2, w, "> "+string(a.input)+"_", styleTitle)
	} else {
		drawText(a.screen, 0, y+2, w, "ПРОБЕЛ крутить · P кодовое слово · Q выход", styleDim)
	}
}

// drawText пишет строку, учитывая широкие символы; обрезает по ширине
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > width {
			return
		}
		s.SetContent(x+col, y, r, nil, style)
		col += rw
	}
}
