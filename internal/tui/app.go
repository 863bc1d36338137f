// Package tui терминальное колесо призов на tcell
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/slog"

	"tg-wheel-bot/internal/game"
	"tg-wheel-bot/internal/lib/logger/sl"
)

// frameInterval ~60 FPS
const frameInterval = 16 * time.Millisecond

type mode int

const (
	modeWheel mode = iota
	modePhrase
)

// App терминальный фронтенд одной сессии колеса
type App struct {
	screen  tcell.Screen
	session *game.Session
	sound   Sound
	log     *slog.Logger
	now     func() time.Time

	mode   mode
	input  []rune
	notice string
	result *game.Result
}

// New создает приложение поверх инициализированного экрана
func New(screen tcell.Screen, session *game.Session, sound Sound, log *slog.Logger) *App {
	if sound == nil {
		sound = noSound{}
	}
	return &App{
		screen:  screen,
		session: session,
		sound:   sound,
		log:     log,
		now:     time.Now,
		notice:  "ПРОБЕЛ - крутить, P - кодовое слово, Q - выход",
	}
}

// Run цикл кадров и ввода до выхода пользователя или отмены контекста
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Refresh(ctx, a.now()); err != nil {
		a.log.Error("failed to read boost", sl.Err(err))
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !a.HandleEvent(ctx, ev) {
				return nil
			}
		case <-ticker.C:
			a.Step(ctx, a.now())
			a.Draw()
		}
	}
}

// Step продвигает анимацию; по завершении показывает результат
func (a *App) Step(ctx context.Context, now time.Time) {
	if !a.session.Spinning() {
		return
	}

	_, res, err := a.session.Advance(ctx, now)
	if err != nil {
		a.log.Error("failed to finish spin", sl.Err(err))
	}
	if res == nil {
		return
	}

	a.result = res
	a.notice = ""
	a.sound.Play(res.Value > 0)
	a.log.Info("spin finished",
		sl.String("label", res.Label),
		slog.Int("value", res.Value),
		slog.Bool("boosted", res.Boosted),
	)
}

// HandleEvent обрабатывает ввод; false означает выход
func (a *App) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if a.mode == modePhrase {
			a.handlePhraseKey(ctx, ev)
			return true
		}
		return a.handleWheelKey(ctx, ev)

	case *tcell.EventResize:
		a.screen.Sync()
	}

	return true
}

func (a *App) handleWheelKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyEnter:
		a.spin(ctx)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			a.spin(ctx)
		case 'p', 'P':
			a.openPhrase(ctx)
		}
	}
	return true
}

func (a *App) spin(ctx context.Context) {
	_, err := a.session.Spin(ctx, a.now())
	if errors.Is(err, game.ErrSpinning) {
		a.notice = "Колесо уже крутится"
		return
	}
	if err != nil {
		a.log.Error("failed to spin", sl.Err(err))
		a.notice = "Не удалось запустить колесо"
		return
	}
	a.result = nil
	a.notice = "Крутим..."
}

func (a *App) openPhrase(ctx context.Context) {
	st, err := a.session.Gate().Status(ctx, a.now())
	if err != nil {
		a.log.Error("failed to read phrase status", sl.Err(err))
		a.notice = "Ошибка хранилища"
		return
	}
	if st.AttemptedToday {
		if st.BoostActive {
			a.notice = "Буст на сегодня уже активен!"
		} else {
			a.notice = "Сегодня попытка уже была. Попробуй завтра!"
		}
		return
	}

	a.mode = modePhrase
	a.input = a.input[:0]
	a.notice = "Кодовое слово дня (Enter - отправить, Esc - отмена):"
}

func (a *App) handlePhraseKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = modeWheel
		a.input = a.input[:0]
		a.notice = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	case tcell.KeyEnter:
		res, err := a.session.EnterPhrase(ctx, string(a.input), a.now())
		a.mode = modeWheel
		a.input = a.input[:0]
		if err != nil {
			a.log.Error("failed to check phrase", sl.Err(err))
			a.notice = "Ошибка хранилища"
			return
		}
		switch res {
		case game.AttemptCorrect:
			a.notice = "Верно! Следующее вращение x10"
		case game.AttemptBlocked:
			a.notice = "Сегодня попытка уже была"
		default:
			a.notice = "Неверно... Попробуй завтра!"
		}
	case tcell.KeyRune:
		a.input = append(a.input, ev.Rune())
	}
}
