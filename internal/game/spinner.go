package game

import (
	"errors"
	"math"
	"time"

	"tg-wheel-bot/gamble"
)

// ErrSpinning возвращается при попытке запустить колесо, которое уже крутится
var ErrSpinning = errors.New("колесо уже крутится")

// DefaultSpinDuration длительность анимации вращения
const DefaultSpinDuration = 4000 * time.Millisecond

// State состояние аниматора
type State int

const (
	Idle State = iota
	Spinning
)

func (s State) String() string {
	if s == Spinning {
		return "spinning"
	}
	return "idle"
}

// Frame один шаг анимации
type Frame struct {
	Rotation float64
	Progress float64
	Done     bool
	// Landed сектор под стрелкой после остановки (только при Done)
	Landed int
}

// Spinner конечный автомат Idle -> Spinning(start, target) -> Idle
type Spinner struct {
	wheel    *gamble.Wheel
	duration time.Duration

	state    State
	start    time.Time
	target   float64
	rotation float64
}

// NewSpinner создает аниматор для колеса
func NewSpinner(wheel *gamble.Wheel, duration time.Duration) *Spinner {
	if duration <= 0 {
		duration = DefaultSpinDuration
	}
	return &Spinner{wheel: wheel, duration: duration}
}

// State возвращает текущее состояние
func (s *Spinner) State() State { return s.state }

// Rotation возвращает последний отрисованный поворот
func (s *Spinner) Rotation() float64 { return s.rotation }

// Target возвращает целевой поворот текущего (или последнего) вращения
func (s *Spinner) Target() float64 { return s.target }

// Start запускает вращение к сектору index с turns дополнительными оборотами.
// Повторный запуск во время вращения отклоняется без изменения состояния.
func (s *Spinner) Start(now time.Time, index, turns int) (float64, error) {
	if s.state == Spinning {
		return 0, ErrSpinning
	}

	s.state = Spinning
	s.start = now
	s.target = s.wheel.TargetRotation(index, turns)

	return s.target, nil
}

// progress доля прошедшего времени, ограниченная [0, 1]
func (s *Spinner) progress(now time.Time) float64 {
	p := float64(now.Sub(s.start)) / float64(s.duration)
	return math.Max(0, math.Min(1, p))
}

// easeOut кубическое замедление
func easeOut(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// RotationAt поворот в момент t текущего вращения, без изменения состояния.
// Анимация всегда идет от нуля до target.
func (s *Spinner) RotationAt(t time.Time) float64 {
	p := s.progress(t)
	if p >= 1 {
		return s.target
	}
	return s.target * easeOut(p)
}

// Advance делает шаг анимации к моменту now
func (s *Spinner) Advance(now time.Time) Frame {
	if s.state != Spinning {
		return Frame{Rotation: s.rotation, Progress: 1}
	}

	p := s.progress(now)
	if p < 1 {
		s.rotation = s.target * easeOut(p)
		return Frame{Rotation: s.rotation, Progress: p}
	}

	s.rotation = s.target
	s.state = Idle

	return Frame{
		Rotation: s.rotation,
		Progress: 1,
		Done:     true,
		Landed:   s.wheel.PointerHit(s.rotation),
	}
}

// Duration длительность одного вращения
func (s *Spinner) Duration() time.Duration { return s.duration }

// StartedAt момент запуска текущего вращения
func (s *Spinner) StartedAt() time.Time { return s.start }
