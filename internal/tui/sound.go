package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Sound звук остановки колеса
type Sound interface {
	Play(win bool)
	Close()
}

// noSound заглушка, когда аудио недоступно
type noSound struct{}

func (noSound) Play(bool) {}
func (noSound) Close()    {}

// beepSound синусоида через динамик
type beepSound struct {
	rate beep.SampleRate
}

// NewSound инициализирует динамик. Ошибка не фатальна: вызывающий
// получает заглушку и продолжает без звука.
func NewSound() (Sound, error) {
	rate := beep.SampleRate(44100)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return noSound{}, err
	}
	return &beepSound{rate: rate}, nil
}

// Play короткий тон: выше для выигрыша, ниже для пустого сектора
func (s *beepSound) Play(win bool) {
	freq := 880
	if !win {
		freq = 220
	}

	sine, err := generators.SineTone(s.rate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(s.rate.N(150*time.Millisecond), sine))
}

func (s *beepSound) Close() {
	speaker.Close()
}
