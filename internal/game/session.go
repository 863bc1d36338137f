package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/exp/slog"

	"tg-wheel-bot/gamble"
	"tg-wheel-bot/internal/flag"
	"tg-wheel-bot/internal/lib/logger/sl"
	"tg-wheel-bot/internal/storage"
)

// Диапазон дополнительных полных оборотов по умолчанию
const (
	DefaultMinTurns = 5
	DefaultMaxTurns = 8
)

// SpinPlan параметры запущенного вращения
type SpinPlan struct {
	Index     int
	Turns     int
	Target    float64
	StartedAt time.Time
	Duration  time.Duration
	Boosted   bool
}

// Result итог вращения, пересчитанный по фактическому повороту
type Result struct {
	Index   int
	Outcome gamble.Outcome
	Value   int
	Label   string
	Boosted bool
}

// Session состояние одного колеса: поворот, флаг вращения и буст
type Session struct {
	wheel   *gamble.Wheel
	spinner *Spinner
	gate    *Gate
	store   storage.Store
	rng     gamble.RandomSource
	log     *slog.Logger

	minTurns    int
	maxTurns    int
	labelFormat string

	boosted  bool
	selected int
	// consumedOn день, когда буст уже был потрачен этой сессией
	consumedOn string
}

// Option настройка сессии
type Option func(*sessionOptions)

type sessionOptions struct {
	rng         gamble.RandomSource
	duration    time.Duration
	minTurns    int
	maxTurns    int
	labelFormat string
	phrases     []string
	log         *slog.Logger
}

// WithRand задает источник случайности
func WithRand(src gamble.RandomSource) Option {
	return func(o *sessionOptions) { o.rng = src }
}

// WithDuration задает длительность вращения
func WithDuration(d time.Duration) Option {
	return func(o *sessionOptions) { o.duration = d }
}

// WithTurns задает диапазон дополнительных оборотов
func WithTurns(min, max int) Option {
	return func(o *sessionOptions) {
		o.minTurns = min
		o.maxTurns = max
	}
}

// WithLabelFormat задает формат подписи при бусте
func WithLabelFormat(format string) Option {
	return func(o *sessionOptions) { o.labelFormat = format }
}

// WithPhrases задает список кодовых слов
func WithPhrases(phrases []string) Option {
	return func(o *sessionOptions) { o.phrases = phrases }
}

// WithLogger задает логгер
func WithLogger(log *slog.Logger) Option {
	return func(o *sessionOptions) { o.log = log }
}

// NewSession создает сессию колеса поверх хранилища флагов
func NewSession(wheel *gamble.Wheel, store storage.Store, opts ...Option) *Session {
	o := sessionOptions{
		duration:    DefaultSpinDuration,
		minTurns:    DefaultMinTurns,
		maxTurns:    DefaultMaxTurns,
		labelFormat: DefaultLabelFormat,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.log == nil {
		o.log = sl.Discard()
	}
	if o.maxTurns < o.minTurns {
		o.maxTurns = o.minTurns
	}

	return &Session{
		wheel:       wheel,
		spinner:     NewSpinner(wheel, o.duration),
		gate:        NewGate(o.phrases, store),
		store:       store,
		rng:         o.rng,
		log:         o.log,
		minTurns:    o.minTurns,
		maxTurns:    o.maxTurns,
		labelFormat: o.labelFormat,
	}
}

// Wheel возвращает колесо сессии
func (s *Session) Wheel() *gamble.Wheel { return s.wheel }

// Gate возвращает проверку кодового слова
func (s *Session) Gate() *Gate { return s.gate }

// Boosted активен ли буст для следующего результата
func (s *Session) Boosted() bool { return s.boosted }

// Spinning крутится ли колесо
func (s *Session) Spinning() bool { return s.spinner.State() == Spinning }

// Rotation текущий поворот колеса
func (s *Session) Rotation() float64 { return s.spinner.Rotation() }

// Spinner возвращает аниматор (для предпросмотра кадров)
func (s *Session) Spinner() *Spinner { return s.spinner }

// LabelFormat формат подписи при бусте
func (s *Session) LabelFormat() string { return s.labelFormat }

// Refresh перечитывает флаг буста из хранилища. Буст, уже потраченный
// сегодня, не возвращается, даже если его дата осталась в хранилище.
func (s *Session) Refresh(ctx context.Context, now time.Time) error {
	st, err := s.gate.Status(ctx, now)
	if err != nil {
		return err
	}
	if st.BoostActive && s.consumedOn == flag.Today(now) {
		s.boosted = false
		if err := s.store.Remove(ctx, storage.KeyBoostActiveDate); err != nil {
			return fmt.Errorf("clear boost: %w", err)
		}
		return nil
	}
	s.boosted = st.BoostActive
	return nil
}

// turns случайное целое число оборотов из [minTurns, maxTurns]
func (s *Session) turns() int {
	span := s.maxTurns - s.minTurns + 1
	n := s.minTurns + int(s.rng.Float64()*float64(span))
	if n > s.maxTurns {
		n = s.maxTurns
	}
	return n
}

// Spin выбирает исход и запускает вращение
func (s *Session) Spin(_ context.Context, now time.Time) (SpinPlan, error) {
	if s.Spinning() {
		return SpinPlan{}, ErrSpinning
	}

	index := s.wheel.Pick(s.rng)
	turns := s.turns()

	target, err := s.spinner.Start(now, index, turns)
	if err != nil {
		return SpinPlan{}, err
	}
	s.selected = index

	s.log.Debug("spin started",
		slog.Int("index", index),
		slog.Int("turns", turns),
		slog.Float64("target", target),
		slog.Bool("boosted", s.boosted),
	)

	return SpinPlan{
		Index:     index,
		Turns:     turns,
		Target:    target,
		StartedAt: now,
		Duration:  s.spinner.Duration(),
		Boosted:   s.boosted,
	}, nil
}

// Advance делает шаг анимации. После остановки возвращает результат по
// фактическому повороту и гасит буст.
func (s *Session) Advance(ctx context.Context, now time.Time) (Frame, *Result, error) {
	frame := s.spinner.Advance(now)
	if !frame.Done {
		return frame, nil, nil
	}

	if frame.Landed != s.selected {
		s.log.Warn("landed outcome differs from selection",
			slog.Int("selected", s.selected),
			slog.Int("landed", frame.Landed),
			slog.Float64("rotation", frame.Rotation),
		)
	}

	outcome := s.wheel.Outcome(frame.Landed)
	value, label := Display(outcome, s.boosted, s.labelFormat)
	res := &Result{
		Index:   frame.Landed,
		Outcome: outcome,
		Value:   value,
		Label:   label,
		Boosted: s.boosted,
	}

	if s.boosted {
		s.boosted = false
		s.consumedOn = flag.Today(now)
		if err := s.store.Remove(ctx, storage.KeyBoostActiveDate); err != nil {
			return frame, res, fmt.Errorf("clear boost: %w", err)
		}
	}

	return frame, res, nil
}

// EnterPhrase проверяет кодовое слово и обновляет флаг буста
func (s *Session) EnterPhrase(ctx context.Context, input string, now time.Time) (AttemptResult, error) {
	res, err := s.gate.Attempt(ctx, input, now)
	if err != nil {
		return res, err
	}
	if err := s.Refresh(ctx, now); err != nil {
		return res, err
	}

	s.log.Info("phrase attempt", slog.String("result", res.String()))
	return res, nil
}
