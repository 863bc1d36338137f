package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tg-wheel-bot/internal/flag"
	"tg-wheel-bot/internal/storage"
)

// AttemptResult результат ввода кодового слова
type AttemptResult int

const (
	AttemptIncorrect AttemptResult = iota
	AttemptCorrect
	// AttemptBlocked сегодня уже была попытка, ничего не записано
	AttemptBlocked
)

func (r AttemptResult) String() string {
	switch r {
	case AttemptCorrect:
		return "correct"
	case AttemptBlocked:
		return "blocked"
	default:
		return "incorrect"
	}
}

// Status состояние кодового слова на сегодня
type Status struct {
	AttemptedToday bool
	BoostActive    bool
}

// Gate одна попытка ввести кодовое слово в календарный день
type Gate struct {
	phrases []string
	store   storage.Store
}

// NewGate создает проверку кодового слова
func NewGate(phrases []string, store storage.Store) *Gate {
	own := make([]string, len(phrases))
	copy(own, phrases)
	return &Gate{phrases: own, store: store}
}

// PhraseForDay кодовое слово для дня года (1 января = 1)
func PhraseForDay(phrases []string, dayOfYear int) string {
	if len(phrases) == 0 {
		return ""
	}
	return phrases[dayOfYear%len(phrases)]
}

// Phrase кодовое слово на день now
func (g *Gate) Phrase(now time.Time) string {
	return PhraseForDay(g.phrases, now.YearDay())
}

// readFlag читает дату флага из хранилища
func readFlag(ctx context.Context, store storage.Store, key string) (flag.DateFlag, error) {
	v, _, err := store.Get(ctx, key)
	if err != nil {
		return flag.DateFlag{}, fmt.Errorf("read %s: %w", key, err)
	}
	return flag.DateFlag{Date: v}, nil
}

// Status возвращает, была ли сегодня попытка и активен ли буст
func (g *Gate) Status(ctx context.Context, now time.Time) (Status, error) {
	attempt, err := readFlag(ctx, g.store, storage.KeyLastPasswordEntry)
	if err != nil {
		return Status{}, err
	}
	boost, err := readFlag(ctx, g.store, storage.KeyBoostActiveDate)
	if err != nil {
		return Status{}, err
	}

	return Status{
		AttemptedToday: attempt.IsActiveOn(now),
		BoostActive:    boost.IsActiveOn(now),
	}, nil
}

// Attempt проверяет введенную фразу. Любая попытка закрывает ввод до следующего дня.
func (g *Gate) Attempt(ctx context.Context, input string, now time.Time) (AttemptResult, error) {
	st, err := g.Status(ctx, now)
	if err != nil {
		return AttemptIncorrect, err
	}
	if st.AttemptedToday {
		return AttemptBlocked, nil
	}

	today := flag.Today(now)
	correct := len(g.phrases) > 0 && strings.TrimSpace(input) == g.Phrase(now)

	if err := g.store.Set(ctx, storage.KeyLastPasswordEntry, today); err != nil {
		return AttemptIncorrect, fmt.Errorf("save attempt: %w", err)
	}
	if !correct {
		return AttemptIncorrect, nil
	}

	if err := g.store.Set(ctx, storage.KeyBoostActiveDate, today); err != nil {
		return AttemptIncorrect, fmt.Errorf("save boost: %w", err)
	}
	return AttemptCorrect, nil
}
