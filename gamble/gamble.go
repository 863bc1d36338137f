// Package gamble предоставляет взвешенный выбор исхода и геометрию колеса призов
package gamble

import (
	"errors"
	"fmt"
)

// ErrInvalidOutcome возвращается при попытке собрать колесо из некорректных исходов
var ErrInvalidOutcome = errors.New("invalid outcome")

// Outcome представляет один сектор колеса
type Outcome struct {
	Label  string `json:"label" yaml:"label"`
	Value  int    `json:"value" yaml:"value"`
	Weight int    `json:"weight" yaml:"weight"`
	Color  string `json:"color,omitempty" yaml:"color"`
}

// RandomSource отдает равномерные числа из [0, 1). *rand.Rand подходит.
type RandomSource interface {
	Float64() float64
}

// Wheel неизменяемый список исходов с заранее посчитанным суммарным весом
type Wheel struct {
	outcomes    []Outcome
	totalWeight int
}

// NewWheel собирает колесо и проверяет исходы
func NewWheel(outcomes []Outcome) (*Wheel, error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("%w: empty outcome list", ErrInvalidOutcome)
	}

	total := 0
	for i, o := range outcomes {
		if o.Weight <= 0 {
			return nil, fmt.Errorf("%w: outcome %d (%q) has weight %d", ErrInvalidOutcome, i, o.Label, o.Weight)
		}
		if o.Value < 0 {
			return nil, fmt.Errorf("%w: outcome %d (%q) has negative value %d", ErrInvalidOutcome, i, o.Label, o.Value)
		}
		total += o.Weight
	}

	own := make([]Outcome, len(outcomes))
	copy(own, outcomes)

	return &Wheel{outcomes: own, totalWeight: total}, nil
}

// Len возвращает количество секторов
func (w *Wheel) Len() int {
	return len(w.outcomes)
}

// Outcome возвращает исход по индексу
func (w *Wheel) Outcome(i int) Outcome {
	return w.outcomes[i]
}

// Outcomes возвращает копию списка исходов
func (w *Wheel) Outcomes() []Outcome {
	out := make([]Outcome, len(w.outcomes))
	copy(out, w.outcomes)
	return out
}

// TotalWeight возвращает сумму всех весов
func (w *Wheel) TotalWeight() int {
	return w.totalWeight
}

// IndexAt возвращает первый индекс, накопленный вес которого >= r.
// r ожидается в [0, TotalWeight); если совпадения нет, возвращается 0.
func (w *Wheel) IndexAt(r float64) int {
	cumulative := 0
	for i, o := range w.outcomes {
		cumulative += o.Weight
		if float64(cumulative) >= r {
			return i
		}
	}

	// Недостижимо при r < TotalWeight
	return 0
}

// Pick выбирает исход с вероятностью weight/TotalWeight
func (w *Wheel) Pick(src RandomSource) int {
	r := src.Float64() * float64(w.totalWeight)
	return w.IndexAt(r)
}
