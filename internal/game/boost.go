package game

import (
	"fmt"

	"tg-wheel-bot/gamble"
)

// BoostMultiplier множитель значения при активном бусте
const BoostMultiplier = 10

// DefaultLabelFormat формат подписи для пересчитанного значения
const DefaultLabelFormat = "%dx"

// Display возвращает отображаемые значение и подпись исхода.
// Нулевой исход буст не меняет.
func Display(o gamble.Outcome, boosted bool, labelFormat string) (int, string) {
	if !boosted || o.Value <= 0 {
		return o.Value, o.Label
	}
	if labelFormat == "" {
		labelFormat = DefaultLabelFormat
	}

	v := o.Value * BoostMultiplier
	return v, fmt.Sprintf(labelFormat, v)
}
