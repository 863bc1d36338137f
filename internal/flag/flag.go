// Package flag хранит флаги, привязанные к календарной дате
package flag

import "time"

// DateLayout формат хранимых дат (YYYY-MM-DD)
const DateLayout = time.DateOnly

// Today возвращает дату в формате YYYY-MM-DD по локальному времени now
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// DateFlag флаг, который активен только в день активации
type DateFlag struct {
	Date string
}

// On создает флаг, активный в день now
func On(now time.Time) DateFlag {
	return DateFlag{Date: Today(now)}
}

// IsActiveOn проверяет, совпадает ли дата флага с днем now.
// Пустая или битая дата считается неактивной.
func (f DateFlag) IsActiveOn(now time.Time) bool {
	if f.Date == "" {
		return false
	}
	if _, err := time.Parse(DateLayout, f.Date); err != nil {
		return false
	}
	return f.Date == Today(now)
}
