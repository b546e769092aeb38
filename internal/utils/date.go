package utils

import (
	"fmt"
	"time"

	"github.com/suchimauz/salon-availability-engine/internal/config"
)

// StartCurrentDay возвращает начало суток для переданной даты, таймзона остается прежней
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает начало следующих суток, таймзона остается прежней
func StartNextDay(t time.Time) time.Time {
	return StartCurrentDay(t.AddDate(0, 0, 1))
}

// ParseDate парсит дату из строки в формате RFC3339, если не удается, то пробует
// дату со временем, но без таймзоны, подставляя таймзону салона из конфига
func ParseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		location := config.TimeZone
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
		if err != nil {
			// Если не удалось, пробуем как дату без времени
			parsedDate, err = time.ParseInLocation("2006-01-02", str, location)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}
