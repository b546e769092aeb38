package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Time - время без даты в формате "09:00", как его отдает CRM API
// Для совместимости поддерживается и формат с секундами "09:00:00"
type Time struct {
	Time time.Time
}

func NewTime(hour, minute int) Time {
	return Time{Time: time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)}
}

func (t *Time) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])
	parsedTime, err := time.Parse("15:04", str)
	if err != nil {
		// Пробуем формат с секундами
		parsedTime, err = time.Parse("15:04:05", str)
		if err != nil {
			return fmt.Errorf("failed to parse time: %v", err)
		}
	}
	*t = Time{Time: parsedTime}
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format("15:04"))
}

func (t Time) Hour() int {
	return t.Time.Hour()
}

func (t Time) Minute() int {
	return t.Time.Minute()
}

// MinutesOfDay возвращает количество минут с начала суток
func (t Time) MinutesOfDay() int {
	return t.Time.Hour()*60 + t.Time.Minute()
}

// IsMidnight проверяет, является ли время полуночью "00:00"
func (t Time) IsMidnight() bool {
	return t.Time.Hour() == 0 && t.Time.Minute() == 0
}

// OnDay переносит время на конкретный день в таймзоне этого дня
// Полночь в роли конца окна переносится на начало следующего дня,
// чтобы окно до "24:00" не схлопывалось в пустое
func (t Time) OnDay(day time.Time, asWindowEnd bool) time.Time {
	instant := time.Date(day.Year(), day.Month(), day.Day(),
		t.Time.Hour(), t.Time.Minute(), 0, 0, day.Location())
	if asWindowEnd && t.IsMidnight() {
		instant = instant.AddDate(0, 0, 1)
	}
	return instant
}
