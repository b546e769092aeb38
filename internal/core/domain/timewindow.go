package domain

import (
	"fmt"
	"time"
)

// TimeWindow - полуинтервал [Start, End)
// Инвариант Start < End обеспечивается вызывающей стороной,
// нарушение - ошибка программиста, а не пользовательского ввода
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewTimeWindow(start, end time.Time) TimeWindow {
	w := TimeWindow{Start: start, End: end}
	w.MustValid()
	return w
}

func (w TimeWindow) Valid() bool {
	return w.Start.Before(w.End)
}

// MustValid паникует при нарушении инварианта Start < End
func (w TimeWindow) MustValid() {
	if !w.Valid() {
		panic(fmt.Sprintf("invalid time window: start %s >= end %s", w.Start, w.End))
	}
}

// Overlaps проверяет пересечение двух полуинтервалов
// Соприкасающиеся границы пересечением не считаются
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Contains проверяет попадание момента в полуинтервал: Start <= t < End
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ContainsWindow проверяет, что окно other целиком лежит внутри w
func (w TimeWindow) ContainsWindow(other TimeWindow) bool {
	return !other.Start.Before(w.Start) && !other.End.After(w.End)
}

func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Minutes возвращает длительность окна в минутах
func (w TimeWindow) Minutes() int {
	return int(w.Duration() / time.Minute)
}
