package domain

import (
	"time"

	"github.com/suchimauz/salon-availability-engine/internal/core/json_types"
)

// Дефолтный диапазон для календарной сетки, когда салон не открыт ни в один день
// Сетка не должна вырождаться в ноль строк
const (
	DefaultGridOpenHour  = 9
	DefaultGridCloseHour = 18
)

// DayHours - часы работы салона в один день недели
type DayHours struct {
	DayOfWeek time.Weekday    `json:"dayOfWeek"`
	IsOpen    bool            `json:"isWorkingDay"`
	Opens     json_types.Time `json:"startTime"`
	Closes    json_types.Time `json:"endTime"`
}

// Window возвращает рабочее окно дня day, или nil если день закрыт
func (d DayHours) Window(day time.Time) *TimeWindow {
	if !d.IsOpen {
		return nil
	}

	w := TimeWindow{
		Start: d.Opens.OnDay(day, false),
		End:   d.Closes.OnDay(day, true),
	}
	if !w.Valid() {
		return nil
	}
	return &w
}

// BusinessHours - недельное расписание салона, по одной записи на день недели
type BusinessHours []DayHours

// DayFor находит запись для дня недели
func (h BusinessHours) DayFor(weekday time.Weekday) (DayHours, bool) {
	for _, d := range h {
		if d.DayOfWeek == weekday {
			return d, true
		}
	}
	return DayHours{}, false
}

// IsOpenAt проверяет, открыт ли салон в момент instant
func (h BusinessHours) IsOpenAt(instant time.Time) bool {
	day, ok := h.DayFor(instant.Weekday())
	if !ok || !day.IsOpen {
		return false
	}

	window := day.Window(instant)
	if window == nil {
		return false
	}
	return window.Contains(instant)
}

// WindowOn возвращает рабочее окно салона в конкретный день, или nil если закрыто
func (h BusinessHours) WindowOn(day time.Time) *TimeWindow {
	dayHours, ok := h.DayFor(day.Weekday())
	if !ok {
		return nil
	}
	return dayHours.Window(day)
}

// GridRange - общий диапазон часов для календарной сетки
type GridRange struct {
	EarliestHour int `json:"earliestHour"`
	LatestHour   int `json:"latestHour"`
}

// OverallOpenRange сканирует все открытые дни недели и возвращает
// минимальный час открытия и максимальный час закрытия
// Час закрытия 0 трактуется как 24
// Если открытых дней нет, возвращается дефолтный диапазон 9-18
func (h BusinessHours) OverallOpenRange() GridRange {
	earliest := 24
	latest := 0
	hasOpen := false

	for _, d := range h {
		if !d.IsOpen {
			continue
		}
		hasOpen = true

		startHour := d.Opens.Hour()
		endHour := d.Closes.Hour()
		if endHour == 0 {
			endHour = 24
		}

		if startHour < earliest {
			earliest = startHour
		}
		if endHour > latest {
			latest = endHour
		}
	}

	if !hasOpen || earliest >= latest {
		return GridRange{EarliestHour: DefaultGridOpenHour, LatestHour: DefaultGridCloseHour}
	}

	return GridRange{EarliestHour: earliest, LatestHour: latest}
}
