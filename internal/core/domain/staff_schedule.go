package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/json_types"
)

// StaffSchedule - персональное расписание мастера в один день недели
// Отсутствие записи для пары (мастер, день недели) означает, что мастер в этот день не работает
type StaffSchedule struct {
	ID        string          `json:"id"`
	StaffID   uuid.UUID       `json:"staffId"`
	DayOfWeek time.Weekday    `json:"dayOfWeek"`
	IsOpen    bool            `json:"isWorkingDay"`
	Opens     json_types.Time `json:"startTime"`
	Closes    json_types.Time `json:"endTime"`
}

// Window возвращает рабочее окно мастера в день day, или nil если день нерабочий
func (s StaffSchedule) Window(day time.Time) *TimeWindow {
	if !s.IsOpen {
		return nil
	}

	w := TimeWindow{
		Start: s.Opens.OnDay(day, false),
		End:   s.Closes.OnDay(day, true),
	}
	if !w.Valid() {
		return nil
	}
	return &w
}

type StaffScheduleSet []StaffSchedule

// ForStaffDay находит запись расписания мастера на день недели
func (set StaffScheduleSet) ForStaffDay(staffID uuid.UUID, weekday time.Weekday) (StaffSchedule, bool) {
	for _, s := range set {
		if s.StaffID == staffID && s.DayOfWeek == weekday {
			return s, true
		}
	}
	return StaffSchedule{}, false
}

// IsStaffAvailableAt проверяет, работает ли мастер в момент instant
func (set StaffScheduleSet) IsStaffAvailableAt(staffID uuid.UUID, instant time.Time) bool {
	schedule, ok := set.ForStaffDay(staffID, instant.Weekday())
	if !ok || !schedule.IsOpen {
		return false
	}

	window := schedule.Window(instant)
	if window == nil {
		return false
	}
	return window.Contains(instant)
}

// StaffWindowOn возвращает рабочее окно мастера в конкретный день, или nil
func (set StaffScheduleSet) StaffWindowOn(staffID uuid.UUID, day time.Time) *TimeWindow {
	schedule, ok := set.ForStaffDay(staffID, day.Weekday())
	if !ok {
		return nil
	}
	return schedule.Window(day)
}

// HasRowsFor проверяет, есть ли у мастера хоть одна запись расписания
// Отсутствие строк означает "расписание неизвестно", а не "мастер не работает"
func (set StaffScheduleSet) HasRowsFor(staffID uuid.UUID) bool {
	for _, s := range set {
		if s.StaffID == staffID {
			return true
		}
	}
	return false
}

// AnyStaffWorks проверяет, работает ли хоть один мастер в этот день недели
// Используется когда салон закрыт: персональное расписание мастера
// может сделать день доступным для записи
func (set StaffScheduleSet) AnyStaffWorks(weekday time.Weekday) bool {
	for _, s := range set {
		if s.DayOfWeek == weekday && s.IsOpen {
			return true
		}
	}
	return false
}
