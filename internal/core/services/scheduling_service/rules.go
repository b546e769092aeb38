package scheduling_service

import (
	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
)

// fitsWorkingHours проверяет попадание окна в рабочие часы
// Часы салона и персональное расписание мастера объединяются через ИЛИ:
// персональное расписание может спасти закрытый день салона,
// но не может сузить день, в который салон открыт
// Отсутствие строки расписания мастера - это "неизвестно", а не "недоступен",
// в этом случае доверяем часам салона
func fitsWorkingHours(window domain.TimeWindow, staffID uuid.UUID, hours domain.BusinessHours, schedules domain.StaffScheduleSet) bool {
	if salonWindow := hours.WindowOn(window.Start); salonWindow != nil && salonWindow.ContainsWindow(window) {
		return true
	}

	if staffWindow := schedules.StaffWindowOn(staffID, window.Start); staffWindow != nil && staffWindow.ContainsWindow(window) {
		return true
	}

	return false
}

// fitsAnyWorkingHours - то же самое для набора мастеров
// Пустой набор означает проверку только по часам салона
func fitsAnyWorkingHours(window domain.TimeWindow, staffIDs []uuid.UUID, hours domain.BusinessHours, schedules domain.StaffScheduleSet) bool {
	if len(staffIDs) == 0 {
		salonWindow := hours.WindowOn(window.Start)
		return salonWindow != nil && salonWindow.ContainsWindow(window)
	}

	for _, staffID := range staffIDs {
		if fitsWorkingHours(window, staffID, hours, schedules) {
			return true
		}
	}
	return false
}
