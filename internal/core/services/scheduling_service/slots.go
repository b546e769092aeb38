package scheduling_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
	"github.com/suchimauz/salon-availability-engine/internal/utils"
)

// ComputeDaySlots перебирает все выровненные по интервалу старты в пределах суток
// и оставляет те, от которых окно длительностью durationMinutes проходит
// проверку рабочих часов хотя бы для одного из мастеров
// Пересечения с записями здесь не учитываются, это забота CheckSlot
func ComputeDaySlots(
	day time.Time,
	intervalMinutes int,
	durationMinutes int,
	staffIDs []uuid.UUID,
	hours domain.BusinessHours,
	schedules domain.StaffScheduleSet,
) []domain.TimeWindow {
	if intervalMinutes <= 0 {
		panic(fmt.Sprintf("invalid slot interval: %d", intervalMinutes))
	}
	if durationMinutes <= 0 {
		panic(fmt.Sprintf("invalid service duration: %d", durationMinutes))
	}

	duration := time.Duration(durationMinutes) * time.Minute
	interval := time.Duration(intervalMinutes) * time.Minute

	dayStart := utils.StartCurrentDay(day)
	dayEnd := utils.StartNextDay(day)

	slots := make([]domain.TimeWindow, 0)
	for slotStart := dayStart; slotStart.Before(dayEnd); slotStart = slotStart.Add(interval) {
		window := domain.TimeWindow{Start: slotStart, End: slotStart.Add(duration)}
		if fitsAnyWorkingHours(window, staffIDs, hours, schedules) {
			slots = append(slots, window)
		}
	}

	return slots
}

// DaySlots считает набор доступных стартов на день
// Результат пересчитывается на каждый вызов: расписания и выбор мастеров
// могут меняться между вызовами, кэш инвалидируется шиной событий
func (s *SchedulingService) DaySlots(ctx context.Context, day time.Time, durationMinutes int, staffIDs []uuid.UUID) ([]domain.TimeWindow, []domain.DebugInfo, error) {
	debugInfo := SchedulingServiceDebug{
		data: make([]domain.DebugInfo, 0),
	}

	s.logger.Info("slots.day.started", out.LogFields{
		"day":             day.Format("2006-01-02"),
		"durationMinutes": durationMinutes,
		"staffCount":      len(staffIDs),
	})

	staffKey := daySlotsKey(durationMinutes, staffIDs)

	// Проверяем кэш только если он включен
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if slots, exists := s.cachePort.GetDaySlots(ctx, day, staffKey); exists {
			s.logger.Debug("slots.day.cache.hit", out.LogFields{
				"day":        day.Format("2006-01-02"),
				"slotsCount": len(slots),
			})
			return slots, debugInfo.data, nil
		}
		s.logger.Debug("slots.day.cache.miss", out.LogFields{
			"day": day.Format("2006-01-02"),
		})
	}

	fetch_schedules_debug := domain.DebugInfo{
		Event: "slots.day.schedules.fetch",
	}
	fetch_schedules_debug.Start()

	hours, err := s.getBusinessHours(ctx)
	if err != nil {
		s.logger.Error("slots.day.business_hours.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, nil, fmt.Errorf("slots.day.business_hours.fetch_failed: %w", err)
	}

	schedules, err := s.getStaffSchedules(ctx)
	if err != nil {
		s.logger.Error("slots.day.staff_schedules.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, nil, fmt.Errorf("slots.day.staff_schedules.fetch_failed: %w", err)
	}

	fetch_schedules_debug.Elapse()
	debugInfo.AddDebugInfo(fetch_schedules_debug)

	compute_slots_debug := domain.DebugInfo{
		Event: "slots.day.compute",
	}
	compute_slots_debug.Start()

	slots := ComputeDaySlots(day, s.cfg.Grid.IntervalMinutes, durationMinutes, staffIDs, hours, schedules)
	slots = WindowSlice(slots).quickSort()

	compute_slots_debug.Elapse()
	compute_slots_debug.AddOption("slotsCount", fmt.Sprintf("%d", len(slots)))
	debugInfo.AddDebugInfo(compute_slots_debug)

	// Сохраняем в кэш только если он включен
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreDaySlots(ctx, day, staffKey, slots)
	}

	return slots, debugInfo.data, nil
}

// GridRange возвращает общий диапазон часов недели для календарной сетки
func (s *SchedulingService) GridRange(ctx context.Context) (domain.GridRange, error) {
	hours, err := s.getBusinessHours(ctx)
	if err != nil {
		s.logger.Error("grid.range.business_hours.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return domain.GridRange{}, fmt.Errorf("grid.range.business_hours.fetch_failed: %w", err)
	}

	return hours.OverallOpenRange(), nil
}
