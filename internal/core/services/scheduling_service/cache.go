package scheduling_service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// daySlotsKey строит нормализованный ключ кэша слотов дня:
// одинаковый набор мастеров в любом порядке дает один ключ
func daySlotsKey(durationMinutes int, staffIDs []uuid.UUID) string {
	ids := make([]string, 0, len(staffIDs))
	for _, id := range staffIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return fmt.Sprintf("d%d:%s", durationMinutes, strings.Join(ids, ","))
}

// getBusinessHours возвращает расписание салона из кэша или из CRM
func (s *SchedulingService) getBusinessHours(ctx context.Context) (domain.BusinessHours, error) {
	if s.cachePort != nil {
		if hours, exists := s.cachePort.GetBusinessHours(ctx); exists {
			return hours, nil
		}
		s.logger.Debug("business_hours.cache.miss", out.LogFields{})
	}

	hours, err := s.crmPort.GetBusinessHours(ctx)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil {
		s.cachePort.StoreBusinessHours(ctx, hours)
	}

	return hours, nil
}

// getStaffSchedules возвращает персональные расписания из кэша или из CRM
func (s *SchedulingService) getStaffSchedules(ctx context.Context) (domain.StaffScheduleSet, error) {
	if s.cachePort != nil {
		if schedules, exists := s.cachePort.GetStaffSchedules(ctx); exists {
			return schedules, nil
		}
		s.logger.Debug("staff_schedules.cache.miss", out.LogFields{})
	}

	schedules, err := s.crmPort.GetStaffSchedules(ctx)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil {
		s.cachePort.StoreStaffSchedules(ctx, schedules)
	}

	return schedules, nil
}

// Точки входа инвалидации для шины событий CRM

func (s *SchedulingService) InvalidateDaySlotsCache(ctx context.Context, day time.Time) error {
	if s.cachePort == nil {
		return nil
	}
	s.cachePort.InvalidateDaySlots(ctx, day)
	s.logger.Info("cache.day_slots.invalidated", out.LogFields{
		"day": day.Format("2006-01-02"),
	})
	return nil
}

func (s *SchedulingService) InvalidateAllSlotsCache(ctx context.Context) error {
	if s.cachePort == nil {
		return nil
	}
	s.cachePort.InvalidateAllDaySlots(ctx)
	s.logger.Info("cache.day_slots.invalidated_all", out.LogFields{})
	return nil
}

// InvalidateScheduleCache сбрасывает кэши расписаний и все зависящие от них слоты
func (s *SchedulingService) InvalidateScheduleCache(ctx context.Context) error {
	if s.cachePort == nil {
		return nil
	}
	s.cachePort.InvalidateBusinessHours(ctx)
	s.cachePort.InvalidateStaffSchedules(ctx)
	s.cachePort.InvalidateAllDaySlots(ctx)
	s.logger.Info("cache.schedules.invalidated", out.LogFields{})
	return nil
}
