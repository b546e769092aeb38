package out

import (
	"context"
	"time"

	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
)

type CachePort interface {
	// Кэширование рассчитанных слотов дня
	// staffKey - нормализованный отпечаток выбранных мастеров и длительности
	GetDaySlots(ctx context.Context, day time.Time, staffKey string) ([]domain.TimeWindow, bool)
	StoreDaySlots(ctx context.Context, day time.Time, staffKey string, slots []domain.TimeWindow)
	InvalidateDaySlots(ctx context.Context, day time.Time)
	InvalidateAllDaySlots(ctx context.Context)

	// Кэширование недельного расписания салона
	GetBusinessHours(ctx context.Context) (domain.BusinessHours, bool)
	StoreBusinessHours(ctx context.Context, hours domain.BusinessHours)
	InvalidateBusinessHours(ctx context.Context)

	// Кэширование персональных расписаний мастеров
	GetStaffSchedules(ctx context.Context) (domain.StaffScheduleSet, bool)
	StoreStaffSchedules(ctx context.Context, schedules domain.StaffScheduleSet)
	InvalidateStaffSchedules(ctx context.Context)
}
