package cache

import (
	"context"

	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// Кэширование недельного расписания салона

func (c *CacheAdapter) GetBusinessHours(ctx context.Context) (domain.BusinessHours, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hours, exists := c.businessHours.get()
	if !exists {
		return nil, false
	}
	return *hours, true
}

func (c *CacheAdapter) StoreBusinessHours(ctx context.Context, hours domain.BusinessHours) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.businessHours.store(hours)
}

func (c *CacheAdapter) InvalidateBusinessHours(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.businessHours.invalidate()
	c.logger.Debug("cache.business_hours.invalidated", out.LogFields{})
}

// Кэширование персональных расписаний мастеров

func (c *CacheAdapter) GetStaffSchedules(ctx context.Context) (domain.StaffScheduleSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	schedules, exists := c.staffSchedules.get()
	if !exists {
		return nil, false
	}
	return *schedules, true
}

func (c *CacheAdapter) StoreStaffSchedules(ctx context.Context, schedules domain.StaffScheduleSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.staffSchedules.store(schedules)
}

func (c *CacheAdapter) InvalidateStaffSchedules(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.staffSchedules.invalidate()
	c.logger.Debug("cache.staff_schedules.invalidated", out.LogFields{})
}
