package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// Ключ кэша: день + отпечаток набора мастеров и длительности
// Инвалидация по дню снимает все записи с этим префиксом
func daySlotsCacheKey(day time.Time, staffKey string) string {
	return fmt.Sprintf("%s|%s", day.Format("2006-01-02"), staffKey)
}

func (c *CacheAdapter) GetDaySlots(ctx context.Context, day time.Time, staffKey string) ([]domain.TimeWindow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.daySlots.cache.Get(daySlotsCacheKey(day, staffKey))
	if !exists {
		c.logger.Debug("cache.day_slots.get.miss", out.LogFields{
			"day": day.Format("2006-01-02"),
		})
		return nil, false
	}

	c.logger.Debug("cache.day_slots.get.hit", out.LogFields{
		"day":        day.Format("2006-01-02"),
		"slotsCount": len(entry.Slots),
	})
	return entry.Slots, true
}

func (c *CacheAdapter) StoreDaySlots(ctx context.Context, day time.Time, staffKey string, slots []domain.TimeWindow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.day_slots.store", out.LogFields{
		"day":        day.Format("2006-01-02"),
		"slotsCount": len(slots),
	})

	c.daySlots.cache.Add(daySlotsCacheKey(day, staffKey), &daySlotsEntry{Slots: slots})
}

// InvalidateDaySlots снимает все записи дня независимо от набора мастеров
func (c *CacheAdapter) InvalidateDaySlots(ctx context.Context, day time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := day.Format("2006-01-02") + "|"
	removed := 0
	for _, key := range c.daySlots.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.daySlots.cache.Remove(key)
			removed++
		}
	}

	c.logger.Debug("cache.day_slots.invalidated", out.LogFields{
		"day":     day.Format("2006-01-02"),
		"removed": removed,
	})
}

func (c *CacheAdapter) InvalidateAllDaySlots(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.daySlots.cache.Purge()
	c.logger.Debug("cache.day_slots.invalidated_all", out.LogFields{})
}
