package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// daySlotsEntry - рассчитанные слоты одного дня для одного набора мастеров
type daySlotsEntry struct {
	Slots []domain.TimeWindow
}

type daySlotsCache struct {
	cache *lru.Cache[string, *daySlotsEntry]
}

// scheduleCache - TTL-кэш расписаний, они меняются редко
// Шина событий инвалидирует его раньше, TTL - подстраховка на случай
// пропущенного события
type scheduleCache[T any] struct {
	value     *T
	timestamp time.Time
	ttl       time.Duration
}

func (c *scheduleCache[T]) get() (*T, bool) {
	if c.value == nil || time.Since(c.timestamp) > c.ttl {
		return nil, false
	}
	return c.value, true
}

func (c *scheduleCache[T]) store(value T) {
	c.value = &value
	c.timestamp = time.Now()
}

func (c *scheduleCache[T]) invalidate() {
	c.value = nil
	c.timestamp = time.Time{}
}

type CacheAdapter struct {
	daySlots       *daySlotsCache
	businessHours  *scheduleCache[domain.BusinessHours]
	staffSchedules *scheduleCache[domain.StaffScheduleSet]
	mu             sync.RWMutex
	logger         out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruDaySlots, err := lru.New[string, *daySlotsEntry](cfg.Cache.DaySlotsSize)
	if err != nil {
		logger.Error("cache.day_slots.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.DaySlotsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		daySlots:       &daySlotsCache{cache: lruDaySlots},
		businessHours:  &scheduleCache[domain.BusinessHours]{ttl: 30 * time.Minute},
		staffSchedules: &scheduleCache[domain.StaffScheduleSet]{ttl: 30 * time.Minute},
		logger:         logger.WithModule("CacheAdapter"),
	}, nil
}
