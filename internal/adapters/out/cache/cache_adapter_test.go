package cache

import (
	"context"
	"testing"
	"time"

	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(event string, fields out.LogFields)         {}
func (nopLogger) Info(event string, fields out.LogFields)          {}
func (nopLogger) Warn(event string, fields out.LogFields)          {}
func (nopLogger) Error(event string, fields out.LogFields)         {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

func newTestAdapter(t *testing.T) *CacheAdapter {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.DaySlotsSize = 100

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	if err != nil {
		t.Fatalf("NewCacheAdapter() error = %v", err)
	}
	return adapter
}

func testSlots(day time.Time) []domain.TimeWindow {
	start := day.Add(9 * time.Hour)
	return []domain.TimeWindow{{Start: start, End: start.Add(time.Hour)}}
}

func TestNewCacheAdapterDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	if err != nil {
		t.Fatalf("NewCacheAdapter() error = %v", err)
	}
	if adapter != nil {
		t.Error("при выключенном кэше адаптер должен быть nil")
	}
}

func TestDaySlotsStoreAndGet(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	if _, exists := adapter.GetDaySlots(ctx, day, "d60:"); exists {
		t.Error("пустой кэш не должен отдавать слоты")
	}

	adapter.StoreDaySlots(ctx, day, "d60:", testSlots(day))

	slots, exists := adapter.GetDaySlots(ctx, day, "d60:")
	if !exists {
		t.Fatal("сохраненные слоты должны находиться")
	}
	if len(slots) != 1 {
		t.Errorf("слотов = %d, want 1", len(slots))
	}

	// Другой отпечаток мастеров - другая запись
	if _, exists := adapter.GetDaySlots(ctx, day, "d90:"); exists {
		t.Error("другой ключ не должен попадать в ту же запись")
	}
}

func TestInvalidateDaySlotsByDay(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	day1 := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	// Два разных набора мастеров в один день и один набор в другой день
	adapter.StoreDaySlots(ctx, day1, "d60:", testSlots(day1))
	adapter.StoreDaySlots(ctx, day1, "d90:", testSlots(day1))
	adapter.StoreDaySlots(ctx, day2, "d60:", testSlots(day2))

	adapter.InvalidateDaySlots(ctx, day1)

	// Обе записи первого дня сняты независимо от набора мастеров
	if _, exists := adapter.GetDaySlots(ctx, day1, "d60:"); exists {
		t.Error("запись первого дня должна быть снята")
	}
	if _, exists := adapter.GetDaySlots(ctx, day1, "d90:"); exists {
		t.Error("вторая запись первого дня должна быть снята")
	}
	// Второй день не тронут
	if _, exists := adapter.GetDaySlots(ctx, day2, "d60:"); !exists {
		t.Error("запись второго дня должна остаться")
	}
}

func TestInvalidateAllDaySlots(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	day1 := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	adapter.StoreDaySlots(ctx, day1, "d60:", testSlots(day1))
	adapter.StoreDaySlots(ctx, day2, "d60:", testSlots(day2))

	adapter.InvalidateAllDaySlots(ctx)

	if _, exists := adapter.GetDaySlots(ctx, day1, "d60:"); exists {
		t.Error("все записи должны быть сняты")
	}
	if _, exists := adapter.GetDaySlots(ctx, day2, "d60:"); exists {
		t.Error("все записи должны быть сняты")
	}
}

func TestScheduleCacheRoundtrip(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	if _, exists := adapter.GetBusinessHours(ctx); exists {
		t.Error("пустой кэш расписания не должен отдавать значение")
	}

	hours := domain.BusinessHours{{DayOfWeek: time.Monday, IsOpen: true}}
	adapter.StoreBusinessHours(ctx, hours)

	cached, exists := adapter.GetBusinessHours(ctx)
	if !exists {
		t.Fatal("сохраненное расписание должно находиться")
	}
	if len(cached) != 1 || cached[0].DayOfWeek != time.Monday {
		t.Errorf("расписание из кэша = %+v", cached)
	}

	adapter.InvalidateBusinessHours(ctx)
	if _, exists := adapter.GetBusinessHours(ctx); exists {
		t.Error("после инвалидации расписания быть не должно")
	}
}
