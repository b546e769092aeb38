package scheduling_service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/json_types"
)

func TestComputeDaySlots(t *testing.T) {
	// Салон открыт только в понедельник 9-12
	hours := domain.BusinessHours{{
		DayOfWeek: time.Monday,
		IsOpen:    true,
		Opens:     json_types.NewTime(9, 0),
		Closes:    json_types.NewTime(12, 0),
	}}

	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	t.Run("интервал 30 минут, услуга 30 минут", func(t *testing.T) {
		slots := ComputeDaySlots(monday, 30, 30, nil, hours, nil)

		// Старты 9:00, 9:30, ..., 11:30 - ровно 6 слотов
		if len(slots) != 6 {
			t.Fatalf("слотов = %d, want 6", len(slots))
		}
		if slots[0].Start.Hour() != 9 || slots[0].Start.Minute() != 0 {
			t.Errorf("первый слот %s, want 09:00", slots[0].Start)
		}
		last := slots[len(slots)-1]
		if last.Start.Hour() != 11 || last.Start.Minute() != 30 {
			t.Errorf("последний слот %s, want 11:30", last.Start)
		}
	})

	t.Run("длинная услуга не влезает в конец окна", func(t *testing.T) {
		slots := ComputeDaySlots(monday, 30, 90, nil, hours, nil)

		// Окно 9:00-12:00, услуга 90 минут: старты 9:00, 9:30, 10:00, 10:30
		if len(slots) != 4 {
			t.Fatalf("слотов = %d, want 4", len(slots))
		}
		last := slots[len(slots)-1]
		if last.Start.Hour() != 10 || last.Start.Minute() != 30 {
			t.Errorf("последний слот %s, want 10:30", last.Start)
		}
	})

	t.Run("закрытый день без слотов", func(t *testing.T) {
		tuesday := monday.AddDate(0, 0, 1)
		if slots := ComputeDaySlots(tuesday, 30, 30, nil, hours, nil); len(slots) != 0 {
			t.Errorf("в закрытый день слотов быть не должно, получили %d", len(slots))
		}
	})

	t.Run("расписание мастера добавляет слоты в закрытый день", func(t *testing.T) {
		staffID := uuid.New()
		schedules := domain.StaffScheduleSet{{
			StaffID:   staffID,
			DayOfWeek: time.Tuesday,
			IsOpen:    true,
			Opens:     json_types.NewTime(14, 0),
			Closes:    json_types.NewTime(16, 0),
		}}

		tuesday := monday.AddDate(0, 0, 1)
		slots := ComputeDaySlots(tuesday, 30, 60, []uuid.UUID{staffID}, hours, schedules)

		// Окно мастера 14:00-16:00, услуга 60 минут: старты 14:00, 14:30, 15:00
		if len(slots) != 3 {
			t.Fatalf("слотов = %d, want 3", len(slots))
		}
		if slots[0].Start.Hour() != 14 {
			t.Errorf("первый слот %s, want 14:00", slots[0].Start)
		}
	})

	t.Run("невалидный интервал вызывает панику", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("нулевой интервал должен вызывать панику")
			}
		}()
		ComputeDaySlots(monday, 0, 30, nil, hours, nil)
	})
}

func TestDaySlotsService(t *testing.T) {
	crm := &fakeCrm{hours: testWeekHours()}
	service := newTestService(crm)

	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	slots, _, err := service.DaySlots(context.Background(), monday, 60, nil)
	if err != nil {
		t.Fatalf("DaySlots() error = %v", err)
	}

	// Окно 9-18, услуга 60 минут, шаг 30: старты 9:00 ... 17:00 - 17 слотов
	if len(slots) != 17 {
		t.Fatalf("слотов = %d, want 17", len(slots))
	}

	// Слоты отсортированы по возрастанию старта
	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].Start) {
			t.Fatalf("слоты не отсортированы: %s после %s", slots[i].Start, slots[i-1].Start)
		}
	}
}

func TestGridRangeService(t *testing.T) {
	crm := &fakeCrm{hours: testWeekHours()}
	service := newTestService(crm)

	gridRange, err := service.GridRange(context.Background())
	if err != nil {
		t.Fatalf("GridRange() error = %v", err)
	}
	want := domain.GridRange{EarliestHour: 9, LatestHour: 18}
	if gridRange != want {
		t.Errorf("GridRange() = %+v, want %+v", gridRange, want)
	}
}
