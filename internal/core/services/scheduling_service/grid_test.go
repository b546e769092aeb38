package scheduling_service

import (
	"testing"
	"time"

	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
)

func TestPositionOf(t *testing.T) {
	// Сетка начинается в 9:00, шаг 30 минут, 40 пикселей на интервал
	dayRangeStart := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	const intervalMinutes = 30
	const pixelsPerInterval = 40.0

	tests := []struct {
		name       string
		start      time.Time
		minutes    int
		wantOffset float64
		wantLength float64
	}{
		{
			name:       "запись в начале сетки",
			start:      dayRangeStart,
			minutes:    60,
			wantOffset: 0,
			wantLength: 80,
		},
		{
			name:       "запись со сдвигом на полтора часа",
			start:      dayRangeStart.Add(90 * time.Minute),
			minutes:    30,
			wantOffset: 120,
			wantLength: 40,
		},
		{
			name:       "невыровненный старт",
			start:      dayRangeStart.Add(45 * time.Minute),
			minutes:    90,
			wantOffset: 60,
			wantLength: 120,
		},
		{
			name:    "короткая запись получает минимум один интервал",
			start:   dayRangeStart.Add(time.Hour),
			minutes: 10,
			// 10 минут дали бы 13.3 пикселя, по ним не попасть курсором
			wantOffset: 80,
			wantLength: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := domain.TimeWindow{
				Start: tt.start,
				End:   tt.start.Add(time.Duration(tt.minutes) * time.Minute),
			}
			got := PositionOf(window, dayRangeStart, intervalMinutes, pixelsPerInterval)

			if got.Offset != tt.wantOffset {
				t.Errorf("Offset = %v, want %v", got.Offset, tt.wantOffset)
			}
			if got.Length != tt.wantLength {
				t.Errorf("Length = %v, want %v", got.Length, tt.wantLength)
			}
		})
	}
}

func TestPositionOfPanicsOnInvalidInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("нулевой интервал сетки должен вызывать панику")
		}
	}()

	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	window := domain.TimeWindow{Start: start, End: start.Add(time.Hour)}
	PositionOf(window, start, 0, 40)
}
