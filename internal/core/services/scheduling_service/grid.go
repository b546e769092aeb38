package scheduling_service

import (
	"fmt"
	"time"

	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
)

// PositionOf проецирует окно записи в координаты календарной сетки
// offset и length измеряются в пикселях при шаге pixelsPerInterval на интервал
// Короткие записи получают минимум один интервал высоты,
// иначе по ним невозможно попасть курсором
// Окно, начинающееся раньше dayRangeStart - ошибка вызывающей стороны
func PositionOf(window domain.TimeWindow, dayRangeStart time.Time, intervalMinutes int, pixelsPerInterval float64) domain.GridPosition {
	window.MustValid()
	if intervalMinutes <= 0 {
		panic(fmt.Sprintf("invalid grid interval: %d", intervalMinutes))
	}

	startMinutes := window.Start.Sub(dayRangeStart).Minutes()
	offset := startMinutes / float64(intervalMinutes) * pixelsPerInterval

	length := window.Duration().Minutes() / float64(intervalMinutes) * pixelsPerInterval
	if length < pixelsPerInterval {
		length = pixelsPerInterval
	}

	return domain.GridPosition{Offset: offset, Length: length}
}
