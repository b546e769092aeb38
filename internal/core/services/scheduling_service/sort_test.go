package scheduling_service

import (
	"testing"
	"time"

	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
)

func TestWindowSliceQuickSort(t *testing.T) {
	base := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	windowAt := func(offsetMinutes int) domain.TimeWindow {
		start := base.Add(time.Duration(offsetMinutes) * time.Minute)
		return domain.TimeWindow{Start: start, End: start.Add(30 * time.Minute)}
	}

	unsorted := WindowSlice{
		windowAt(120), windowAt(0), windowAt(60), windowAt(30), windowAt(90),
	}

	sorted := unsorted.quickSort()
	if len(sorted) != len(unsorted) {
		t.Fatalf("длина после сортировки = %d, want %d", len(sorted), len(unsorted))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start.Before(sorted[i-1].Start) {
			t.Fatalf("окна не отсортированы: %s после %s", sorted[i].Start, sorted[i-1].Start)
		}
	}

	// Пустой и одноэлементный срезы не ломаются
	if got := (WindowSlice{}).quickSort(); len(got) != 0 {
		t.Error("сортировка пустого среза должна вернуть пустой срез")
	}
	if got := (WindowSlice{windowAt(0)}).quickSort(); len(got) != 1 {
		t.Error("сортировка одного элемента должна вернуть его же")
	}
}
