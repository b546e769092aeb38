package scheduling_service

import "github.com/suchimauz/salon-availability-engine/internal/core/domain"

type WindowSlice []domain.TimeWindow

// quickSort сортирует окна по времени начала
func (s WindowSlice) quickSort() WindowSlice {
	if len(s) < 2 {
		return s
	}

	// Выбираем опорный элемент
	pivot := s[len(s)/2]

	less := WindowSlice{}
	equal := WindowSlice{}
	greater := WindowSlice{}

	for _, window := range s {
		if window.Start.Before(pivot.Start) {
			less = append(less, window)
		} else if window.Start.Equal(pivot.Start) {
			equal = append(equal, window)
		} else {
			greater = append(greater, window)
		}
	}

	// Рекурсивно сортируем подмассивы и объединяем их
	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}
