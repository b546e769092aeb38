package domain

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityQuery - кандидат на бронирование, не персистится,
// собирается заново на каждую проверку
type AvailabilityQuery struct {
	StaffID        uuid.UUID
	CandidateStart time.Time
	CandidateEnd   time.Time

	// ExcludeAppointmentID исключает запись из проверки пересечений
	// Нужен для переноса записи на ее же текущее время
	ExcludeAppointmentID uuid.UUID
}

func (q AvailabilityQuery) Window() TimeWindow {
	return TimeWindow{Start: q.CandidateStart, End: q.CandidateEnd}
}

// GridPosition - позиция записи в календарной сетке, в пикселях,
// но без привязки к конкретному рендерингу
type GridPosition struct {
	Offset float64 `json:"offset"`
	Length float64 `json:"length"`
}
