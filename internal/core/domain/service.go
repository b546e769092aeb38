package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service - услуга салона
// Длительность услуги задает автоматический расчет времени окончания записи
type Service struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration"`
	Price           float64   `json:"price"`
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

type ServiceSet []Service

func (set ServiceSet) ByID(id uuid.UUID) (Service, bool) {
	for _, s := range set {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// TotalDurationMinutes суммирует длительности услуг по их идентификаторам
// Неизвестные идентификаторы пропускаются
func (set ServiceSet) TotalDurationMinutes(ids []uuid.UUID) int {
	total := 0
	for _, id := range ids {
		if s, ok := set.ByID(id); ok {
			total += s.DurationMinutes
		}
	}
	return total
}
