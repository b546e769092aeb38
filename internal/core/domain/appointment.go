package domain

import (
	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed  AppointmentStatus = "CONFIRMED"
	AppointmentStatusInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted  AppointmentStatus = "COMPLETED"
	AppointmentStatusCanceled   AppointmentStatus = "CANCELED"
)

// KnownStatus проверяет, что статус входит в известный набор
func KnownStatus(status AppointmentStatus) bool {
	switch status {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusInProgress, AppointmentStatusCompleted,
		AppointmentStatusCanceled:
		return true
	}
	return false
}

// IsTerminal - из CANCELED и COMPLETED переходов нет
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCanceled || s == AppointmentStatusCompleted
}

// CanTransitionTo проверяет допустимость перехода статусов
// Из любого нетерминального статуса можно перейти в любой другой,
// автоматических переходов по времени нет
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !KnownStatus(next) {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	return s != next
}

// Appointment - запись клиента к мастеру
// Отмена записи - это смена статуса, а не удаление
type Appointment struct {
	ID         uuid.UUID           `json:"id"`
	ClientID   uuid.UUID           `json:"clientId"`
	StaffID    uuid.UUID           `json:"staffId"`
	ServiceIDs []uuid.UUID         `json:"serviceIds"`
	StartDate  json_types.DateTime `json:"startAt"`
	EndDate    json_types.DateTime `json:"endAt"`
	Status     AppointmentStatus   `json:"status"`
	Notes      string              `json:"notes"`

	// CanceledAt - момент отмены, null пока запись не отменена
	CanceledAt json_types.DateTimeOrEmpty `json:"canceledAt"`
}

// Window возвращает занимаемый записью полуинтервал
// Для проверки пересечений используются фактические start/end записи,
// а не сумма длительностей услуг
func (a Appointment) Window() TimeWindow {
	return TimeWindow{Start: a.StartDate.Date, End: a.EndDate.Date}
}

// BlocksSlot - отмененные записи не занимают время мастера
func (a Appointment) BlocksSlot() bool {
	return a.Status != AppointmentStatusCanceled
}
