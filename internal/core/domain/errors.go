package domain

import (
	"errors"
	"fmt"
)

// Ожидаемые, восстановимые отказы проверки слота
// UI-слой показывает их пользователю и дает исправить ввод
var (
	// ErrSlotInPast - начало кандидата раньше "сейчас"
	ErrSlotInPast = errors.New("slot starts in the past")

	// ErrOutsideWorkingHours - кандидат не проходит ни по часам салона,
	// ни по персональному расписанию мастера
	ErrOutsideWorkingHours = errors.New("slot is outside working hours")

	// ErrIncompatibleSelection - кросс-фильтр услуг и мастеров дал пустое множество
	ErrIncompatibleSelection = errors.New("incompatible staff/service selection")

	// ErrTerminalStatus - попытка перехода из терминального статуса
	ErrTerminalStatus = errors.New("appointment status is terminal")

	// ErrUnknownStatus - запрошен неизвестный статус
	ErrUnknownStatus = errors.New("unknown appointment status")

	// ErrAppointmentNotFound - запись не найдена в CRM
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// ConflictError - пересечение с существующей неотмененной записью
// Несет ссылку на конфликтующую запись для пользовательского сообщения
type ConflictError struct {
	Conflicting Appointment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflicts with appointment %s (%s - %s)",
		e.Conflicting.ID,
		e.Conflicting.StartDate.Date.Format("2006-01-02 15:04"),
		e.Conflicting.EndDate.Date.Format("15:04"))
}
