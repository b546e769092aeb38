package scheduling_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// ChangeStatus переводит запись в новый статус
// Переход атомарен: статус меняется только после успешного коммита в CRM,
// при ошибке коммита локальное состояние записи остается прежним
func (s *SchedulingService) ChangeStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if !domain.KnownStatus(status) {
		return nil, domain.ErrUnknownStatus
	}

	appointment, err := s.crmPort.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("appointment.status.fetch_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("appointment.status.fetch_failed: %w", err)
	}
	if appointment == nil {
		return nil, domain.ErrAppointmentNotFound
	}

	// Повторная установка текущего статуса - идемпотентный no-op
	if appointment.Status == status {
		return appointment, nil
	}

	if !appointment.Status.CanTransitionTo(status) {
		s.logger.Warn("appointment.status.transition_rejected", out.LogFields{
			"appointmentId": appointmentID,
			"from":          string(appointment.Status),
			"to":            string(status),
		})
		return nil, domain.ErrTerminalStatus
	}

	if err := s.crmPort.CommitStatusChange(ctx, appointmentID, status); err != nil {
		s.logger.Error("appointment.status.commit_failed", out.LogFields{
			"appointmentId": appointmentID,
			"to":            string(status),
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("appointment.status.commit_failed: %w", err)
	}

	previous := appointment.Status
	appointment.Status = status
	if status == domain.AppointmentStatusCanceled {
		appointment.CanceledAt.Date = time.Now().In(config.TimeZone)
	}

	s.logger.Info("appointment.status.changed", out.LogFields{
		"appointmentId": appointmentID,
		"from":          string(previous),
		"to":            string(status),
	})

	// Отмена освобождает время мастера, слоты этого дня надо пересчитать
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.InvalidateDaySlots(ctx, appointment.StartDate.Date)
	}

	return appointment, nil
}

// Reschedule переносит запись на новое время, опционально на другого мастера
// Время окончания считается от суммы длительностей услуг записи;
// если каталог услуг ее не знает, сохраняется фактическая длительность записи
// Перед коммитом слот валидируется заново с исключением самой записи:
// перенос на свое же время не конфликтует сам с собой
func (s *SchedulingService) Reschedule(ctx context.Context, appointmentID uuid.UUID, newStart time.Time, newStaffID *uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.crmPort.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("appointment.reschedule.fetch_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("appointment.reschedule.fetch_failed: %w", err)
	}
	if appointment == nil {
		return nil, domain.ErrAppointmentNotFound
	}

	if appointment.Status.IsTerminal() {
		return nil, domain.ErrTerminalStatus
	}

	staffID := appointment.StaffID
	if newStaffID != nil {
		staffID = *newStaffID
	}

	durationMinutes := appointment.Window().Minutes()
	if services, err := s.crmPort.GetServices(ctx); err == nil {
		if total := services.TotalDurationMinutes(appointment.ServiceIDs); total > 0 {
			durationMinutes = total
		}
	}
	newEnd := newStart.Add(time.Duration(durationMinutes) * time.Minute)

	query := domain.AvailabilityQuery{
		StaffID:              staffID,
		CandidateStart:       newStart,
		CandidateEnd:         newEnd,
		ExcludeAppointmentID: appointment.ID,
	}
	if err := s.CheckSlot(ctx, query); err != nil {
		return nil, err
	}

	// Состояние могло измениться между проверкой и записью,
	// CRM перепроверяет слот на коммите и возвращает конфликт
	if err := s.crmPort.CommitReschedule(ctx, appointmentID, newStart, newEnd, staffID); err != nil {
		s.logger.Error("appointment.reschedule.commit_failed", out.LogFields{
			"appointmentId": appointmentID,
			"newStart":      newStart,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("appointment.reschedule.commit_failed: %w", err)
	}

	oldDay := appointment.StartDate.Date
	appointment.StaffID = staffID
	appointment.StartDate.Date = newStart
	appointment.EndDate.Date = newEnd

	s.logger.Info("appointment.rescheduled", out.LogFields{
		"appointmentId": appointmentID,
		"staffId":       staffID,
		"newStart":      newStart,
		"newEnd":        newEnd,
	})

	// Освободился старый день, занялся новый
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.InvalidateDaySlots(ctx, oldDay)
		s.cachePort.InvalidateDaySlots(ctx, newStart)
	}

	return appointment, nil
}
