package scheduling_service

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
	"github.com/suchimauz/salon-availability-engine/internal/utils"
)

type SchedulingService struct {
	crmPort   out.CrmPort
	cachePort out.CachePort
	logger    out.LoggerPort
	cfg       *config.Config
}

func NewSchedulingService(
	crmPort out.CrmPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
) *SchedulingService {
	return &SchedulingService{
		crmPort:   crmPort,
		cachePort: cachePort,
		logger:    logger.WithModule("SchedulingService"),
		cfg:       cfg,
	}
}

// CheckSlotAt - чистая проверка бронируемости кандидата
// Порядок проверок фиксирован, первая провалившаяся выигрывает:
// прошлое -> рабочие часы -> пересечения с записями
// "Сейчас" передается явно, чтобы тесты могли его зафиксировать
func CheckSlotAt(
	now time.Time,
	query domain.AvailabilityQuery,
	hours domain.BusinessHours,
	schedules domain.StaffScheduleSet,
	appointments []domain.Appointment,
) error {
	window := query.Window()
	window.MustValid()

	// 1. Кандидат в прошлом
	if query.CandidateStart.Before(now) {
		return domain.ErrSlotInPast
	}

	// 2. Часы салона ИЛИ персональное расписание мастера
	if !fitsWorkingHours(window, query.StaffID, hours, schedules) {
		return domain.ErrOutsideWorkingHours
	}

	// 3. Пересечения с существующими неотмененными записями этого мастера
	for _, appointment := range appointments {
		if appointment.StaffID != query.StaffID {
			continue
		}
		if !appointment.BlocksSlot() {
			continue
		}
		// Перенос записи на ее же время не конфликтует сам с собой
		if appointment.ID == query.ExcludeAppointmentID {
			continue
		}
		if window.Overlaps(appointment.Window()) {
			return &domain.ConflictError{Conflicting: appointment}
		}
	}

	return nil
}

// CheckSlot собирает снимки расписаний и записей и проверяет кандидата
// Каждый вызов пересчитывает от свежих данных, результат не кэшируется
func (s *SchedulingService) CheckSlot(ctx context.Context, query domain.AvailabilityQuery) error {
	hours, err := s.getBusinessHours(ctx)
	if err != nil {
		s.logger.Error("slot.check.business_hours.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return fmt.Errorf("slot.check.business_hours.fetch_failed: %w", err)
	}

	schedules, err := s.getStaffSchedules(ctx)
	if err != nil {
		s.logger.Error("slot.check.staff_schedules.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return fmt.Errorf("slot.check.staff_schedules.fetch_failed: %w", err)
	}

	// Записи мастера берем за сутки кандидата
	dayStart := utils.StartCurrentDay(query.CandidateStart)
	dayEnd := utils.StartNextDay(query.CandidateEnd)
	appointments, err := s.crmPort.GetStaffAppointments(ctx, query.StaffID, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("slot.check.appointments.fetch_failed", out.LogFields{
			"staffId": query.StaffID,
			"error":   err.Error(),
		})
		return fmt.Errorf("slot.check.appointments.fetch_failed: %w", err)
	}

	now := time.Now().In(config.TimeZone)
	result := CheckSlotAt(now, query, hours, schedules, appointments)

	s.logger.Debug("slot.check.done", out.LogFields{
		"staffId":  query.StaffID,
		"start":    query.CandidateStart,
		"end":      query.CandidateEnd,
		"bookable": result == nil,
	})

	return result
}
