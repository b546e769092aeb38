package scheduling_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/json_types"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// nopLogger глушит логи в тестах
type nopLogger struct{}

func (nopLogger) Debug(event string, fields out.LogFields)      {}
func (nopLogger) Info(event string, fields out.LogFields)       {}
func (nopLogger) Warn(event string, fields out.LogFields)       {}
func (nopLogger) Error(event string, fields out.LogFields)      {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

// fakeCrm - управляемый из теста CrmPort
type fakeCrm struct {
	hours        domain.BusinessHours
	schedules    domain.StaffScheduleSet
	staff        domain.StaffSet
	services     domain.ServiceSet
	appointments []domain.Appointment

	commitStatusErr     error
	commitRescheduleErr error

	statusCommits     int
	rescheduleCommits int
}

func (f *fakeCrm) GetBusinessHours(ctx context.Context) (domain.BusinessHours, error) {
	return f.hours, nil
}

func (f *fakeCrm) GetStaffSchedules(ctx context.Context) (domain.StaffScheduleSet, error) {
	return f.schedules, nil
}

func (f *fakeCrm) GetStaff(ctx context.Context) (domain.StaffSet, error) {
	return f.staff, nil
}

func (f *fakeCrm) GetServices(ctx context.Context) (domain.ServiceSet, error) {
	return f.services, nil
}

func (f *fakeCrm) GetStaffAppointments(ctx context.Context, staffID uuid.UUID, startDate, endDate time.Time) ([]domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeCrm) GetAppointmentByID(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == appointmentID {
			// Копия, чтобы тест мог проверить отсутствие мутаций при ошибке коммита
			appointment := f.appointments[i]
			return &appointment, nil
		}
	}
	return nil, nil
}

func (f *fakeCrm) CommitStatusChange(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) error {
	if f.commitStatusErr != nil {
		return f.commitStatusErr
	}
	f.statusCommits++
	return nil
}

func (f *fakeCrm) CommitReschedule(ctx context.Context, appointmentID uuid.UUID, start, end time.Time, staffID uuid.UUID) error {
	if f.commitRescheduleErr != nil {
		return f.commitRescheduleErr
	}
	f.rescheduleCommits++
	return nil
}

func newTestService(crm *fakeCrm) *SchedulingService {
	cfg := &config.Config{}
	cfg.Grid.IntervalMinutes = 30
	return NewSchedulingService(crm, nil, nopLogger{}, cfg)
}

// Типовая неделя салона: будни 9-18, выходные закрыты
func testWeekHours() domain.BusinessHours {
	hours := domain.BusinessHours{}
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		hours = append(hours, domain.DayHours{
			DayOfWeek: wd,
			IsOpen:    true,
			Opens:     json_types.NewTime(9, 0),
			Closes:    json_types.NewTime(18, 0),
		})
	}
	hours = append(hours,
		domain.DayHours{DayOfWeek: time.Saturday, IsOpen: false},
		domain.DayHours{DayOfWeek: time.Sunday, IsOpen: false},
	)
	return hours
}

func testAppointment(staffID uuid.UUID, start time.Time, minutes int, status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		ID:        uuid.New(),
		ClientID:  uuid.New(),
		StaffID:   staffID,
		StartDate: json_types.DateTime{Date: start},
		EndDate:   json_types.DateTime{Date: start.Add(time.Duration(minutes) * time.Minute)},
		Status:    status,
	}
}
