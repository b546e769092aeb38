package out

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
)

// CrmPort - внешний CRM API, отдает уже десериализованные значения
// Ядро не знает про транспортный формат
type CrmPort interface {
	// Справочники
	GetBusinessHours(ctx context.Context) (domain.BusinessHours, error)
	GetStaffSchedules(ctx context.Context) (domain.StaffScheduleSet, error)
	GetStaff(ctx context.Context) (domain.StaffSet, error)
	GetServices(ctx context.Context) (domain.ServiceSet, error)

	// Записи на услуги
	GetStaffAppointments(ctx context.Context, staffID uuid.UUID, startDate, endDate time.Time) ([]domain.Appointment, error)
	GetAppointmentByID(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error)

	// Команды записи, подтверждаются синхронно
	// При ошибке коммита локальное состояние записи не меняется
	CommitStatusChange(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) error
	CommitReschedule(ctx context.Context, appointmentID uuid.UUID, start, end time.Time, staffID uuid.UUID) error
}
