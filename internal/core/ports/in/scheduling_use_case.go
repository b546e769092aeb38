package in

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
)

type SchedulingUseCase interface {
	// Проверка бронируемости кандидата, nil - слот свободен
	CheckSlot(ctx context.Context, query domain.AvailabilityQuery) error

	// Набор доступных стартов на день для выбранных мастеров и длительности услуг
	DaySlots(ctx context.Context, day time.Time, durationMinutes int, staffIDs []uuid.UUID) ([]domain.TimeWindow, []domain.DebugInfo, error)

	// Общий диапазон часов для календарной сетки
	GridRange(ctx context.Context) (domain.GridRange, error)

	// Кросс-фильтрация мастеров и услуг
	CompatibleStaff(ctx context.Context, serviceIDs []uuid.UUID, language string) ([]domain.StaffMember, error)
	CompatibleServices(ctx context.Context, staffIDs []uuid.UUID) ([]domain.Service, error)
	ReconcileSelection(ctx context.Context, selection domain.Selection) (*domain.ReconciledSelection, error)

	// Жизненный цикл записи
	ChangeStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error)
	Reschedule(ctx context.Context, appointmentID uuid.UUID, newStart time.Time, newStaffID *uuid.UUID) (*domain.Appointment, error)

	// Точки входа инвалидации кэша для шины событий
	InvalidateDaySlotsCache(ctx context.Context, day time.Time) error
	InvalidateAllSlotsCache(ctx context.Context) error
	InvalidateScheduleCache(ctx context.Context) error
}
