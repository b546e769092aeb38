package scheduling_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// FilterStaff оставляет мастеров, способных выполнить ВСЕ выбранные услуги
// При пустом выборе услуг показываем активных мастеров хотя бы с одной услугой
// Пустой список услуг мастера означает "не выполняет ничего"
func FilterStaff(serviceIDs []uuid.UUID, allStaff domain.StaffSet, language string) []domain.StaffMember {
	result := make([]domain.StaffMember, 0)
	for _, member := range allStaff {
		if !member.Active {
			continue
		}
		if language != "" && !member.Speaks(language) {
			continue
		}
		if len(serviceIDs) == 0 {
			if len(member.PerformableServiceIDs) == 0 {
				continue
			}
		} else if !member.CanPerformAll(serviceIDs) {
			continue
		}
		result = append(result, member)
	}
	return result
}

// FilterServices оставляет услуги, которые выполняет хотя бы один выбранный мастер
// Пустой список услуг мастера и здесь означает "не выполняет ничего",
// в обоих направлениях фильтра действует одна конвенция
func FilterServices(staffIDs []uuid.UUID, allServices domain.ServiceSet, allStaff domain.StaffSet) []domain.Service {
	if len(staffIDs) == 0 {
		result := make([]domain.Service, len(allServices))
		copy(result, allServices)
		return result
	}

	result := make([]domain.Service, 0)
	for _, service := range allServices {
		for _, staffID := range staffIDs {
			member, ok := allStaff.ByID(staffID)
			if ok && member.CanPerform(service.ID) {
				result = append(result, service)
				break
			}
		}
	}
	return result
}

// Reconcile делает один проход сверки выбора
// Оба фильтра считаются от одного снимка выбора, после чего выбор с обеих
// сторон очищается от идентификаторов, выпавших из совместимых множеств
// Фильтры не перезапускают друг друга, цикла нет; повторная сверка
// уже согласованного выбора ничего не меняет
func Reconcile(selection domain.Selection, allStaff domain.StaffSet, allServices domain.ServiceSet) *domain.ReconciledSelection {
	compatibleStaff := FilterStaff(selection.ServiceIDs, allStaff, selection.Language)
	compatibleServices := FilterServices(selection.StaffIDs, allServices, allStaff)

	staffIDs := make([]uuid.UUID, 0, len(selection.StaffIDs))
	for _, id := range selection.StaffIDs {
		for _, member := range compatibleStaff {
			if member.ID == id {
				staffIDs = append(staffIDs, id)
				break
			}
		}
	}

	serviceIDs := make([]uuid.UUID, 0, len(selection.ServiceIDs))
	for _, id := range selection.ServiceIDs {
		for _, service := range compatibleServices {
			if service.ID == id {
				serviceIDs = append(serviceIDs, id)
				break
			}
		}
	}

	return &domain.ReconciledSelection{
		StaffIDs:           staffIDs,
		ServiceIDs:         serviceIDs,
		CompatibleStaff:    compatibleStaff,
		CompatibleServices: compatibleServices,
	}
}

func (s *SchedulingService) CompatibleStaff(ctx context.Context, serviceIDs []uuid.UUID, language string) ([]domain.StaffMember, error) {
	allStaff, err := s.crmPort.GetStaff(ctx)
	if err != nil {
		s.logger.Error("compat.staff.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("compat.staff.fetch_failed: %w", err)
	}

	return FilterStaff(serviceIDs, allStaff, language), nil
}

func (s *SchedulingService) CompatibleServices(ctx context.Context, staffIDs []uuid.UUID) ([]domain.Service, error) {
	allServices, err := s.crmPort.GetServices(ctx)
	if err != nil {
		s.logger.Error("compat.services.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("compat.services.fetch_failed: %w", err)
	}

	allStaff, err := s.crmPort.GetStaff(ctx)
	if err != nil {
		s.logger.Error("compat.staff.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("compat.staff.fetch_failed: %w", err)
	}

	return FilterServices(staffIDs, allServices, allStaff), nil
}

// ReconcileSelection сверяет выбор с текущими каталогами
// Результат возвращается всегда; ErrIncompatibleSelection сигнализирует,
// что непустой выбор дал пустое совместимое множество
func (s *SchedulingService) ReconcileSelection(ctx context.Context, selection domain.Selection) (*domain.ReconciledSelection, error) {
	allStaff, err := s.crmPort.GetStaff(ctx)
	if err != nil {
		s.logger.Error("compat.staff.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("compat.staff.fetch_failed: %w", err)
	}

	allServices, err := s.crmPort.GetServices(ctx)
	if err != nil {
		s.logger.Error("compat.services.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("compat.services.fetch_failed: %w", err)
	}

	reconciled := Reconcile(selection, allStaff, allServices)

	dropped := len(reconciled.StaffIDs) != len(selection.StaffIDs) ||
		len(reconciled.ServiceIDs) != len(selection.ServiceIDs)
	if dropped {
		s.logger.Info("compat.reconcile.selection_narrowed", out.LogFields{
			"staffBefore":    len(selection.StaffIDs),
			"staffAfter":     len(reconciled.StaffIDs),
			"servicesBefore": len(selection.ServiceIDs),
			"servicesAfter":  len(reconciled.ServiceIDs),
		})
	}

	if len(selection.ServiceIDs) > 0 && len(reconciled.CompatibleStaff) == 0 {
		return reconciled, domain.ErrIncompatibleSelection
	}
	if len(selection.StaffIDs) > 0 && len(reconciled.CompatibleServices) == 0 {
		return reconciled, domain.ErrIncompatibleSelection
	}

	return reconciled, nil
}
