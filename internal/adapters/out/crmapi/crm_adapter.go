package crmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// CrmAdapter - клиент CRM API
// Ядро получает уже десериализованные значения, транспортный формат
// (обертка {"data": ...}) остается внутри адаптера
type CrmAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

// crmResponse - стандартная обертка ответов CRM API
type crmResponse struct {
	Data json.RawMessage `json:"data"`
}

func NewCrmAdapter(cfg *config.Config, logger out.LoggerPort) *CrmAdapter {
	return &CrmAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.CrmApi.URL,
		username: cfg.CrmApi.Username,
		password: cfg.CrmApi.Password,
		logger:   logger,
	}
}

// getJSON выполняет GET и декодирует поле data в target
func (a *CrmAdapter) getJSON(ctx context.Context, requestURL string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrAppointmentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope crmResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}

	return json.Unmarshal(envelope.Data, target)
}

// patchJSON выполняет PATCH с JSON-телом, ответ не интерпретируется
func (a *CrmAdapter) patchJSON(ctx context.Context, requestURL string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, requestURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrAppointmentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

func (a *CrmAdapter) GetBusinessHours(ctx context.Context) (domain.BusinessHours, error) {
	a.logger.Debug("crm.business_hours.fetch", out.LogFields{})

	var hours domain.BusinessHours
	requestURL := fmt.Sprintf("%s/business-hours", a.baseURL)
	if err := a.getJSON(ctx, requestURL, &hours); err != nil {
		a.logger.Error("crm.business_hours.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return hours, nil
}

func (a *CrmAdapter) GetStaffSchedules(ctx context.Context) (domain.StaffScheduleSet, error) {
	a.logger.Debug("crm.staff_schedules.fetch", out.LogFields{})

	var schedules domain.StaffScheduleSet
	requestURL := fmt.Sprintf("%s/staff-schedules", a.baseURL)
	if err := a.getJSON(ctx, requestURL, &schedules); err != nil {
		a.logger.Error("crm.staff_schedules.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return schedules, nil
}

func (a *CrmAdapter) GetStaff(ctx context.Context) (domain.StaffSet, error) {
	a.logger.Debug("crm.staff.fetch", out.LogFields{})

	var staff domain.StaffSet
	requestURL := fmt.Sprintf("%s/staff", a.baseURL)
	if err := a.getJSON(ctx, requestURL, &staff); err != nil {
		a.logger.Error("crm.staff.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return staff, nil
}

func (a *CrmAdapter) GetServices(ctx context.Context) (domain.ServiceSet, error) {
	a.logger.Debug("crm.services.fetch", out.LogFields{})

	var services domain.ServiceSet
	requestURL := fmt.Sprintf("%s/services", a.baseURL)
	if err := a.getJSON(ctx, requestURL, &services); err != nil {
		a.logger.Error("crm.services.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return services, nil
}

func (a *CrmAdapter) GetStaffAppointments(ctx context.Context, staffID uuid.UUID, startDate, endDate time.Time) ([]domain.Appointment, error) {
	a.logger.Debug("crm.appointments.fetch", out.LogFields{
		"staffId":   staffID,
		"startDate": startDate,
		"endDate":   endDate,
	})

	params := url.Values{}
	params.Set("staffId", staffID.String())
	params.Set("startDate", startDate.Format(time.RFC3339))
	params.Set("endDate", endDate.Format(time.RFC3339))

	var appointments []domain.Appointment
	requestURL := fmt.Sprintf("%s/appointments?%s", a.baseURL, params.Encode())
	if err := a.getJSON(ctx, requestURL, &appointments); err != nil {
		a.logger.Error("crm.appointments.fetch_failed", out.LogFields{
			"staffId": staffID,
			"error":   err.Error(),
		})
		return nil, err
	}

	return appointments, nil
}

func (a *CrmAdapter) GetAppointmentByID(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error) {
	a.logger.Debug("crm.appointment.fetch", out.LogFields{
		"appointmentId": appointmentID,
	})

	var appointment domain.Appointment
	requestURL := fmt.Sprintf("%s/appointments/%s", a.baseURL, appointmentID)
	err := a.getJSON(ctx, requestURL, &appointment)
	if err == domain.ErrAppointmentNotFound {
		return nil, nil
	}
	if err != nil {
		a.logger.Error("crm.appointment.fetch_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return nil, err
	}

	return &appointment, nil
}

func (a *CrmAdapter) CommitStatusChange(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) error {
	a.logger.Info("crm.appointment.status_commit", out.LogFields{
		"appointmentId": appointmentID,
		"status":        string(status),
	})

	requestURL := fmt.Sprintf("%s/appointments/%s/status", a.baseURL, appointmentID)
	body := map[string]string{"status": string(status)}
	if err := a.patchJSON(ctx, requestURL, body); err != nil {
		a.logger.Error("crm.appointment.status_commit_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return err
	}

	return nil
}

func (a *CrmAdapter) CommitReschedule(ctx context.Context, appointmentID uuid.UUID, start, end time.Time, staffID uuid.UUID) error {
	a.logger.Info("crm.appointment.reschedule_commit", out.LogFields{
		"appointmentId": appointmentID,
		"startAt":       start,
		"endAt":         end,
		"staffId":       staffID,
	})

	requestURL := fmt.Sprintf("%s/appointments/%s/reschedule", a.baseURL, appointmentID)
	body := map[string]string{
		"startAt": start.Format(time.RFC3339),
		"endAt":   end.Format(time.RFC3339),
		"staffId": staffID.String(),
	}
	if err := a.patchJSON(ctx, requestURL, body); err != nil {
		a.logger.Error("crm.appointment.reschedule_commit_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return err
	}

	return nil
}
