package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/json_types"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"подтверждение новой записи", AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{"отмена подтвержденной", AppointmentStatusConfirmed, AppointmentStatusCanceled, true},
		{"завершение из процесса", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"отмена еще не подтвержденной", AppointmentStatusPending, AppointmentStatusCanceled, true},
		{"из отмененной переходов нет", AppointmentStatusCanceled, AppointmentStatusPending, false},
		{"из завершенной переходов нет", AppointmentStatusCompleted, AppointmentStatusConfirmed, false},
		{"переход в тот же статус не является переходом", AppointmentStatusConfirmed, AppointmentStatusConfirmed, false},
		{"неизвестный целевой статус", AppointmentStatusPending, AppointmentStatus("ARCHIVED"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	terminal := map[AppointmentStatus]bool{
		AppointmentStatusPending:    false,
		AppointmentStatusConfirmed:  false,
		AppointmentStatusInProgress: false,
		AppointmentStatusCompleted:  true,
		AppointmentStatusCanceled:   true,
	}

	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestAppointmentBlocksSlot(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	appointment := Appointment{
		ID:        uuid.New(),
		StaffID:   uuid.New(),
		StartDate: json_types.DateTime{Date: start},
		EndDate:   json_types.DateTime{Date: start.Add(time.Hour)},
	}

	// Все статусы кроме CANCELED занимают время мастера, включая COMPLETED
	for _, status := range []AppointmentStatus{
		AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusInProgress, AppointmentStatusCompleted,
	} {
		appointment.Status = status
		if !appointment.BlocksSlot() {
			t.Errorf("запись в статусе %s должна блокировать слот", status)
		}
	}

	appointment.Status = AppointmentStatusCanceled
	if appointment.BlocksSlot() {
		t.Error("отмененная запись не должна блокировать слот")
	}
}

func TestAppointmentUnmarshalCanceledAt(t *testing.T) {
	// CRM отдает canceledAt как null для живых записей
	alive := []byte(`{"id":"` + uuid.NewString() + `","status":"CONFIRMED","canceledAt":null}`)
	var appointment Appointment
	if err := json.Unmarshal(alive, &appointment); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !appointment.CanceledAt.Date.IsZero() {
		t.Errorf("canceledAt = %s, want нулевое значение", appointment.CanceledAt.Date)
	}

	canceled := []byte(`{"id":"` + uuid.NewString() + `","status":"CANCELED","canceledAt":"2026-03-02T11:30:00+01:00"}`)
	if err := json.Unmarshal(canceled, &appointment); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if appointment.CanceledAt.Date.IsZero() {
		t.Error("у отмененной записи canceledAt не должен быть нулевым")
	}
}

func TestAppointmentWindow(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	appointment := Appointment{
		StartDate: json_types.DateTime{Date: start},
		EndDate:   json_types.DateTime{Date: start.Add(90 * time.Minute)},
	}

	window := appointment.Window()
	if window.Minutes() != 90 {
		t.Errorf("Window().Minutes() = %d, want 90", window.Minutes())
	}
}
