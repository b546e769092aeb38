package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/core/json_types"
)

func TestStaffScheduleSet(t *testing.T) {
	staffID := uuid.New()
	otherID := uuid.New()

	set := StaffScheduleSet{
		{
			ID:        "row-1",
			StaffID:   staffID,
			DayOfWeek: time.Sunday,
			IsOpen:    true,
			Opens:     json_types.NewTime(11, 0),
			Closes:    json_types.NewTime(15, 0),
		},
		{
			ID:        "row-2",
			StaffID:   staffID,
			DayOfWeek: time.Monday,
			IsOpen:    false,
		},
	}

	// 2026-03-01 - воскресенье
	sunday := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("окно мастера в рабочий день", func(t *testing.T) {
		window := set.StaffWindowOn(staffID, sunday)
		if window == nil {
			t.Fatal("окно мастера в воскресенье должно существовать")
		}
		if window.Start.Hour() != 11 || window.End.Hour() != 15 {
			t.Errorf("окно = [%s, %s), want [11:00, 15:00)", window.Start, window.End)
		}
	})

	t.Run("нерабочий день мастера", func(t *testing.T) {
		monday := sunday.AddDate(0, 0, 1)
		if set.StaffWindowOn(staffID, monday) != nil {
			t.Error("в нерабочий день окна быть не должно")
		}
	})

	t.Run("мастер без строк расписания", func(t *testing.T) {
		if set.StaffWindowOn(otherID, sunday) != nil {
			t.Error("у мастера без расписания окон нет")
		}
		if set.HasRowsFor(otherID) {
			t.Error("HasRowsFor должен вернуть false для мастера без строк")
		}
		if !set.HasRowsFor(staffID) {
			t.Error("HasRowsFor должен вернуть true при наличии строк")
		}
	})

	t.Run("доступность в момент времени", func(t *testing.T) {
		if !set.IsStaffAvailableAt(staffID, sunday.Add(12*time.Hour)) {
			t.Error("мастер должен быть доступен в 12:00 воскресенья")
		}
		if set.IsStaffAvailableAt(staffID, sunday.Add(16*time.Hour)) {
			t.Error("мастер не должен быть доступен после закрытия окна")
		}
	})

	t.Run("хоть кто-то работает в день недели", func(t *testing.T) {
		if !set.AnyStaffWorks(time.Sunday) {
			t.Error("в воскресенье работает хотя бы один мастер")
		}
		// Строка с IsOpen=false не считается рабочей
		if set.AnyStaffWorks(time.Monday) {
			t.Error("в понедельник никто не работает")
		}
		if set.AnyStaffWorks(time.Friday) {
			t.Error("в пятницу строк расписания нет вообще")
		}
	})
}
