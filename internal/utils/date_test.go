package utils

import (
	"testing"
	"time"
)

func TestStartCurrentDay(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatal(err)
	}

	instant := time.Date(2026, time.March, 2, 15, 42, 13, 500, warsaw)
	start := StartCurrentDay(instant)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Errorf("StartCurrentDay() = %s, want начало суток", start)
	}
	if start.Day() != 2 {
		t.Errorf("день = %d, want 2", start.Day())
	}
	// Таймзона сохраняется
	if start.Location() != warsaw {
		t.Errorf("таймзона = %s, want Europe/Warsaw", start.Location())
	}
}

func TestStartNextDay(t *testing.T) {
	instant := time.Date(2026, time.March, 2, 23, 59, 0, 0, time.UTC)
	next := StartNextDay(instant)

	want := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("StartNextDay() = %s, want %s", next, want)
	}

	// Переход через конец месяца
	endOfMonth := time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC)
	if got := StartNextDay(endOfMonth); got.Month() != time.April || got.Day() != 1 {
		t.Errorf("StartNextDay(конец марта) = %s, want 1 апреля", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"RFC3339", "2026-03-02T10:00:00+01:00", false},
		{"без таймзоны", "2026-03-02T10:00:00", false},
		{"только дата", "2026-03-02", false},
		{"мусор", "next tuesday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("ожидалась ошибка разбора")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if parsed.Year() != 2026 || parsed.Month() != time.March || parsed.Day() != 2 {
				t.Errorf("разобрано %s, want 2 марта 2026", parsed)
			}
		})
	}
}
