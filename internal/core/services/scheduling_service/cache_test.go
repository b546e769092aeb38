package scheduling_service

import (
	"testing"

	"github.com/google/uuid"
)

func TestDaySlotsKey(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	// Порядок мастеров не влияет на ключ
	key1 := daySlotsKey(60, []uuid.UUID{a, b})
	key2 := daySlotsKey(60, []uuid.UUID{b, a})
	if key1 != key2 {
		t.Errorf("ключи для одного набора мастеров различаются: %q != %q", key1, key2)
	}

	// Разная длительность дает разные ключи
	if daySlotsKey(60, []uuid.UUID{a}) == daySlotsKey(90, []uuid.UUID{a}) {
		t.Error("разные длительности должны давать разные ключи")
	}

	// Разные наборы мастеров дают разные ключи
	if daySlotsKey(60, []uuid.UUID{a}) == daySlotsKey(60, []uuid.UUID{b}) {
		t.Error("разные мастера должны давать разные ключи")
	}

	// Пустой набор мастеров допустим
	if daySlotsKey(60, nil) != daySlotsKey(60, []uuid.UUID{}) {
		t.Error("nil и пустой срез должны давать один ключ")
	}
}
