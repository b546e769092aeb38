package domain

import (
	"github.com/google/uuid"
)

// StaffMember - мастер салона
// Пустой PerformableServiceIDs означает "не выполняет ничего", а не "выполняет все"
type StaffMember struct {
	ID                    uuid.UUID   `json:"id"`
	Name                  string      `json:"name"`
	Active                bool        `json:"active"`
	PerformableServiceIDs []uuid.UUID `json:"availableServices"`
	SpokenLanguages       []string    `json:"spokenLocales"`
}

func (m StaffMember) CanPerform(serviceID uuid.UUID) bool {
	for _, id := range m.PerformableServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

func (m StaffMember) CanPerformAll(serviceIDs []uuid.UUID) bool {
	for _, id := range serviceIDs {
		if !m.CanPerform(id) {
			return false
		}
	}
	return true
}

// Speaks проверяет языковую совместимость
// Мастер без указанных языков считается совместимым с любым языком:
// отсутствие данных - это не отсутствие совпадения
func (m StaffMember) Speaks(language string) bool {
	if len(m.SpokenLanguages) == 0 {
		return true
	}
	for _, l := range m.SpokenLanguages {
		if l == language {
			return true
		}
	}
	return false
}

type StaffSet []StaffMember

func (set StaffSet) ByID(id uuid.UUID) (StaffMember, bool) {
	for _, m := range set {
		if m.ID == id {
			return m, true
		}
	}
	return StaffMember{}, false
}
