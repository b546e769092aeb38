package domain

import "github.com/google/uuid"

// Selection - текущий выбор пользователя в форме записи
type Selection struct {
	StaffIDs   []uuid.UUID `json:"staffIds"`
	ServiceIDs []uuid.UUID `json:"serviceIds"`
	Language   string      `json:"language,omitempty"`
}

// ReconciledSelection - результат одного прохода сверки выбора
// Оба фильтра считаются от одного снимка выбора, повторная сверка
// уже согласованного выбора ничего не меняет
type ReconciledSelection struct {
	StaffIDs           []uuid.UUID   `json:"staffIds"`
	ServiceIDs         []uuid.UUID   `json:"serviceIds"`
	CompatibleStaff    []StaffMember `json:"compatibleStaff"`
	CompatibleServices []Service     `json:"compatibleServices"`
}
