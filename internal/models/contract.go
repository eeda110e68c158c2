// Package models содержит доменные структуры контрактов на мониторинг
// и вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"time"

	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
)

// Contract контракт клиента на ношение браслета.
// ContractDuration хранится как пришёл из бэкенда ("12 meses"),
// DurationMonths разобранное значение. ExpirationDate задаётся продлением,
// нулевая дата значит placement + duration.
type Contract struct {
	ID               int           `json:"id"`
	ClientName       string        `json:"client_name"`
	CarrierSerial    string        `json:"carrier_serial,omitempty"`
	ContactEmail     string        `json:"contact_email,omitempty"`
	PlacementDate    validity.Date `json:"placement_date"`
	ContractDuration string        `json:"contract_duration"`
	DurationMonths   int           `json:"duration_months"`
	ExpirationDate   validity.Date `json:"expiration_date"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Expiration действующая дата окончания контракта.
func (c *Contract) Expiration() (validity.Date, error) {
	if !c.ExpirationDate.IsZero() {
		return c.ExpirationDate, nil
	}
	return validity.ExpirationDate(c.PlacementDate, c.DurationMonths)
}

// DummyContract используется для приёма контракта из JSON до валидации.
// Пустые дата и длительность проверяет сервис, чтобы вернуть сообщение для формы.
type DummyContract struct {
	ClientName       string                `json:"client_name" validate:"required,single_line"`
	CarrierSerial    string                `json:"carrier_serial" validate:"omitempty,alphanum"`
	ContactEmail     string                `json:"contact_email" validate:"omitempty,email"`
	PlacementDate    string                `json:"placement_date" validate:"omitempty,placement_date"`
	ContractDuration validity.DurationText `json:"contract_duration" validate:"omitempty,contract_duration"`
}

// ContractView контракт вместе с пересчитанными сроками.
type ContractView struct {
	Contract *Contract     `json:"contract"`
	Validity validity.Info `json:"validity"`
}

// ContractFilter параметры выборки списка контрактов.
type ContractFilter struct {
	Status *validity.Status
	Limit  int
	Offset int
}

// DummyValidityCheck запрос на расчёт срока без сохранения.
type DummyValidityCheck struct {
	PlacementDate    string                `json:"placement_date"`
	ContractDuration validity.DurationText `json:"contract_duration"`
}

// Dashboard сводка по статусам для финансового модуля.
type Dashboard struct {
	Total      int             `json:"total"`
	Unreadable int             `json:"unreadable"`
	Counts     map[string]int  `json:"counts"`
	Expiring   []*ContractView `json:"expiring"`
	AsOf       validity.Date   `json:"as_of"`
}
