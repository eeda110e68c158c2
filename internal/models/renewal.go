package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
)

// Renewal запись о продлении контракта.
type Renewal struct {
	ID                 uuid.UUID     `json:"id"`
	ContractID         int           `json:"contract_id"`
	RenewalDate        validity.Date `json:"renewal_date"`
	MonthsAdded        int           `json:"months_added"`
	PreviousExpiration validity.Date `json:"previous_expiration"`
	NewExpiration      validity.Date `json:"new_expiration"`
	TotalMonths        int           `json:"total_months"`
	CreatedAt          time.Time     `json:"created_at"`
}

// DummyRenewal тело запроса на продление. months_to_add принимает 6 и "6 meses".
type DummyRenewal struct {
	MonthsToAdd validity.Months `json:"months_to_add" validate:"required,gt=0,lte=120" swaggertype:"integer"`
}

// ExpirationNotice сообщение в очередь уведомлений о скором окончании контракта.
type ExpirationNotice struct {
	ContractID     int           `json:"contract_id"`
	ClientName     string        `json:"client_name"`
	CarrierSerial  string        `json:"carrier_serial,omitempty"`
	ContactEmail   string        `json:"contact_email,omitempty"`
	ExpirationDate validity.Date `json:"expiration_date"`
	DaysRemaining  int           `json:"days_remaining"`
	Status         string        `json:"status"`
}
