package model

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Equipment struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	SerialNumber string    `json:"serial_number"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// Label is the one-line equipment name used in documents.
func (e Equipment) Label() string {
	switch {
	case e.Brand != "" && e.Model != "":
		return e.Brand + " " + e.Model
	case e.Brand != "":
		return e.Brand
	default:
		return e.Model
	}
}
