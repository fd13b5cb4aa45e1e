package model

import (
	"time"

	"github.com/google/uuid"
)

type ItemKind string

const (
	ItemKindService ItemKind = "service"
	ItemKindExpense ItemKind = "expense"
)

type PriceEntry struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// LineItem carries a single entry unless Multiple is set.
type LineItem struct {
	Description string       `json:"description"`
	Kind        ItemKind     `json:"kind"`
	Multiple    bool         `json:"multiple"`
	Entries     []PriceEntry `json:"entries"`
}

// Budget is an immutable snapshot. Editing a budget saves a new one.
type Budget struct {
	ID          uuid.UUID  `json:"id"`
	Number      int64      `json:"number"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	ClientID    uuid.UUID  `json:"client_id"`
	ClientName  string     `json:"client_name"`
	ClientTaxID string     `json:"client_tax_id"`
	ClientAddr  string     `json:"client_address"`
	OrderNumber *int64     `json:"order_number,omitempty"`
	Equipment   string     `json:"equipment"`
	Items       []LineItem `json:"items"`
	TaxRate     float64    `json:"tax_rate"`
	ShowTax     bool       `json:"show_tax"`
	Subtotal    float64    `json:"subtotal"`
	TaxAmount   float64    `json:"tax_amount"`
	Total       float64    `json:"total"`
	Notes       string     `json:"notes"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}
