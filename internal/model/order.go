package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusOpen   OrderStatus = "open"
	OrderStatusClosed OrderStatus = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

type Checklist struct {
	BudgetRequested bool `json:"budget_requested"`
	Warranty        bool `json:"warranty"`
	NeedsParts      bool `json:"needs_parts"`
	ClientSigned    bool `json:"client_signed"`
}

type Order struct {
	ID          uuid.UUID   `json:"id"`
	Number      int64       `json:"number"`
	ClientID    uuid.UUID   `json:"client_id"`
	EquipmentID *uuid.UUID  `json:"equipment_id,omitempty"`
	ServiceType string      `json:"service_type"`
	Priority    Priority    `json:"priority"`
	Status      OrderStatus `json:"status"`
	Result      string      `json:"result"`
	Notes       string      `json:"notes"`
	Checklist   Checklist   `json:"checklist"`
	CreatedAt   time.Time   `json:"created_at"`
	ClosedAt    *time.Time  `json:"closed_at,omitempty"`
}

// WorkSession is one day of work on an order. Every time field is an
// optional "HH:MM" string; distances are kept as entered.
type WorkSession struct {
	ID                uuid.UUID `json:"id"`
	OrderID           uuid.UUID `json:"order_id"`
	Date              time.Time `json:"date"`
	OutboundDeparture string    `json:"outbound_departure"`
	OutboundArrival   string    `json:"outbound_arrival"`
	WorkStart         string    `json:"work_start"`
	WorkEnd           string    `json:"work_end"`
	ReturnDeparture   string    `json:"return_departure"`
	ReturnArrival     string    `json:"return_arrival"`
	Pause             string    `json:"pause"`
	OutboundKm        string    `json:"outbound_km"`
	ReturnKm          string    `json:"return_km"`
	CreatedAt         time.Time `json:"created_at"`
}

// OrderDocument is everything needed to render a service order.
type OrderDocument struct {
	Order     Order
	Client    Client
	Equipment Equipment
	Sessions  []WorkSession
}

// OrderFilter narrows an order listing. Nil fields are not applied.
type OrderFilter struct {
	Status   *OrderStatus
	Priority *Priority
	ClientID *uuid.UUID
	Search   string
	Limit    uint64
	Offset   uint64
}
