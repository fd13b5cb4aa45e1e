package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/fieldops-docs/internal/model"
)

type OrderInput struct {
	ClientID    uuid.UUID
	EquipmentID *uuid.UUID
	ServiceType string
	Priority    model.Priority
	Result      string
	Notes       string
	Checklist   model.Checklist
}

func (s *DocumentService) CreateOrder(ctx context.Context, p model.Principal, input OrderInput) (*model.Order, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	if input.Priority == "" {
		input.Priority = model.PriorityNormal
	}
	if !input.Priority.Valid() {
		return nil, invalid("priority %q is not valid", input.Priority)
	}
	if _, err := s.clients.GetClient(ctx, input.ClientID); err != nil {
		return nil, notFound(err, "client")
	}
	if err := s.checkEquipment(ctx, input.ClientID, input.EquipmentID); err != nil {
		return nil, err
	}

	order := &model.Order{
		ClientID:    input.ClientID,
		EquipmentID: input.EquipmentID,
		ServiceType: strings.TrimSpace(input.ServiceType),
		Priority:    input.Priority,
		Status:      model.OrderStatusOpen,
		Notes:       strings.TrimSpace(input.Notes),
		Checklist:   input.Checklist,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", order.ID.String()).Int64("number", order.Number).Msg("order created")
	return order, nil
}

func (s *DocumentService) GetOrder(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Order, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return order, nil
}

func (s *DocumentService) ListOrders(ctx context.Context, p model.Principal, filter model.OrderFilter) ([]model.Order, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	if filter.Status != nil && *filter.Status != model.OrderStatusOpen && *filter.Status != model.OrderStatusClosed {
		return nil, invalid("status %q is not valid", *filter.Status)
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, invalid("priority %q is not valid", *filter.Priority)
	}
	return s.orders.ListOrders(ctx, filter)
}

// UpdateOrder replaces the editable fields. The client of an order is fixed.
func (s *DocumentService) UpdateOrder(ctx context.Context, p model.Principal, id uuid.UUID, input OrderInput) (*model.Order, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if order.Status == model.OrderStatusClosed {
		return nil, ErrOrderClosed
	}
	if input.Priority == "" {
		input.Priority = order.Priority
	}
	if !input.Priority.Valid() {
		return nil, invalid("priority %q is not valid", input.Priority)
	}
	if err := s.checkEquipment(ctx, order.ClientID, input.EquipmentID); err != nil {
		return nil, err
	}

	order.EquipmentID = input.EquipmentID
	order.ServiceType = strings.TrimSpace(input.ServiceType)
	order.Priority = input.Priority
	order.Result = strings.TrimSpace(input.Result)
	order.Notes = strings.TrimSpace(input.Notes)
	order.Checklist = input.Checklist
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, notFound(err, "order")
	}
	return order, nil
}

func (s *DocumentService) CloseOrder(ctx context.Context, p model.Principal, id uuid.UUID, result string) (*model.Order, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if order.Status == model.OrderStatusClosed {
		return nil, ErrOrderClosed
	}
	result = strings.TrimSpace(result)
	if result == "" {
		result = order.Result
	}

	closedAt := s.now().UTC()
	if err := s.orders.CloseOrder(ctx, id, result, closedAt); err != nil {
		return nil, notFound(err, "order")
	}
	order.Status = model.OrderStatusClosed
	order.Result = result
	order.ClosedAt = &closedAt
	return order, nil
}

// DeleteOrder also removes the order's work sessions. Admins only.
func (s *DocumentService) DeleteOrder(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := authorize(p); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return notFound(err, "order")
	}
	s.log.Info().Str("order_id", id.String()).Str("user_id", p.UserID.String()).Msg("order deleted")
	return nil
}

func (s *DocumentService) checkEquipment(ctx context.Context, clientID uuid.UUID, equipmentID *uuid.UUID) error {
	if equipmentID == nil {
		return nil
	}
	equipment, err := s.clients.GetEquipment(ctx, *equipmentID)
	if err != nil {
		return notFound(err, "equipment")
	}
	if equipment.ClientID != clientID {
		return invalid("equipment belongs to another client")
	}
	return nil
}
