package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/fieldops-docs/internal/model"
)

type CreateClientInput struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
	Email   string
}

func (s *DocumentService) CreateClient(ctx context.Context, p model.Principal, input CreateClientInput) (*model.Client, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	client := &model.Client{
		Name:    strings.TrimSpace(input.Name),
		TaxID:   strings.TrimSpace(input.TaxID),
		Address: strings.TrimSpace(input.Address),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
	}
	if client.Name == "" {
		return nil, invalid("name is required")
	}
	if client.Email != "" {
		if _, err := mail.ParseAddress(client.Email); err != nil {
			return nil, invalid("email is not valid")
		}
	}
	if err := s.clients.CreateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *DocumentService) GetClient(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Client, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	client, err := s.clients.GetClient(ctx, id)
	if err != nil {
		return nil, notFound(err, "client")
	}
	return client, nil
}

func (s *DocumentService) ListClients(ctx context.Context, p model.Principal) ([]model.Client, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	return s.clients.ListClients(ctx)
}

type CreateEquipmentInput struct {
	ClientID     uuid.UUID
	Brand        string
	Model        string
	SerialNumber string
	Description  string
}

func (s *DocumentService) CreateEquipment(ctx context.Context, p model.Principal, input CreateEquipmentInput) (*model.Equipment, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	equipment := &model.Equipment{
		ClientID:     input.ClientID,
		Brand:        strings.TrimSpace(input.Brand),
		Model:        strings.TrimSpace(input.Model),
		SerialNumber: strings.TrimSpace(input.SerialNumber),
		Description:  strings.TrimSpace(input.Description),
	}
	if equipment.Brand == "" && equipment.Model == "" {
		return nil, invalid("brand or model is required")
	}
	if _, err := s.clients.GetClient(ctx, input.ClientID); err != nil {
		return nil, notFound(err, "client")
	}
	if err := s.clients.CreateEquipment(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *DocumentService) ListEquipment(ctx context.Context, p model.Principal, clientID uuid.UUID) ([]model.Equipment, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	if _, err := s.clients.GetClient(ctx, clientID); err != nil {
		return nil, notFound(err, "client")
	}
	return s.clients.ListEquipment(ctx, clientID)
}
