package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fieldops-docs/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) CreateClient(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO clients (name, tax_id, address, phone, email)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, name, tax_id, address, phone, email, created_at
	`, client.Name, client.TaxID, client.Address, client.Phone, client.Email).Scan(client).Error
}

func (r *ClientRepository) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, tax_id, address, phone, email, created_at
		FROM clients
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&client).Error; err != nil {
		return nil, err
	}
	if client.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &client, nil
}

func (r *ClientRepository) ListClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, tax_id, address, phone, email, created_at
		FROM clients
		ORDER BY name ASC
	`).Scan(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) CreateEquipment(ctx context.Context, equipment *model.Equipment) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO equipment (client_id, brand, model, serial_number, description)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, client_id, brand, model, serial_number, description, created_at
	`, equipment.ClientID, equipment.Brand, equipment.Model, equipment.SerialNumber, equipment.Description).
		Scan(equipment).Error
}

func (r *ClientRepository) GetEquipment(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	var equipment model.Equipment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, brand, model, serial_number, description, created_at
		FROM equipment
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&equipment).Error; err != nil {
		return nil, err
	}
	if equipment.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &equipment, nil
}

func (r *ClientRepository) ListEquipment(ctx context.Context, clientID uuid.UUID) ([]model.Equipment, error) {
	var rows []model.Equipment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, brand, model, serial_number, description, created_at
		FROM equipment
		WHERE client_id = ?
		ORDER BY brand ASC, model ASC
	`, clientID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
