package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fieldops-docs/internal/model"
)

const budgetColumns = `id, number, order_id, client_id, client_name, client_tax_id,
	client_address, order_number, equipment, items::text AS items, tax_rate, show_tax,
	subtotal, tax_amount, total, notes, created_by, created_at`

type budgetRow struct {
	ID            uuid.UUID
	Number        int64
	OrderID       *uuid.UUID
	ClientID      uuid.UUID
	ClientName    string
	ClientTaxID   string
	ClientAddress string
	OrderNumber   *int64
	Equipment     string
	Items         string
	TaxRate       float64
	ShowTax       bool
	Subtotal      float64
	TaxAmount     float64
	Total         float64
	Notes         string
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
}

func (r budgetRow) toModel() (model.Budget, error) {
	var items []model.LineItem
	if r.Items != "" {
		if err := json.Unmarshal([]byte(r.Items), &items); err != nil {
			return model.Budget{}, fmt.Errorf("decode budget %s items: %w", r.ID, err)
		}
	}
	return model.Budget{
		ID:          r.ID,
		Number:      r.Number,
		OrderID:     r.OrderID,
		ClientID:    r.ClientID,
		ClientName:  r.ClientName,
		ClientTaxID: r.ClientTaxID,
		ClientAddr:  r.ClientAddress,
		OrderNumber: r.OrderNumber,
		Equipment:   r.Equipment,
		Items:       items,
		TaxRate:     r.TaxRate,
		ShowTax:     r.ShowTax,
		Subtotal:    r.Subtotal,
		TaxAmount:   r.TaxAmount,
		Total:       r.Total,
		Notes:       r.Notes,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}, nil
}

// BudgetRepository only inserts. Saved budgets are never updated.
type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) CreateBudget(ctx context.Context, budget *model.Budget) error {
	items, err := json.Marshal(budget.Items)
	if err != nil {
		return fmt.Errorf("encode budget items: %w", err)
	}

	var row budgetRow
	err = r.db.WithContext(ctx).Raw(`
		INSERT INTO budgets (
			order_id, client_id, client_name, client_tax_id, client_address, order_number,
			equipment, items, tax_rate, show_tax, subtotal, tax_amount, total, notes, created_by
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?::jsonb, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+budgetColumns,
		budget.OrderID, budget.ClientID, budget.ClientName, budget.ClientTaxID, budget.ClientAddr,
		budget.OrderNumber, budget.Equipment, string(items), budget.TaxRate, budget.ShowTax,
		budget.Subtotal, budget.TaxAmount, budget.Total, budget.Notes, budget.CreatedBy,
	).Scan(&row).Error
	if err != nil {
		return err
	}
	saved, err := row.toModel()
	if err != nil {
		return err
	}
	*budget = saved
	return nil
}

func (r *BudgetRepository) GetBudget(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	var row budgetRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	budget, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *BudgetRepository) ListBudgets(ctx context.Context, orderID *uuid.UUID) ([]model.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets`
	var args []interface{}
	if orderID != nil {
		query += ` WHERE order_id = ?`
		args = append(args, *orderID)
	}
	query += ` ORDER BY number DESC`

	var rows []budgetRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	budgets := make([]model.Budget, 0, len(rows))
	for _, row := range rows {
		budget, err := row.toModel()
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, nil
}
