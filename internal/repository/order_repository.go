package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fieldops-docs/internal/model"
)

const defaultOrderLimit = 100

var orderColumns = []string{
	"id", "number", "client_id", "equipment_id", "service_type", "priority", "status",
	"result", "notes", "budget_requested", "warranty", "needs_parts", "client_signed",
	"created_at", "closed_at",
}

type orderRow struct {
	ID              uuid.UUID
	Number          int64
	ClientID        uuid.UUID
	EquipmentID     *uuid.UUID
	ServiceType     string
	Priority        string
	Status          string
	Result          string
	Notes           string
	BudgetRequested bool
	Warranty        bool
	NeedsParts      bool
	ClientSigned    bool
	CreatedAt       time.Time
	ClosedAt        *time.Time
}

func (r orderRow) toModel() model.Order {
	return model.Order{
		ID:          r.ID,
		Number:      r.Number,
		ClientID:    r.ClientID,
		EquipmentID: r.EquipmentID,
		ServiceType: r.ServiceType,
		Priority:    model.Priority(r.Priority),
		Status:      model.OrderStatus(r.Status),
		Result:      r.Result,
		Notes:       r.Notes,
		Checklist: model.Checklist{
			BudgetRequested: r.BudgetRequested,
			Warranty:        r.Warranty,
			NeedsParts:      r.NeedsParts,
			ClientSigned:    r.ClientSigned,
		},
		CreatedAt: r.CreatedAt,
		ClosedAt:  r.ClosedAt,
	}
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	var row orderRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO orders (
			client_id, equipment_id, service_type, priority, status, result, notes,
			budget_requested, warranty, needs_parts, client_signed
		)
		VALUES (?, ?, ?, ?, 'open', '', ?, ?, ?, ?, ?)
		RETURNING `+strings.Join(orderColumns, ", "),
		order.ClientID, order.EquipmentID, order.ServiceType, string(order.Priority), order.Notes,
		order.Checklist.BudgetRequested, order.Checklist.Warranty,
		order.Checklist.NeedsParts, order.Checklist.ClientSigned,
	).Scan(&row).Error
	if err != nil {
		return err
	}
	*order = row.toModel()
	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var row orderRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+strings.Join(orderColumns, ", ")+`
		FROM orders
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	order := row.toModel()
	return &order, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query, args, err := buildOrderListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build order query: %w", err)
	}

	var rows []orderRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toModel())
	}
	return orders, nil
}

func buildOrderListQuery(filter model.OrderFilter) (string, []interface{}, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		OrderBy("number DESC")

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.Priority != nil {
		builder = builder.Where(sq.Eq{"priority": string(*filter.Priority)})
	}
	if filter.ClientID != nil {
		builder = builder.Where(sq.Eq{"client_id": *filter.ClientID})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"service_type": pattern},
			sq.ILike{"notes": pattern},
		})
	}

	limit := filter.Limit
	if limit == 0 {
		limit = defaultOrderLimit
	}
	builder = builder.Limit(limit)
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}
	return builder.ToSql()
}

func (r *OrderRepository) UpdateOrder(ctx context.Context, order *model.Order) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET equipment_id = ?,
			service_type = ?,
			priority = ?,
			result = ?,
			notes = ?,
			budget_requested = ?,
			warranty = ?,
			needs_parts = ?,
			client_signed = ?
		WHERE id = ?
	`, order.EquipmentID, order.ServiceType, string(order.Priority), order.Result, order.Notes,
		order.Checklist.BudgetRequested, order.Checklist.Warranty,
		order.Checklist.NeedsParts, order.Checklist.ClientSigned, order.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrderRepository) CloseOrder(ctx context.Context, id uuid.UUID, outcome string, closedAt time.Time) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET status = 'closed', result = ?, closed_at = ?
		WHERE id = ?
	`, outcome, closedAt, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOrder removes the order together with its work sessions.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM work_sessions WHERE order_id = ?`, id).Error; err != nil {
			return err
		}
		result := tx.Exec(`DELETE FROM orders WHERE id = ?`, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
