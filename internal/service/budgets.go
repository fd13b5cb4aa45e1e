package service

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/pricing"
)

type BudgetInput struct {
	OrderID  *uuid.UUID
	ClientID uuid.UUID
	Items    []model.LineItem
	TaxRate  *float64
	ShowTax  *bool
	Notes    string
}

// PreviewBudget prices the input without saving anything.
func (s *DocumentService) PreviewBudget(p model.Principal, input BudgetInput) (*pricing.Summary, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	items, tax, err := s.budgetPricing(input)
	if err != nil {
		return nil, err
	}
	summary := pricing.Compute(items, tax)
	return &summary, nil
}

// CreateBudget saves a new immutable budget. Client and order fields are
// copied into the budget so later edits to them do not change it.
func (s *DocumentService) CreateBudget(ctx context.Context, p model.Principal, input BudgetInput) (*model.Budget, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	items, tax, err := s.budgetPricing(input)
	if err != nil {
		return nil, err
	}

	budget := &model.Budget{
		ClientID:  input.ClientID,
		Items:     items,
		TaxRate:   tax.Rate,
		ShowTax:   tax.Show,
		Notes:     strings.TrimSpace(input.Notes),
		CreatedBy: p.UserID,
	}

	if input.OrderID != nil {
		order, err := s.orders.GetOrder(ctx, *input.OrderID)
		if err != nil {
			return nil, notFound(err, "order")
		}
		if input.ClientID != uuid.Nil && input.ClientID != order.ClientID {
			return nil, invalid("order belongs to another client")
		}
		number := order.Number
		budget.OrderID = &order.ID
		budget.OrderNumber = &number
		budget.ClientID = order.ClientID
		if order.EquipmentID != nil {
			equipment, err := s.clients.GetEquipment(ctx, *order.EquipmentID)
			if err != nil {
				return nil, notFound(err, "equipment")
			}
			budget.Equipment = equipment.Label()
		}
	}
	if budget.ClientID == uuid.Nil {
		return nil, invalid("client_id or order_id is required")
	}

	client, err := s.clients.GetClient(ctx, budget.ClientID)
	if err != nil {
		return nil, notFound(err, "client")
	}
	budget.ClientName = client.Name
	budget.ClientTaxID = client.TaxID
	budget.ClientAddr = client.Address

	if !pricing.IsPreset(tax.Rate) {
		s.log.Info().Float64("tax_rate", tax.Rate).Str("client_id", budget.ClientID.String()).Msg("budget uses a non-preset tax rate")
	}

	summary := pricing.Compute(items, tax)
	budget.Subtotal = summary.Subtotal
	budget.TaxAmount = summary.TaxAmount
	budget.Total = summary.Total

	if err := s.budgets.CreateBudget(ctx, budget); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("budget_id", budget.ID.String()).
		Int64("number", budget.Number).
		Float64("total", budget.Total).
		Msg("budget saved")
	return budget, nil
}

func (s *DocumentService) GetBudget(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Budget, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	budget, err := s.budgets.GetBudget(ctx, id)
	if err != nil {
		return nil, notFound(err, "budget")
	}
	return budget, nil
}

func (s *DocumentService) ListBudgets(ctx context.Context, p model.Principal, orderID *uuid.UUID) ([]model.Budget, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	return s.budgets.ListBudgets(ctx, orderID)
}

func (s *DocumentService) budgetPricing(input BudgetInput) ([]model.LineItem, pricing.Tax, error) {
	tax := pricing.Tax{Rate: s.settings.DefaultTaxRate, Show: true}
	if input.TaxRate != nil {
		tax.Rate = *input.TaxRate
	}
	if input.ShowTax != nil {
		tax.Show = *input.ShowTax
	}
	if tax.Rate < 0 || math.IsNaN(tax.Rate) || math.IsInf(tax.Rate, 0) {
		return nil, tax, invalid("tax rate must be a non-negative number")
	}

	if len(input.Items) == 0 {
		return nil, tax, invalid("at least one item is required")
	}
	items := make([]model.LineItem, 0, len(input.Items))
	for i, item := range input.Items {
		item.Description = strings.TrimSpace(item.Description)
		if item.Description == "" {
			return nil, tax, invalid("item %d: description is required", i+1)
		}
		if item.Kind == "" {
			item.Kind = model.ItemKindService
		}
		if item.Kind != model.ItemKindService && item.Kind != model.ItemKindExpense {
			return nil, tax, invalid("item %d: kind %q is not valid", i+1, item.Kind)
		}
		if len(item.Entries) == 0 {
			return nil, tax, invalid("item %d: at least one price entry is required", i+1)
		}
		if !item.Multiple {
			item.Entries = item.Entries[:1]
		}
		items = append(items, item)
	}
	return items, tax, nil
}
