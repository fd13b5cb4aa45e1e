package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nurpe/fieldops-docs/internal/cache"
	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/pdf"
	"github.com/nurpe/fieldops-docs/internal/pricing"
	"github.com/nurpe/fieldops-docs/internal/workday"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var pdfMagic = []byte("%PDF-")

type FileResult struct {
	FileName    string
	ContentType string
	Content     []byte
	ArchivePath string
}

// GenerateBudgetPDF renders a saved budget. Budgets never change, so the
// rendered bytes are cached by budget id.
func (s *DocumentService) GenerateBudgetPDF(ctx context.Context, p model.Principal, budgetID uuid.UUID) (*FileResult, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	budget, err := s.budgets.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, notFound(err, "budget")
	}
	fileName := pdf.FileName(pdf.KindBudget, budget.ClientName, budget.Number)
	key := cache.BudgetPDFKey(budget.ID)

	if s.cache != nil {
		content, err := s.cache.Get(ctx, key)
		switch {
		case err == nil && bytes.HasPrefix(content, pdfMagic):
			s.log.Debug().Str("budget_id", budget.ID.String()).Msg("budget pdf served from cache")
			return &FileResult{FileName: fileName, ContentType: ContentTypePDF, Content: content}, nil
		case err == nil:
			s.log.Warn().Str("budget_id", budget.ID.String()).Msg("evicting corrupt cached budget pdf")
			if err := s.cache.Delete(ctx, key); err != nil {
				s.log.Warn().Err(err).Str("budget_id", budget.ID.String()).Msg("budget pdf cache eviction failed")
			}
		case !errors.Is(err, cache.ErrMiss):
			s.log.Warn().Err(err).Str("budget_id", budget.ID.String()).Msg("budget pdf cache lookup failed")
		}
	}

	summary := pricing.Compute(budget.Items, pricing.Tax{Rate: budget.TaxRate, Show: budget.ShowTax})
	doc, err := s.pdf.Budget(pdf.BudgetInput{
		Budget:  *budget,
		Summary: summary,
		Logo:    s.loadLogo(),
	})
	if err != nil {
		return nil, fmt.Errorf("render budget %d: %w", budget.Number, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, doc.Content); err != nil {
			s.log.Warn().Err(err).Str("budget_id", budget.ID.String()).Msg("budget pdf cache store failed")
		}
	}

	s.log.Info().
		Str("budget_id", budget.ID.String()).
		Int("pages", doc.Pages).
		Msg("budget pdf generated")
	return s.finish(ctx, doc.FileName, ContentTypePDF, doc.Content), nil
}

func (s *DocumentService) GenerateOrderPDF(ctx context.Context, p model.Principal, orderID uuid.UUID) (*FileResult, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	doc, totals, err := s.loadOrderDocument(ctx, orderID)
	if err != nil {
		return nil, err
	}

	out, err := s.pdf.ServiceOrder(pdf.OrderInput{
		Document: *doc,
		Totals:   totals,
		Logo:     s.loadLogo(),
	})
	if err != nil {
		return nil, fmt.Errorf("render order %d: %w", doc.Order.Number, err)
	}

	s.log.Info().
		Str("order_id", orderID.String()).
		Int("pages", out.Pages).
		Int("sessions", len(doc.Sessions)).
		Msg("service order pdf generated")
	return s.finish(ctx, out.FileName, ContentTypePDF, out.Content), nil
}

func (s *DocumentService) ExportWorkdays(ctx context.Context, p model.Principal, orderID uuid.UUID) (*FileResult, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	doc, totals, err := s.loadOrderDocument(ctx, orderID)
	if err != nil {
		return nil, err
	}

	content, err := s.excel.Workdays(*doc, totals)
	if err != nil {
		return nil, fmt.Errorf("export workdays of order %d: %w", doc.Order.Number, err)
	}
	name := pdf.FileNameExt(pdf.KindWorkdays, doc.Client.Name, doc.Order.Number, "xlsx")
	return s.finish(ctx, name, ContentTypeXLSX, content), nil
}

// loadOrderDocument fetches the order, its client, equipment and sessions
// one after another.
func (s *DocumentService) loadOrderDocument(ctx context.Context, orderID uuid.UUID) (*model.OrderDocument, workday.Totals, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, workday.Totals{}, notFound(err, "order")
	}
	client, err := s.clients.GetClient(ctx, order.ClientID)
	if err != nil {
		return nil, workday.Totals{}, notFound(err, "client")
	}
	var equipment model.Equipment
	if order.EquipmentID != nil {
		found, err := s.clients.GetEquipment(ctx, *order.EquipmentID)
		if err != nil {
			return nil, workday.Totals{}, notFound(err, "equipment")
		}
		equipment = *found
	}
	sessions, err := s.sessions.ListWorkSessions(ctx, order.ID)
	if err != nil {
		return nil, workday.Totals{}, err
	}

	totals, err := workday.Aggregate(sessions, s.settings.PausePolicy)
	if err != nil {
		return nil, workday.Totals{}, invalid("%v", err)
	}
	return &model.OrderDocument{
		Order:     *order,
		Client:    *client,
		Equipment: equipment,
		Sessions:  sessions,
	}, totals, nil
}

// loadLogo never fails the document; a missing logo is only logged.
func (s *DocumentService) loadLogo() []byte {
	data, err := s.logo.Logo()
	if err != nil {
		s.log.Warn().Err(err).Msg("logo unavailable")
		return nil
	}
	return data
}

func (s *DocumentService) finish(ctx context.Context, name, contentType string, content []byte) *FileResult {
	result := &FileResult{FileName: name, ContentType: contentType, Content: content}
	if s.sink == nil {
		return result
	}
	path, err := s.sink.Save(ctx, name, content)
	if err != nil {
		s.log.Warn().Err(err).Str("file", name).Msg("archive failed")
		return result
	}
	result.ArchivePath = path
	return result
}
