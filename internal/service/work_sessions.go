package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/timecalc"
	"github.com/nurpe/fieldops-docs/internal/workday"
)

type WorkSessionInput struct {
	Date              time.Time
	OutboundDeparture string
	OutboundArrival   string
	WorkStart         string
	WorkEnd           string
	ReturnDeparture   string
	ReturnArrival     string
	Pause             string
	OutboundKm        string
	ReturnKm          string
}

func (s *DocumentService) AddWorkSession(ctx context.Context, p model.Principal, orderID uuid.UUID, input WorkSessionInput) (*model.WorkSession, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	session, err := s.buildWorkSession(orderID, input)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if order.Status == model.OrderStatusClosed {
		return nil, ErrOrderClosed
	}

	if err := s.sessions.CreateWorkSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DocumentService) buildWorkSession(orderID uuid.UUID, input WorkSessionInput) (*model.WorkSession, error) {
	if input.Date.IsZero() {
		return nil, invalid("date is required")
	}
	y, m, d := input.Date.Date()

	session := &model.WorkSession{
		OrderID:           orderID,
		Date:              time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		OutboundDeparture: strings.TrimSpace(input.OutboundDeparture),
		OutboundArrival:   strings.TrimSpace(input.OutboundArrival),
		WorkStart:         strings.TrimSpace(input.WorkStart),
		WorkEnd:           strings.TrimSpace(input.WorkEnd),
		ReturnDeparture:   strings.TrimSpace(input.ReturnDeparture),
		ReturnArrival:     strings.TrimSpace(input.ReturnArrival),
		Pause:             strings.TrimSpace(input.Pause),
		OutboundKm:        strings.TrimSpace(input.OutboundKm),
		ReturnKm:          strings.TrimSpace(input.ReturnKm),
	}

	clocks := map[string]string{
		"outbound_departure": session.OutboundDeparture,
		"outbound_arrival":   session.OutboundArrival,
		"work_start":         session.WorkStart,
		"work_end":           session.WorkEnd,
		"return_departure":   session.ReturnDeparture,
		"return_arrival":     session.ReturnArrival,
	}
	for field, value := range clocks {
		if value != "" && !timecalc.IsClock(value) {
			return nil, invalid("%s must be HH:MM", field)
		}
	}
	if session.Pause != "" {
		if _, err := timecalc.ParseDuration(session.Pause); err != nil {
			return nil, invalid("pause must be H:MM")
		}
	}
	if _, err := timecalc.IntervalMinutesWithPause(session.WorkStart, session.WorkEnd, session.Pause, s.settings.PausePolicy); err != nil {
		if errors.Is(err, timecalc.ErrNegativeDuration) {
			return nil, invalid("pause is longer than the work interval")
		}
		return nil, invalid("%v", err)
	}
	return session, nil
}

func (s *DocumentService) ListWorkSessions(ctx context.Context, p model.Principal, orderID uuid.UUID) ([]model.WorkSession, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	if _, err := s.orders.GetOrder(ctx, orderID); err != nil {
		return nil, notFound(err, "order")
	}
	return s.sessions.ListWorkSessions(ctx, orderID)
}

func (s *DocumentService) DeleteWorkSession(ctx context.Context, p model.Principal, orderID, sessionID uuid.UUID) error {
	if err := authorize(p); err != nil {
		return err
	}
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return notFound(err, "order")
	}
	if order.Status == model.OrderStatusClosed {
		return ErrOrderClosed
	}
	if err := s.sessions.DeleteWorkSession(ctx, orderID, sessionID); err != nil {
		return notFound(err, "work session")
	}
	return nil
}

type OrderSummary struct {
	Order  model.Order    `json:"order"`
	Totals workday.Totals `json:"totals"`
}

func (s *DocumentService) OrderSummary(ctx context.Context, p model.Principal, orderID uuid.UUID) (*OrderSummary, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	sessions, err := s.sessions.ListWorkSessions(ctx, orderID)
	if err != nil {
		return nil, err
	}
	totals, err := workday.Aggregate(sessions, s.settings.PausePolicy)
	if err != nil {
		return nil, invalid("%v", err)
	}
	return &OrderSummary{Order: *order, Totals: totals}, nil
}
