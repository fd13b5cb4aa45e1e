package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fieldops-docs/internal/model"
)

const workSessionColumns = `id, order_id, date, outbound_departure, outbound_arrival,
	work_start, work_end, return_departure, return_arrival, pause,
	outbound_km, return_km, created_at`

type WorkSessionRepository struct {
	db *gorm.DB
}

func NewWorkSessionRepository(db *gorm.DB) *WorkSessionRepository {
	return &WorkSessionRepository{db: db}
}

func (r *WorkSessionRepository) CreateWorkSession(ctx context.Context, session *model.WorkSession) error {
	return r.db.WithContext(ctx).Raw(`
		INSERT INTO work_sessions (
			order_id, date, outbound_departure, outbound_arrival, work_start, work_end,
			return_departure, return_arrival, pause, outbound_km, return_km
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+workSessionColumns,
		session.OrderID, session.Date, session.OutboundDeparture, session.OutboundArrival,
		session.WorkStart, session.WorkEnd, session.ReturnDeparture, session.ReturnArrival,
		session.Pause, session.OutboundKm, session.ReturnKm,
	).Scan(session).Error
}

func (r *WorkSessionRepository) ListWorkSessions(ctx context.Context, orderID uuid.UUID) ([]model.WorkSession, error) {
	var sessions []model.WorkSession
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+workSessionColumns+`
		FROM work_sessions
		WHERE order_id = ?
		ORDER BY date ASC, created_at ASC
	`, orderID).Scan(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *WorkSessionRepository) DeleteWorkSession(ctx context.Context, orderID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM work_sessions WHERE id = ? AND order_id = ?
	`, id, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
