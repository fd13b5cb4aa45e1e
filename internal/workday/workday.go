package workday

import (
	"fmt"
	"time"

	"github.com/nurpe/fieldops-docs/internal/format"
	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/timecalc"
)

// Row is the per-day breakdown shown in documents and exports.
type Row struct {
	SessionID  string    `json:"session_id"`
	Date       time.Time `json:"date"`
	Outbound   string    `json:"outbound"`
	Work       string    `json:"work"`
	Return     string    `json:"return"`
	WorkHours  float64   `json:"work_hours"`
	TravelHrs  float64   `json:"travel_hours"`
	DistanceKm float64   `json:"distance_km"`
}

type Totals struct {
	WorkHours   float64 `json:"work_hours"`
	TravelHours float64 `json:"travel_hours"`
	DistanceKm  float64 `json:"distance_km"`
	Days        int     `json:"days"`
	Rows        []Row   `json:"rows"`
}

// Aggregate sums work time, travel time and distance over an order's sessions.
// Missing fields contribute zero. The sums do not depend on session order.
func Aggregate(sessions []model.WorkSession, policy timecalc.PausePolicy) (Totals, error) {
	var (
		workMinutes   int
		travelMinutes int
		distance      float64
	)
	rows := make([]Row, 0, len(sessions))

	for _, s := range sessions {
		row, work, travel, err := summarize(s, policy)
		if err != nil {
			return Totals{}, err
		}
		workMinutes += work
		travelMinutes += travel
		distance += row.DistanceKm
		rows = append(rows, row)
	}

	return Totals{
		WorkHours:   float64(workMinutes) / 60,
		TravelHours: float64(travelMinutes) / 60,
		DistanceKm:  distance,
		Days:        len(sessions),
		Rows:        rows,
	}, nil
}

func summarize(s model.WorkSession, policy timecalc.PausePolicy) (Row, int, int, error) {
	work, err := timecalc.IntervalMinutesWithPause(s.WorkStart, s.WorkEnd, s.Pause, policy)
	if err != nil {
		return Row{}, 0, 0, fmt.Errorf("session %s: %w", s.Date.Format("2006-01-02"), err)
	}
	outbound := timecalc.IntervalMinutes(s.OutboundDeparture, s.OutboundArrival)
	back := timecalc.IntervalMinutes(s.ReturnDeparture, s.ReturnArrival)

	row := Row{
		SessionID:  s.ID.String(),
		Date:       s.Date,
		Outbound:   timecalc.Format(outbound),
		Work:       timecalc.Format(work),
		Return:     timecalc.Format(back),
		WorkHours:  float64(work) / 60,
		TravelHrs:  float64(outbound+back) / 60,
		DistanceKm: Distance(s),
	}
	return row, work, outbound + back, nil
}

// Distance is the outbound plus return reading of one session.
func Distance(s model.WorkSession) float64 {
	return format.ParseNumber(s.OutboundKm) + format.ParseNumber(s.ReturnKm)
}
