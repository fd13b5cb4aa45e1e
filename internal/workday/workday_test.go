package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/timecalc"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateDistanceIsOrderIndependent(t *testing.T) {
	sessions := []model.WorkSession{
		{Date: day(1), OutboundKm: "10", ReturnKm: "15"},
		{Date: day(2), OutboundKm: "5", ReturnKm: "5"},
	}
	forward, err := Aggregate(sessions, timecalc.PauseClamp)
	require.NoError(t, err)
	assert.Equal(t, 35.0, forward.DistanceKm)

	reversed, err := Aggregate([]model.WorkSession{sessions[1], sessions[0]}, timecalc.PauseClamp)
	require.NoError(t, err)
	assert.Equal(t, forward.DistanceKm, reversed.DistanceKm)
	assert.Equal(t, forward.WorkHours, reversed.WorkHours)
	assert.Equal(t, forward.TravelHours, reversed.TravelHours)
}

func TestAggregateTimes(t *testing.T) {
	sessions := []model.WorkSession{
		{
			Date:              day(1),
			OutboundDeparture: "07:30",
			OutboundArrival:   "08:00",
			WorkStart:         "08:00",
			WorkEnd:           "17:00",
			Pause:             "1:00",
			ReturnDeparture:   "17:10",
			ReturnArrival:     "17:55",
			OutboundKm:        "22,5",
			ReturnKm:          "22.5",
		},
		{
			Date:      day(2),
			WorkStart: "22:00",
			WorkEnd:   "02:00",
		},
	}

	totals, err := Aggregate(sessions, timecalc.PauseClamp)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, totals.WorkHours, 1e-9)
	assert.InDelta(t, 1.25, totals.TravelHours, 1e-9)
	assert.InDelta(t, 45.0, totals.DistanceKm, 1e-9)
	assert.Equal(t, 2, totals.Days)
	require.Len(t, totals.Rows, 2)
	assert.Equal(t, "0:30", totals.Rows[0].Outbound)
	assert.Equal(t, "8:00", totals.Rows[0].Work)
	assert.Equal(t, "0:45", totals.Rows[0].Return)
	assert.Equal(t, "4:00", totals.Rows[1].Work)
}

func TestAggregateMissingFieldsContributeZero(t *testing.T) {
	totals, err := Aggregate([]model.WorkSession{
		{Date: day(3), WorkStart: "09:00", OutboundKm: "n/a"},
		{Date: day(4)},
	}, timecalc.PauseClamp)
	require.NoError(t, err)
	assert.Zero(t, totals.WorkHours)
	assert.Zero(t, totals.TravelHours)
	assert.Zero(t, totals.DistanceKm)
}

func TestAggregatePausePolicy(t *testing.T) {
	sessions := []model.WorkSession{{Date: day(5), WorkStart: "10:00", WorkEnd: "10:30", Pause: "1:00"}}

	totals, err := Aggregate(sessions, timecalc.PauseClamp)
	require.NoError(t, err)
	assert.Zero(t, totals.WorkHours)

	_, err = Aggregate(sessions, timecalc.PauseReject)
	require.ErrorIs(t, err, timecalc.ErrNegativeDuration)
}

func TestAggregateEmpty(t *testing.T) {
	totals, err := Aggregate(nil, timecalc.PauseClamp)
	require.NoError(t, err)
	assert.Equal(t, Totals{Rows: []Row{}}, totals)
}
