package logics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"register-server/internal/models"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	inwardSvc := newInwardService(t, db, nil)
	outwardSvc := newOutwardService(t, db)
	dash := NewDashboardService(db, testTeams)

	// One unassigned, one pending UG, one in-progress UG, one completed PhD.
	_, err := inwardSvc.Create(context.Background(), validInwardInput())
	require.NoError(t, err)

	pending := validInwardInput()
	pending.AssignedTeam = "UG"
	pending.AssignedToEmail = "ug@example.edu"
	_, err = inwardSvc.Create(context.Background(), pending)
	require.NoError(t, err)

	progressing := validInwardInput()
	progressing.AssignedTeam = "UG"
	progressing.AssignedToEmail = "ug@example.edu"
	inProgress, err := inwardSvc.Create(context.Background(), progressing)
	require.NoError(t, err)
	_, err = inwardSvc.UpdateStatus(context.Background(), inProgress.ID, string(models.StatusInProgress))
	require.NoError(t, err)

	finished := validInwardInput()
	finished.AssignedTeam = "PhD"
	finished.AssignedToEmail = "phd@example.edu"
	done, err := inwardSvc.Create(context.Background(), finished)
	require.NoError(t, err)
	_, err = inwardSvc.UpdateStatus(context.Background(), done.ID, string(models.StatusCompleted))
	require.NoError(t, err)

	_, err = outwardSvc.Create(context.Background(), validOutwardInput())
	require.NoError(t, err)

	stats, err := dash.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalInward)
	assert.Equal(t, int64(1), stats.TotalOutward)
	assert.Equal(t, int64(2), stats.PendingWork)
	assert.Equal(t, int64(1), stats.CompletedWork)
	assert.Equal(t, int64(1), stats.Unassigned)

	ug, err := dash.TeamStats(context.Background(), "UG")
	require.NoError(t, err)
	assert.Equal(t, int64(2), ug.TotalAssigned)
	assert.Equal(t, int64(1), ug.Pending)
	assert.Equal(t, int64(1), ug.InProgress)
	assert.Equal(t, int64(0), ug.Completed)
	assert.Equal(t, int64(1), ug.TotalOutward)

	summary, err := dash.TeamsSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary, len(testTeams))
	byTeam := map[string]TeamSummary{}
	for _, row := range summary {
		byTeam[row.Team] = row
	}
	assert.Equal(t, int64(2), byTeam["UG"].Total)
	assert.Equal(t, int64(1), byTeam["UG"].Pending)
	assert.Equal(t, int64(1), byTeam["PhD"].Completed)
	assert.Equal(t, int64(0), byTeam["PG/PRO"].Total)
}
