package logics

import (
	"context"

	"register-server/internal/models"

	"gorm.io/gorm"
)

// DashboardService aggregates register-wide and per-team counters.
type DashboardService struct {
	db    *gorm.DB
	teams []string
}

// NewDashboardService returns a new instance of DashboardService.
func NewDashboardService(db *gorm.DB, teams []string) *DashboardService {
	return &DashboardService{db: db, teams: teams}
}

// OverallStats summarises both registers.
type OverallStats struct {
	TotalInward   int64 `json:"totalInward"`
	TotalOutward  int64 `json:"totalOutward"`
	PendingWork   int64 `json:"pendingWork"`
	CompletedWork int64 `json:"completedWork"`
	Unassigned    int64 `json:"unassigned"`
}

// TeamStats summarises a single team's workload.
type TeamStats struct {
	TotalAssigned int64 `json:"totalAssigned"`
	Pending       int64 `json:"pending"`
	InProgress    int64 `json:"inProgress"`
	Completed     int64 `json:"completed"`
	TotalOutward  int64 `json:"totalOutward"`
}

// TeamSummary is one row of the all-teams overview.
type TeamSummary struct {
	Team      string `json:"team"`
	Total     int64  `json:"total"`
	Pending   int64  `json:"pending"`
	Completed int64  `json:"completed"`
}

func (ds *DashboardService) countInward(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var count int64
	query := ds.db.WithContext(ctx).Model(&models.Inward{})
	if scope != nil {
		query = scope(query)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, storageErr(err, "failed to count inward entries")
	}
	return count, nil
}

// Stats returns the overall register counters.
func (ds *DashboardService) Stats(ctx context.Context) (*OverallStats, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	stats := OverallStats{}

	var err error
	if stats.TotalInward, err = ds.countInward(ctx, nil); err != nil {
		return nil, err
	}
	if err := ds.db.WithContext(ctx).Model(&models.Outward{}).Count(&stats.TotalOutward).Error; err != nil {
		return nil, storageErr(err, "failed to count outward entries")
	}
	if stats.PendingWork, err = ds.countInward(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("assignment_status IN ?", []models.Status{models.StatusPending, models.StatusInProgress})
	}); err != nil {
		return nil, err
	}
	if stats.CompletedWork, err = ds.countInward(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("assignment_status = ?", models.StatusCompleted)
	}); err != nil {
		return nil, err
	}
	if stats.Unassigned, err = ds.countInward(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("assignment_status = ? OR assigned_team = ''", models.StatusUnassigned)
	}); err != nil {
		return nil, err
	}

	return &stats, nil
}

// TeamStats returns the workload counters for one team.
func (ds *DashboardService) TeamStats(ctx context.Context, team string) (*TeamStats, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	stats := TeamStats{}

	byStatus := func(status models.Status) (int64, error) {
		return ds.countInward(ctx, func(q *gorm.DB) *gorm.DB {
			return q.Where("assigned_team = ? AND assignment_status = ?", team, status)
		})
	}

	var err error
	if stats.Pending, err = byStatus(models.StatusPending); err != nil {
		return nil, err
	}
	if stats.InProgress, err = byStatus(models.StatusInProgress); err != nil {
		return nil, err
	}
	if stats.Completed, err = byStatus(models.StatusCompleted); err != nil {
		return nil, err
	}
	stats.TotalAssigned = stats.Pending + stats.InProgress + stats.Completed

	if err := ds.db.WithContext(ctx).Model(&models.Outward{}).
		Where("created_by_team = ?", team).
		Count(&stats.TotalOutward).Error; err != nil {
		return nil, storageErr(err, "failed to count team outward entries")
	}

	return &stats, nil
}

// TeamsSummary returns one summary row per configured team.
func (ds *DashboardService) TeamsSummary(ctx context.Context) ([]TeamSummary, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	summaries := make([]TeamSummary, 0, len(ds.teams))
	for _, team := range ds.teams {
		row := TeamSummary{Team: team}

		var err error
		if row.Total, err = ds.countInward(ctx, func(q *gorm.DB) *gorm.DB {
			return q.Where("assigned_team = ?", team)
		}); err != nil {
			return nil, err
		}
		if row.Pending, err = ds.countInward(ctx, func(q *gorm.DB) *gorm.DB {
			return q.Where("assigned_team = ? AND assignment_status = ?", team, models.StatusPending)
		}); err != nil {
			return nil, err
		}
		if row.Completed, err = ds.countInward(ctx, func(q *gorm.DB) *gorm.DB {
			return q.Where("assigned_team = ? AND assignment_status = ?", team, models.StatusCompleted)
		}); err != nil {
			return nil, err
		}

		summaries = append(summaries, row)
	}
	return summaries, nil
}
