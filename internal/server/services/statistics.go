package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/repomanager"
	"github.com/Shubham-musmade/interview-tracker/internal/server/stats"
)

// StatisticsService serves the dashboard and statistics views. Nothing is
// cached; both are recomputed from the user's applications on every call.
type StatisticsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewStatisticsService(db *sql.DB, m repomanager.RepositoryManager) *StatisticsService {
	return &StatisticsService{db: db, repomanager: m, now: time.Now}
}

func (s *StatisticsService) Dashboard(ctx context.Context, userID string) (*stats.Dashboard, error) {
	apps, err := s.repomanager.Applications(s.db).List(ctx, userID, models.ApplicationFilter{})
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repomanager.Interviews(s.db).UpcomingForUser(ctx, userID, s.now(), stats.DashboardRecent)
	if err != nil {
		return nil, err
	}
	d := stats.ComputeDashboard(apps, upcoming)
	return &d, nil
}

func (s *StatisticsService) Statistics(ctx context.Context, userID string) (*stats.Statistics, error) {
	apps, err := s.repomanager.Applications(s.db).List(ctx, userID, models.ApplicationFilter{})
	if err != nil {
		return nil, err
	}
	st := stats.Compute(apps, s.now())
	return &st, nil
}
