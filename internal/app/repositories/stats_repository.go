package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/db"
)

// StatsRepository reads the admin dashboard counters
type StatsRepository struct {
	db db.DBTX
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(pool db.DBTX) *StatsRepository {
	return &StatsRepository{db: pool}
}

// Get counts non-deleted users, clubs by status and events
func (r *StatsRepository) Get(ctx context.Context) (*models.AdminStats, error) {
	var s models.AdminStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE is_deleted = FALSE),
			(SELECT COUNT(*) FROM clubs WHERE status = 'active' AND is_deleted = FALSE),
			(SELECT COUNT(*) FROM clubs WHERE status = 'pending' AND is_deleted = FALSE),
			(SELECT COUNT(*) FROM events WHERE is_deleted = FALSE)`,
	).Scan(&s.Users, &s.ActiveClubs, &s.PendingClubs, &s.Events)
	if err != nil {
		return nil, fmt.Errorf("error reading stats: %w", err)
	}
	return &s, nil
}
