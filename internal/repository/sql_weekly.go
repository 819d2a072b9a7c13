package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
)

// weeklyConfigID is the primary key of the only weekly config row.
const weeklyConfigID = 1

type SQLWeeklyConfigRepo struct {
	db db.DBTX
}

func NewSQLWeeklyConfigRepo(conn db.DBTX) *SQLWeeklyConfigRepo {
	return &SQLWeeklyConfigRepo{db: conn}
}

func (r *SQLWeeklyConfigRepo) Get(ctx context.Context) (*domain.WeeklyPriorityConfig, error) {
	def := domain.DefaultWeeklyConfig()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO weekly_priority_config (id, cutoff_time, auto_close, closed_weeks, updated_at)
		VALUES (?, ?, ?, '{}', ?) ON CONFLICT (id) DO NOTHING`,
		weeklyConfigID, def.CutoffTime, boolToInt(def.AutoClose), formatTimestamp(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("seeding weekly config: %w", err)
	}

	var (
		cfg       domain.WeeklyPriorityConfig
		autoClose int
		closed    string
		updated   string
	)
	err = r.db.QueryRowContext(ctx,
		`SELECT cutoff_time, auto_close, closed_weeks, updated_at FROM weekly_priority_config WHERE id = ?`,
		weeklyConfigID).Scan(&cfg.CutoffTime, &autoClose, &closed, &updated)
	if err != nil {
		return nil, fmt.Errorf("reading weekly config: %w", err)
	}
	cfg.AutoClose = intToBool(autoClose)
	cfg.UpdatedAt = parseTimestamp(updated)
	cfg.ClosedWeeks = map[string]bool{}
	if closed != "" {
		if err := json.Unmarshal([]byte(closed), &cfg.ClosedWeeks); err != nil {
			return nil, fmt.Errorf("decoding closed weeks: %w", err)
		}
	}
	return &cfg, nil
}

func (r *SQLWeeklyConfigRepo) Save(ctx context.Context, c *domain.WeeklyPriorityConfig) error {
	weeks := c.ClosedWeeks
	if weeks == nil {
		weeks = map[string]bool{}
	}
	closed, err := encodeJSON(weeks)
	if err != nil {
		return fmt.Errorf("saving weekly config: %w", err)
	}
	c.UpdatedAt = time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO weekly_priority_config (id, cutoff_time, auto_close, closed_weeks, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			cutoff_time = excluded.cutoff_time,
			auto_close = excluded.auto_close,
			closed_weeks = excluded.closed_weeks,
			updated_at = excluded.updated_at`,
		weeklyConfigID, c.CutoffTime, boolToInt(c.AutoClose), closed, formatTimestamp(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving weekly config: %w", err)
	}
	return nil
}
