package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
)

type SQLSprintRepo struct {
	db db.DBTX
}

func NewSQLSprintRepo(conn db.DBTX) *SQLSprintRepo {
	return &SQLSprintRepo{db: conn}
}

const sprintColumns = `id, name, start_date, end_date, duration_days, supervisor_id, finalized, created_at, updated_at`

func (r *SQLSprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	query := `INSERT INTO sprints (` + sprintColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		s.DurationDays,
		nullableString(s.SupervisorID),
		boolToInt(s.Finalized),
		formatTimestamp(s.CreatedAt),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return nil
}

func (r *SQLSprintRepo) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sprintColumns+` FROM sprints WHERE id = ?`, id)
	s, err := scanSprint(row)
	if err != nil {
		return nil, notFound("sprint", id, err)
	}
	return s, nil
}

func (r *SQLSprintRepo) List(ctx context.Context) ([]*domain.Sprint, error) {
	return r.list(ctx, `SELECT `+sprintColumns+` FROM sprints ORDER BY start_date, created_at`)
}

func (r *SQLSprintRepo) Update(ctx context.Context, s *domain.Sprint) error {
	query := `UPDATE sprints SET name = ?, start_date = ?, end_date = ?, duration_days = ?, supervisor_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		s.DurationDays,
		nullableString(s.SupervisorID),
		formatTimestamp(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sprint: %w", err)
	}
	return nil
}

func (r *SQLSprintRepo) MarkFinalized(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sprints SET finalized = 1, updated_at = ? WHERE id = ? AND finalized = 0`,
		formatTimestamp(time.Now()), id)
	if err != nil {
		return false, fmt.Errorf("finalizing sprint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("finalizing sprint: %w", err)
	}
	return n == 1, nil
}

func (r *SQLSprintRepo) FindInProgress(ctx context.Context, excludeID string, day time.Time) (*domain.Sprint, error) {
	d := domain.Day(day).Format(dateLayout)
	query := `SELECT ` + sprintColumns + ` FROM sprints
		WHERE id <> ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date, created_at LIMIT 1`
	return r.findOne(ctx, query, excludeID, d, d)
}

func (r *SQLSprintRepo) FindFirstStartingAfter(ctx context.Context, excludeID string, day time.Time) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints
		WHERE id <> ? AND start_date > ?
		ORDER BY start_date, created_at LIMIT 1`
	return r.findOne(ctx, query, excludeID, domain.Day(day).Format(dateLayout))
}

func (r *SQLSprintRepo) ListDueForFinalization(ctx context.Context, day time.Time) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints
		WHERE finalized = 0 AND end_date < ?
		ORDER BY end_date, created_at`
	return r.list(ctx, query, domain.Day(day).Format(dateLayout))
}

func (r *SQLSprintRepo) findOne(ctx context.Context, query string, args ...any) (*domain.Sprint, error) {
	s, err := scanSprint(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning sprint: %w", err)
	}
	return s, nil
}

func (r *SQLSprintRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Sprint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var sprints []*domain.Sprint
	for rows.Next() {
		s, err := scanSprint(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sprint: %w", err)
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprints: %w", err)
	}
	return sprints, nil
}

func scanSprint(s scanner) (*domain.Sprint, error) {
	var (
		sp               domain.Sprint
		start, end       string
		supervisorID     sql.NullString
		finalized        int
		created, updated string
	)
	err := s.Scan(&sp.ID, &sp.Name, &start, &end, &sp.DurationDays, &supervisorID, &finalized, &created, &updated)
	if err != nil {
		return nil, err
	}
	sp.StartDate, err = time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("parsing sprint start date: %w", err)
	}
	sp.EndDate, err = time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("parsing sprint end date: %w", err)
	}
	sp.SupervisorID = stringPtr(supervisorID)
	sp.Finalized = intToBool(finalized)
	sp.CreatedAt = parseTimestamp(created)
	sp.UpdatedAt = parseTimestamp(updated)
	return &sp, nil
}
