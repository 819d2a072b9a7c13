package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
)

type SQLCardRepo struct {
	db db.DBTX
}

func NewSQLCardRepo(conn db.DBTX) *SQLCardRepo {
	return &SQLCardRepo{db: conn}
}

const cardColumns = `id, project_id, name, description, script_url, area, type, assignee_id, creator_id,
	status, priority, start_at, end_at, complexity, comment, created_at, updated_at`

// closedStatuses is the SQL list of statuses that end a card's lifecycle.
const closedStatuses = `('done', 'not_viable')`

func (r *SQLCardRepo) Create(ctx context.Context, c *domain.Card) error {
	complexity, err := encodeJSON(c.Complexity.Normalize())
	if err != nil {
		return fmt.Errorf("inserting card: %w", err)
	}
	query := `INSERT INTO cards (` + cardColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.ProjectID,
		c.Name,
		c.Description,
		nullableString(c.ScriptURL),
		string(c.Area),
		string(c.Type),
		nullableString(c.AssigneeID),
		nullableString(c.CreatorID),
		string(c.Status),
		string(c.Priority),
		nullableTimeToString(c.StartAt),
		nullableTimeToString(c.EndAt),
		complexity,
		c.Comment,
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting card: %w", err)
	}
	return nil
}

func (r *SQLCardRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if err != nil {
		return nil, notFound("card", id, err)
	}
	return c, nil
}

func (r *SQLCardRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Card, error) {
	return r.list(ctx, `SELECT `+cardColumns+` FROM cards WHERE project_id = ? ORDER BY created_at, id`, projectID)
}

func (r *SQLCardRepo) ListOpenByProject(ctx context.Context, projectID string) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE project_id = ? AND status NOT IN ` + closedStatuses + `
		ORDER BY created_at, id`
	return r.list(ctx, query, projectID)
}

func (r *SQLCardRepo) ListOpenWithDeadline(ctx context.Context) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE end_at IS NOT NULL AND status NOT IN ` + closedStatuses + `
		ORDER BY end_at, id`
	return r.list(ctx, query)
}

func (r *SQLCardRepo) ActiveNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM cards
		WHERE name = ? AND id <> ? AND status NOT IN ` + closedStatuses
	var n int
	if err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&n); err != nil {
		return false, fmt.Errorf("checking card name: %w", err)
	}
	return n > 0, nil
}

func (r *SQLCardRepo) Update(ctx context.Context, c *domain.Card) error {
	complexity, err := encodeJSON(c.Complexity.Normalize())
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}
	query := `UPDATE cards SET project_id = ?, name = ?, description = ?, script_url = ?, area = ?, type = ?,
		assignee_id = ?, status = ?, priority = ?, start_at = ?, end_at = ?, complexity = ?, comment = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.ProjectID,
		c.Name,
		c.Description,
		nullableString(c.ScriptURL),
		string(c.Area),
		string(c.Type),
		nullableString(c.AssigneeID),
		string(c.Status),
		string(c.Priority),
		nullableTimeToString(c.StartAt),
		nullableTimeToString(c.EndAt),
		complexity,
		c.Comment,
		formatTimestamp(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("card %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLCardRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return nil
}

func (r *SQLCardRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

func scanCard(s scanner) (*domain.Card, error) {
	var (
		c                     domain.Card
		scriptURL             sql.NullString
		area, typ             string
		assigneeID, creatorID sql.NullString
		status, priority      string
		startAt, endAt        sql.NullString
		complexity            string
		created, updated      string
	)
	err := s.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Description, &scriptURL, &area, &typ, &assigneeID, &creatorID,
		&status, &priority, &startAt, &endAt, &complexity, &c.Comment, &created, &updated)
	if err != nil {
		return nil, err
	}
	if complexity != "" {
		if err := json.Unmarshal([]byte(complexity), &c.Complexity); err != nil {
			return nil, fmt.Errorf("decoding card complexity: %w", err)
		}
	}
	c.Complexity = c.Complexity.Normalize()
	c.ScriptURL = stringPtr(scriptURL)
	c.Area = domain.Area(area)
	c.Type = domain.CardType(typ)
	c.AssigneeID = stringPtr(assigneeID)
	c.CreatorID = stringPtr(creatorID)
	c.Status = domain.CardStatus(status)
	c.Priority = domain.Priority(priority)
	c.StartAt = parseNullableTime(startAt)
	c.EndAt = parseNullableTime(endAt)
	c.CreatedAt = parseTimestamp(created)
	c.UpdatedAt = parseTimestamp(updated)
	return &c, nil
}
