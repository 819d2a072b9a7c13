package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
)

type SQLTodoRepo struct {
	db db.DBTX
}

func NewSQLTodoRepo(conn db.DBTX) *SQLTodoRepo {
	return &SQLTodoRepo{db: conn}
}

const todoColumns = `id, card_id, label, is_original, status, comment, sort_order, created_at, updated_at`

func (r *SQLTodoRepo) Create(ctx context.Context, t *domain.CardTodo) error {
	query := `INSERT INTO card_todos (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.CardID, t.Label, boolToInt(t.IsOriginal), string(t.Status), t.Comment, t.Order,
		formatTimestamp(t.CreatedAt), formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting card todo: %w", err)
	}
	return nil
}

func (r *SQLTodoRepo) GetByID(ctx context.Context, id string) (*domain.CardTodo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM card_todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if err != nil {
		return nil, notFound("card todo", id, err)
	}
	return t, nil
}

func (r *SQLTodoRepo) ListByCard(ctx context.Context, cardID string) ([]*domain.CardTodo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM card_todos WHERE card_id = ? ORDER BY sort_order, created_at`, cardID)
	if err != nil {
		return nil, fmt.Errorf("listing card todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.CardTodo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card todos: %w", err)
	}
	return todos, nil
}

func (r *SQLTodoRepo) Update(ctx context.Context, t *domain.CardTodo) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE card_todos SET label = ?, status = ?, comment = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
		t.Label, string(t.Status), t.Comment, t.Order, formatTimestamp(t.UpdatedAt), t.ID)
	if err != nil {
		return fmt.Errorf("updating card todo: %w", err)
	}
	return nil
}

func (r *SQLTodoRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM card_todos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting card todo: %w", err)
	}
	return nil
}

func scanTodo(s scanner) (*domain.CardTodo, error) {
	var (
		t                domain.CardTodo
		original         int
		status           string
		created, updated string
	)
	if err := s.Scan(&t.ID, &t.CardID, &t.Label, &original, &status, &t.Comment, &t.Order, &created, &updated); err != nil {
		return nil, err
	}
	t.IsOriginal = intToBool(original)
	t.Status = domain.TodoStatus(status)
	t.CreatedAt = parseTimestamp(created)
	t.UpdatedAt = parseTimestamp(updated)
	return &t, nil
}
