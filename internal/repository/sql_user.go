package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
)

// SQLUserRepo reads the identity table.
type SQLUserRepo struct {
	db db.DBTX
}

func NewSQLUserRepo(conn db.DBTX) *SQLUserRepo {
	return &SQLUserRepo{db: conn}
}

const userColumns = `id, username, first_name, last_name, role, is_active, created_at, updated_at`

func (r *SQLUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	query := `INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			role = excluded.role,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.FirstName, u.LastName, string(u.Role), boolToInt(u.IsActive),
		formatTimestamp(u.CreatedAt), formatTimestamp(u.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

func (r *SQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound("user", id, err)
	}
	return u, nil
}

func (r *SQLUserRepo) ListActive(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE is_active = 1 ORDER BY username`)
}

func (r *SQLUserRepo) ListActiveByRoles(ctx context.Context, roles ...domain.Role) ([]*domain.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	args := make([]any, len(roles))
	for i, role := range roles {
		args[i] = string(role)
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE is_active = 1 AND role IN (` + placeholders(len(roles)) + `) ORDER BY username`
	return r.list(ctx, query, args...)
}

func (r *SQLUserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), formatTimestamp(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating user role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLUserRepo) list(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func scanUser(s scanner) (*domain.User, error) {
	var (
		u                domain.User
		role             string
		active           int
		created, updated string
	)
	if err := s.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &role, &active, &created, &updated); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.IsActive = intToBool(active)
	u.CreatedAt = parseTimestamp(created)
	u.UpdatedAt = parseTimestamp(updated)
	return &u, nil
}
