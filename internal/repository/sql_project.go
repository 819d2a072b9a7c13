package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
)

type SQLProjectRepo struct {
	db db.DBTX
}

func NewSQLProjectRepo(conn db.DBTX) *SQLProjectRepo {
	return &SQLProjectRepo{db: conn}
}

const projectColumns = `id, sprint_id, name, description, manager_id, developer_id, status,
	evaluated_at, manager_assigned_at, development_started_at, delivered_at, validated_at,
	postpone_requested_at, new_expected_date, postpone_approved, created_at, updated_at`

func (r *SQLProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.SprintID,
		p.Name,
		p.Description,
		nullableString(p.ManagerID),
		nullableString(p.DeveloperID),
		string(p.Status),
		nullableTimeToString(p.EvaluatedAt),
		nullableTimeToString(p.ManagerAssignedAt),
		nullableTimeToString(p.DevelopmentStartedAt),
		nullableTimeToString(p.DeliveredAt),
		nullableTimeToString(p.ValidatedAt),
		nullableTimeToString(p.PostponeRequestedAt),
		nullableTimeToString(p.NewExpectedDate),
		boolToInt(p.PostponeApproved),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFound("project", id, err)
	}
	return p, nil
}

func (r *SQLProjectRepo) ListBySprint(ctx context.Context, sprintID string) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE sprint_id = ? ORDER BY created_at, id`, sprintID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLProjectRepo) NameTaken(ctx context.Context, sprintID, name, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE sprint_id = ? AND name = ? AND id <> ?`,
		sprintID, name, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking project name: %w", err)
	}
	return n > 0, nil
}

func (r *SQLProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, manager_id = ?, developer_id = ?, status = ?,
		evaluated_at = ?, manager_assigned_at = ?, development_started_at = ?, delivered_at = ?,
		validated_at = ?, postpone_requested_at = ?, new_expected_date = ?, postpone_approved = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Description,
		nullableString(p.ManagerID),
		nullableString(p.DeveloperID),
		string(p.Status),
		nullableTimeToString(p.EvaluatedAt),
		nullableTimeToString(p.ManagerAssignedAt),
		nullableTimeToString(p.DevelopmentStartedAt),
		nullableTimeToString(p.DeliveredAt),
		nullableTimeToString(p.ValidatedAt),
		nullableTimeToString(p.PostponeRequestedAt),
		nullableTimeToString(p.NewExpectedDate),
		boolToInt(p.PostponeApproved),
		formatTimestamp(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func scanProject(s scanner) (*domain.Project, error) {
	var (
		p                                                  domain.Project
		managerID, developerID                             sql.NullString
		status                                             string
		evaluated, assigned, started, delivered, validated sql.NullString
		postponeReq, expected                              sql.NullString
		approved                                           int
		created, updated                                   string
	)
	err := s.Scan(&p.ID, &p.SprintID, &p.Name, &p.Description, &managerID, &developerID, &status,
		&evaluated, &assigned, &started, &delivered, &validated, &postponeReq, &expected, &approved,
		&created, &updated)
	if err != nil {
		return nil, err
	}
	p.ManagerID = stringPtr(managerID)
	p.DeveloperID = stringPtr(developerID)
	p.Status = domain.ProjectStatus(status)
	p.EvaluatedAt = parseNullableTime(evaluated)
	p.ManagerAssignedAt = parseNullableTime(assigned)
	p.DevelopmentStartedAt = parseNullableTime(started)
	p.DeliveredAt = parseNullableTime(delivered)
	p.ValidatedAt = parseNullableTime(validated)
	p.PostponeRequestedAt = parseNullableTime(postponeReq)
	p.NewExpectedDate = parseNullableTime(expected)
	p.PostponeApproved = intToBool(approved)
	p.CreatedAt = parseTimestamp(created)
	p.UpdatedAt = parseTimestamp(updated)
	return &p, nil
}
