package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
)

type SQLNotificationRepo struct {
	db db.DBTX
}

func NewSQLNotificationRepo(conn db.DBTX) *SQLNotificationRepo {
	return &SQLNotificationRepo{db: conn}
}

const notificationColumns = `id, user_id, type, title, message, is_read, card_id, sprint_id, project_id, metadata, created_at`

func (r *SQLNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	meta := n.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metadata, err := encodeJSON(meta)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	query := `INSERT INTO notifications (` + notificationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		string(n.Type),
		n.Title,
		n.Message,
		boolToInt(n.Read),
		nullableString(n.CardID),
		nullableString(n.SprintID),
		nullableString(n.ProjectID),
		metadata,
		formatTimestamp(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

func (r *SQLNotificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if err != nil {
		return nil, notFound("notification", id, err)
	}
	return n, nil
}

func (r *SQLNotificationRepo) ListForUser(ctx context.Context, userID string, f NotificationFilter) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	args := []any{userID}
	if f.MineOnly {
		query += ` AND type <> ?`
		args = append(args, string(domain.NotifySprintCreated))
	}
	if f.UnreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at DESC, id`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}
	return out, nil
}

func (r *SQLNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}
	return int(n), nil
}

func (r *SQLNotificationRepo) UnreadCounts(ctx context.Context, userID string) (domain.UnreadCounts, error) {
	var c domain.UnreadCounts
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN type <> ? THEN 1 ELSE 0 END), 0)
		FROM notifications WHERE user_id = ? AND is_read = 0`,
		string(domain.NotifySprintCreated), userID).Scan(&c.Total, &c.Mine)
	if err != nil {
		return c, fmt.Errorf("counting unread notifications: %w", err)
	}
	return c, nil
}

func (r *SQLNotificationRepo) ExistsSince(ctx context.Context, cardID string, t domain.NotificationType, since time.Time) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE card_id = ? AND type = ? AND created_at >= ?`,
		cardID, string(t), formatTimestamp(since)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking recent notifications: %w", err)
	}
	return n > 0, nil
}

func scanNotification(s scanner) (*domain.Notification, error) {
	var (
		n                           domain.Notification
		typ                         string
		read                        int
		cardID, sprintID, projectID sql.NullString
		metadata                    string
		created                     string
	)
	err := s.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &read, &cardID, &sprintID, &projectID, &metadata, &created)
	if err != nil {
		return nil, err
	}
	n.Type = domain.NotificationType(typ)
	n.Read = intToBool(read)
	n.CardID = stringPtr(cardID)
	n.SprintID = stringPtr(sprintID)
	n.ProjectID = stringPtr(projectID)
	n.Metadata = map[string]any{}
	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &n.Metadata); err != nil {
			return nil, fmt.Errorf("decoding notification metadata: %w", err)
		}
	}
	n.CreatedAt = parseTimestamp(created)
	return &n, nil
}
