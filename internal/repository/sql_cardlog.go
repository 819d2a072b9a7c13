package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/alexanderramin/sprintdesk/internal/domain"
)

type SQLCardLogRepo struct {
	db db.DBTX
}

func NewSQLCardLogRepo(conn db.DBTX) *SQLCardLogRepo {
	return &SQLCardLogRepo{db: conn}
}

func (r *SQLCardLogRepo) Create(ctx context.Context, l *domain.CardLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO card_logs (id, card_id, event_type, description, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.CardID, string(l.EventType), l.Description, nullableString(l.UserID), formatTimestamp(l.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting card log: %w", err)
	}
	return nil
}

func (r *SQLCardLogRepo) ListByCard(ctx context.Context, cardID string) ([]*domain.CardLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, card_id, event_type, description, user_id, created_at FROM card_logs
		WHERE card_id = ? ORDER BY created_at DESC, id`, cardID)
	if err != nil {
		return nil, fmt.Errorf("listing card logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.CardLog
	for rows.Next() {
		var (
			l         domain.CardLog
			eventType string
			userID    sql.NullString
			created   string
		)
		if err := rows.Scan(&l.ID, &l.CardID, &eventType, &l.Description, &userID, &created); err != nil {
			return nil, fmt.Errorf("scanning card log: %w", err)
		}
		l.EventType = domain.LogEventType(eventType)
		l.UserID = stringPtr(userID)
		l.CreatedAt = parseTimestamp(created)
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card logs: %w", err)
	}
	return logs, nil
}
