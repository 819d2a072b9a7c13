package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are written to run
// unchanged on SQLite and PostgreSQL.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate duplicate column errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists")
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name  TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL DEFAULT 'developer'
		           CHECK(role IN ('admin','supervisor','manager','developer','data','processes')),
		is_active  INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		start_date    TEXT NOT NULL,
		end_date      TEXT NOT NULL,
		duration_days INTEGER NOT NULL CHECK(duration_days >= 1),
		supervisor_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		finalized     INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sprints_start ON sprints(start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_end ON sprints(end_date)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                     TEXT PRIMARY KEY,
		sprint_id              TEXT NOT NULL REFERENCES sprints(id) ON DELETE CASCADE,
		name                   TEXT NOT NULL,
		description            TEXT NOT NULL DEFAULT '',
		manager_id             TEXT REFERENCES users(id) ON DELETE SET NULL,
		developer_id           TEXT REFERENCES users(id) ON DELETE SET NULL,
		status                 TEXT NOT NULL DEFAULT 'created',
		evaluated_at           TEXT,
		manager_assigned_at    TEXT,
		development_started_at TEXT,
		delivered_at           TEXT,
		validated_at           TEXT,
		postpone_requested_at  TEXT,
		new_expected_date      TEXT,
		postpone_approved      INTEGER NOT NULL DEFAULT 0,
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_sprint ON projects(sprint_id)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		script_url  TEXT,
		area        TEXT NOT NULL DEFAULT 'backend',
		type        TEXT NOT NULL DEFAULT 'feature',
		assignee_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		creator_id  TEXT REFERENCES users(id) ON DELETE SET NULL,
		status      TEXT NOT NULL DEFAULT 'to_develop',
		priority    TEXT NOT NULL DEFAULT 'medium',
		start_at    TEXT,
		end_at      TEXT,
		complexity  TEXT NOT NULL DEFAULT '{}',
		comment     TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cards_project ON cards(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_name ON cards(name)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_end_at ON cards(end_at)`,

	`CREATE TABLE IF NOT EXISTS card_todos (
		id          TEXT PRIMARY KEY,
		card_id     TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		label       TEXT NOT NULL,
		is_original INTEGER NOT NULL DEFAULT 0,
		status      TEXT NOT NULL DEFAULT 'pending'
		            CHECK(status IN ('pending','completed','blocked','warning')),
		comment     TEXT NOT NULL DEFAULT '',
		sort_order  INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_card_todos_card ON card_todos(card_id)`,

	`CREATE TABLE IF NOT EXISTS card_logs (
		id          TEXT PRIMARY KEY,
		card_id     TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		event_type  TEXT NOT NULL
		            CHECK(event_type IN ('created','moved','pending','updated','changed','assignee_changed')),
		description TEXT NOT NULL DEFAULT '',
		user_id     TEXT REFERENCES users(id) ON DELETE SET NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_card_logs_card ON card_logs(card_id)`,

	// Notifications keep the ids of the cards, sprints and projects they
	// mention without foreign keys: a card_deleted notice outlives its card.
	`CREATE TABLE IF NOT EXISTS notifications (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type       TEXT NOT NULL,
		title      TEXT NOT NULL,
		message    TEXT NOT NULL,
		is_read    INTEGER NOT NULL DEFAULT 0,
		card_id    TEXT,
		sprint_id  TEXT,
		project_id TEXT,
		metadata   TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_card_type ON notifications(card_id, type, created_at)`,

	`CREATE TABLE IF NOT EXISTS weekly_priority_config (
		id           INTEGER PRIMARY KEY,
		cutoff_time  TEXT NOT NULL DEFAULT '09:00:00',
		auto_close   INTEGER NOT NULL DEFAULT 1,
		closed_weeks TEXT NOT NULL DEFAULT '{}',
		updated_at   TEXT NOT NULL
	)`,
}
