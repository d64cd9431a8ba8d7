package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS students (
		id            VARCHAR(24) PRIMARY KEY,
		username      VARCHAR(64) NOT NULL UNIQUE,
		profile_photo TEXT NOT NULL DEFAULT '',
		role          VARCHAR(16) NOT NULL DEFAULT 'STUDENT',
		firebase_uid  TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_students_firebase_uid ON students (firebase_uid);

	CREATE TABLE IF NOT EXISTS highlight_stats (
		id         BIGSERIAL PRIMARY KEY,
		post_id    VARCHAR(24) NOT NULL,
		student_id VARCHAR(24) NOT NULL REFERENCES students (id) ON DELETE CASCADE,
		comment    TEXT,
		liked      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT idx_highlight_post_student UNIQUE (post_id, student_id)
	);

	CREATE TABLE IF NOT EXISTS comment_likes (
		id         BIGSERIAL PRIMARY KEY,
		comment_id BIGINT NOT NULL REFERENCES highlight_stats (id) ON DELETE CASCADE,
		student_id VARCHAR(24) NOT NULL REFERENCES students (id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT idx_comment_student_like UNIQUE (comment_id, student_id)
	);
	`)
	return err
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS comment_likes;
	DROP TABLE IF EXISTS highlight_stats;
	DROP TABLE IF EXISTS students;
	`)
	return err
}
