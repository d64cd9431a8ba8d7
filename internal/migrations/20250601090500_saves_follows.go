package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upSavesFollows, downSavesFollows)
}

func upSavesFollows(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS saved_posts (
		id         BIGSERIAL PRIMARY KEY,
		student_id VARCHAR(24) NOT NULL REFERENCES students (id) ON DELETE CASCADE,
		post_id    VARCHAR(24) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT idx_student_post_save UNIQUE (student_id, post_id)
	);

	CREATE TABLE IF NOT EXISTS follows (
		id           BIGSERIAL PRIMARY KEY,
		follower_id  VARCHAR(24) NOT NULL REFERENCES students (id) ON DELETE CASCADE,
		following_id VARCHAR(24) NOT NULL REFERENCES students (id) ON DELETE CASCADE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT idx_follower_following UNIQUE (follower_id, following_id),
		CONSTRAINT chk_no_self_follow CHECK (follower_id <> following_id)
	);
	CREATE INDEX IF NOT EXISTS idx_follows_following_id ON follows (following_id);
	`)
	return err
}

func downSavesFollows(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS follows;
	DROP TABLE IF EXISTS saved_posts;
	`)
	return err
}
