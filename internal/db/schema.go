package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id                  INTEGER PRIMARY KEY,
    username            TEXT NOT NULL,
    password_hash       TEXT NOT NULL,
    full_name           TEXT NOT NULL DEFAULT '',
    email               TEXT NOT NULL DEFAULT '',
    phone               TEXT NOT NULL DEFAULT '',
    registration_number TEXT NOT NULL DEFAULT '',
    role                TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at          DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS lost_items (
    id              INTEGER PRIMARY KEY,
    reference_id    TEXT NOT NULL UNIQUE,
    user_id         INTEGER NOT NULL REFERENCES users(id),
    category        TEXT NOT NULL,
    item_name       TEXT NOT NULL,
    brand           TEXT,
    color           TEXT NOT NULL,
    location        TEXT NOT NULL,
    date_lost       DATE,
    description     TEXT NOT NULL,
    additional_info TEXT,
    image           BLOB,
    image_mime      TEXT,
    status          TEXT NOT NULL DEFAULT 'searching' CHECK (status IN ('searching', 'recovered', 'closed')),
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_lost_items_candidates ON lost_items(category, status);

CREATE TABLE IF NOT EXISTS found_items (
    id           INTEGER PRIMARY KEY,
    reference_id TEXT NOT NULL UNIQUE,
    user_id      INTEGER NOT NULL REFERENCES users(id),
    category     TEXT NOT NULL,
    item_name    TEXT NOT NULL,
    brand        TEXT,
    color        TEXT NOT NULL,
    location     TEXT NOT NULL,
    date_found   DATE,
    description  TEXT NOT NULL,
    image        BLOB,
    image_mime   TEXT,
    status       TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'returned', 'closed')),
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_found_items_candidates ON found_items(category, status);

CREATE TABLE IF NOT EXISTS matches (
    id                        INTEGER PRIMARY KEY,
    lost_item_id              INTEGER NOT NULL REFERENCES lost_items(id),
    found_item_id             INTEGER NOT NULL REFERENCES found_items(id),
    similarity_score          REAL NOT NULL CHECK (similarity_score BETWEEN 0 AND 100),
    category_score            REAL NOT NULL DEFAULT 0,
    brand_score               REAL NOT NULL DEFAULT 0,
    color_score               REAL NOT NULL DEFAULT 0,
    location_score            REAL NOT NULL DEFAULT 0,
    date_score                REAL NOT NULL DEFAULT 0,
    name_score                REAL NOT NULL DEFAULT 0,
    description_score         REAL NOT NULL DEFAULT 0,
    forced                    INTEGER NOT NULL DEFAULT 0,
    status                    TEXT NOT NULL DEFAULT 'pending_verification' CHECK (status IN (
                                  'pending_verification', 'verified', 'verification_failed',
                                  'rejected', 'returned_to_owner', 'returned_by_finder')),
    verification_score        REAL,
    verification_verified     INTEGER NOT NULL DEFAULT 0,
    verification_explanation  TEXT,
    verification_method       TEXT,
    verification_attempts     INTEGER NOT NULL DEFAULT 0,
    created_at                DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at                DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    questions_generated_at    DATETIME,
    verification_completed_at DATETIME,
    verified_at               DATETIME,
    returned_at               DATETIME,
    UNIQUE (lost_item_id, found_item_id)
);

CREATE INDEX IF NOT EXISTS idx_matches_found ON matches(found_item_id);

CREATE TABLE IF NOT EXISTS verification_questions (
    match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    question TEXT NOT NULL,
    answer   TEXT,
    PRIMARY KEY (match_id, position)
);

CREATE TABLE IF NOT EXISTS notifications (
    id         INTEGER PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    type       TEXT NOT NULL,
    title      TEXT NOT NULL,
    message    TEXT NOT NULL,
    match_id   INTEGER REFERENCES matches(id),
    read_at    DATETIME,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
