package db

import (
	"fmt"

	"github.com/basakrdnz/vibevault/internal/models"
	"gorm.io/gorm"
)

// allModels lists every table managed by the schema, in dependency order.
func allModels() []any {
	return []any{
		&models.User{},
		&models.Movie{},
		&models.WatchlistItem{},
		&models.MoodEntry{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.SocialSettings{},
		&models.MovieDiscovery{},
		&models.MovieListCache{},
	}
}

// Migrate runs database migrations for the current dialect.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	switch DialectName(conn) {
	case DialectSQLite:
		return migrateSQLite(conn)
	case DialectPostgres, "":
		return migratePostgres(conn)
	default:
		return fmt.Errorf("db: unsupported dialect: %s", DialectName(conn))
	}
}

// ddl defines an index or DDL statement to apply.
type ddl struct {
	name string // Human-readable name for error reporting.
	sql  string // SQL to execute.
}

// sharedDDLs lists index statements valid on both dialects.
func sharedDDLs() []ddl {
	return []ddl{
		{
			name: "idx_friend_requests_pending_pair",
			sql: `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_friend_requests_pending_pair
				ON friend_requests (sender_id, receiver_id)
				WHERE status = 'pending'
			`,
		},
		{
			name: "idx_friend_requests_receiver_pending",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_friend_requests_receiver_pending
				ON friend_requests (receiver_id, created_at DESC)
				WHERE status = 'pending'
			`,
		},
		{
			name: "idx_mood_entries_user_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_mood_entries_user_created_at
				ON mood_entries (user_id, created_at DESC)
			`,
		},
		{
			name: "idx_watchlist_items_user_status",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_watchlist_items_user_status
				ON watchlist_items (user_id, status)
			`,
		},
		{
			name: "idx_movie_discoveries_user_discovered_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_movie_discoveries_user_discovered_at
				ON movie_discoveries (user_id, discovered_at DESC)
			`,
		},
	}
}

// migratePostgres applies PostgreSQL-specific schema updates and indexes.
func migratePostgres(conn *gorm.DB) error {
	if errAutoMigrate := conn.AutoMigrate(allModels()...); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}

	for _, item := range sharedDDLs() {
		if errDDL := conn.Exec(item.sql).Error; errDDL != nil {
			return fmt.Errorf("db: create index %s: %w", item.name, errDDL)
		}
	}

	_ = conn.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`).Error

	// trgmIndex defines trigram and fallback index statements.
	type trgmIndex struct {
		name     string // Logical index name.
		trgmSQL  string // Trigram index SQL.
		lowerSQL string // Lowercase fallback index SQL.
	}
	trgmIndexes := []trgmIndex{
		{
			name: "idx_movies_title",
			trgmSQL: `
				CREATE INDEX IF NOT EXISTS idx_movies_title_trgm
				ON movies USING gin (LOWER(title) gin_trgm_ops)
			`,
			lowerSQL: `
				CREATE INDEX IF NOT EXISTS idx_movies_title_lower
				ON movies (LOWER(title))
			`,
		},
		{
			name: "idx_movies_director",
			trgmSQL: `
				CREATE INDEX IF NOT EXISTS idx_movies_director_trgm
				ON movies USING gin (LOWER(director) gin_trgm_ops)
			`,
			lowerSQL: `
				CREATE INDEX IF NOT EXISTS idx_movies_director_lower
				ON movies (LOWER(director))
			`,
		},
		{
			name: "idx_users_email",
			trgmSQL: `
				CREATE INDEX IF NOT EXISTS idx_users_email_trgm
				ON users USING gin (LOWER(email) gin_trgm_ops)
			`,
			lowerSQL: `
				CREATE INDEX IF NOT EXISTS idx_users_email_lower
				ON users (LOWER(email))
			`,
		},
	}
	for _, item := range trgmIndexes {
		if errIdx := conn.Exec(item.trgmSQL).Error; errIdx != nil {
			if errLower := conn.Exec(item.lowerSQL).Error; errLower != nil {
				return fmt.Errorf("db: create index %s: %w", item.name, errLower)
			}
		}
	}

	return nil
}

// migrateSQLite applies SQLite-specific schema updates and indexes.
func migrateSQLite(conn *gorm.DB) error {
	if errAutoMigrate := conn.AutoMigrate(allModels()...); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}

	for _, item := range sharedDDLs() {
		if errDDL := conn.Exec(item.sql).Error; errDDL != nil {
			return fmt.Errorf("db: create index %s: %w", item.name, errDDL)
		}
	}

	return nil
}
