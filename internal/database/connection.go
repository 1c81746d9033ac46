package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes the database connection. DB_TYPE selects the backend:
// "postgres" connects to DATABASE_URL, anything else opens a local SQLite
// file under DATA_DIR (default "data").
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "postgres" {
		db, err := sqlx.Connect("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "qreview.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			analysis TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			subject TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL,
			review_count INTEGER NOT NULL DEFAULT 0,
			last_review_date TIMESTAMP NOT NULL,
			next_review_date TIMESTAMP NOT NULL,
			mastery_level INTEGER NOT NULL DEFAULT 0,
			easiness_factor REAL NOT NULL DEFAULT 2.5,
			is_mastered BOOLEAN NOT NULL DEFAULT false,
			is_from_example BOOLEAN NOT NULL DEFAULT false
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create questions table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS review_logs (
			id TEXT PRIMARY KEY,
			timestamp TIMESTAMP NOT NULL,
			count INTEGER NOT NULL,
			subject TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create review_logs table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS reflections (
			date TEXT PRIMARY KEY,
			content TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create reflections table: %v", err)
	}

	return nil
}
