// Package sqlite
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"kunlun/internal/logger"
)

func NewSqliteDB(dbPath string, log logger.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on&_synchronous=NORMAL", dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database not responding: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info("sqlite connection established successfully", "path", dbPath)

	if err := runMigration(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func runMigration(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS client (
		id INTEGER PRIMARY KEY,
		machine_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS status (
		id INTEGER PRIMARY KEY,
		client_id INTEGER NOT NULL REFERENCES client(id) ON DELETE CASCADE,
		insert_utc_ts INTEGER NOT NULL,
		name TEXT NOT NULL,
		system TEXT NOT NULL,
		location TEXT NOT NULL,
		uptime INTEGER NOT NULL DEFAULT 0,
		cpu_percent REAL NOT NULL DEFAULT 0,
		net_tx INTEGER NOT NULL DEFAULT 0,
		net_rx INTEGER NOT NULL DEFAULT 0,
		disks_total_kb INTEGER NOT NULL DEFAULT 0,
		disks_avail_kb INTEGER NOT NULL DEFAULT 0,
		cpu_num_cores INTEGER NOT NULL DEFAULT 0,
		mem_total REAL NOT NULL DEFAULT 0,
		mem_free REAL NOT NULL DEFAULT 0,
		mem_used REAL NOT NULL DEFAULT 0,
		swap_total REAL NOT NULL DEFAULT 0,
		swap_free REAL NOT NULL DEFAULT 0,
		process_count INTEGER NOT NULL DEFAULT 0,
		connection_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_status_client ON status (client_id, insert_utc_ts DESC, id DESC);
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to migrate status tables: %w", err)
	}
	return nil
}
