package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"vinted-scanner/utils"
)

// PostgresWriter persists emitted alerts to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter. The initial
// ping is retried so the scanner survives a database that is still
// starting up.
func NewPostgresWriter(dsn string, logger *slog.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		return nil, err
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS alerts (
			id         SERIAL PRIMARY KEY,
			query      TEXT          NOT NULL,
			title      TEXT          NOT NULL,
			price_text TEXT          NOT NULL DEFAULT '',
			price      NUMERIC(10,2) NOT NULL DEFAULT 0,
			url        TEXT          UNIQUE NOT NULL,
			image_url  TEXT          NOT NULL DEFAULT '',
			score      INTEGER       NOT NULL DEFAULT 0,
			sent_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_alerts_query   ON alerts(query);
		CREATE INDEX IF NOT EXISTS idx_alerts_sent_at ON alerts(sent_at);
	`)
	return err
}

// Write inserts one alert; re-notified URLs are ignored.
func (pw *PostgresWriter) Write(alert Alert) error {
	_, err := pw.db.Exec(`
		INSERT INTO alerts (query, title, price_text, price, url, image_url, score, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (url) DO NOTHING
	`, alert.Query, alert.Title, alert.PriceText, alert.Price, alert.URL,
		alert.ImageURL, alert.Score, alert.SentAt)
	if err != nil {
		return fmt.Errorf("postgres: insert alert: %w", err)
	}
	return nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
