package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/EstebanCaso/arkus-scraper-worker/config"
	"github.com/EstebanCaso/arkus-scraper-worker/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore upserts finished records by their natural key, which makes
// re-running a job idempotent.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(cfg config.Config) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer schemaCancel()
	if err := store.ensureSchema(schemaCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveRecords upserts a finished job's records under its owner key (the
// queried target). Returns the number of rows written.
func (s *PostgresStore) SaveRecords(ctx context.Context, owner string, records []models.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rateStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO room_rates (owner, date, room_type, price, currency_raw)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner, date, room_type) DO UPDATE
		SET
			price = EXCLUDED.price,
			currency_raw = EXCLUDED.currency_raw,
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("prepare rates statement: %w", err)
	}
	defer rateStmt.Close()

	eventStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (owner, name, venue, date, link, latitude, longitude, distance_km)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner, name, venue, date) DO UPDATE
		SET
			link = EXCLUDED.link,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			distance_km = EXCLUDED.distance_km,
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("prepare events statement: %w", err)
	}
	defer eventStmt.Close()

	total := 0
	for _, rec := range records {
		switch v := rec.(type) {
		case models.RoomRate:
			if _, err = rateStmt.ExecContext(ctx, owner, v.Date, v.RoomType, v.Price, v.CurrencyRaw); err != nil {
				return 0, fmt.Errorf("insert rate %q/%q: %w", v.Date, v.RoomType, err)
			}
			total++
		case models.Event:
			if v.Name == "" {
				continue
			}
			if _, err = eventStmt.ExecContext(ctx, owner, v.Name, v.Venue, v.Date, v.Link, v.Latitude, v.Longitude, v.DistanceKm); err != nil {
				return 0, fmt.Errorf("insert event %q: %w", v.Name, err)
			}
			total++
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return total, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS room_rates (
			id BIGSERIAL PRIMARY KEY,
			owner TEXT NOT NULL,
			date TEXT NOT NULL,
			room_type TEXT NOT NULL,
			price TEXT NOT NULL DEFAULT '',
			currency_raw TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (owner, date, room_type)
		);
		CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			owner TEXT NOT NULL,
			name TEXT NOT NULL,
			venue TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			distance_km DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (owner, name, venue, date)
		);
		CREATE INDEX IF NOT EXISTS idx_room_rates_owner ON room_rates(owner);
		CREATE INDEX IF NOT EXISTS idx_events_owner ON events(owner);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
