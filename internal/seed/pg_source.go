package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cardio/cardio/internal/domain/heartrate"
	"github.com/cardio/cardio/internal/domain/patient"
)

// Schema is the table layout PostgresSource reads. Timestamps are stored as
// text so malformed values survive the round trip like they do in JSON.
const Schema = `
CREATE TABLE IF NOT EXISTS patients (
	id     TEXT PRIMARY KEY,
	name   TEXT NOT NULL,
	age    INTEGER NOT NULL,
	gender TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS heart_rate_readings (
	patient_id  TEXT NOT NULL,
	"timestamp" TEXT NOT NULL,
	heart_rate  DOUBLE PRECISION NOT NULL
);`

const (
	selectPatients = `SELECT id, name, age, gender FROM patients ORDER BY id`
	selectReadings = `SELECT patient_id, "timestamp", heart_rate FROM heart_rate_readings ORDER BY patient_id, "timestamp"`
)

type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	rows, err := s.pool.Query(ctx, selectPatients)
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	patients, err := pgx.CollectRows(rows, pgx.RowToStructByName[patient.Patient])
	if err != nil {
		return nil, fmt.Errorf("scan patients: %w", err)
	}

	rows, err = s.pool.Query(ctx, selectReadings)
	if err != nil {
		return nil, fmt.Errorf("query heart rate readings: %w", err)
	}
	readings, err := pgx.CollectRows(rows, pgx.RowToStructByName[heartrate.Reading])
	if err != nil {
		return nil, fmt.Errorf("scan heart rate readings: %w", err)
	}

	return &Dataset{Patients: patients, HeartRateReadings: readings}, nil
}

func (s *PostgresSource) Close() { s.pool.Close() }

func (s *PostgresSource) String() string {
	cfg := s.pool.Config().ConnConfig
	return fmt.Sprintf("postgres://%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
}
