package seed

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cardio/cardio/internal/domain/heartrate"
	"github.com/cardio/cardio/internal/domain/patient"
)

// Record kinds reported to the gauge.
const (
	KindPatients = "patients"
	KindReadings = "heart_rate_readings"
)

type PatientSink interface {
	UpsertMany(list []patient.Patient)
}

type ReadingSink interface {
	UpsertMany(list []heartrate.Reading)
}

// Gauge receives seeded record counts. *metrics.Metrics satisfies it.
type Gauge interface {
	SetSeeded(kind string, n int)
}

// Counts is what one Seed call loaded.
type Counts struct {
	Patients int `json:"patients"`
	Readings int `json:"heartRateReadings"`
}

type Seeder struct {
	patients PatientSink
	readings ReadingSink
	gauge    Gauge
	logger   zerolog.Logger
}

// NewSeeder wires the stores to fill. gauge may be nil.
func NewSeeder(patients PatientSink, readings ReadingSink, gauge Gauge, logger zerolog.Logger) *Seeder {
	return &Seeder{
		patients: patients,
		readings: readings,
		gauge:    gauge,
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// Seed loads src and upserts its records. On error the stores are left
// untouched.
func (s *Seeder) Seed(ctx context.Context, src Source) (Counts, error) {
	s.logger.Info().Str("source", src.String()).Msg("seeding stores")

	ds, err := src.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("source", src.String()).Msg("seed failed")
		return Counts{}, err
	}

	s.patients.UpsertMany(ds.Patients)
	s.readings.UpsertMany(ds.HeartRateReadings)

	counts := Counts{Patients: len(ds.Patients), Readings: len(ds.HeartRateReadings)}
	if s.gauge != nil {
		s.gauge.SetSeeded(KindPatients, counts.Patients)
		s.gauge.SetSeeded(KindReadings, counts.Readings)
	}
	s.logger.Info().
		Int("patients", counts.Patients).
		Int("heart_rate_readings", counts.Readings).
		Msg("seed complete")
	return counts, nil
}
