package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardio/cardio/internal/domain/heartrate"
	"github.com/cardio/cardio/internal/domain/patient"
)

type staticSource struct {
	ds  *Dataset
	err error
}

func (s staticSource) Load(context.Context) (*Dataset, error) { return s.ds, s.err }
func (s staticSource) Close()                                 {}
func (s staticSource) String() string                         { return "static" }

type gaugeRecorder map[string]int

func (g gaugeRecorder) SetSeeded(kind string, n int) { g[kind] = n }

func TestSeeder_Seed(t *testing.T) {
	patients, readings := patient.NewStore(), heartrate.NewStore()
	gauge := gaugeRecorder{}
	s := NewSeeder(patients, readings, gauge, zerolog.Nop())

	ds := &Dataset{
		Patients: []patient.Patient{{ID: "1", Name: "John Doe", Age: 30, Gender: patient.GenderMale}},
		HeartRateReadings: []heartrate.Reading{
			{PatientID: "1", Timestamp: "2024-03-01T10:05:00Z", HeartRate: 120},
			{PatientID: "1", Timestamp: "2024-03-01T10:00:00Z", HeartRate: 80},
		},
	}

	counts, err := s.Seed(context.Background(), staticSource{ds: ds})
	require.NoError(t, err)

	assert.Equal(t, Counts{Patients: 1, Readings: 2}, counts)
	assert.Equal(t, 1, patients.Len())
	assert.Equal(t, 2, readings.Len())
	assert.Equal(t, "2024-03-01T10:00:00Z", readings.ByPatient("1")[0].Timestamp)
	assert.Equal(t, gaugeRecorder{KindPatients: 1, KindReadings: 2}, gauge)
}

func TestSeeder_LoadFailureLeavesStoresEmpty(t *testing.T) {
	patients, readings := patient.NewStore(), heartrate.NewStore()
	s := NewSeeder(patients, readings, nil, zerolog.Nop())

	_, err := s.Seed(context.Background(), staticSource{err: errors.New("boom")})

	assert.EqualError(t, err, "boom")
	assert.Zero(t, patients.Len())
	assert.Zero(t, readings.Len())
}
