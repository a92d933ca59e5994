package seed

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardio/cardio/internal/platform/db"
)

// Requires a disposable database: CARDIO_TEST_DATABASE_URL=postgres://...
func TestPostgresSource_Load(t *testing.T) {
	url := os.Getenv("CARDIO_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CARDIO_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := db.NewPool(ctx, url, db.PoolOptions{MaxConns: 2})
	require.NoError(t, err)

	_, err = pool.Exec(ctx, Schema)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE patients, heart_rate_readings`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO patients (id, name, age, gender) VALUES ('1', 'John Doe', 30, 'MALE')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO heart_rate_readings (patient_id, "timestamp", heart_rate) VALUES
		('1', '2024-03-01T10:05:00Z', 120),
		('1', '2024-03-01T10:00:00Z', 80)`)
	require.NoError(t, err)

	src := NewPostgresSource(pool)
	defer src.Close()

	ds, err := src.Load(ctx)
	require.NoError(t, err)

	require.Len(t, ds.Patients, 1)
	assert.Equal(t, "John Doe", ds.Patients[0].Name)
	require.Len(t, ds.HeartRateReadings, 2)
	assert.Equal(t, "2024-03-01T10:00:00Z", ds.HeartRateReadings[0].Timestamp)
	assert.Equal(t, 120.0, ds.HeartRateReadings[1].HeartRate)
}
