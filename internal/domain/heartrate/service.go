package heartrate

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/cardio/cardio/internal/domain/patient"
	"github.com/cardio/cardio/internal/platform/apperror"
)

// PatientDirectory resolves patient ids. The patient store satisfies it.
type PatientDirectory interface {
	FindByID(id string) (patient.Patient, bool)
}

// ReadingSource returns a patient's readings sorted by timestamp.
type ReadingSource interface {
	ByPatient(id string) []Reading
}

// Service is the analytics engine over the patient and reading stores. It
// never mutates either store.
type Service struct {
	patients PatientDirectory
	readings ReadingSource
	logger   zerolog.Logger
}

func NewService(patients PatientDirectory, readings ReadingSource, logger zerolog.Logger) *Service {
	return &Service{
		patients: patients,
		readings: readings,
		logger:   logger.With().Str("component", "heart-rate").Logger(),
	}
}

func (s *Service) ensurePatient(id string) error {
	if _, ok := s.patients.FindByID(id); !ok {
		s.logger.Warn().Str("patient_id", id).Msg("patient not found")
		return apperror.PatientNotFound(id)
	}
	return nil
}

// HighEvents lists the readings with a parseable timestamp and a heart rate
// strictly above threshold, in timestamp order. A nil threshold means
// DefaultThreshold.
func (s *Service) HighEvents(patientID string, threshold *float64) (res *EventsResult, err error) {
	t := DefaultThreshold
	if threshold != nil {
		t = *threshold
	}
	defer apperror.Contain(&err, map[string]any{"patientId": patientID, "threshold": t}, func(cause any) {
		s.logger.Error().Interface("cause", cause).Str("patient_id", patientID).Float64("threshold", t).Msg("high events failed")
	})

	s.logger.Info().Str("patient_id", patientID).Float64("threshold", t).Msg("high events called")
	if err := s.ensurePatient(patientID); err != nil {
		return nil, err
	}
	if t < 0 {
		s.logger.Warn().Str("patient_id", patientID).Float64("threshold", t).Msg("invalid threshold")
		return nil, apperror.InvalidThreshold(t)
	}

	events := make([]Event, 0)
	for _, r := range s.readings.ByPatient(patientID) {
		if _, ok := ParseTimestamp(r.Timestamp); !ok {
			continue
		}
		if r.HeartRate > t {
			events = append(events, Event{Timestamp: r.Timestamp, HeartRate: r.HeartRate})
		}
	}

	s.logger.Info().Str("patient_id", patientID).Int("count", len(events)).Msg("high events computed")
	return &EventsResult{PatientID: patientID, Count: len(events), Events: events}, nil
}

// Analytics computes count, min, max and the two-decimal average of the
// readings inside the closed window [from, to].
func (s *Service) Analytics(patientID, from, to string) (res *AnalyticsResult, err error) {
	defer apperror.Contain(&err, map[string]any{"patientId": patientID, "from": from, "to": to}, func(cause any) {
		s.logger.Error().Interface("cause", cause).Str("patient_id", patientID).
			Str("from", from).Str("to", to).Msg("analytics failed")
	})

	s.logger.Info().Str("patient_id", patientID).Str("from", from).Str("to", to).Msg("analytics called")
	if err := s.ensurePatient(patientID); err != nil {
		return nil, err
	}
	if err := AssertValidWindow(from, to); err != nil {
		s.logger.Warn().Str("patient_id", patientID).Str("from", from).Str("to", to).Msg("invalid time window")
		return nil, err
	}

	var values []float64
	for _, r := range s.readings.ByPatient(patientID) {
		if IsInRange(r.Timestamp, from, to) {
			values = append(values, r.HeartRate)
		}
	}

	res = &AnalyticsResult{PatientID: patientID, From: from, To: to}
	if len(values) == 0 {
		s.logger.Info().Str("patient_id", patientID).Str("from", from).Str("to", to).Msg("no readings in window")
		return res, nil
	}

	sum, lo, hi := 0.0, values[0], values[0]
	for _, v := range values {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	avg := roundTo2(sum / float64(len(values)))
	res.Count = len(values)
	res.Avg, res.Min, res.Max = &avg, &lo, &hi

	s.logger.Info().Str("patient_id", patientID).Int("count", res.Count).
		Float64("min", lo).Float64("max", hi).Float64("avg", avg).Msg("analytics computed")
	return res, nil
}

// roundTo2 rounds half away from zero to two decimal places.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
