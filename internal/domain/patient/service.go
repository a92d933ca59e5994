package patient

import (
	"github.com/rs/zerolog"

	"github.com/cardio/cardio/internal/platform/apperror"
)

// Repository is the read side of the patient store used by the service.
type Repository interface {
	FindAll() []Patient
	FindByID(id string) (Patient, bool)
	RequestCount(id string) int
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "patients").Logger(),
	}
}

func (s *Service) GetAll() (list []Patient, err error) {
	defer apperror.Contain(&err, nil, func(cause any) {
		s.logger.Error().Interface("cause", cause).Msg("get all patients failed")
	})

	list = s.repo.FindAll()
	s.logger.Info().Int("count", len(list)).Msg("get all patients")
	return list, nil
}

func (s *Service) GetByID(id string) (p *Patient, err error) {
	defer apperror.Contain(&err, map[string]any{"patientId": id}, func(cause any) {
		s.logger.Error().Interface("cause", cause).Str("patient_id", id).Msg("get patient failed")
	})

	found, ok := s.repo.FindByID(id)
	if !ok {
		s.logger.Warn().Str("patient_id", id).Msg("patient not found")
		return nil, apperror.PatientNotFound(id)
	}
	s.logger.Info().Str("patient_id", id).Msg("get patient")
	return &found, nil
}

// RequestsCount returns how many tracked patient-data reads a known patient
// has received.
func (s *Service) RequestsCount(id string) (rc *RequestsCount, err error) {
	defer apperror.Contain(&err, map[string]any{"patientId": id}, func(cause any) {
		s.logger.Error().Interface("cause", cause).Str("patient_id", id).Msg("requests count failed")
	})

	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	n := s.repo.RequestCount(id)
	s.logger.Info().Str("patient_id", id).Int("requests_count", n).Msg("requests counter read")
	return &RequestsCount{PatientID: id, RequestsCount: n}, nil
}
