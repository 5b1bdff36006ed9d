package patient

import (
	"context"
	"fmt"
	"time"

	"meditracker/internal/model"
	"meditracker/internal/repository"
	"meditracker/internal/validator"
	"meditracker/pkg/logger"
)

type Service struct {
	repo         repository.PatientRepository
	medicineRepo repository.MedicineRepository
	scheduleRepo repository.ScheduleRepository
	validate     *validator.Validator
	log          *logger.Logger
	now          func() time.Time
}

func NewService(repo repository.PatientRepository, medicineRepo repository.MedicineRepository,
	scheduleRepo repository.ScheduleRepository, validate *validator.Validator, log *logger.Logger) *Service {
	return &Service{
		repo:         repo,
		medicineRepo: medicineRepo,
		scheduleRepo: scheduleRepo,
		validate:     validate,
		log:          log,
		now:          time.Now,
	}
}

func (s *Service) List(ctx context.Context, doctor string) ([]*model.Patient, error) {
	return s.repo.List(ctx, doctor)
}

func (s *Service) Search(ctx context.Context, doctor, term string) ([]*model.Patient, error) {
	return s.repo.Search(ctx, doctor, term)
}

func (s *Service) Get(ctx context.Context, id string) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

// Add creates a patient owned by the doctor and returns the new id. Ids are
// derived from the creation second; the collision window is documented on
// model.NewPatientID.
func (s *Service) Add(ctx context.Context, doctor, name string) (string, error) {
	req := &model.AddPatientRequest{Doctor: doctor, Name: name}
	if err := s.validate.Struct(req); err != nil {
		return "", fmt.Errorf("invalid patient data: %w", err)
	}

	at := s.now()
	patient := &model.Patient{
		ID:        model.NewPatientID(at),
		Name:      name,
		Doctor:    doctor,
		CreatedAt: at.Format(model.TimeLayout),
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return "", fmt.Errorf("failed to create patient: %w", err)
	}

	s.log.Info("patient added", "patient_id", patient.ID, "doctor", doctor)
	return patient.ID, nil
}

// AddIfAbsent is the idempotent variant: an existing patient linked to
// linkedUser wins, then an existing same-name patient of the same doctor,
// then a fresh record.
func (s *Service) AddIfAbsent(ctx context.Context, doctor, name, linkedUser string) (string, error) {
	if linkedUser != "" {
		existing, err := s.repo.GetByUser(ctx, linkedUser)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return existing.ID, nil
		}
	}

	owned, err := s.repo.List(ctx, doctor)
	if err != nil {
		return "", err
	}
	for _, p := range owned {
		if p.Name == name {
			return p.ID, nil
		}
	}

	id, err := s.Add(ctx, doctor, name)
	if err != nil {
		return "", err
	}
	if linkedUser != "" {
		if _, err := s.repo.LinkUser(ctx, id, linkedUser); err != nil {
			return "", err
		}
	}
	return id, nil
}

// Delete removes the patient (only when owned by the doctor) and cascades to
// all medicines and schedules referencing its id. The cascade is three
// sequential file rewrites; a crash in between can leave orphaned dependent
// records.
func (s *Service) Delete(ctx context.Context, doctor, id string) (bool, error) {
	removed, err := s.repo.Delete(ctx, doctor, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete patient: %w", err)
	}
	if !removed {
		return false, nil
	}

	medicines, err := s.medicineRepo.DeleteByPatient(ctx, id)
	if err != nil {
		return true, fmt.Errorf("failed to cascade to medicines: %w", err)
	}
	schedules, err := s.scheduleRepo.DeleteByPatient(ctx, id)
	if err != nil {
		return true, fmt.Errorf("failed to cascade to schedules: %w", err)
	}

	s.log.Info("patient deleted", "patient_id", id,
		"medicines_removed", medicines, "schedules_removed", schedules)
	return true, nil
}

// LinkUser sets the patient's login linkage; reports whether the patient
// exists.
func (s *Service) LinkUser(ctx context.Context, id, username string) (bool, error) {
	return s.repo.LinkUser(ctx, id, username)
}

// IDForUser is the reverse lookup from a login identity to its patient id;
// empty when no patient is linked.
func (s *Service) IDForUser(ctx context.Context, username string) (string, error) {
	patient, err := s.repo.GetByUser(ctx, username)
	if err != nil {
		return "", err
	}
	if patient == nil {
		return "", nil
	}
	return patient.ID, nil
}
