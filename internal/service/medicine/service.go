package medicine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"meditracker/internal/model"
	"meditracker/internal/repository"
	"meditracker/internal/validator"
	"meditracker/pkg/logger"
)

// Service exposes the per-patient medicine catalog. Console flows address
// entries by their position in the patient's current listing; the service
// resolves that position to the entry's persistent id before mutating, so an
// out-of-range position is a clean boolean failure.
type Service struct {
	repo     repository.MedicineRepository
	validate *validator.Validator
	log      *logger.Logger
	now      func() time.Time
}

func NewService(repo repository.MedicineRepository, validate *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, validate: validate, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context, patientID string) ([]*model.Medicine, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Search(ctx context.Context, patientID, term string) ([]*model.Medicine, error) {
	return s.repo.SearchByPatient(ctx, patientID, term)
}

func (s *Service) Add(ctx context.Context, req *model.AddMedicineRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid medicine data: %w", err)
	}

	medicine := &model.Medicine{
		ID:         uuid.NewString(),
		PatientID:  req.PatientID,
		Name:       req.Name,
		Dosage:     req.Dosage,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
		AddedBy:    req.AddedBy,
		AddedAt:    s.now().Format(model.TimeLayout),
	}
	if err := s.repo.Create(ctx, medicine); err != nil {
		return fmt.Errorf("failed to add medicine: %w", err)
	}

	s.log.Info("medicine added", "patient_id", req.PatientID, "name", req.Name)
	return nil
}

// Edit updates the medicine at the given position in the patient's current
// listing. Returns false without touching storage when the position is out
// of range.
func (s *Service) Edit(ctx context.Context, patientID string, index int, req *model.EditMedicineRequest) (bool, error) {
	if err := s.validate.Struct(req); err != nil {
		return false, fmt.Errorf("invalid medicine data: %w", err)
	}

	target, err := s.resolve(ctx, patientID, index)
	if err != nil || target == nil {
		return false, err
	}

	target.Name = req.Name
	target.Dosage = req.Dosage
	target.Quantity = req.Quantity
	target.ExpiryDate = req.ExpiryDate
	return s.repo.Update(ctx, target)
}

// Delete removes the medicine at the given position in the patient's current
// listing, with the same out-of-range contract as Edit.
func (s *Service) Delete(ctx context.Context, patientID string, index int) (bool, error) {
	target, err := s.resolve(ctx, patientID, index)
	if err != nil || target == nil {
		return false, err
	}
	return s.repo.Delete(ctx, target.ID)
}

func (s *Service) resolve(ctx context.Context, patientID string, index int) (*model.Medicine, error) {
	owned, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(owned) {
		return nil, nil
	}
	return owned[index], nil
}
