package reminder

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

// Service manages recurring reminder schedules. Position-based addressing
// follows the same resolve-to-id contract as the medicine catalog.
type Service struct {
	repo     repository.ScheduleRepository
	validate *validator.Validator
	log      *logger.Logger
}

func NewService(repo repository.ScheduleRepository, validate *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, validate: validate, log: log}
}

func (s *Service) List(ctx context.Context, patientID string) ([]*model.Schedule, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// Add creates a schedule. A blank day list means every day; tokens are
// normalized to the canonical 3-letter codes with invalid ones dropped.
func (s *Service) Add(ctx context.Context, req *model.AddReminderRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid reminder data: %w", err)
	}

	schedule := &model.Schedule{
		ID:           uuid.NewString(),
		PatientID:    req.PatientID,
		MedicineName: req.MedicineName,
		Dosage:       req.Dosage,
		Time:         req.Time,
		Days:         normalizeOrAllDays(req.Days),
		CreatedBy:    req.CreatedBy,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return fmt.Errorf("failed to add reminder: %w", err)
	}

	s.log.Info("reminder added", "patient_id", req.PatientID,
		"medicine", req.MedicineName, "time", req.Time)
	return nil
}

// Edit updates the schedule at the given position in the patient's current
// listing; false without touching storage when out of range.
func (s *Service) Edit(ctx context.Context, patientID string, index int, req *model.EditReminderRequest) (bool, error) {
	if err := s.validate.Struct(req); err != nil {
		return false, fmt.Errorf("invalid reminder data: %w", err)
	}

	owned, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(owned) {
		return false, nil
	}

	target := owned[index]
	target.MedicineName = req.MedicineName
	target.Dosage = req.Dosage
	target.Time = req.Time
	target.Days = normalizeOrAllDays(req.Days)
	return s.repo.Update(ctx, target)
}

// Due returns the patient's reminders matching the reference instant at
// minute precision, in storage order.
func (s *Service) Due(ctx context.Context, patientID string, at time.Time) ([]*model.Schedule, error) {
	return s.repo.DueAt(ctx, patientID, at)
}

// normalizeOrAllDays defaults a blank day list to the full week. A non-blank
// list is only normalized, so a list of entirely invalid tokens stays empty
// and the reminder never fires.
func normalizeOrAllDays(days []string) []string {
	if len(days) == 0 {
		return append([]string{}, validator.ValidDays...)
	}
	return validator.NormalizeDays(days)
}
