package repository

import (
	"context"
	"time"

	"meditracker/internal/model"
)

// All repository interfaces in one file. Lookups signal not-found with a
// nil/empty result, never an error; errors are reserved for storage
// failures.
type (
	// UserRepository handles the append-only credentials file.
	UserRepository interface {
		// Save appends one record; it never updates or removes
		// existing ones. Callers check Get first to keep usernames
		// unique.
		Save(ctx context.Context, user *model.User) error
		// Get returns the first record whose username or email
		// matches, or nil.
		Get(ctx context.Context, usernameOrEmail string) (*model.User, error)
		ListDoctors(ctx context.Context) ([]*model.User, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id string) (*model.Patient, error)
		// Delete removes the patient only when owned by the doctor;
		// reports whether a record was removed.
		Delete(ctx context.Context, doctor, id string) (bool, error)
		List(ctx context.Context, doctor string) ([]*model.Patient, error)
		Search(ctx context.Context, doctor, term string) ([]*model.Patient, error)
		LinkUser(ctx context.Context, id, username string) (bool, error)
		GetByUser(ctx context.Context, username string) (*model.Patient, error)
	}

	MedicineRepository interface {
		Create(ctx context.Context, medicine *model.Medicine) error
		Update(ctx context.Context, medicine *model.Medicine) (bool, error)
		Delete(ctx context.Context, id string) (bool, error)
		ListByPatient(ctx context.Context, patientID string) ([]*model.Medicine, error)
		SearchByPatient(ctx context.Context, patientID, term string) ([]*model.Medicine, error)
		DeleteByPatient(ctx context.Context, patientID string) (int, error)
	}

	ScheduleRepository interface {
		Create(ctx context.Context, schedule *model.Schedule) error
		Update(ctx context.Context, schedule *model.Schedule) (bool, error)
		ListByPatient(ctx context.Context, patientID string) ([]*model.Schedule, error)
		// DueAt returns the patient's schedules whose weekday and
		// hour:minute match the reference instant, in storage order.
		DueAt(ctx context.Context, patientID string, at time.Time) ([]*model.Schedule, error)
		DeleteByPatient(ctx context.Context, patientID string) (int, error)
	}
)
