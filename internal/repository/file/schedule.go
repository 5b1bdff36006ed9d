package file

import (
	"context"
	"time"

	"meditracker/internal/model"
	"meditracker/internal/repository"
	"meditracker/internal/storage"
)

type scheduleRepository struct {
	store *storage.Store[model.Schedule]
}

func NewScheduleRepository(path string) repository.ScheduleRepository {
	return &scheduleRepository{store: storage.New[model.Schedule](path, "schedules")}
}

func (r *scheduleRepository) Create(_ context.Context, schedule *model.Schedule) error {
	schedules, err := r.store.Load()
	if err != nil {
		return err
	}
	schedules = append(schedules, *schedule)
	return r.store.Save(schedules)
}

func (r *scheduleRepository) Update(_ context.Context, schedule *model.Schedule) (bool, error) {
	schedules, err := r.store.Load()
	if err != nil {
		return false, err
	}
	for i := range schedules {
		if schedules[i].ID == schedule.ID {
			schedules[i] = *schedule
			return true, r.store.Save(schedules)
		}
	}
	return false, nil
}

func (r *scheduleRepository) ListByPatient(_ context.Context, patientID string) ([]*model.Schedule, error) {
	schedules, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	owned := []*model.Schedule{}
	for i := range schedules {
		if schedules[i].PatientID == patientID {
			owned = append(owned, &schedules[i])
		}
	}
	return owned, nil
}

func (r *scheduleRepository) DueAt(ctx context.Context, patientID string, at time.Time) ([]*model.Schedule, error) {
	owned, err := r.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	due := []*model.Schedule{}
	for _, s := range owned {
		if matchesAt(s, at) {
			due = append(due, s)
		}
	}
	return due, nil
}

// matchesAt reports whether the schedule fires at the reference instant: its
// weekday code is in the day set and its stored time, truncated to
// hour:minute, equals the instant's hour:minute. A reminder therefore stays
// due for its entire matching minute.
func matchesAt(s *model.Schedule, at time.Time) bool {
	if len(s.Time) < 5 {
		return false
	}
	if s.Time[:5] != at.Format("15:04") {
		return false
	}
	day := at.Format("Mon")
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

func (r *scheduleRepository) DeleteByPatient(_ context.Context, patientID string) (int, error) {
	schedules, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	kept := schedules[:0]
	removed := 0
	for _, s := range schedules {
		if s.PatientID == patientID {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, r.store.Save(kept)
}
