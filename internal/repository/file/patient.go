package file

import (
	"context"
	"strings"

	"meditracker/internal/model"
	"meditracker/internal/repository"
	"meditracker/internal/storage"
)

type patientRepository struct {
	store *storage.Store[model.Patient]
}

func NewPatientRepository(path string) repository.PatientRepository {
	return &patientRepository{store: storage.New[model.Patient](path, "patients")}
}

func (r *patientRepository) Create(_ context.Context, patient *model.Patient) error {
	patients, err := r.store.Load()
	if err != nil {
		return err
	}
	patients = append(patients, *patient)
	return r.store.Save(patients)
}

func (r *patientRepository) Get(_ context.Context, id string) (*model.Patient, error) {
	patients, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, nil
}

func (r *patientRepository) Delete(_ context.Context, doctor, id string) (bool, error) {
	patients, err := r.store.Load()
	if err != nil {
		return false, err
	}
	kept := patients[:0]
	removed := false
	for _, p := range patients {
		if p.ID == id && p.Doctor == doctor {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false, nil
	}
	return true, r.store.Save(kept)
}

func (r *patientRepository) List(_ context.Context, doctor string) ([]*model.Patient, error) {
	patients, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	owned := []*model.Patient{}
	for i := range patients {
		if patients[i].Doctor == doctor {
			owned = append(owned, &patients[i])
		}
	}
	return owned, nil
}

func (r *patientRepository) Search(ctx context.Context, doctor, term string) ([]*model.Patient, error) {
	owned, err := r.List(ctx, doctor)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	matched := []*model.Patient{}
	for _, p := range owned {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.ID), term) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *patientRepository) LinkUser(_ context.Context, id, username string) (bool, error) {
	patients, err := r.store.Load()
	if err != nil {
		return false, err
	}
	for i := range patients {
		if patients[i].ID == id {
			patients[i].UserUsername = username
			return true, r.store.Save(patients)
		}
	}
	return false, nil
}

func (r *patientRepository) GetByUser(_ context.Context, username string) (*model.Patient, error) {
	patients, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].UserUsername == username {
			return &patients[i], nil
		}
	}
	return nil, nil
}
