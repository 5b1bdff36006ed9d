package file

import (
	"context"
	"strings"

	"meditracker/internal/model"
	"meditracker/internal/repository"
	"meditracker/internal/storage"
)

type medicineRepository struct {
	store *storage.Store[model.Medicine]
}

func NewMedicineRepository(path string) repository.MedicineRepository {
	return &medicineRepository{store: storage.New[model.Medicine](path, "medicines")}
}

func (r *medicineRepository) Create(_ context.Context, medicine *model.Medicine) error {
	medicines, err := r.store.Load()
	if err != nil {
		return err
	}
	medicines = append(medicines, *medicine)
	return r.store.Save(medicines)
}

func (r *medicineRepository) Update(_ context.Context, medicine *model.Medicine) (bool, error) {
	medicines, err := r.store.Load()
	if err != nil {
		return false, err
	}
	for i := range medicines {
		if medicines[i].ID == medicine.ID {
			medicines[i] = *medicine
			return true, r.store.Save(medicines)
		}
	}
	return false, nil
}

func (r *medicineRepository) Delete(_ context.Context, id string) (bool, error) {
	medicines, err := r.store.Load()
	if err != nil {
		return false, err
	}
	for i := range medicines {
		if medicines[i].ID == id {
			medicines = append(medicines[:i], medicines[i+1:]...)
			return true, r.store.Save(medicines)
		}
	}
	return false, nil
}

func (r *medicineRepository) ListByPatient(_ context.Context, patientID string) ([]*model.Medicine, error) {
	medicines, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	owned := []*model.Medicine{}
	for i := range medicines {
		if medicines[i].PatientID == patientID {
			owned = append(owned, &medicines[i])
		}
	}
	return owned, nil
}

func (r *medicineRepository) SearchByPatient(ctx context.Context, patientID, term string) ([]*model.Medicine, error) {
	owned, err := r.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	matched := []*model.Medicine{}
	for _, m := range owned {
		if strings.Contains(strings.ToLower(m.Name), term) {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

func (r *medicineRepository) DeleteByPatient(_ context.Context, patientID string) (int, error) {
	medicines, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	kept := medicines[:0]
	removed := 0
	for _, m := range medicines {
		if m.PatientID == patientID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, r.store.Save(kept)
}
