package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditracker/internal/model"
)

func newMedicineRepo(t *testing.T) *medicineRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medicines.json")
	return NewMedicineRepository(path).(*medicineRepository)
}

func seedMedicine(t *testing.T, repo *medicineRepository, id, patientID, name string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &model.Medicine{
		ID: id, PatientID: patientID, Name: name, Dosage: "500mg", Quantity: "10",
	}))
}

func TestMedicineListScopedByPatient(t *testing.T) {
	repo := newMedicineRepo(t)
	ctx := context.Background()

	seedMedicine(t, repo, "m1", "P1", "Amoxicillin")
	seedMedicine(t, repo, "m2", "P2", "Ibuprofen")
	seedMedicine(t, repo, "m3", "P1", "Paracetamol")

	owned, err := repo.ListByPatient(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "Amoxicillin", owned[0].Name)
	assert.Equal(t, "Paracetamol", owned[1].Name)
}

func TestMedicineSearchCaseInsensitive(t *testing.T) {
	repo := newMedicineRepo(t)
	ctx := context.Background()

	seedMedicine(t, repo, "m1", "P1", "Amoxicillin")
	seedMedicine(t, repo, "m2", "P1", "Paracetamol")

	matched, err := repo.SearchByPatient(ctx, "P1", "AMOX")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "m1", matched[0].ID)
}

func TestMedicineUpdateByID(t *testing.T) {
	repo := newMedicineRepo(t)
	ctx := context.Background()

	seedMedicine(t, repo, "m1", "P1", "Amoxicillin")

	ok, err := repo.Update(ctx, &model.Medicine{
		ID: "m1", PatientID: "P1", Name: "Amoxicillin", Dosage: "250mg", Quantity: "5",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	owned, err := repo.ListByPatient(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "250mg", owned[0].Dosage)

	ok, err = repo.Update(ctx, &model.Medicine{ID: "ghost"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMedicineDeleteByID(t *testing.T) {
	repo := newMedicineRepo(t)
	ctx := context.Background()

	seedMedicine(t, repo, "m1", "P1", "Amoxicillin")

	ok, err := repo.Delete(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, ok)

	owned, err := repo.ListByPatient(ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestMedicineDeleteByPatientRemovesOnlyThatPatient(t *testing.T) {
	repo := newMedicineRepo(t)
	ctx := context.Background()

	seedMedicine(t, repo, "m1", "P1", "Amoxicillin")
	seedMedicine(t, repo, "m2", "P2", "Ibuprofen")
	seedMedicine(t, repo, "m3", "P1", "Paracetamol")

	removed, err := repo.DeleteByPatient(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := repo.ListByPatient(ctx, "P2")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "m2", left[0].ID)
}
