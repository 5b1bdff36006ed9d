package reminder

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditracker/internal/model"
	"meditracker/internal/repository/file"
	"meditracker/internal/validator"
	"meditracker/pkg/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()
	repo := file.NewScheduleRepository(filepath.Join(t.TempDir(), "schedules.json"))
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(repo, validator.New(), log)
}

func TestAddNormalizesDays(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, &model.AddReminderRequest{
		PatientID:    "P1",
		MedicineName: "Amoxicillin",
		Dosage:       "500mg",
		Time:         "08:00:00",
		Days:         []string{"monday", "tue", "TUE", "xyz"},
		CreatedBy:    "dr1",
	}))

	owned, err := svc.List(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, []string{"Mon", "Tue"}, owned[0].Days)
	assert.NotEmpty(t, owned[0].ID)
}

func TestAddBlankDaysMeansEveryDay(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, &model.AddReminderRequest{
		PatientID:    "P1",
		MedicineName: "Amoxicillin",
		Dosage:       "500mg",
		Time:         "08:00:00",
		CreatedBy:    "dr1",
	}))

	owned, err := svc.List(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, owned[0].Days)
}

func TestAddRejectsBadTime(t *testing.T) {
	svc := newService(t)

	err := svc.Add(context.Background(), &model.AddReminderRequest{
		PatientID:    "P1",
		MedicineName: "Amoxicillin",
		Dosage:       "500mg",
		Time:         "8am",
		CreatedBy:    "dr1",
	})
	assert.Error(t, err)
}

func TestEditByPositionAndOutOfRange(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, &model.AddReminderRequest{
		PatientID: "P1", MedicineName: "Amoxicillin", Dosage: "500mg",
		Time: "08:00:00", Days: []string{"Mon"}, CreatedBy: "dr1",
	}))

	ok, err := svc.Edit(ctx, "P1", 0, &model.EditReminderRequest{
		MedicineName: "Amoxicillin", Dosage: "250mg", Time: "09:30:00", Days: []string{"fri"},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	owned, err := svc.List(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "09:30:00", owned[0].Time)
	assert.Equal(t, []string{"Fri"}, owned[0].Days)

	ok, err = svc.Edit(ctx, "P1", 5, &model.EditReminderRequest{
		MedicineName: "Amoxicillin", Dosage: "250mg", Time: "09:30:00",
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDueDelegatesToRepository(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, &model.AddReminderRequest{
		PatientID: "P1", MedicineName: "Amoxicillin", Dosage: "500mg",
		Time: "08:30:00", Days: []string{"Mon"}, CreatedBy: "dr1",
	}))

	// 2024-01-01 was a Monday.
	due, err := svc.Due(ctx, "P1", time.Date(2024, 1, 1, 8, 30, 45, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, due, 1)

	due, err = svc.Due(ctx, "P1", time.Date(2024, 1, 2, 8, 30, 45, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, due)
}
