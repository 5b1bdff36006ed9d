package file

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditracker/internal/model"
)

func newScheduleRepo(t *testing.T) *scheduleRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedules.json")
	return NewScheduleRepository(path).(*scheduleRepository)
}

// 2024-01-01 was a Monday.
func monday(hour, min, sec int) time.Time {
	return time.Date(2024, 1, 1, hour, min, sec, 0, time.UTC)
}

func TestScheduleDueAtMatching(t *testing.T) {
	repo := newScheduleRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Schedule{
		ID: "s1", PatientID: "P1", MedicineName: "Amoxicillin",
		Dosage: "500mg", Time: "08:30:00", Days: []string{"Mon"},
	}))

	cases := []struct {
		name string
		at   time.Time
		due  bool
	}{
		{"matching minute, any second", monday(8, 30, 45), true},
		{"start of matching minute", monday(8, 30, 0), true},
		{"one minute late", monday(8, 31, 0), false},
		{"one minute early", monday(8, 29, 59), false},
		{"right time, wrong weekday", monday(8, 30, 0).AddDate(0, 0, 1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			due, err := repo.DueAt(ctx, "P1", tc.at)
			require.NoError(t, err)
			if tc.due {
				require.Len(t, due, 1)
				assert.Equal(t, "s1", due[0].ID)
			} else {
				assert.Empty(t, due)
			}
		})
	}
}

func TestScheduleDueAtScopedByPatient(t *testing.T) {
	repo := newScheduleRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Schedule{
		ID: "s1", PatientID: "P1", MedicineName: "Amoxicillin",
		Time: "08:30:00", Days: []string{"Mon"},
	}))
	require.NoError(t, repo.Create(ctx, &model.Schedule{
		ID: "s2", PatientID: "P2", MedicineName: "Ibuprofen",
		Time: "08:30:00", Days: []string{"Mon"},
	}))

	due, err := repo.DueAt(ctx, "P2", monday(8, 30, 10))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "s2", due[0].ID)
}

func TestScheduleDueAtIgnoresMalformedTime(t *testing.T) {
	repo := newScheduleRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Schedule{
		ID: "s1", PatientID: "P1", Time: "bad", Days: []string{"Mon"},
	}))

	due, err := repo.DueAt(ctx, "P1", monday(8, 30, 0))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestScheduleUpdateByID(t *testing.T) {
	repo := newScheduleRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Schedule{
		ID: "s1", PatientID: "P1", MedicineName: "Amoxicillin",
		Time: "08:00:00", Days: []string{"Mon"},
	}))

	ok, err := repo.Update(ctx, &model.Schedule{
		ID: "s1", PatientID: "P1", MedicineName: "Amoxicillin",
		Time: "09:00:00", Days: []string{"Tue"},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	owned, err := repo.ListByPatient(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "09:00:00", owned[0].Time)
	assert.Equal(t, []string{"Tue"}, owned[0].Days)

	ok, err = repo.Update(ctx, &model.Schedule{ID: "ghost"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScheduleDeleteByPatient(t *testing.T) {
	repo := newScheduleRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Schedule{ID: "s1", PatientID: "P1"}))
	require.NoError(t, repo.Create(ctx, &model.Schedule{ID: "s2", PatientID: "P2"}))

	removed, err := repo.DeleteByPatient(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	left, err := repo.ListByPatient(ctx, "P2")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
