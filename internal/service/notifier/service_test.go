package notifier

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditracker/internal/model"
	"meditracker/internal/repository"
	"meditracker/internal/repository/file"
	"meditracker/internal/service/reminder"
	"meditracker/internal/validator"
	"meditracker/pkg/logger"
)

type recordingEmitter struct {
	mu   sync.Mutex
	seen []string
	fail bool
}

func (e *recordingEmitter) Emit(_ context.Context, n *model.Notification) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail {
		return errors.New("channel down")
	}
	e.seen = append(e.seen, n.Key())
	return nil
}

func (e *recordingEmitter) keys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string{}, e.seen...)
}

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func newReminders(t *testing.T) *reminder.Service {
	t.Helper()
	repo := file.NewScheduleRepository(filepath.Join(t.TempDir(), "schedules.json"))
	return reminder.NewService(repo, validator.New(), testLogger())
}

// 2024-01-01 was a Monday.
func monday(hour, min, sec int) time.Time {
	return time.Date(2024, 1, 1, hour, min, sec, 0, time.UTC)
}

func addReminder(t *testing.T, reminders *reminder.Service, name, at string) {
	t.Helper()
	require.NoError(t, reminders.Add(context.Background(), &model.AddReminderRequest{
		PatientID: "P1", MedicineName: name, Dosage: "500mg",
		Time: at, Days: []string{"Mon"}, CreatedBy: "dr1",
	}))
}

func TestPollEmitsOncePerMinuteKey(t *testing.T) {
	reminders := newReminders(t)
	addReminder(t, reminders, "Amoxicillin", "08:30:00")

	emitter := &recordingEmitter{}
	svc := NewService(reminders, []Emitter{emitter}, time.Second, testLogger())
	ctx := context.Background()

	// Two polls inside the same matching minute: one notification.
	emitted, err := svc.Poll(ctx, "P1", monday(8, 30, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, emitted)

	emitted, err = svc.Poll(ctx, "P1", monday(8, 30, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, emitted)

	assert.Len(t, emitter.keys(), 1)

	// Keys are never evicted, so re-observing the minute later in the
	// session still does not re-notify.
	emitted, err = svc.Poll(ctx, "P1", monday(8, 30, 55))
	require.NoError(t, err)
	assert.Equal(t, 0, emitted)
}

func TestPollOutsideMatchingMinuteEmitsNothing(t *testing.T) {
	reminders := newReminders(t)
	addReminder(t, reminders, "Amoxicillin", "08:30:00")

	emitter := &recordingEmitter{}
	svc := NewService(reminders, []Emitter{emitter}, time.Second, testLogger())

	emitted, err := svc.Poll(context.Background(), "P1", monday(8, 31, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, emitted)
	assert.Empty(t, emitter.keys())
}

func TestPollEmitsEachDueReminder(t *testing.T) {
	reminders := newReminders(t)
	addReminder(t, reminders, "Amoxicillin", "08:30:00")
	addReminder(t, reminders, "Ibuprofen", "08:30:00")

	emitter := &recordingEmitter{}
	svc := NewService(reminders, []Emitter{emitter}, time.Second, testLogger())

	emitted, err := svc.Poll(context.Background(), "P1", monday(8, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, emitted)
	assert.Len(t, emitter.keys(), 2)
}

type failingScheduleRepo struct {
	repository.ScheduleRepository
}

func (f *failingScheduleRepo) DueAt(context.Context, string, time.Time) ([]*model.Schedule, error) {
	return nil, errors.New("disk unplugged")
}

func TestPollFailurePropagatesWithoutEmitting(t *testing.T) {
	reminders := reminder.NewService(&failingScheduleRepo{}, validator.New(), testLogger())
	emitter := &recordingEmitter{}
	svc := NewService(reminders, []Emitter{emitter}, time.Second, testLogger())

	_, err := svc.Poll(context.Background(), "P1", monday(8, 30, 0))
	assert.Error(t, err)
	assert.Empty(t, emitter.keys())
}

func TestRunStopsOnCancelAndSurvivesBadPolls(t *testing.T) {
	reminders := reminder.NewService(&failingScheduleRepo{}, validator.New(), testLogger())
	svc := NewService(reminders, nil, 5*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, "P1")
		close(done)
	}()

	// Let several failing polls happen, then cancel; Run must return.
	time.Sleep(40 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notifier did not stop on cancellation")
	}
}

func TestConsoleEmitterOutput(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewConsoleEmitter(&buf, true)

	n := &model.Notification{MedicineName: "Amoxicillin", Dosage: "500mg"}
	require.NoError(t, emitter.Emit(context.Background(), n))

	out := buf.String()
	assert.Contains(t, out, "Medicine Reminder")
	assert.Contains(t, out, "Take Amoxicillin - 500mg (now)")
	assert.Contains(t, out, "\a")
}

func TestEmitterFailureDoesNotBlockOthers(t *testing.T) {
	reminders := newReminders(t)
	addReminder(t, reminders, "Amoxicillin", "08:30:00")

	bad := &recordingEmitter{fail: true}
	good := &recordingEmitter{}
	svc := NewService(reminders, []Emitter{bad, good}, time.Second, testLogger())

	emitted, err := svc.Poll(context.Background(), "P1", monday(8, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, emitted)
	assert.Len(t, good.keys(), 1)
}
