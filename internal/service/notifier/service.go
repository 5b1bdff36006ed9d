// Package notifier runs the reminder notification daemon: a fixed-interval
// polling loop that asks the reminder service what is due now and emits each
// alert once per (medicine, date, minute) key for the lifetime of the loop.
package notifier

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"meditracker/internal/model"
	"meditracker/internal/service/reminder"
	"meditracker/pkg/logger"
)

const DefaultInterval = 10 * time.Second

var (
	pollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meditracker_notifier_polls_total",
		Help: "The total number of notifier poll iterations",
	})
	pollFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meditracker_notifier_poll_failures_total",
		Help: "The total number of poll iterations skipped due to errors",
	})
	notificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meditracker_notifier_notifications_total",
		Help: "The total number of reminder notifications emitted",
	})
	pollDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "meditracker_notifier_poll_duration_seconds",
		Help:    "Time spent per notifier poll",
		Buckets: prometheus.DefBuckets,
	})
)

// Emitter delivers one notification over some channel (console, email).
type Emitter interface {
	Emit(ctx context.Context, n *model.Notification) error
}

type Service struct {
	reminders *reminder.Service
	emitters  []Emitter
	interval  time.Duration
	seen      *cache.Cache
	log       *logger.Logger
	now       func() time.Time
}

func NewService(reminders *reminder.Service, emitters []Emitter, interval time.Duration, log *logger.Logger) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		reminders: reminders,
		emitters:  emitters,
		interval:  interval,
		// Keys are never evicted; the set is bounded by session length.
		seen: cache.New(cache.NoExpiration, 0),
		log:  log,
		now:  time.Now,
	}
}

// Run polls until the context is cancelled. A failed poll is logged and
// skipped; the loop never terminates on a single bad read.
func (s *Service) Run(ctx context.Context, patientID string) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("notifier started", "patient_id", patientID, "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			s.log.Info("notifier stopped", "patient_id", patientID)
			return
		case <-ticker.C:
			if _, err := s.Poll(ctx, patientID, s.now()); err != nil {
				s.log.Error(err, "poll failed, retrying next interval", "patient_id", patientID)
			}
		}
	}
}

// Poll runs one iteration against the reference instant and returns how many
// notifications were emitted. Exported so one-shot checks and tests can
// drive the daemon without the ticker.
func (s *Service) Poll(ctx context.Context, patientID string, at time.Time) (int, error) {
	timer := prometheus.NewTimer(pollDuration)
	defer timer.ObserveDuration()
	pollsTotal.Inc()

	due, err := s.reminders.Due(ctx, patientID, at)
	if err != nil {
		pollFailuresTotal.Inc()
		return 0, err
	}

	emitted := 0
	for _, schedule := range due {
		n := model.NewNotification(schedule, at)
		if _, dup := s.seen.Get(n.Key()); dup {
			continue
		}
		s.emit(ctx, n)
		s.seen.SetDefault(n.Key(), struct{}{})
		emitted++
	}
	return emitted, nil
}

// emit fans the alert out to every channel. A failing channel is logged and
// does not block the others; the key is still recorded so the alert is not
// duplicated on the next poll.
func (s *Service) emit(ctx context.Context, n *model.Notification) {
	for _, e := range s.emitters {
		if err := e.Emit(ctx, n); err != nil {
			s.log.Error(err, "failed to emit notification", "medicine", n.MedicineName)
			continue
		}
	}
	notificationsTotal.Inc()
}
