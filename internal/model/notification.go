package model

import (
	"fmt"
	"time"
)

// Notification is an ephemeral reminder alert. It is never persisted; the
// notifier deduplicates on Key for the lifetime of one session.
type Notification struct {
	PatientID    string
	MedicineName string
	Dosage       string
	Date         string // yyyy-mm-dd
	Minute       string // HH:MM
}

// NewNotification builds the alert for a due schedule at the given instant.
func NewNotification(s *Schedule, at time.Time) *Notification {
	return &Notification{
		PatientID:    s.PatientID,
		MedicineName: s.MedicineName,
		Dosage:       s.Dosage,
		Date:         at.Format("2006-01-02"),
		Minute:       at.Format("15:04"),
	}
}

// Key identifies the alert within its matching minute: one notification per
// (medicine, date, minute) regardless of how many polls observe it.
func (n *Notification) Key() string {
	return fmt.Sprintf("%s|%s|%s", n.MedicineName, n.Date, n.Minute)
}

func (n *Notification) Message() string {
	return fmt.Sprintf("Take %s - %s (now)", n.MedicineName, n.Dosage)
}
