package notifier

import (
	"context"
	"fmt"

	"meditracker/internal/email"
	"meditracker/internal/model"
)

// EmailEmitter mails the alert to the patient's login email. It is only
// wired when SMTP is configured and the linked user record carries an
// address.
type EmailEmitter struct {
	svc email.Service
	to  string
}

func NewEmailEmitter(svc email.Service, to string) *EmailEmitter {
	return &EmailEmitter{svc: svc, to: to}
}

func (e *EmailEmitter) Emit(ctx context.Context, n *model.Notification) error {
	subject := fmt.Sprintf("Medicine Reminder: %s", n.MedicineName)
	return e.svc.SendReminder(ctx, e.to, subject, n.Message())
}
