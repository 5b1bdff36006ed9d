package shell

import (
	"context"
	"time"

	"meditracker/internal/model"
	"meditracker/internal/service/notifier"
)

// patientSession is one patient login: the credential record plus the linked
// patient id. It bounds the lifetime of the notification daemon.
type patientSession struct {
	user      *model.User
	patientID string
}

// patientLogin authenticates by full name only. The weaker trust model for
// this role is deliberate: the password path is bypassed entirely.
func (s *Shell) patientLogin(ctx context.Context) *patientSession {
	s.header("Patient Login")

	fullName, ok := s.promptMin("Your Full Name: ", 2)
	if !ok {
		return nil
	}
	u, err := s.users.Get(ctx, fullName)
	if err != nil {
		s.log.Error(err, "login failed")
		return nil
	}
	if u == nil || u.Role != model.RolePatient {
		s.println("Invalid patient full name.")
		return nil
	}
	pid, err := s.patients.IDForUser(ctx, u.Username)
	if err != nil {
		s.log.Error(err, "login failed")
		return nil
	}
	if pid == "" {
		s.println("No patient record linked to this account yet.")
		return nil
	}

	s.printf("\nWelcome back, %s!\n", u.Name)
	return &patientSession{user: u, patientID: pid}
}

func (s *Shell) patientMenu(ctx context.Context, session *patientSession) {
	for {
		s.header("Patient Panel - " + session.user.Name)
		s.println("1. View My Medicines")
		s.println("2. View My Reminders")
		s.println("3. Start Reminder Alerts")
		s.println("4. Logout")

		choice, ok := s.prompt("Choose option (1-4): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			s.listMedicines(ctx, session.patientID)
		case "2":
			s.listReminders(ctx, session.patientID)
		case "3":
			s.runAlerts(ctx, session)
		case "4":
			s.println("Logging out...")
			return
		default:
			s.println("Invalid choice.")
		}
	}
}

// runAlerts starts a fresh notification daemon for this session and blocks
// until the user presses Enter. The dedup set starts empty with each start.
func (s *Shell) runAlerts(ctx context.Context, session *patientSession) {
	emitters := []notifier.Emitter{notifier.NewConsoleEmitter(s.out, s.cfg.Bell)}
	if s.emailSvc != nil && session.user.Email != "" {
		emitters = append(emitters, notifier.NewEmailEmitter(s.emailSvc, session.user.Email))
	}
	daemon := notifier.NewService(s.reminders, emitters, s.cfg.NotifierInterval, s.log)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		daemon.Run(runCtx, session.patientID)
		close(done)
	}()

	s.println("Alerts running. Press Enter to stop.")
	s.in.Scan()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
	}
}
