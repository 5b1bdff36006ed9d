// Package shell is the interactive console front-end: role-based menus over
// the user, patient, medicine and reminder services. It validates input
// shapes before calling into the services and renders their results.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"meditracker/internal/email"
	"meditracker/internal/service/medicine"
	"meditracker/internal/service/patient"
	"meditracker/internal/service/reminder"
	"meditracker/internal/service/user"
	"meditracker/pkg/logger"
)

// Built-in operator account, matching the seeded deployment.
const (
	adminUser = "admin"
	adminPass = "admin123"
)

type Config struct {
	// NotifierInterval paces the patient session's alert polling.
	NotifierInterval time.Duration
	Bell             bool
}

type Shell struct {
	users     *user.Service
	patients  *patient.Service
	medicines *medicine.Service
	reminders *reminder.Service
	emailSvc  email.Service
	cfg       Config
	in        *bufio.Scanner
	out       io.Writer
	log       *logger.Logger
}

func New(users *user.Service, patients *patient.Service, medicines *medicine.Service,
	reminders *reminder.Service, emailSvc email.Service, cfg Config,
	in io.Reader, out io.Writer, log *logger.Logger) *Shell {
	return &Shell{
		users:     users,
		patients:  patients,
		medicines: medicines,
		reminders: reminders,
		emailSvc:  emailSvc,
		cfg:       cfg,
		in:        bufio.NewScanner(in),
		out:       out,
		log:       log,
	}
}

// Run drives the main menu until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.header("MediTracker")
		s.println("1. Doctor Sign Up")
		s.println("2. Doctor Login")
		s.println("3. Patient Login")
		s.println("4. Admin Login")
		s.println("5. Exit")

		choice, ok := s.prompt("Choose option (1-5): ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			if u := s.doctorSignup(ctx); u != nil {
				s.doctorMenu(ctx, u)
			}
		case "2":
			if u := s.doctorLogin(ctx); u != nil {
				s.doctorMenu(ctx, u)
			}
		case "3":
			if session := s.patientLogin(ctx); session != nil {
				s.patientMenu(ctx, session)
			}
		case "4":
			s.adminLogin(ctx)
		case "5":
			s.println("Goodbye.")
			return nil
		default:
			s.println("Invalid choice.")
		}
	}
}

func (s *Shell) header(title string) {
	border := strings.Repeat("=", 60)
	fmt.Fprintf(s.out, "\n%s\n %s\n%s\n", border, title, border)
}

func (s *Shell) println(args ...interface{}) {
	fmt.Fprintln(s.out, args...)
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

// prompt reads one trimmed line; ok is false when input is exhausted.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptMin re-prompts until the input reaches minLen characters.
func (s *Shell) promptMin(label string, minLen int) (string, bool) {
	for {
		v, ok := s.prompt(label)
		if !ok {
			return "", false
		}
		if len(v) >= minLen {
			return v, true
		}
		s.printf("Input must be at least %d characters.\n", minLen)
	}
}

// promptIndex reads a 1-based selection and converts it to a 0-based index;
// returns -1 on anything unparseable.
func (s *Shell) promptIndex(label string) (int, bool) {
	v, ok := s.prompt(label)
	if !ok {
		return -1, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1, true
	}
	return n - 1, true
}
