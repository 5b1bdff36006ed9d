package shell

import (
	"context"
	"errors"
	"strings"

	"meditracker/internal/model"
	"meditracker/internal/service/user"
	"meditracker/internal/validator"
)

func (s *Shell) doctorSignup(ctx context.Context) *model.User {
	s.header("Doctor Sign Up")

	username, ok := s.promptMin("Create username (letters & numbers only): ", 3)
	if !ok {
		return nil
	}
	if !validator.IsAlnumUsername(username) {
		s.println("Please enter letters and numbers only.")
		return nil
	}
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		s.log.Error(err, "failed to check username")
		return nil
	}
	if exists {
		s.println("Username already exists!")
		return nil
	}

	emailAddr, ok := s.prompt("Email: ")
	if !ok {
		return nil
	}
	org, ok := s.promptMin("Organization name: ", 2)
	if !ok {
		return nil
	}
	pwd, ok := s.promptMin("Create password (min 8 chars): ", 8)
	if !ok {
		return nil
	}

	if err := s.users.Register(ctx, &model.RegisterUserRequest{
		Username:     username,
		Password:     pwd,
		Name:         username,
		Email:        emailAddr,
		Role:         model.RoleDoctor,
		Organization: org,
	}); err != nil {
		s.printf("Sign up failed: %v\n", err)
		return nil
	}

	s.printf("\nWelcome Dr. %s! Account created successfully.\n", username)
	return &model.User{Username: username, Name: username, Role: model.RoleDoctor, Organization: org}
}

func (s *Shell) doctorLogin(ctx context.Context) *model.User {
	s.header("Doctor Login")

	id, ok := s.prompt("Username or Email: ")
	if !ok {
		return nil
	}
	pwd, ok := s.prompt("Password: ")
	if !ok {
		return nil
	}

	u, err := s.users.Authenticate(ctx, id, pwd)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			s.println("Invalid credentials!")
		} else {
			s.log.Error(err, "login failed")
		}
		return nil
	}
	if u.Role != model.RoleDoctor {
		s.printf("Account role mismatch. You are registered as '%s'.\n", u.Role)
		return nil
	}

	s.printf("\nWelcome back, %s!\n", u.Name)
	return u
}

func (s *Shell) doctorMenu(ctx context.Context, u *model.User) {
	for {
		s.header("Doctor Panel - Dr. " + u.Name + " (" + u.Organization + ")")
		s.println("1. Add Patient (auto-creates patient login via full name)")
		s.println("2. View/Edit Patient's Medicine")
		s.println("3. Delete Patient (finished dose)")
		s.println("4. Add Reminder for a Patient's Medicine")
		s.println("5. Edit Reminder")
		s.println("6. View Reminders for a Patient")
		s.println("7. Search/Filter (Patients & Medicines)")
		s.println("8. Logout")

		choice, ok := s.prompt("Choose option (1-8): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			s.addPatientFlow(ctx, u)
		case "2":
			if p := s.pickPatient(ctx, u.Username); p != nil {
				s.manageMedicines(ctx, u, p)
			}
		case "3":
			s.deletePatientFlow(ctx, u)
		case "4":
			s.addReminderFlow(ctx, u)
		case "5":
			s.editReminderFlow(ctx, u)
		case "6":
			s.viewRemindersFlow(ctx, u)
		case "7":
			s.searchFlow(ctx, u)
		case "8":
			s.println("Logging out...")
			return
		default:
			s.println("Invalid choice.")
		}
	}
}

// addPatientFlow creates the patient record and provisions the passwordless
// login named after the patient, then links the two.
func (s *Shell) addPatientFlow(ctx context.Context, u *model.User) {
	name, ok := s.promptMin("Patient FULL NAME (letters only): ", 2)
	if !ok {
		return
	}
	if !validator.IsLettersOnly(name) {
		s.println("Invalid input, please enter the patient name in letters.")
		return
	}

	id, err := s.patients.AddIfAbsent(ctx, u.Username, name, name)
	if err != nil {
		s.printf("Failed to add patient: %v\n", err)
		return
	}

	exists, err := s.users.Exists(ctx, name)
	if err != nil {
		s.log.Error(err, "failed to check patient login")
		return
	}
	if !exists {
		if err := s.users.Register(ctx, &model.RegisterUserRequest{
			Username: name,
			Name:     name,
			Role:     model.RolePatient,
		}); err != nil {
			s.printf("Failed to create patient login: %v\n", err)
			return
		}
	}
	if _, err := s.patients.LinkUser(ctx, id, name); err != nil {
		s.log.Error(err, "failed to link patient login")
		return
	}

	s.printf("Patient '%s' added with ID %s.\n", name, id)
	s.println("Tell the patient to log in using their FULL NAME only (no password).")
}

func (s *Shell) deletePatientFlow(ctx context.Context, u *model.User) {
	s.header("Delete Patient")
	p := s.pickPatient(ctx, u.Username)
	if p == nil {
		return
	}
	removed, err := s.patients.Delete(ctx, u.Username, p.ID)
	if err != nil {
		s.printf("Failed to delete: %v\n", err)
		return
	}
	if removed {
		s.println("Patient deleted.")
	} else {
		s.println("Failed to delete.")
	}
}

// pickPatient lists the doctor's patients and resolves a 1-based selection.
func (s *Shell) pickPatient(ctx context.Context, doctor string) *model.Patient {
	owned, err := s.patients.List(ctx, doctor)
	if err != nil {
		s.log.Error(err, "failed to list patients")
		return nil
	}
	if len(owned) == 0 {
		s.println("No patients yet.")
		return nil
	}
	for i, p := range owned {
		linked := p.UserUsername
		if linked == "" {
			linked = "-"
		}
		s.printf("[%d] %s (ID: %s)  Linked Full Name: %s\n", i+1, p.Name, p.ID, linked)
	}
	idx, ok := s.promptIndex("Select patient number: ")
	if !ok || idx < 0 || idx >= len(owned) {
		s.println("Invalid selection.")
		return nil
	}
	return owned[idx]
}

func (s *Shell) searchFlow(ctx context.Context, u *model.User) {
	s.header("Search/Filter")
	s.println("1. Search Patients")
	s.println("2. Search Medicines of a Patient")

	choice, ok := s.prompt("Choose option (1-2): ")
	if !ok {
		return
	}
	switch choice {
	case "1":
		term, ok := s.prompt("Search term (name or ID): ")
		if !ok {
			return
		}
		matched, err := s.patients.Search(ctx, u.Username, term)
		if err != nil {
			s.log.Error(err, "search failed")
			return
		}
		if len(matched) == 0 {
			s.println("No matches.")
			return
		}
		for _, p := range matched {
			s.printf("%s (ID: %s)\n", p.Name, p.ID)
		}
	case "2":
		p := s.pickPatient(ctx, u.Username)
		if p == nil {
			return
		}
		term, ok := s.prompt("Medicine name contains: ")
		if !ok {
			return
		}
		matched, err := s.medicines.Search(ctx, p.ID, term)
		if err != nil {
			s.log.Error(err, "search failed")
			return
		}
		if len(matched) == 0 {
			s.println("No matches.")
			return
		}
		for _, m := range matched {
			s.println(formatMedicine(m))
		}
	default:
		s.println("Invalid choice.")
	}
}

func parseDays(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
