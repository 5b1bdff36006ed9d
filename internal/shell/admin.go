package shell

import (
	"context"
)

func (s *Shell) adminLogin(ctx context.Context) {
	s.header("Admin Login")

	username, ok := s.prompt("Username: ")
	if !ok {
		return
	}
	password, ok := s.prompt("Password: ")
	if !ok {
		return
	}
	if username != adminUser || password != adminPass {
		s.println("Invalid credentials!")
		return
	}
	s.adminMenu(ctx)
}

func (s *Shell) adminMenu(ctx context.Context) {
	for {
		s.header("Admin Panel")
		s.println("1. List Doctors")
		s.println("2. Logout")

		choice, ok := s.prompt("Choose option (1-2): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			doctors, err := s.users.ListDoctors(ctx)
			if err != nil {
				s.log.Error(err, "failed to list doctors")
				continue
			}
			if len(doctors) == 0 {
				s.println("No doctors registered.")
				continue
			}
			for _, d := range doctors {
				s.printf("%s (%s) - %s\n", d.Name, d.Username, d.Organization)
			}
		case "2":
			return
		default:
			s.println("Invalid choice.")
		}
	}
}
