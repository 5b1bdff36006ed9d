package shell

import (
	"context"
	"fmt"
	"strings"

	"meditracker/internal/model"
	"meditracker/internal/validator"
)

// promptReminderFields gathers the shared add/edit reminder fields. Blank
// days mean every day.
func (s *Shell) promptReminderFields() (name, dosage, timeHMS string, days []string, ok bool) {
	name, ok = s.promptMin("Medicine name (letters only): ", 2)
	if !ok {
		return
	}
	if !validator.IsLettersOnly(name) {
		s.println("Invalid medicine name.")
		return "", "", "", nil, false
	}
	dosage, ok = s.prompt("Dosage (e.g. 500mg): ")
	if !ok {
		return
	}
	if !validator.IsValidDosage(dosage) {
		s.println("Invalid dosage. Use <number> mg/g/l.")
		return "", "", "", nil, false
	}
	timeHMS, ok = s.prompt("Time (HH:MM:SS, 24h): ")
	if !ok {
		return
	}
	if !validator.IsValidTimeHMS(timeHMS) {
		s.println("Invalid time. Use HH:MM:SS.")
		return "", "", "", nil, false
	}
	raw, ok := s.prompt("Days (comma separated, e.g. Mon,Wed,Fri; blank = every day): ")
	if !ok {
		return
	}
	days = parseDays(raw)
	return
}

func (s *Shell) addReminderFlow(ctx context.Context, u *model.User) {
	s.header("Add Reminder")
	p := s.pickPatient(ctx, u.Username)
	if p == nil {
		return
	}
	name, dosage, timeHMS, days, ok := s.promptReminderFields()
	if !ok {
		return
	}
	if err := s.reminders.Add(ctx, &model.AddReminderRequest{
		PatientID:    p.ID,
		MedicineName: name,
		Dosage:       dosage,
		Time:         timeHMS,
		Days:         days,
		CreatedBy:    u.Username,
	}); err != nil {
		s.printf("Failed to add reminder: %v\n", err)
		return
	}
	s.println("Reminder added.")
}

func (s *Shell) editReminderFlow(ctx context.Context, u *model.User) {
	s.header("Edit Reminder")
	p := s.pickPatient(ctx, u.Username)
	if p == nil {
		return
	}
	if !s.listReminders(ctx, p.ID) {
		return
	}
	idx, ok := s.promptIndex("Reminder number to edit: ")
	if !ok {
		return
	}
	name, dosage, timeHMS, days, ok := s.promptReminderFields()
	if !ok {
		return
	}
	updated, err := s.reminders.Edit(ctx, p.ID, idx, &model.EditReminderRequest{
		MedicineName: name,
		Dosage:       dosage,
		Time:         timeHMS,
		Days:         days,
	})
	if err != nil {
		s.printf("Failed to edit reminder: %v\n", err)
		return
	}
	if updated {
		s.println("Reminder updated.")
	} else {
		s.println("Invalid reminder number.")
	}
}

func (s *Shell) viewRemindersFlow(ctx context.Context, u *model.User) {
	s.header("View Reminders")
	p := s.pickPatient(ctx, u.Username)
	if p == nil {
		return
	}
	s.listReminders(ctx, p.ID)
}

// listReminders renders the patient's reminders; false when there are none.
func (s *Shell) listReminders(ctx context.Context, patientID string) bool {
	reminders, err := s.reminders.List(ctx, patientID)
	if err != nil {
		s.log.Error(err, "failed to list reminders")
		return false
	}
	if len(reminders) == 0 {
		s.println("No reminders.")
		return false
	}
	for i, r := range reminders {
		s.printf("[%d] %s\n", i+1, formatReminder(r))
	}
	return true
}

func formatReminder(r *model.Schedule) string {
	return fmt.Sprintf("%s %s at %s on %s",
		r.MedicineName, r.Dosage, r.Time, strings.Join(r.Days, ","))
}
