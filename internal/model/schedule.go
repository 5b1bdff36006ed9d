package model

// Schedule is a recurring reminder for one patient. MedicineName and Dosage
// are copied from the console input, not linked to a Medicine record, so a
// later medicine edit does not rewrite existing reminders.
type Schedule struct {
	ID           string   `json:"id"`
	PatientID    string   `json:"patient_id"`
	MedicineName string   `json:"medicine_name"`
	Dosage       string   `json:"dosage"`
	Time         string   `json:"time"`
	Days         []string `json:"days"`
	CreatedBy    string   `json:"created_by"`
}

type AddReminderRequest struct {
	PatientID    string `validate:"required"`
	MedicineName string `validate:"required,letters,min=2"`
	Dosage       string `validate:"required,dosage"`
	// Time is HH:MM:SS; matching ignores the seconds.
	Time string `validate:"required,timehms"`
	// Days holds raw day tokens; blank means every day. Normalization to
	// the canonical 3-letter codes happens in the reminder service.
	Days      []string
	CreatedBy string `validate:"required"`
}

type EditReminderRequest struct {
	MedicineName string `validate:"required,letters,min=2"`
	Dosage       string `validate:"required,dosage"`
	Time         string `validate:"required,timehms"`
	Days         []string
}
