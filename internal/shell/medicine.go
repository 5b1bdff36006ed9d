package shell

import (
	"context"
	"fmt"

	"meditracker/internal/model"
	"meditracker/internal/validator"
)

func (s *Shell) manageMedicines(ctx context.Context, u *model.User, p *model.Patient) {
	for {
		s.header("Medicines for " + p.Name)
		s.println("1. View Medicines")
		s.println("2. Add Medicine")
		s.println("3. Edit Medicine")
		s.println("4. Delete Medicine")
		s.println("5. Search Medicines")
		s.println("6. Back")

		choice, ok := s.prompt("Choose option (1-6): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			s.listMedicines(ctx, p.ID)
		case "2":
			s.addMedicineFlow(ctx, u, p)
		case "3":
			s.editMedicineFlow(ctx, p)
		case "4":
			s.deleteMedicineFlow(ctx, p)
		case "5":
			term, ok := s.prompt("Medicine name contains: ")
			if !ok {
				return
			}
			matched, err := s.medicines.Search(ctx, p.ID, term)
			if err != nil {
				s.log.Error(err, "search failed")
				continue
			}
			if len(matched) == 0 {
				s.println("No matches.")
				continue
			}
			for _, m := range matched {
				s.println(formatMedicine(m))
			}
		case "6":
			return
		default:
			s.println("Invalid choice.")
		}
	}
}

func (s *Shell) listMedicines(ctx context.Context, patientID string) {
	meds, err := s.medicines.List(ctx, patientID)
	if err != nil {
		s.log.Error(err, "failed to list medicines")
		return
	}
	if len(meds) == 0 {
		s.println("No medicines.")
		return
	}
	for i, m := range meds {
		s.printf("[%d] %s\n", i+1, formatMedicine(m))
	}
}

// promptMedicineFields gathers and shape-checks the shared add/edit fields.
func (s *Shell) promptMedicineFields() (name, dosage, quantity, expiry string, ok bool) {
	name, ok = s.promptMin("Medicine name (letters only): ", 2)
	if !ok {
		return
	}
	if !validator.IsLettersOnly(name) {
		s.println("Invalid medicine name.")
		return "", "", "", "", false
	}
	dosage, ok = s.prompt("Dosage (e.g. 500mg, 0.2l): ")
	if !ok {
		return
	}
	if !validator.IsValidDosage(dosage) {
		s.println("Invalid dosage. Use <number> mg/g/l.")
		return "", "", "", "", false
	}
	quantity, ok = s.prompt("Quantity: ")
	if !ok {
		return
	}
	expiry, ok = s.prompt("Expiry date (YYYY-MM-DD): ")
	return
}

func (s *Shell) addMedicineFlow(ctx context.Context, u *model.User, p *model.Patient) {
	name, dosage, quantity, expiry, ok := s.promptMedicineFields()
	if !ok {
		return
	}
	if err := s.medicines.Add(ctx, &model.AddMedicineRequest{
		PatientID:  p.ID,
		Name:       name,
		Dosage:     dosage,
		Quantity:   quantity,
		ExpiryDate: expiry,
		AddedBy:    u.Username,
	}); err != nil {
		s.printf("Failed to add medicine: %v\n", err)
		return
	}
	s.println("Medicine added.")
}

func (s *Shell) editMedicineFlow(ctx context.Context, p *model.Patient) {
	s.listMedicines(ctx, p.ID)
	idx, ok := s.promptIndex("Medicine number to edit: ")
	if !ok {
		return
	}
	name, dosage, quantity, expiry, ok := s.promptMedicineFields()
	if !ok {
		return
	}
	updated, err := s.medicines.Edit(ctx, p.ID, idx, &model.EditMedicineRequest{
		Name:       name,
		Dosage:     dosage,
		Quantity:   quantity,
		ExpiryDate: expiry,
	})
	if err != nil {
		s.printf("Failed to edit medicine: %v\n", err)
		return
	}
	if updated {
		s.println("Medicine updated.")
	} else {
		s.println("Invalid medicine number.")
	}
}

func (s *Shell) deleteMedicineFlow(ctx context.Context, p *model.Patient) {
	s.listMedicines(ctx, p.ID)
	idx, ok := s.promptIndex("Medicine number to delete: ")
	if !ok {
		return
	}
	removed, err := s.medicines.Delete(ctx, p.ID, idx)
	if err != nil {
		s.printf("Failed to delete medicine: %v\n", err)
		return
	}
	if removed {
		s.println("Medicine deleted.")
	} else {
		s.println("Invalid medicine number.")
	}
}

func formatMedicine(m *model.Medicine) string {
	return fmt.Sprintf("%s | %s | Qty: %s | Exp: %s", m.Name, m.Dosage, m.Quantity, m.ExpiryDate)
}
