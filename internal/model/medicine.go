package model

// Medicine belongs to exactly one patient. The ID is assigned at creation
// and is the only handle mutations use; console positions are resolved to
// ids before any edit or delete.
type Medicine struct {
	ID         string `json:"id"`
	PatientID  string `json:"patient_id"`
	Name       string `json:"name"`
	Dosage     string `json:"dosage"`
	Quantity   string `json:"quantity"`
	ExpiryDate string `json:"expiry_date"`
	AddedBy    string `json:"added_by"`
	AddedAt    string `json:"added_at"`
}

type AddMedicineRequest struct {
	PatientID  string `validate:"required"`
	Name       string `validate:"required,letters,min=2"`
	Dosage     string `validate:"required,dosage"`
	Quantity   string `validate:"required,numeric"`
	ExpiryDate string `validate:"required,datetime=2006-01-02"`
	AddedBy    string `validate:"required"`
}

type EditMedicineRequest struct {
	Name       string `validate:"required,letters,min=2"`
	Dosage     string `validate:"required,dosage"`
	Quantity   string `validate:"required,numeric"`
	ExpiryDate string `validate:"required,datetime=2006-01-02"`
}
