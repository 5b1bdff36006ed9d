package model

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp format used in all persisted records.
const TimeLayout = "2006-01-02 15:04:05"

// Patient is owned by exactly one doctor. UserUsername links the record to a
// passwordless patient login; empty until the doctor provisions one.
type Patient struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Doctor       string `json:"doctor"`
	UserUsername string `json:"user_username"`
	CreatedAt    string `json:"created_at"`
}

// NewPatientID derives an id from the creation instant, second granularity.
// Two patients created within the same second collide; this is a documented
// limitation of the id scheme, kept for compatibility with existing records.
func NewPatientID(at time.Time) string {
	return fmt.Sprintf("P%d", at.Unix())
}

type AddPatientRequest struct {
	Doctor string `validate:"required"`
	Name   string `validate:"required,letters,min=2"`
}
