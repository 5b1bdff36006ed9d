// Package validator pre-checks the shape of console input before it reaches
// the services. The repositories trust their inputs and do not re-validate.
package validator

import (
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
)

// ValidDays are the canonical weekday codes, in week order.
var ValidDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var (
	lettersRe = regexp.MustCompile(`^[A-Za-z ]+$`)
	alnumRe   = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	dosageRe  = regexp.MustCompile(`(?i)^\d+(\.\d+)? ?(mg|g|l)$`)
	timeRe    = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
)

// Validator wraps go-playground struct validation with the domain rules
// used by the request structs (letters, alnumid, dosage, timehms).
type Validator struct {
	v *playground.Validate
}

func New() *Validator {
	v := playground.New()
	// Registration only fails for blank tags; these are constants.
	_ = v.RegisterValidation("letters", func(fl playground.FieldLevel) bool {
		return IsLettersOnly(fl.Field().String())
	})
	_ = v.RegisterValidation("alnumid", func(fl playground.FieldLevel) bool {
		return IsAlnumUsername(fl.Field().String())
	})
	_ = v.RegisterValidation("dosage", func(fl playground.FieldLevel) bool {
		return IsValidDosage(fl.Field().String())
	})
	_ = v.RegisterValidation("timehms", func(fl playground.FieldLevel) bool {
		return IsValidTimeHMS(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates a request struct against its validate tags.
func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

// IsLettersOnly reports whether text contains only letters and spaces.
func IsLettersOnly(text string) bool {
	return lettersRe.MatchString(text)
}

// IsAlnumUsername reports whether text is a plain alphanumeric identifier.
func IsAlnumUsername(text string) bool {
	return alnumRe.MatchString(text)
}

// IsValidDosage accepts "<number>[.<number>][ ]<unit>" with unit mg, g or l,
// case-insensitive.
func IsValidDosage(text string) bool {
	return dosageRe.MatchString(text)
}

// IsValidTimeHMS accepts a 24-hour HH:MM:SS clock time.
func IsValidTimeHMS(text string) bool {
	if !timeRe.MatchString(text) {
		return false
	}
	_, err := time.Parse("15:04:05", text)
	return err == nil
}

// NormalizeDays folds raw day tokens to canonical 3-letter codes: trimmed,
// title-cased, truncated to three characters, filtered to ValidDays, and
// de-duplicated preserving first occurrence.
func NormalizeDays(days []string) []string {
	seen := make(map[string]bool, len(ValidDays))
	out := []string{}
	for _, d := range days {
		d = strings.TrimSpace(d)
		if len(d) > 3 {
			d = d[:3]
		}
		if d == "" {
			continue
		}
		d = strings.ToUpper(d[:1]) + strings.ToLower(d[1:])
		if !isValidDay(d) || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

func isValidDay(day string) bool {
	for _, d := range ValidDays {
		if d == day {
			return true
		}
	}
	return false
}
