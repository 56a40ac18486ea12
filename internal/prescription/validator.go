package prescription

import (
	"strconv"
	"time"

	"github.com/hibaa8/SmartMeds/internal/llm"
)

// SubmitFields are the raw submitted values: strings from the client
// form or from the scan suggestion, possibly user-edited.
type SubmitFields struct {
	Name      string
	Dosage    string
	Frequency string
	Quantity  string
	Days      string
	Refills   string
	LastTaken string
}

// ValidationError names the first offending field. Surfaced to the
// caller as a client error; nothing is persisted when it fires.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "invalid or missing field: " + e.Field
}

// Candidate is a fully-typed record that passed validation and is ready
// for interaction analysis and persistence.
type Candidate struct {
	Name      string
	Dosage    string
	Frequency string
	Quantity  int
	Days      int
	Refills   int
	LastTaken time.Time
}

// ValidateFields coerces and validates raw submitted fields.
//
// Malformed numerics degrade silently to zero so that partial data
// survives submission. A malformed date does NOT get that treatment:
// date corruption is a hard rejection. The asymmetry is deliberate.
func ValidateFields(fields SubmitFields) (*Candidate, error) {
	required := []struct {
		name  string
		value string
	}{
		{"name", fields.Name},
		{"dosage", fields.Dosage},
		{"frequency", fields.Frequency},
		{"quantity", fields.Quantity},
		{"days", fields.Days},
		{"last_taken", fields.LastTaken},
	}

	for _, f := range required {
		if f.value == "" {
			return nil, &ValidationError{Field: f.name}
		}
	}

	lastTaken, err := time.Parse("2006-01-02", fields.LastTaken)
	if err != nil {
		return nil, &ValidationError{Field: "last_taken"}
	}

	return &Candidate{
		Name:      fields.Name,
		Dosage:    llm.CleanDosage(fields.Dosage),
		Frequency: fields.Frequency,
		Quantity:  coerceDigits(fields.Quantity),
		Days:      coerceDigits(fields.Days),
		Refills:   coerceDigits(fields.Refills),
		LastTaken: lastTaken,
	}, nil
}

// coerceDigits accepts only strings composed entirely of digits.
// Anything else, including the empty string, defaults to zero.
func coerceDigits(s string) int {
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
