package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// MedicationRecord is the transient structured output of the scan
// pipeline. Every field is a string at this boundary: the model's
// numeric fields may be malformed and are never trusted until the
// validator coerces them.
type MedicationRecord struct {
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Frequency string     `json:"frequency"`
	Quantity  FlexString `json:"quantity"`
	Refills   FlexString `json:"refills"`
	Days      FlexString `json:"days"`
}

// FlexString accepts both "30" and 30 from the model.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// StructuringError wraps every failure mode of the structuring step so
// the orchestrator never sees a raw transport or JSON error.
type StructuringError struct {
	Reason string
	Err    error
}

func (e *StructuringError) Error() string {
	if e.Err != nil {
		return "structuring failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "structuring failed: " + e.Reason
}

func (e *StructuringError) Unwrap() error { return e.Err }

// ParseMedication runs OCR text through the model and returns either a
// well-formed record or a StructuringError, never partial output.
func ParseMedication(ctx context.Context, g Generator, ocrText string) (*MedicationRecord, error) {
	if strings.TrimSpace(ocrText) == "" {
		return nil, &StructuringError{Reason: "empty OCR text"}
	}

	output, err := g.Generate(ctx, BuildStructuringPrompt(ocrText))
	if err != nil {
		return nil, &StructuringError{Reason: "model call failed", Err: err}
	}

	record, err := decodeRecord(output)
	if err != nil {
		return nil, err
	}

	record.Dosage = CleanDosage(record.Dosage)
	return record, nil
}

// decodeRecord tries a strict JSON parse first and only then falls back
// to stripping Markdown code fences.
func decodeRecord(output string) (*MedicationRecord, error) {
	candidates := []string{
		strings.TrimSpace(output),
		stripFences(output),
	}

	for _, candidate := range candidates {
		var record MedicationRecord
		if err := json.Unmarshal([]byte(candidate), &record); err == nil {
			return &record, nil
		}
	}

	return nil, &StructuringError{Reason: "non-JSON output"}
}

// stripFences removes ```json / ``` wrapping the model sometimes adds.
func stripFences(output string) string {
	s := strings.TrimSpace(output)

	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// The opening fence may carry a language tag: ```json
	if idx := strings.Index(s, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine == "json" || firstLine == "" || !strings.ContainsAny(firstLine, "{[") {
			s = s[idx+1:]
		}
	} else {
		s = strings.TrimPrefix(s, "json")
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// CleanDosage removes the "TABLET" artifact the OCR+LLM combination
// tends to leave in dosage strings.
func CleanDosage(dosage string) string {
	cleaned := strings.ReplaceAll(dosage, "TABLET", "")
	return strings.TrimSpace(cleaned)
}
