package llm

import (
	"fmt"
	"strings"
)

// NoConflictPhrase is the sentence the model is instructed to lead with
// when it finds nothing concerning.
const NoConflictPhrase = "No known interactions were found with your current medications"

func BuildStructuringPrompt(ocrText string) string {
	return fmt.Sprintf(`Extract structured prescription details from the following OCR text. Ignore irrelevant text like image credits.

OCR Text:
%s

Return a JSON object with these fields:
- name: (Medication name, capitalize properly)
- dosage: (Just strength, e.g., "500 MG", remove words like "TABLET")
- frequency: (How often to take it, e.g., "Twice daily")
- quantity: (Total count, e.g., "30")
- refills: (Remaining refills, e.g., "2" or "0" if none)
- days: (Calculate how many days the user needs to take this medication: Days = Quantity / Frequency per day)

Ensure the response is a valid JSON object and follows this format:

{
  "name": "Amoxicillin",
  "dosage": "500 MG",
  "frequency": "Twice daily",
  "quantity": "30",
  "refills": "2",
  "days": "15"
}`, ocrText)
}

func BuildInteractionPrompt(newMedication string, existing []string) string {
	current := "none"
	if len(existing) > 0 {
		current = strings.Join(existing, ", ")
	}

	return fmt.Sprintf(`A patient currently takes the following medications: %s.
They are about to start taking: %s.

In at most 100 words and exactly two sentences, answer:
1. Is the new medication safe to start given the current medications?
2. What notable symptoms should the patient watch for?

If there are no known conflicts, start your answer with exactly: "%s."
Do not include disclaimers about your credibility or tell the patient to consult a professional.`,
		current, newMedication, NoConflictPhrase)
}
