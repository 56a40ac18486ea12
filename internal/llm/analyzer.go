package llm

import (
	"context"
	"log"
	"strings"
)

// AnalysisUnavailable is stored verbatim when the interaction analysis
// could not be produced. The analysis is advisory only, so a failed
// call never blocks the prescription from being saved.
const AnalysisUnavailable = "Interaction analysis could not be completed for this medication. Check with your pharmacist before starting it."

// AnalyzeInteractions asks the model for a short safety summary of the
// new medication against the patient's existing ones. Every failure
// degrades to AnalysisUnavailable.
func AnalyzeInteractions(ctx context.Context, g Generator, newMedication string, existing []string) string {
	prompt := BuildInteractionPrompt(newMedication, existing)

	output, err := g.Generate(ctx, prompt)
	if err != nil {
		log.Printf("ANALYSIS_FAILED medication=%s err=%v", newMedication, err)
		return AnalysisUnavailable
	}

	summary := strings.TrimSpace(output)
	if summary == "" {
		log.Printf("ANALYSIS_EMPTY medication=%s", newMedication)
		return AnalysisUnavailable
	}

	return summary
}
