package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/askcsv-org/askcsv/llm"
)

// ============================================================================
// ANSWER SYNTHESIZER — Results Bundle → natural-language answer
// ============================================================================
// The prompt pins the model to the bundle: only facts present in the
// serialized results may appear in the answer, and exact counts must be
// reported verbatim. A failed model call degrades to a literal diagnostic
// string — this is the pipeline's terminal stage and must always produce
// caller-visible text.
// ============================================================================

const synthesisPrompt = `You are a data analyst providing insights to a user. You MUST base your response ONLY on the provided analysis results. Do NOT make up or guess any information.

User Question: %s
Analysis Results: %s

IMPORTANT:
- Use ONLY the numbers and facts from the Analysis Results
- If the analysis results contain specific data like match counts or records, report those exact numbers
- Do NOT add information not present in the analysis results
- If the analysis results show search matches, report the exact number of matches found

Provide a clear, concise response that directly answers the question using only the provided data.`

// Synthesize turns the bundle into answer text for the original question.
func Synthesize(client llm.Client, question string, bundle *Bundle, log *zap.SugaredLogger) string {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	prompt := fmt.Sprintf(synthesisPrompt, question, bundle.Serialize())

	response, err := client.Chat(prompt)
	if err != nil {
		log.Warnw("answer synthesis failed", "error", err)
		return fmt.Sprintf("Response generation error: %v", err)
	}
	return response
}
