// Package askcsv answers natural-language questions about CSV datasets.
//
// Usage:
//
//	import "github.com/askcsv-org/askcsv/pipeline"
//
//	p := pipeline.New(llm.NewOllama(llm.Config{Model: "llama3.2"}), log)
//	answer, err := p.Ask("what is the average salary by department?", "data.csv")
//
// The pipeline classifies the question (question type, relevant columns,
// operation selection), executes the chosen data operations locally, and
// synthesizes the answer from the collected results. Every classification
// stage has a documented fallback — the only terminal failure is a dataset
// that cannot be loaded.
//
// All data computation is local; only classification and answer synthesis
// call the language model, through the llm package.
package askcsv
