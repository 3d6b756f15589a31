package pipeline

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/askcsv-org/askcsv/classify"
	"github.com/askcsv-org/askcsv/dataset"
	"github.com/askcsv-org/askcsv/llm"
)

// ============================================================================
// PIPELINE — The single entry point for question answering
// ============================================================================
// Flow: question -> intent classification -> dispatch -> synthesis.
//
// Failure policy, stage by stage:
//   - table load failure is the ONLY terminal error (dataset.LoadError)
//   - classification failures fall back inside the classifier
//   - unresolved columns skip their operation
//   - operation failures become error payloads in the bundle
//   - synthesis failure returns a diagnostic string as the answer
//
// Tables are cached per source and never mutated after load, so concurrent
// Answer calls over the same pipeline are safe.
// ============================================================================

// Answer bundles the raw analysis alongside the synthesized response.
type Answer struct {
	Analysis string `json:"analysis"`
	Response string `json:"response"`
}

// HistoryEntry records one answered question for session auditability.
type HistoryEntry struct {
	Question string  `json:"question"`
	Results  *Bundle `json:"results"`
}

// state threads intermediate products between stages. Each stage writes
// its own field; nothing is recovered by scanning prior output.
type state struct {
	table    *dataset.Table
	decision classify.Decision
	bundle   *Bundle
}

// Pipeline answers natural-language questions about tabular data sources.
type Pipeline struct {
	client     llm.Client
	classifier *classify.Classifier
	log        *zap.SugaredLogger

	mu      sync.Mutex
	tables  map[string]*dataset.Table
	history []HistoryEntry
}

// New creates a Pipeline around a language-model client. A nil logger
// disables logging.
func New(client llm.Client, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{
		client:     client,
		classifier: classify.New(client, log),
		log:        log,
		tables:     make(map[string]*dataset.Table),
	}
}

// Ask answers a question about the data source and returns the answer text.
// The only error it can return is a failed table load.
func (p *Pipeline) Ask(question, source string) (string, error) {
	answer, err := p.AskRaw(question, source)
	if err != nil {
		return "", err
	}
	return answer.Response, nil
}

// AskRaw answers a question and also exposes the serialized results bundle
// for inspection and debugging.
func (p *Pipeline) AskRaw(question, source string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return &Answer{
			Analysis: "{}",
			Response: "No question found to classify. Please ask a question about the data.",
		}, nil
	}

	table, err := p.table(source)
	if err != nil {
		return nil, err
	}

	st := &state{table: table}
	st.decision = p.classifier.Classify(question, st.table)
	st.bundle = Dispatch(st.decision, st.table, p.log)

	p.log.Infow("dispatched operations",
		"intent", st.decision.Category,
		"results", st.bundle.Keys(),
	)

	response := Synthesize(p.client, question, st.bundle, p.log)

	p.mu.Lock()
	p.history = append(p.history, HistoryEntry{Question: question, Results: st.bundle})
	p.mu.Unlock()

	return &Answer{
		Analysis: st.bundle.Serialize(),
		Response: response,
	}, nil
}

// History returns the questions answered so far, in order.
func (p *Pipeline) History() []HistoryEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]HistoryEntry, len(p.history))
	copy(out, p.history)
	return out
}

// table loads a source once and caches it. A reload only happens for a
// source the pipeline has not seen.
func (p *Pipeline) table(source string) (*dataset.Table, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.tables[source]; ok {
		return t, nil
	}
	t, err := dataset.Load(source)
	if err != nil {
		return nil, err
	}
	p.log.Infow("loaded table",
		"source", source,
		"rows", t.RowCount(),
		"columns", len(t.ColumnNames()),
	)
	p.tables[source] = t
	return t, nil
}
