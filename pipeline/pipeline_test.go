package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askcsv-org/askcsv/dataset"
)

// scriptedClient replays canned responses in call order and records the
// prompts it was handed.
type scriptedClient struct {
	replies []scriptedReply
	calls   int
	prompts []string
}

type scriptedReply struct {
	text string
	err  error
}

func (c *scriptedClient) Chat(prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.calls >= len(c.replies) {
		return "", errors.New("no scripted reply left")
	}
	reply := c.replies[c.calls]
	c.calls++
	return reply.text, reply.err
}

func (c *scriptedClient) Model() string { return "scripted" }

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const universityCSV = "university_name,year,Total\nA,2020,100\nB,2020,200\nA,2021,150\n"

func TestAskHappyPath(t *testing.T) {
	path := writeCSV(t, universityCSV)

	client := &scriptedClient{replies: []scriptedReply{
		{text: "AGGREGATE"},
		{text: `{"primary_columns":["year","Total"],"column_types":{"year":"numeric","Total":"numeric"},"reasoning":"averaging"}`},
		{text: `{"tool":"group_and_aggregate","parameters":{"group_col":"year","agg_col":"Total","function":"mean"}}`},
		{text: "The average total is 150 for both 2020 and 2021."},
	}}

	p := New(client, nil)
	answer, err := p.Ask("what is the average total by year?", path)
	require.NoError(t, err)
	assert.Equal(t, "The average total is 150 for both 2020 and 2021.", answer)

	// The synthesis prompt carries the serialized results verbatim.
	require.Len(t, client.prompts, 4)
	assert.Contains(t, client.prompts[3], "mean_Total_by_year")
	assert.Contains(t, client.prompts[3], "150")
}

func TestAskRawEmptyQuestion(t *testing.T) {
	client := &scriptedClient{}
	p := New(client, nil)

	answer, err := p.AskRaw("   \n", "irrelevant.csv")
	require.NoError(t, err)
	assert.Equal(t, "{}", answer.Analysis)
	assert.Equal(t, "No question found to classify. Please ask a question about the data.", answer.Response)
	assert.Zero(t, client.calls, "an empty question never reaches the model")
}

func TestAskLoadFailureIsTerminal(t *testing.T) {
	client := &scriptedClient{}
	p := New(client, nil)

	_, err := p.Ask("anything", filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	var loadErr *dataset.LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Zero(t, client.calls)
}

func TestAskEveryModelCallFails(t *testing.T) {
	path := writeCSV(t, universityCSV)

	client := &scriptedClient{replies: []scriptedReply{
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
	}}

	p := New(client, nil)
	answer, err := p.AskRaw("describe the data", path)
	require.NoError(t, err, "model failures never surface as errors")

	// The classifier fell back to schema describe, so the bundle still has
	// real facts, and the failed synthesis degrades to a diagnostic string.
	assert.Contains(t, answer.Analysis, "dataset_info")
	assert.True(t, strings.HasPrefix(answer.Response, "Response generation error:"), "got %q", answer.Response)
	assert.NotEmpty(t, answer.Response)
}

func TestAskRecordsHistory(t *testing.T) {
	path := writeCSV(t, universityCSV)

	client := &scriptedClient{replies: []scriptedReply{
		{text: "SUMMARY"},
		{text: `{"primary_columns":["Total"]}`},
		{text: `{"tool":"get_info","parameters":{}}`},
		{text: "Three rows across three columns."},
	}}

	p := New(client, nil)
	_, err := p.Ask("what does the data look like?", path)
	require.NoError(t, err)

	history := p.History()
	require.Len(t, history, 1)
	assert.Equal(t, "what does the data look like?", history[0].Question)
	assert.Equal(t, []string{"dataset_info"}, history[0].Results.Keys())
}

func TestTableCachedPerSource(t *testing.T) {
	path := writeCSV(t, universityCSV)

	client := &scriptedClient{replies: []scriptedReply{
		{text: "SUMMARY"},
		{text: `{"primary_columns":["Total"]}`},
		{text: `{"tool":"get_info","parameters":{}}`},
		{text: "first answer"},
		{text: "SUMMARY"},
		{text: `{"primary_columns":["Total"]}`},
		{text: `{"tool":"get_info","parameters":{}}`},
		{text: "second answer"},
	}}

	p := New(client, nil)
	_, err := p.Ask("first", path)
	require.NoError(t, err)

	// Rewriting the file after the first load must not change answers: the
	// table is cached per source.
	require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0o644))

	answer, err := p.AskRaw("second", path)
	require.NoError(t, err)
	assert.Contains(t, answer.Analysis, "university_name")
}
