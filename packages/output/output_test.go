package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/rdiff/packages/core/runner"
	"github.com/abdul-hamid-achik/rdiff/packages/diff"
	"github.com/abdul-hamid-achik/rdiff/packages/http"
)

func jsonResp(body string) *http.Response {
	return &http.Response{
		Proto:      "HTTP/1.1",
		StatusCode: 200,
		Status:     "200 OK",
		Headers:    http.Headers{{Name: "Content-Type", Value: "application/json"}},
		Body:       []byte(body),
		Duration:   12 * time.Millisecond,
	}
}

func sampleDiff() *runner.DiffResult {
	a := "HTTP/1.1 200 OK\n\n{\n  \"a\": 1\n}"
	b := "HTTP/1.1 200 OK\n\n{\n  \"a\": 2\n}"
	return &runner.DiffResult{
		Name:  "todo",
		Req1:  &runner.Exchange{URL: "http://one/x", Response: jsonResp(`{"a":1}`), Text: a},
		Req2:  &runner.Exchange{URL: "http://two/x", Response: jsonResp(`{"a":2}`), Text: b},
		Hunks: diff.Compute(a, b, diff.DefaultContext),
	}
}

func TestNew(t *testing.T) {
	f, err := New("", Options{NoColor: true})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleFormatter{}, f)

	f, err = New(FormatJSON, Options{})
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	_, err = New("junit", Options{})
	assert.Error(t, err)
}

func TestConsoleFormatter_FormatRequest(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	err := f.FormatRequest(&runner.RequestResult{
		Name:     "todo",
		URL:      "http://localhost/todos/1?a=1",
		Response: jsonResp(`{"id":1,"title":"x"}`),
	})
	require.NoError(t, err)

	expected := "http://localhost/todos/1?a=1\n\n" +
		"HTTP/1.1 200 OK\n" +
		"Content-Type: application/json\n" +
		"\n" +
		"{\n  \"id\": 1,\n  \"title\": \"x\"\n}\n"
	assert.Equal(t, expected, buf.String())
}

func TestConsoleFormatter_FormatRequest_BadJSON(t *testing.T) {
	f := NewConsoleFormatter(WithWriter(&bytes.Buffer{}), WithNoColor(true))

	err := f.FormatRequest(&runner.RequestResult{URL: "http://x", Response: jsonResp(`{`)})
	assert.Error(t, err)
}

func TestConsoleFormatter_FormatDiff(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	require.NoError(t, f.FormatDiff(sampleDiff()))

	out := buf.String()
	assert.Contains(t, out, "--- http://one/x\n")
	assert.Contains(t, out, "+++ http://two/x\n")
	assert.Contains(t, out, "4        |-  \"a\": 1\n")
	assert.Contains(t, out, "    4    |+  \"a\": 2\n")
	assert.Contains(t, out, "1 added, 1 removed")
	assert.NotContains(t, out, "\x1b[")
}

func TestConsoleFormatter_FormatValidation(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	require.NoError(t, f.FormatValidation("rdiff.yaml", 2, nil))
	assert.Contains(t, buf.String(), "rdiff.yaml (2 profiles)")

	buf.Reset()
	require.NoError(t, f.FormatValidation("rdiff.yaml", 2, []error{errors.New("profile bad: nope")}))
	assert.Contains(t, buf.String(), "profile bad: nope")
}

func TestConsoleFormatter_FormatProfiles(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	require.NoError(t, f.FormatProfiles("xreq.yaml", []ProfileSummary{
		{Name: "a", URLs: []string{"http://a"}},
		{Name: "b", URLs: []string{"http://b1", "http://b2"}},
	}))

	expected := "xreq.yaml\n  a\n    http://a\n  b\n    http://b1\n    http://b2\n\n2 profiles\n"
	assert.Equal(t, expected, buf.String())
}

func TestConsoleFormatter_FormatDocumentAndURL(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	require.NoError(t, f.FormatDocument([]byte("---\na: 1")))
	require.NoError(t, f.FormatURL("a", "http://a?x=1"))
	assert.Equal(t, "---\na: 1\nhttp://a?x=1\n", buf.String())
}

func TestJSONFormatter_FormatDiff(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	require.NoError(t, f.FormatDiff(sampleDiff()))

	var out struct {
		Profile string        `json:"profile"`
		Changed bool          `json:"changed"`
		Added   int           `json:"added"`
		Removed int           `json:"removed"`
		Req1    *JSONExchange `json:"req1"`
		Req2    *JSONExchange `json:"req2"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "todo", out.Profile)
	assert.True(t, out.Changed)
	assert.Equal(t, 1, out.Added)
	assert.Equal(t, 1, out.Removed)
	assert.Equal(t, "http://two/x", out.Req2.URL)
	assert.Equal(t, 200, out.Req1.Response.StatusCode)
	assert.Contains(t, buf.String(), `"kind": "delete"`)
}

func TestJSONFormatter_FormatRequest(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	require.NoError(t, f.FormatRequest(&runner.RequestResult{
		Name:     "todo",
		URL:      "http://localhost/todos/1",
		Response: jsonResp(`{"id":1}`),
	}))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "todo", out["profile"])
	resp := out["response"].(map[string]any)
	assert.Equal(t, `{"id":1}`, resp["body"])
	headers := resp["headers"].([]any)
	assert.Equal(t, map[string]any{"name": "Content-Type", "value": "application/json"}, headers[0])
}

func TestJSONFormatter_FormatValidationAndError(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	require.NoError(t, f.FormatValidation("rdiff.yaml", 1, []error{errors.New("boom")}))
	assert.JSONEq(t, `{"source":"rdiff.yaml","valid":false,"profiles":1,"errors":["boom"]}`, buf.String())

	buf.Reset()
	f.FormatError(errors.New("bad"))
	assert.JSONEq(t, `{"error":"bad"}`, buf.String())
}
