package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/rdiff/packages/core/runner"
	"github.com/abdul-hamid-achik/rdiff/packages/diff"
	"github.com/abdul-hamid-achik/rdiff/packages/http"
)

// JSONExchange represents one sent request and its response
type JSONExchange struct {
	URL      string        `json:"url"`
	Response *JSONResponse `json:"response"`
	Text     string        `json:"text,omitempty"`
}

// JSONResponse represents response details
type JSONResponse struct {
	Proto      string        `json:"proto"`
	StatusCode int           `json:"statusCode"`
	Status     string        `json:"status"`
	Headers    []http.Header `json:"headers,omitempty"`
	Body       string        `json:"body,omitempty"`
	Duration   float64       `json:"duration"`
}

// JSONRequestOutput is the document written for a request profile
type JSONRequestOutput struct {
	Profile  string        `json:"profile"`
	URL      string        `json:"url"`
	Response *JSONResponse `json:"response"`
	Duration float64       `json:"duration"`
}

// JSONDiffOutput is the document written for a diff profile
type JSONDiffOutput struct {
	Profile  string        `json:"profile"`
	Changed  bool          `json:"changed"`
	Added    int           `json:"added"`
	Removed  int           `json:"removed"`
	Req1     *JSONExchange `json:"req1"`
	Req2     *JSONExchange `json:"req2"`
	Hunks    []diff.Hunk   `json:"hunks"`
	Duration float64       `json:"duration"`
}

// JSONValidation is the document written by validate
type JSONValidation struct {
	Source   string   `json:"source"`
	Valid    bool     `json:"valid"`
	Profiles int      `json:"profiles"`
	Errors   []string `json:"errors,omitempty"`
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func jsonResponse(resp *http.Response) *JSONResponse {
	if resp == nil {
		return nil
	}
	return &JSONResponse{
		Proto:      resp.Proto,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Headers,
		Body:       resp.BodyString(),
		Duration:   float64(resp.Duration.Milliseconds()),
	}
}

func jsonExchange(ex *runner.Exchange) *JSONExchange {
	return &JSONExchange{
		URL:      ex.URL,
		Response: jsonResponse(ex.Response),
		Text:     ex.Text,
	}
}

func (f *JSONFormatter) FormatRequest(result *runner.RequestResult) error {
	return f.encode(JSONRequestOutput{
		Profile:  result.Name,
		URL:      result.URL,
		Response: jsonResponse(result.Response),
		Duration: float64(result.Duration.Milliseconds()),
	})
}

func (f *JSONFormatter) FormatDiff(result *runner.DiffResult) error {
	added, removed := diff.Stats(result.Hunks)
	hunks := result.Hunks
	if hunks == nil {
		hunks = []diff.Hunk{}
	}
	return f.encode(JSONDiffOutput{
		Profile:  result.Name,
		Changed:  result.Changed(),
		Added:    added,
		Removed:  removed,
		Req1:     jsonExchange(result.Req1),
		Req2:     jsonExchange(result.Req2),
		Hunks:    hunks,
		Duration: float64(result.Duration.Milliseconds()),
	})
}

func (f *JSONFormatter) FormatURL(name, url string) error {
	return f.encode(map[string]string{"profile": name, "url": url})
}

// FormatDocument writes the serialized config as a JSON string field, so the
// output stays a single JSON document.
func (f *JSONFormatter) FormatDocument(data []byte) error {
	return f.encode(map[string]string{"document": string(data)})
}

func (f *JSONFormatter) FormatProfiles(source string, profiles []ProfileSummary) error {
	if profiles == nil {
		profiles = []ProfileSummary{}
	}
	return f.encode(struct {
		Source   string           `json:"source"`
		Profiles []ProfileSummary `json:"profiles"`
	}{source, profiles})
}

func (f *JSONFormatter) FormatValidation(source string, count int, errs []error) error {
	out := JSONValidation{Source: source, Valid: len(errs) == 0, Profiles: count}
	for _, err := range errs {
		out.Errors = append(out.Errors, err.Error())
	}
	return f.encode(out)
}

func (f *JSONFormatter) FormatError(err error) {
	_ = f.encode(map[string]string{"error": err.Error()})
}
