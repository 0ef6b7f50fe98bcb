package wizard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
	rhttp "github.com/abdul-hamid-achik/rdiff/packages/http"
)

type scriptedPrompter struct {
	inputs    []string
	selection []string
	asked     []string
	options   []string
}

func (s *scriptedPrompter) Input(prompt string, validate func(string) error) (string, error) {
	for len(s.inputs) > 0 {
		answer := s.inputs[0]
		s.inputs = s.inputs[1:]
		s.asked = append(s.asked, prompt)
		if validate == nil || validate(answer) == nil {
			return answer, nil
		}
	}
	return "", errors.New("no more answers")
}

func (s *scriptedPrompter) MultiSelect(prompt string, options []string) ([]string, error) {
	s.asked = append(s.asked, prompt)
	s.options = options
	return s.selection, nil
}

func staticPreflight(keys ...string) Preflight {
	return func(ctx context.Context, p *profile.RequestProfile) ([]string, error) {
		return keys, nil
	}
}

func TestBuildDiffConfig(t *testing.T) {
	prompter := &scriptedPrompter{
		inputs:    []string{"https://a.example.com/todos/1?x=1", "https://b.example.com/todos/1", "todo"},
		selection: []string{"Date"},
	}
	w := New(prompter, staticPreflight("Content-Type", "Date"))

	cfg, err := w.BuildDiffConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{PromptURL1, PromptURL2, PromptName, PromptSkipHeaders}, prompter.asked)
	assert.Equal(t, []string{"Content-Type", "Date"}, prompter.options)

	p, ok := cfg.Get("todo")
	require.True(t, ok)
	assert.Equal(t, "https://a.example.com/todos/1", p.Req1.URL)
	assert.Equal(t, map[string]any{"x": "1"}, p.Req1.Params)
	assert.Equal(t, []string{"Date"}, p.Resp.SkipHeaders)
	assert.Empty(t, p.Resp.SkipBody)
}

func TestBuildDiffConfig_RetriesInvalidAnswers(t *testing.T) {
	prompter := &scriptedPrompter{
		inputs: []string{"not a url", "https://a.example.com", "ftp://nope", "https://b.example.com", "  ", "ok"},
	}
	w := New(prompter, nil)

	cfg, err := w.BuildDiffConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, cfg.Names())

	p, _ := cfg.Get("ok")
	assert.True(t, p.Resp.IsDefault())
}

func TestBuildDiffConfig_CurlInput(t *testing.T) {
	prompter := &scriptedPrompter{
		inputs: []string{
			`curl -X POST -H "Content-Type: application/json" -d '{"title":"foo"}' https://a.example.com/posts`,
			"https://b.example.com/posts",
			"create",
		},
	}
	w := New(prompter, staticPreflight())

	cfg, err := w.BuildDiffConfig(context.Background())
	require.NoError(t, err)

	p, _ := cfg.Get("create")
	assert.Equal(t, "POST", p.Req1.Method)
	assert.Equal(t, "foo", p.Req1.BodyMap()["title"])
	assert.NotContains(t, prompter.asked, PromptSkipHeaders)
}

func TestBuildDiffConfig_PreflightError(t *testing.T) {
	prompter := &scriptedPrompter{inputs: []string{"https://a.example.com", "https://b.example.com"}}
	failing := func(ctx context.Context, p *profile.RequestProfile) ([]string, error) {
		return nil, errdefs.NewTransportError("GET", p.URL, false, errors.New("connection refused"))
	}

	_, err := New(prompter, failing).BuildDiffConfig(context.Background())

	var transportErr *errdefs.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestBuildRequestConfig(t *testing.T) {
	prompter := &scriptedPrompter{inputs: []string{"https://a.example.com/users?page=2", "users"}}

	cfg, err := New(prompter, nil).BuildRequestConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{PromptURL, PromptName}, prompter.asked)
	p, ok := cfg.Get("users")
	require.True(t, ok)
	assert.Equal(t, "GET", p.Method)
	assert.Equal(t, map[string]any{"page": "2"}, p.Params)

	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "users:")
}

func TestSendPreflight(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Trace", "1")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	p, err := profile.ParseURL(server.URL)
	require.NoError(t, err)

	keys, err := SendPreflight(rhttp.NewClient())(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, keys, "X-Trace")
	assert.Contains(t, keys, "Content-Type")
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("todo"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(" todo"))
}
