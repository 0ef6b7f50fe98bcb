package runner

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/diff"
	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
	"github.com/abdul-hamid-achik/rdiff/packages/extraargs"
)

func todoServer(t *testing.T, title string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("X-Request-Id", r.URL.Path)
		_, _ = w.Write([]byte(`{"userId":1,"id":1,"title":"` + title + `","completed":false}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func mustProfile(t *testing.T, url string) *profile.RequestProfile {
	t.Helper()
	p, err := profile.ParseURL(url)
	require.NoError(t, err)
	return p
}

func TestNewRunner(t *testing.T) {
	t.Run("with nil config", func(t *testing.T) {
		r := NewRunner(nil)
		assert.NotNil(t, r)
		assert.NotNil(t, r.client)
		assert.Equal(t, diff.DefaultContext, r.context())
	})

	t.Run("with custom config", func(t *testing.T) {
		r := NewRunner(&Config{
			Timeout: 5 * time.Second,
			Context: 1,
			Headers: map[string]string{"User-Agent": "rdiff-test"},
		})
		assert.NotNil(t, r)
		assert.Equal(t, 1, r.context())
	})
}

func TestRunner_Diff_EndToEnd(t *testing.T) {
	s1 := todoServer(t, "delectus aut autem")
	s2 := todoServer(t, "quis ut nam facilis")

	p := profile.NewDiffProfile(
		mustProfile(t, s1.URL+"/todos/1?a=100"),
		mustProfile(t, s2.URL+"/todos/1?a=100"),
		profile.NewResponseProfile([]string{"Date", "Content-Length"}, []string{"userId"}),
	)
	args, err := extraargs.Parse([]string{"a=1", "%User-Agent=rdiff"})
	require.NoError(t, err)

	result, err := NewRunner(nil).Diff(context.Background(), "todo", p, args)
	require.NoError(t, err)

	assert.Equal(t, "todo", result.Name)
	assert.Equal(t, s1.URL+"/todos/1?a=1", result.Req1.URL)
	assert.Equal(t, s2.URL+"/todos/1?a=1", result.Req2.URL)
	assert.True(t, result.Changed())

	assert.NotContains(t, result.Req1.Text, "Date:")
	assert.NotContains(t, result.Req1.Text, "userId")
	assert.Contains(t, result.Req1.Text, "X-Request-Id: /todos/1\n")
	assert.True(t, strings.HasPrefix(result.Req1.Text, "HTTP/1.1 200 OK\n"))

	added, removed := diff.Stats(result.Hunks)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)

	rendered := diff.Render(result.Hunks, diff.WithColor(false))
	assert.Contains(t, rendered, `|-  "title": "delectus aut autem"`)
	assert.Contains(t, rendered, `|+  "title": "quis ut nam facilis"`)
}

func TestRunner_Diff_IdenticalResponses(t *testing.T) {
	server := todoServer(t, "same")

	p := profile.NewDiffProfile(
		mustProfile(t, server.URL+"/todos/1"),
		mustProfile(t, server.URL+"/todos/1"),
		profile.NewResponseProfile([]string{"Date"}, nil),
	)

	result, err := NewRunner(nil).Diff(context.Background(), "same", p, extraargs.ExtraArgs{})
	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.Equal(t, result.Req1.Text, result.Req2.Text)

	require.Len(t, result.Hunks, 1)
	assert.Len(t, result.Hunks[0].Lines, strings.Count(result.Req1.Text, "\n")+1)
}

func TestRunner_Diff_FailureNamesTarget(t *testing.T) {
	server := todoServer(t, "ok")

	p := profile.NewDiffProfile(
		mustProfile(t, server.URL+"/todos/1"),
		mustProfile(t, "http://127.0.0.1:1/todos/1"),
		profile.ResponseProfile{},
	)

	result, err := NewRunner(&Config{Timeout: 2 * time.Second}).Diff(context.Background(), "broken", p, extraargs.ExtraArgs{})
	require.Error(t, err)
	assert.Nil(t, result)

	var reqErr *errdefs.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "broken", reqErr.Profile)
	assert.Equal(t, TargetReq2, reqErr.Target)

	var transportErr *errdefs.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestRunner_Diff_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()
	fast := todoServer(t, "fast")

	p := profile.NewDiffProfile(
		mustProfile(t, slow.URL),
		mustProfile(t, fast.URL),
		profile.ResponseProfile{},
	)

	_, err := NewRunner(&Config{Timeout: 50 * time.Millisecond}).Diff(context.Background(), "slow", p, extraargs.ExtraArgs{})
	require.Error(t, err)

	var transportErr *errdefs.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, transportErr.Timeout)
}

func TestRunner_Diff_BodyDecodeError(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"broken":`))
	}))
	defer bad.Close()
	good := todoServer(t, "good")

	p := profile.NewDiffProfile(mustProfile(t, bad.URL), mustProfile(t, good.URL), profile.ResponseProfile{})

	_, err := NewRunner(nil).Diff(context.Background(), "decode", p, extraargs.ExtraArgs{})

	var decodeErr *errdefs.BodyDecodeError
	require.ErrorAs(t, err, &decodeErr)

	var reqErr *errdefs.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, TargetReq1, reqErr.Target)
}

func TestRunner_Request(t *testing.T) {
	var gotBody, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody, gotMethod = string(data), r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":101}`))
	}))
	defer server.Close()

	p := profile.NewRequestProfile("POST", server.URL+"/posts", nil, nil, map[string]any{"title": "foo"})
	args, err := extraargs.Parse([]string{"@userId=1"})
	require.NoError(t, err)

	result, err := NewRunner(nil).Request(context.Background(), "create", p, args)
	require.NoError(t, err)

	assert.Equal(t, "create", result.Name)
	assert.Equal(t, server.URL+"/posts", result.URL)
	assert.Equal(t, http.StatusOK, result.Response.StatusCode)
	assert.Equal(t, "POST", gotMethod)
	assert.JSONEq(t, `{"title":"foo","userId":"1"}`, gotBody)
}

func TestRunner_Request_UnsupportedContentType(t *testing.T) {
	p := profile.NewRequestProfile("POST", "http://localhost/x", nil, nil, map[string]any{"a": 1})
	args, err := extraargs.Parse([]string{"%Content-Type=text/plain"})
	require.NoError(t, err)

	_, err = NewRunner(nil).Request(context.Background(), "plain", p, args)

	var ctErr *errdefs.UnsupportedContentTypeError
	require.ErrorAs(t, err, &ctErr)

	var reqErr *errdefs.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, TargetRequest, reqErr.Target)
	assert.True(t, errors.Is(err, ctErr))
}
