package curl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
	"github.com/abdul-hamid-achik/rdiff/packages/extraargs"
)

func TestParse_SimpleGet(t *testing.T) {
	parsed, err := Parse(`curl https://api.example.com/users`)
	require.NoError(t, err)

	assert.Equal(t, "GET", parsed.Method)
	assert.Equal(t, "https://api.example.com/users", parsed.URL)
	assert.Equal(t, "get_users", parsed.Name)
}

func TestParse_PostWithData(t *testing.T) {
	parsed, err := Parse(`curl -X POST https://api.example.com/users -d '{"name":"John"}'`)
	require.NoError(t, err)

	assert.Equal(t, "POST", parsed.Method)
	assert.Equal(t, []string{`{"name":"John"}`}, parsed.Data)
}

func TestParse_ImplicitMethods(t *testing.T) {
	parsed, err := Parse(`curl -d "name=John" https://api.example.com/users`)
	require.NoError(t, err)
	assert.Equal(t, "POST", parsed.Method)

	parsed, err = Parse(`curl -G -d "q=go" https://api.example.com/search`)
	require.NoError(t, err)
	assert.Equal(t, "GET", parsed.Method)
	assert.True(t, parsed.Get)
}

func TestParse_HeadersKeepOrder(t *testing.T) {
	parsed, err := Parse(`curl -H "X-B: 2" -H "Authorization: Bearer token123" -H "X-A: 1" https://api.example.com/users`)
	require.NoError(t, err)

	assert.Equal(t, []string{"X-B", "Authorization", "X-A"}, parsed.Headers.Keys())
	assert.Equal(t, "Bearer token123", parsed.Headers.Value("authorization"))
}

func TestParse_Flags(t *testing.T) {
	parsed, err := Parse(`curl -k -L --compressed https://api.example.com`)
	require.NoError(t, err)

	assert.True(t, parsed.Insecure)
	assert.True(t, parsed.FollowRedirects)
	assert.Equal(t, "get_root", parsed.Name)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("curl")
	assert.Error(t, err)

	_, err = Parse("curl -X")
	assert.EqualError(t, err, "missing value for -X")

	_, err = Parse("curl -H 'Accept: */*'")
	assert.EqualError(t, err, "no URL found in curl command")
}

func TestConvertCommand_JSONBody(t *testing.T) {
	p, err := ConvertCommand(`curl -X PATCH -H "Content-Type: application/json" -d '{"title":"foo","userId":1}' "https://jsonplaceholder.typicode.com/posts/1?a=1&b=2"`)
	require.NoError(t, err)

	assert.Equal(t, "PATCH", p.Method)
	assert.Equal(t, "https://jsonplaceholder.typicode.com/posts/1", p.URL)
	assert.Equal(t, map[string]any{"a": "1", "b": "2"}, p.Params)
	assert.Equal(t, "foo", p.BodyMap()["title"])

	req, err := p.Generate(extraargs.ExtraArgs{})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"foo","userId":1}`, string(req.Body))
}

func TestConvertCommand_FormBody(t *testing.T) {
	p, err := ConvertCommand(`curl -d "name=John" -d "age=30" https://api.example.com/users`)
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", p.Headers.Value("Content-Type"))
	assert.Equal(t, map[string]any{"name": "John", "age": "30"}, p.Body)
}

func TestConvertCommand_GetData(t *testing.T) {
	p, err := ConvertCommand(`curl -G --data-urlencode "q=hello world" "https://api.example.com/search?page=2"`)
	require.NoError(t, err)

	assert.Equal(t, "GET", p.Method)
	assert.Equal(t, map[string]any{"q": "hello world", "page": "2"}, p.Params)
	assert.Nil(t, p.Body)
}

func TestConvertCommand_BasicAuth(t *testing.T) {
	p, err := ConvertCommand(`curl -u admin:secret https://api.example.com/admin`)
	require.NoError(t, err)

	assert.Equal(t, "Basic YWRtaW46c2VjcmV0", p.Headers.Value("Authorization"))
}

func TestConvertCommand_BodyShapeErrors(t *testing.T) {
	_, err := ConvertCommand(`curl -H "Content-Type: application/json" -d '[1,2]' https://api.example.com/x`)
	var shapeErr *errdefs.InvalidShapeError
	assert.True(t, errors.As(err, &shapeErr))

	_, err = ConvertCommand(`curl -H "Content-Type: text/plain" -d 'hello' https://api.example.com/x`)
	var ctErr *errdefs.UnsupportedContentTypeError
	assert.True(t, errors.As(err, &ctErr))
}

func TestConvertCommand_InvalidURL(t *testing.T) {
	_, err := ConvertCommand(`curl --url ftp://example.com/file`)
	var urlErr *errdefs.URLParseError
	assert.True(t, errors.As(err, &urlErr))
}

func TestConvertFile(t *testing.T) {
	content := `# exported from the browser
curl https://api.example.com/users

curl -X POST https://api.example.com/users \
  -H "Content-Type: application/json" \
  -d '{"name":"John"}'
curl https://api.example.com/users?page=2
`
	path := filepath.Join(t.TempDir(), "requests.sh")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := ConvertFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"get_users", "get_users_2", "post_users"}, cfg.Names())
	post, ok := cfg.Get("post_users")
	require.True(t, ok)
	assert.Equal(t, "John", post.BodyMap()["name"])
	require.NoError(t, cfg.Validate())
}

func TestIsCommand(t *testing.T) {
	assert.True(t, IsCommand("curl https://x"))
	assert.True(t, IsCommand("  curl -X POST https://x"))
	assert.False(t, IsCommand("https://x/curl"))
	assert.False(t, IsCommand("curly://x"))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{`-X POST -d "hello world"`, []string{"-X", "POST", "-d", "hello world"}},
		{`-H 'Content-Type: application/json'`, []string{"-H", "Content-Type: application/json"}},
		{`-d '{"key": "value"}'`, []string{"-d", `{"key": "value"}`}},
		{`-d 'a\nb'`, []string{"-d", `a\nb`}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tokenize(tt.input), tt.input)
	}
}

func TestGenerateName(t *testing.T) {
	tests := []struct {
		url    string
		method string
		expect string
	}{
		{"https://api.example.com/users", "GET", "get_users"},
		{"https://api.example.com/users/123", "GET", "get_users_123"},
		{"https://api.example.com/", "POST", "post_root"},
		{"https://api.example.com/api/v1/users", "PUT", "put_api_v1_users"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, generateName(tt.url, tt.method))
	}
}
