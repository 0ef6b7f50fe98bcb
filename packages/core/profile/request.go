package profile

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"strings"

	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
	"github.com/abdul-hamid-achik/rdiff/packages/extraargs"
	"github.com/abdul-hamid-achik/rdiff/packages/http"
)

// DefaultMethod is used when a profile does not name one.
const DefaultMethod = "GET"

// Methods lists the verbs a profile may use.
var Methods = []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "CONNECT", "TRACE"}

// Doer sends a generated request.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// RequestProfile is a request template. Params and Body hold decoded
// document values and must be objects once validated.
type RequestProfile struct {
	Method  string
	URL     string
	Params  any
	Headers http.Headers
	Body    any
}

func NewRequestProfile(method, rawURL string, params map[string]any, headers http.Headers, body map[string]any) *RequestProfile {
	p := &RequestProfile{
		Method:  normalizeMethod(method),
		URL:     rawURL,
		Headers: headers,
	}
	if params != nil {
		p.Params = params
	}
	if body != nil {
		p.Body = body
	}
	return p
}

// ParseURL builds a GET profile from a bare URL. The query string is moved
// into Params and removed from the stored URL; for repeated keys the last
// occurrence wins.
func ParseURL(rawURL string) (*RequestProfile, error) {
	u, err := parseAbsoluteURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, err
	}

	params := make(map[string]any)
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, errdefs.NewURLParseError(rawURL, err)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, errdefs.NewURLParseError(rawURL, err)
		}
		params[key] = value
	}
	u.RawQuery = ""
	u.ForceQuery = false

	return NewRequestProfile(DefaultMethod, u.String(), params, nil, nil), nil
}

func parseAbsoluteURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errdefs.NewURLParseError(rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errdefs.NewURLParseError(rawURL, fmt.Errorf("scheme must be http or https"))
	}
	if u.Host == "" {
		return nil, errdefs.NewURLParseError(rawURL, fmt.Errorf("missing host"))
	}
	return u, nil
}

func normalizeMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return DefaultMethod
	}
	return method
}

// Validate checks the method, the URL, the headers and that params and body
// are objects when present.
func (p *RequestProfile) Validate() error {
	if !isKnownMethod(p.Method) {
		return errdefs.NewInvalidShapeError("method", fmt.Sprintf("must be one of %s, got %q", strings.Join(Methods, ", "), p.Method))
	}
	if _, err := parseAbsoluteURL(p.URL); err != nil {
		return err
	}
	if err := requireObject("params", p.Params); err != nil {
		return err
	}
	if err := requireObject("body", p.Body); err != nil {
		return err
	}
	return p.Headers.Validate()
}

func isKnownMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

func requireObject(field string, v any) error {
	switch v.(type) {
	case nil, map[string]any:
		return nil
	case []any:
		return errdefs.NewInvalidShapeError(field, "must be an object but got an array")
	default:
		return errdefs.NewInvalidShapeError(field, fmt.Sprintf("must be an object but got %T", v))
	}
}

// ParamsMap returns the params object, or nil when absent.
func (p *RequestProfile) ParamsMap() map[string]any {
	m, _ := p.Params.(map[string]any)
	return m
}

// BodyMap returns the body object, or nil when absent.
func (p *RequestProfile) BodyMap() map[string]any {
	m, _ := p.Body.(map[string]any)
	return m
}

// Clone returns a copy whose headers and top-level params/body can be
// modified without touching p.
func (p *RequestProfile) Clone() *RequestProfile {
	c := *p
	c.Headers = p.Headers.Clone()
	if m := p.ParamsMap(); m != nil {
		c.Params = maps.Clone(m)
	}
	if m := p.BodyMap(); m != nil {
		c.Body = maps.Clone(m)
	}
	return &c
}

// Generate merges the overrides into a copy of the template and serializes
// it. Headers are applied first, then Content-Type defaults to JSON, then
// query and body overrides. The body encoding follows the final content type.
func (p *RequestProfile) Generate(args extraargs.ExtraArgs) (*http.Request, error) {
	t := p.Clone()
	headers := t.Headers
	query := objectOrEmpty(t.ParamsMap())
	body := objectOrEmpty(t.BodyMap())

	for _, h := range args.Header {
		headers.Set(h.Key, h.Value)
	}
	if err := headers.Validate(); err != nil {
		return nil, err
	}
	if !headers.Has("Content-Type") {
		headers.Set("Content-Type", MediaJSON)
	}

	for _, q := range args.Query {
		query[q.Key] = q.Value
	}
	for _, b := range args.Body {
		body[b.Key] = b.Value
	}

	contentType := headers.Value("Content-Type")
	var encoded []byte
	switch ResolveContentType(contentType) {
	case ContentJSON:
		data, err := EncodeJSON(body)
		if err != nil {
			return nil, fmt.Errorf("encoding json body: %w", err)
		}
		encoded = data
	case ContentForm:
		encoded = []byte(EncodeQuery(body))
	default:
		return nil, errdefs.NewUnsupportedContentTypeError(contentType)
	}

	req := http.NewRequest(t.Method, t.URL).
		SetQuery(EncodeQuery(query)).
		SetBody(encoded)
	req.Headers = headers
	return req, nil
}

// GetURL returns the URL the profile would call, query included, without
// sending anything.
func (p *RequestProfile) GetURL(args extraargs.ExtraArgs) (string, error) {
	req, err := p.Generate(args)
	if err != nil {
		return "", err
	}
	return req.FullURL(), nil
}

// Send generates the request and executes it with client.
func (p *RequestProfile) Send(ctx context.Context, client Doer, args extraargs.ExtraArgs) (*http.Response, error) {
	req, err := p.Generate(args)
	if err != nil {
		return nil, err
	}
	return client.Do(ctx, req)
}

func objectOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return make(map[string]any)
	}
	return m
}
