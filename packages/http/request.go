package http

import (
	neturl "net/url"
	"strings"
	"time"
)

// Request is a fully generated HTTP call: the base URL carries no query, the
// encoded query string and the serialized body are kept separately.
type Request struct {
	Method  string
	URL     string
	Query   string
	Headers Headers
	Body    []byte
	Timeout time.Duration
}

func NewRequest(method, requestURL string) *Request {
	return &Request{
		Method: method,
		URL:    requestURL,
	}
}

func (r *Request) SetHeader(key, value string) *Request {
	r.Headers.Set(key, value)
	return r
}

func (r *Request) SetBody(body []byte) *Request {
	r.Body = body
	return r
}

func (r *Request) SetTimeout(d time.Duration) *Request {
	r.Timeout = d
	return r
}

func (r *Request) SetQuery(encoded string) *Request {
	r.Query = encoded
	return r
}

// FullURL returns the URL with the encoded query merged into any query it
// already has. Fragments stay after the query.
func (r *Request) FullURL() string {
	if r.Query == "" {
		return r.URL
	}
	u, err := neturl.Parse(r.URL)
	if err != nil {
		sep := "?"
		if strings.Contains(r.URL, "?") {
			sep = "&"
		}
		return r.URL + sep + r.Query
	}
	if u.RawQuery != "" {
		u.RawQuery += "&" + r.Query
	} else {
		u.RawQuery = r.Query
	}
	u.ForceQuery = false
	return u.String()
}
