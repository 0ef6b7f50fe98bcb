package http

import (
	"strings"
	"time"
)

type Response struct {
	Proto      string
	StatusCode int
	Status     string
	Headers    Headers
	Body       []byte
	Duration   time.Duration
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

func (r *Response) Header(key string) string {
	return r.Headers.Value(key)
}

// HeaderKeys returns the response header names in the order they are rendered.
func (r *Response) HeaderKeys() []string {
	return r.Headers.Keys()
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

// MediaType returns the content type without parameters, lowercased.
func (r *Response) MediaType() string {
	return MediaType(r.ContentType())
}

func (r *Response) IsJSON() bool {
	return r.MediaType() == "application/json"
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}

// MediaType strips parameters such as charset from a Content-Type value.
func MediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
