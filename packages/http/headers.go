package http

import (
	"net/http"
	"sort"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
)

// Header is a single name/value pair.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Headers is an ordered header list. Lookups are case-insensitive while the
// original spelling and position of every name is kept.
type Headers []Header

func (h Headers) index(name string) int {
	for i, hdr := range h {
		if strings.EqualFold(hdr.Name, name) {
			return i
		}
	}
	return -1
}

// Get returns the value of the first header matching name.
func (h Headers) Get(name string) (string, bool) {
	if i := h.index(name); i >= 0 {
		return h[i].Value, true
	}
	return "", false
}

// Value is Get without the presence flag.
func (h Headers) Value(name string) string {
	v, _ := h.Get(name)
	return v
}

// Has reports whether a header with the given name exists.
func (h Headers) Has(name string) bool {
	return h.index(name) >= 0
}

// Set replaces the first header matching name in place and drops any later
// duplicates. Unknown names are appended.
func (h *Headers) Set(name, value string) {
	i := h.index(name)
	if i < 0 {
		*h = append(*h, Header{Name: name, Value: value})
		return
	}
	(*h)[i].Value = value
	out := (*h)[:i+1]
	for _, hdr := range (*h)[i+1:] {
		if !strings.EqualFold(hdr.Name, name) {
			out = append(out, hdr)
		}
	}
	*h = out
}

// Add appends a header without touching existing entries.
func (h *Headers) Add(name, value string) {
	*h = append(*h, Header{Name: name, Value: value})
}

// Del removes every header matching name.
func (h *Headers) Del(name string) {
	out := (*h)[:0]
	for _, hdr := range *h {
		if !strings.EqualFold(hdr.Name, name) {
			out = append(out, hdr)
		}
	}
	*h = out
}

// Keys returns header names in order.
func (h Headers) Keys() []string {
	keys := make([]string, len(h))
	for i, hdr := range h {
		keys[i] = hdr.Name
	}
	return keys
}

// Clone returns an independent copy.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	out := make(Headers, len(h))
	copy(out, h)
	return out
}

// Validate checks that every name is a valid token and every value is sendable.
func (h Headers) Validate() error {
	for _, hdr := range h {
		if !httpguts.ValidHeaderFieldName(hdr.Name) || !httpguts.ValidHeaderFieldValue(hdr.Value) {
			return errdefs.NewInvalidHeaderError(hdr.Name, hdr.Value)
		}
	}
	return nil
}

// Map returns the headers as a plain map. Later duplicates win.
func (h Headers) Map() map[string]string {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		m[hdr.Name] = hdr.Value
	}
	return m
}

// apply copies the headers onto a standard library header set.
func (h Headers) apply(dst http.Header) {
	for _, hdr := range h {
		dst.Set(hdr.Name, hdr.Value)
	}
}

// FromHTTPHeader converts a standard library header set into an ordered list.
// net/http does not keep wire order, so names are sorted and multi-valued
// headers produce one entry per value.
func FromHTTPHeader(src http.Header) Headers {
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Headers, 0, len(names))
	for _, name := range names {
		for _, v := range src[name] {
			out = append(out, Header{Name: name, Value: v})
		}
	}
	return out
}
