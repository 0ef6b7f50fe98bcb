// Package normalize turns HTTP responses into comparable text.
//
// The text is the status line, one "name: value" line per header not in the
// skip-list, a blank line, then the body. JSON object bodies lose their
// skipped top-level keys and are pretty-printed; everything else is kept
// verbatim.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
	"github.com/abdul-hamid-achik/rdiff/packages/http"
)

const defaultProto = "HTTP/1.1"

// FilterText renders resp with the filters of rp applied.
func FilterText(resp *http.Response, rp profile.ResponseProfile) (string, error) {
	body, err := BodyText(resp, rp.SkipBody)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(StatusText(resp))
	sb.WriteString(HeadersText(resp, rp))
	sb.WriteString(body)
	return sb.String(), nil
}

// StatusText returns the protocol and status line, newline terminated.
func StatusText(resp *http.Response) string {
	proto := resp.Proto
	if proto == "" {
		proto = defaultProto
	}
	status := resp.Status
	if status == "" {
		status = strings.TrimSpace(fmt.Sprintf("%d %s", resp.StatusCode, nethttp.StatusText(resp.StatusCode)))
	}
	return proto + " " + status + "\n"
}

// HeadersText returns one line per header that rp does not skip, followed
// by a blank line. Names are matched exactly and case-sensitively against
// the canonical form, e.g. "Content-Length".
func HeadersText(resp *http.Response, rp profile.ResponseProfile) string {
	var sb strings.Builder
	for _, h := range resp.Headers {
		if rp.SkipsHeader(h.Name) {
			continue
		}
		sb.WriteString(h.Name)
		sb.WriteString(": ")
		sb.WriteString(h.Value)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// BodyText returns the body, filtered when the response is declared JSON.
func BodyText(resp *http.Response, skip []string) (string, error) {
	if !resp.IsJSON() {
		return resp.BodyString(), nil
	}
	return FilterJSON(resp.Body, skip)
}

// FilterJSON removes skip keys from a JSON object and pretty-prints it with
// sorted keys. Non-object roots and empty bodies are returned unchanged;
// malformed JSON is a BodyDecodeError.
func FilterJSON(body []byte, skip []string) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return string(body), nil
	}
	if !gjson.ValidBytes(body) {
		return "", errdefs.NewBodyDecodeError(profile.MediaJSON, fmt.Errorf("invalid json"))
	}
	if !gjson.ParseBytes(body).IsObject() {
		return string(body), nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return "", errdefs.NewBodyDecodeError(profile.MediaJSON, err)
	}

	for _, key := range skip {
		delete(obj, key)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
