package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// EncodeJSON serializes a body object compactly with sorted keys. HTML
// characters are left unescaped.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeQuery renders an object as a query string. Nested objects and
// arrays use bracket notation (a[b]=1, list[0]=x) and keys are emitted in
// sorted order so the result is stable.
func EncodeQuery(obj map[string]any) string {
	var pairs [][2]string
	flatten("", obj, &pairs)

	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p[0]))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p[1]))
	}
	return sb.String()
}

func flatten(prefix string, v any, out *[][2]string) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(joinKey(prefix, k), val[k], out)
		}
	case []any:
		for i, item := range val {
			flatten(joinKey(prefix, strconv.Itoa(i)), item, out)
		}
	default:
		*out = append(*out, [2]string{prefix, scalarString(val)})
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
