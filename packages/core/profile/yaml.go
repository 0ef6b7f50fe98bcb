package profile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
	"github.com/abdul-hamid-achik/rdiff/packages/http"
)

type requestProfileDoc struct {
	Method  string    `yaml:"method"`
	URL     string    `yaml:"url"`
	Params  any       `yaml:"params"`
	Headers yaml.Node `yaml:"headers"`
	Body    any       `yaml:"body"`
}

// UnmarshalYAML decodes a profile keeping the document order of headers.
func (p *RequestProfile) UnmarshalYAML(node *yaml.Node) error {
	var doc requestProfileDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}

	headers, err := decodeHeaders(&doc.Headers)
	if err != nil {
		return err
	}

	*p = RequestProfile{
		Method:  normalizeMethod(doc.Method),
		URL:     doc.URL,
		Params:  normalizeValue(doc.Params),
		Headers: headers,
		Body:    normalizeValue(doc.Body),
	}
	return nil
}

func decodeHeaders(node *yaml.Node) (http.Headers, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errdefs.NewInvalidShapeError("headers", "must be a mapping of name to value")
	}

	headers := make(http.Headers, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, errdefs.NewInvalidShapeError("headers."+key.Value, "must be a scalar value")
		}
		headers.Add(key.Value, value.Value)
	}
	return headers, nil
}

// MarshalYAML writes method and url first, omitting empty params, headers
// and body.
func (p RequestProfile) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	appendScalar(node, "method", p.Method)
	appendScalar(node, "url", p.URL)

	if !isEmptyValue(p.Params) {
		if err := appendValue(node, "params", p.Params); err != nil {
			return nil, err
		}
	}

	if len(p.Headers) > 0 {
		headers := &yaml.Node{Kind: yaml.MappingNode}
		for _, h := range p.Headers {
			appendScalar(headers, h.Name, h.Value)
		}
		node.Content = append(node.Content, keyNode("headers"), headers)
	}

	if !isEmptyValue(p.Body) {
		if err := appendValue(node, "body", p.Body); err != nil {
			return nil, err
		}
	}

	return node, nil
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func appendScalar(node *yaml.Node, key, value string) {
	node.Content = append(node.Content, keyNode(key), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

func appendValue(node *yaml.Node, key string, value any) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	node.Content = append(node.Content, keyNode(key), &v)
	return nil
}

// isEmptyValue reports whether a params or body value is absent, null or an
// empty object.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// normalizeValue converts maps with non-string keys, as produced by some
// decoders, into map[string]any recursively.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return val
	}
}
