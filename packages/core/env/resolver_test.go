package env

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestResolverResolve(t *testing.T) {
	t.Setenv("RDIFF_TEST_HOST", "api.example.com")

	tests := []struct {
		name      string
		input     string
		variables map[string]any
		expected  string
	}{
		{
			name:     "no variables",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:      "simple variable",
			input:     "hello {{name}}",
			variables: map[string]any{"name": "world"},
			expected:  "hello world",
		},
		{
			name:      "multiple variables",
			input:     "{{greeting}} {{ name }}!",
			variables: map[string]any{"greeting": "Hello", "name": "World"},
			expected:  "Hello World!",
		},
		{
			name:     "environment variable",
			input:    "https://{{$RDIFF_TEST_HOST}}/todos",
			expected: "https://api.example.com/todos",
		},
		{
			name:     "builtin function",
			input:    "{{base64(user:pass)}}",
			expected: "dXNlcjpwYXNz",
		},
		{
			name:     "unresolved stays as-is",
			input:    "hello {{unknown}}",
			expected: "hello {{unknown}}",
		},
		{
			name:     "unset environment variable stays as-is",
			input:    "{{$RDIFF_TEST_UNSET_VAR}}",
			expected: "{{$RDIFF_TEST_UNSET_VAR}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver()
			r.SetWarnFunc(nil)
			if tt.variables != nil {
				r.SetVariables(tt.variables)
			}

			got := r.Resolve(tt.input)
			if got != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolverGetUnresolvedVariables(t *testing.T) {
	r := NewResolver()
	r.SetWarnFunc(nil)
	r.SetVariable("bar", "middle")

	got := r.GetUnresolvedVariables("{{foo}} and {{bar}} and {{ baz }}")
	if len(got) != 2 || got[0] != "foo" || got[1] != "baz" {
		t.Errorf("GetUnresolvedVariables() = %v, want [foo baz]", got)
	}

	if got := r.GetUnresolvedVariables("plain"); got != nil {
		t.Errorf("GetUnresolvedVariables(plain) = %v, want nil", got)
	}
}

func TestResolverWarnsOnUnresolved(t *testing.T) {
	var warnings []string
	r := NewResolver()
	r.SetWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, format)
	})

	r.Resolve("{{missing}}")

	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
}

func TestResolverExpandNode(t *testing.T) {
	src := `
todo:
  req1:
    url: "https://{{host}}/todos/1"
    headers:
      Authorization: "Bearer {{token}}"
    params:
      page: 2
      tag: "{{tag}}"
`
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(src), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	r := NewResolver()
	r.SetWarnFunc(nil)
	r.SetVariables(map[string]any{"host": "a.example.com", "token": "t0k", "tag": "go"})
	r.ExpandNode(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(out)

	for _, want := range []string{"https://a.example.com/todos/1", "Bearer t0k", "tag: go", "page: 2"} {
		if !strings.Contains(text, want) {
			t.Errorf("expanded document missing %q:\n%s", want, text)
		}
	}
}

func TestResolverClone(t *testing.T) {
	r := NewResolver()
	r.SetVariable("a", "1")

	clone := r.Clone()
	clone.SetVariable("b", "2")

	if !clone.HasVariable("a") {
		t.Error("clone should inherit variables")
	}
	if r.HasVariable("b") {
		t.Error("clone must not write back to the original")
	}
}
