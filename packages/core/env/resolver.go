package env

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/rdiff/packages/builtin"
)

var variablePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// WarnFunc is a function type for handling warnings
type WarnFunc func(format string, args ...any)

// Resolver expands {{...}} expressions: {{$VAR}} reads the process
// environment, {{fn(args)}} calls a builtin and {{name}} looks up a
// variable loaded from dotenv files. Unresolved expressions are left as-is.
type Resolver struct {
	mu        sync.RWMutex
	variables map[string]any
	funcs     *builtin.Registry
	warnFunc  WarnFunc
}

func NewResolver() *Resolver {
	return &Resolver{
		variables: make(map[string]any),
		funcs:     builtin.NewRegistry(),
		warnFunc:  log.Warnf,
	}
}

// SetWarnFunc sets a function to be called when warnings occur (e.g., unresolved variables)
func (r *Resolver) SetWarnFunc(fn WarnFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnFunc = fn
}

func (r *Resolver) warn(format string, args ...any) {
	r.mu.RLock()
	fn := r.warnFunc
	r.mu.RUnlock()
	if fn != nil {
		fn(format, args...)
	}
}

func (r *Resolver) SetVariables(vars map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range vars {
		r.variables[k] = v
	}
}

func (r *Resolver) SetVariable(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variables[name] = value
}

func (r *Resolver) lookup(expr string) (string, bool) {
	if strings.HasPrefix(expr, "$") {
		val, ok := os.LookupEnv(expr[1:])
		return val, ok
	}

	if strings.Contains(expr, "(") {
		if result, ok := r.funcs.Call(expr); ok {
			return fmt.Sprintf("%v", result), true
		}
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if val, ok := r.variables[expr]; ok {
		return fmt.Sprintf("%v", val), true
	}
	return "", false
}

func (r *Resolver) Resolve(input string) string {
	return variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])
		if val, ok := r.lookup(expr); ok {
			return val
		}
		r.warn("unresolved expression: {{%s}}", expr)
		return match
	})
}

// GetUnresolvedVariables returns the expressions in input that Resolve
// would leave untouched, in order of appearance.
func (r *Resolver) GetUnresolvedVariables(input string) []string {
	var unresolved []string
	for _, m := range variablePattern.FindAllStringSubmatch(input, -1) {
		expr := strings.TrimSpace(m[1])
		if _, ok := r.lookup(expr); !ok {
			unresolved = append(unresolved, expr)
		}
	}
	return unresolved
}

// ExpandNode resolves expressions in every string scalar of a YAML tree,
// mapping keys included. Non-string scalars are left alone and expanded
// values stay strings.
func (r *Resolver) ExpandNode(node *yaml.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!str" || node.Tag == "" {
			node.Value = r.Resolve(node.Value)
		}
	case yaml.AliasNode:
		// aliases share the anchored node, which is expanded where it is defined
	default:
		for _, child := range node.Content {
			r.ExpandNode(child)
		}
	}
}

func (r *Resolver) HasVariable(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.variables[name]
	return ok
}

func (r *Resolver) Clone() *Resolver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewResolver()
	clone.warnFunc = r.warnFunc
	for k, v := range r.variables {
		clone.variables[k] = v
	}
	return clone
}
