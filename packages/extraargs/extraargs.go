// Package extraargs parses per-invocation override tokens.
//
// A token has the form <prefix><key>=<value>:
//   - key=value   overrides a query parameter (key must start with a letter)
//   - %key=value  overrides a header
//   - @key=value  overrides a body field
package extraargs

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
)

// Kind is the override target of a token.
type Kind int

const (
	Query Kind = iota
	Header
	Body
)

func (k Kind) String() string {
	switch k {
	case Header:
		return "header"
	case Body:
		return "body"
	default:
		return "query"
	}
}

// KeyVal is one classified override token.
type KeyVal struct {
	Kind  Kind
	Key   string
	Value string
}

// Pair is an ordered key/value override.
type Pair struct {
	Key   string
	Value string
}

// ExtraArgs holds overrides grouped by target, each list in input order.
// Duplicate keys are kept; the merge step applies them in order so the last one wins.
type ExtraArgs struct {
	Query  []Pair
	Header []Pair
	Body   []Pair
}

// IsEmpty reports whether no overrides were given.
func (a ExtraArgs) IsEmpty() bool {
	return len(a.Query) == 0 && len(a.Header) == 0 && len(a.Body) == 0
}

// ParseKeyVal classifies a single override token.
func ParseKeyVal(token string) (KeyVal, error) {
	rawKey, value, found := strings.Cut(token, "=")
	if !found {
		return KeyVal{}, errdefs.NewInvalidOverrideError(token, "expected key=value")
	}
	rawKey = strings.TrimSpace(rawKey)
	value = strings.TrimSpace(value)

	first, size := utf8.DecodeRuneInString(rawKey)
	var kv KeyVal
	switch {
	case rawKey == "":
		return KeyVal{}, errdefs.NewInvalidOverrideError(token, "empty key")
	case first == '@':
		kv = KeyVal{Kind: Body, Key: strings.TrimSpace(rawKey[size:])}
	case first == '%':
		kv = KeyVal{Kind: Header, Key: strings.TrimSpace(rawKey[size:])}
	case unicode.IsLetter(first):
		kv = KeyVal{Kind: Query, Key: rawKey}
	default:
		return KeyVal{}, errdefs.NewInvalidOverrideError(token, "key must start with '@', '%' or a letter")
	}

	if kv.Key == "" {
		return KeyVal{}, errdefs.NewInvalidOverrideError(token, "empty key")
	}
	kv.Value = value
	return kv, nil
}

// Parse classifies every token and groups them by target.
func Parse(tokens []string) (ExtraArgs, error) {
	kvs := make([]KeyVal, 0, len(tokens))
	for _, token := range tokens {
		kv, err := ParseKeyVal(token)
		if err != nil {
			return ExtraArgs{}, err
		}
		kvs = append(kvs, kv)
	}
	return FromKeyVals(kvs), nil
}

// FromKeyVals groups already classified tokens, preserving their order.
func FromKeyVals(kvs []KeyVal) ExtraArgs {
	var args ExtraArgs
	for _, kv := range kvs {
		pair := Pair{Key: kv.Key, Value: kv.Value}
		switch kv.Kind {
		case Header:
			args.Header = append(args.Header, pair)
		case Body:
			args.Body = append(args.Body, pair)
		default:
			args.Query = append(args.Query, pair)
		}
	}
	return args
}
