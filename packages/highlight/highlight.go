// Package highlight colors text for terminals with chroma lexers.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	// DefaultTheme is used for bodies when no theme is configured.
	DefaultTheme = "monokai"
	// HeaderTheme is used for status and header blocks.
	HeaderTheme = "github"
	// Formatter is the chroma formatter used for terminal output.
	Formatter = "terminal256"
)

// Text colors text with the lexer named by format ("json", "yaml", "html",
// a media type such as "application/json", or a file name). Unknown formats
// fall back to plain text; unknown themes fall back to the chroma default.
func Text(text, format, theme string) (string, error) {
	if theme == "" {
		theme = DefaultTheme
	}

	lexer := chroma.Coalesce(lexerFor(format))
	style := styles.Get(theme)
	formatter := formatters.Get(Formatter)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := formatter.Format(&sb, style, iterator); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func lexerFor(format string) chroma.Lexer {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return lexers.Fallback
	}
	if strings.Contains(format, "/") {
		if l := lexers.MatchMimeType(format); l != nil {
			return l
		}
		_, sub, _ := strings.Cut(format, "/")
		format = strings.TrimPrefix(sub, "x-")
		if i := strings.LastIndex(format, "+"); i >= 0 {
			format = format[i+1:]
		}
	}
	if l := lexers.Get(format); l != nil {
		return l
	}
	return lexers.Fallback
}

// Themes returns the available style names.
func Themes() []string {
	return styles.Names()
}
