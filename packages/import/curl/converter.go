// Package curl converts curl command lines into request profiles.
package curl

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
	"github.com/abdul-hamid-achik/rdiff/packages/http"
)

// Prefix marks interactive input that should be read as a curl command
// instead of a bare URL.
const Prefix = "curl "

// ParsedCurl represents a parsed curl command.
type ParsedCurl struct {
	Method          string
	URL             string
	Headers         http.Headers
	Data            []string
	Get             bool
	BasicAuth       string
	Insecure        bool
	FollowRedirects bool
	Name            string
}

// IsCommand reports whether input looks like a curl command line.
func IsCommand(input string) bool {
	input = strings.TrimSpace(input)
	return strings.HasPrefix(input, Prefix) || input == "curl"
}

// ConvertCommand converts a single curl command to a request profile.
func ConvertCommand(curlCmd string) (*profile.RequestProfile, error) {
	parsed, err := Parse(curlCmd)
	if err != nil {
		return nil, err
	}
	return ToProfile(parsed)
}

// ConvertFile converts a file of curl commands, one per line with backslash
// continuations, into a request config keyed by generated names.
func ConvertFile(path string) (*profile.RequestConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var commands []string
	var currentCmd strings.Builder
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Handle line continuations
		if strings.HasSuffix(line, "\\") {
			currentCmd.WriteString(strings.TrimSuffix(line, "\\"))
			currentCmd.WriteString(" ")
			continue
		}

		currentCmd.WriteString(line)
		commands = append(commands, currentCmd.String())
		currentCmd.Reset()
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Handle any remaining command
	if currentCmd.Len() > 0 {
		commands = append(commands, currentCmd.String())
	}

	profiles := make(map[string]*profile.RequestProfile, len(commands))
	for i, cmd := range commands {
		parsed, err := Parse(cmd)
		if err != nil {
			return nil, fmt.Errorf("failed to convert command %d: %w", i+1, err)
		}
		p, err := ToProfile(parsed)
		if err != nil {
			return nil, fmt.Errorf("failed to convert command %d: %w", i+1, err)
		}
		profiles[uniqueName(profiles, parsed.Name)] = p
	}

	return profile.NewRequestConfig(profiles), nil
}

func uniqueName(taken map[string]*profile.RequestProfile, name string) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// Parse parses a curl command string into a ParsedCurl struct.
func Parse(curlCmd string) (*ParsedCurl, error) {
	parsed := &ParsedCurl{}
	explicitMethod := ""

	// Normalize the command
	curlCmd = strings.TrimSpace(curlCmd)

	// Remove "curl" prefix if present
	if strings.HasPrefix(curlCmd, Prefix) {
		curlCmd = strings.TrimPrefix(curlCmd, Prefix)
	} else if curlCmd == "curl" {
		return nil, fmt.Errorf("no URL specified")
	}

	// Tokenize the command respecting quotes
	tokens := tokenize(curlCmd)

	i := 0
	for i < len(tokens) {
		token := tokens[i]

		value := func() (string, error) {
			if i+1 < len(tokens) {
				return tokens[i+1], nil
			}
			return "", fmt.Errorf("missing value for %s", token)
		}

		switch token {
		case "-X", "--request":
			v, err := value()
			if err != nil {
				return nil, err
			}
			explicitMethod = strings.ToUpper(v)
			i += 2

		case "-H", "--header":
			v, err := value()
			if err != nil {
				return nil, err
			}
			if key, val, ok := strings.Cut(v, ":"); ok {
				parsed.Headers.Set(strings.TrimSpace(key), strings.TrimSpace(val))
			}
			i += 2

		case "-d", "--data", "--data-raw", "--data-binary", "--data-urlencode":
			v, err := value()
			if err != nil {
				return nil, err
			}
			parsed.Data = append(parsed.Data, v)
			i += 2

		case "--json":
			v, err := value()
			if err != nil {
				return nil, err
			}
			parsed.Data = append(parsed.Data, v)
			parsed.Headers.Set("Content-Type", profile.MediaJSON)
			parsed.Headers.Set("Accept", profile.MediaJSON)
			i += 2

		case "-G", "--get":
			parsed.Get = true
			i++

		case "-u", "--user":
			v, err := value()
			if err != nil {
				return nil, err
			}
			parsed.BasicAuth = v
			i += 2

		case "-k", "--insecure":
			parsed.Insecure = true
			i++

		case "-L", "--location":
			parsed.FollowRedirects = true
			i++

		case "-A", "--user-agent":
			v, err := value()
			if err != nil {
				return nil, err
			}
			parsed.Headers.Set("User-Agent", v)
			i += 2

		case "-e", "--referer":
			v, err := value()
			if err != nil {
				return nil, err
			}
			parsed.Headers.Set("Referer", v)
			i += 2

		case "-b", "--cookie":
			v, err := value()
			if err != nil {
				return nil, err
			}
			parsed.Headers.Set("Cookie", v)
			i += 2

		case "--url":
			v, err := value()
			if err != nil {
				return nil, err
			}
			parsed.URL = v
			i += 2

		default:
			switch {
			case strings.HasPrefix(token, "-"):
				// Skip unknown flags with potential values
				if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") && !isURL(tokens[i+1]) {
					i += 2
				} else {
					i++
				}
			default:
				// This should be the URL
				if parsed.URL == "" && isURL(token) {
					parsed.URL = token
				}
				i++
			}
		}
	}

	if parsed.URL == "" {
		return nil, fmt.Errorf("no URL found in curl command")
	}

	switch {
	case explicitMethod != "":
		parsed.Method = explicitMethod
	case len(parsed.Data) > 0 && !parsed.Get:
		// data without -X implies POST
		parsed.Method = "POST"
	default:
		parsed.Method = profile.DefaultMethod
	}

	// Generate a name from the URL
	parsed.Name = sanitizeName(generateName(parsed.URL, parsed.Method))

	return parsed, nil
}

// ToProfile converts a ParsedCurl into a request profile. Query strings
// become params, -u becomes an Authorization header and the data becomes a
// JSON or form body depending on the Content-Type. With -G the data is sent
// as query params instead.
func ToProfile(parsed *ParsedCurl) (*profile.RequestProfile, error) {
	p, err := profile.ParseURL(parsed.URL)
	if err != nil {
		return nil, err
	}
	p.Method = parsed.Method
	p.Headers = parsed.Headers.Clone()

	if parsed.BasicAuth != "" && !p.Headers.Has("Authorization") {
		token := base64.StdEncoding.EncodeToString([]byte(parsed.BasicAuth))
		p.Headers.Set("Authorization", "Basic "+token)
	}

	if len(parsed.Data) > 0 {
		data := strings.Join(parsed.Data, "&")
		if parsed.Get {
			params := p.ParamsMap()
			if params == nil {
				params = make(map[string]any)
			}
			fields, err := formFields(data)
			if err != nil {
				return nil, err
			}
			for k, v := range fields {
				params[k] = v
			}
			p.Params = params
		} else {
			body, err := bodyObject(p, data)
			if err != nil {
				return nil, err
			}
			p.Body = body
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func bodyObject(p *profile.RequestProfile, data string) (map[string]any, error) {
	contentType, hasContentType := p.Headers.Get("Content-Type")
	if hasContentType && profile.ResolveContentType(contentType) == profile.ContentForm {
		return formFields(data)
	}

	var obj map[string]any
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&obj); err == nil && obj != nil {
		return obj, nil
	}

	if hasContentType {
		if profile.ResolveContentType(contentType) == profile.ContentJSON {
			return nil, errdefs.NewInvalidShapeError("body", "curl data is not a JSON object")
		}
		return nil, errdefs.NewUnsupportedContentTypeError(contentType)
	}

	// curl sends bare -d data as a form
	fields, err := formFields(data)
	if err != nil {
		return nil, err
	}
	p.Headers.Set("Content-Type", profile.MediaForm)
	return fields, nil
}

func formFields(data string) (map[string]any, error) {
	values, err := url.ParseQuery(data)
	if err != nil {
		return nil, errdefs.NewInvalidShapeError("body", fmt.Sprintf("curl data is not form encoded: %v", err))
	}
	fields := make(map[string]any, len(values))
	for k, v := range values {
		// last occurrence wins, as with override tokens
		fields[k] = v[len(v)-1]
	}
	return fields, nil
}

// tokenize splits a curl command into tokens, respecting quotes.
func tokenize(cmd string) []string {
	var tokens []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false
	escaped := false

	for _, r := range cmd {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}

		switch r {
		case '\\':
			if inSingleQuote {
				current.WriteRune(r)
			} else {
				escaped = true
			}
		case '\'':
			if !inDoubleQuote {
				inSingleQuote = !inSingleQuote
			} else {
				current.WriteRune(r)
			}
		case '"':
			if !inSingleQuote {
				inDoubleQuote = !inDoubleQuote
			} else {
				current.WriteRune(r)
			}
		case ' ', '\t', '\n':
			if inSingleQuote || inDoubleQuote {
				current.WriteRune(r)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isURL checks if a string looks like a URL.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "{{")
}

var urlPath = regexp.MustCompile(`https?://[^/]+(/[^?#]*)?`)

// generateName generates a request name from the URL and method.
func generateName(rawURL, method string) string {
	matches := urlPath.FindStringSubmatch(rawURL)

	path := "/"
	if len(matches) > 1 && matches[1] != "" {
		path = matches[1]
	}

	// Clean up the path for a name
	path = strings.Trim(path, "/")
	if path == "" {
		path = "root"
	}

	// Replace path separators and other characters
	path = strings.ReplaceAll(path, "/", "_")
	path = strings.ReplaceAll(path, "-", "_")

	return strings.ToLower(method) + "_" + path
}

var nonIdentifier = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// sanitizeName sanitizes a name for use as an identifier.
func sanitizeName(name string) string {
	// Replace non-alphanumeric characters with underscores
	result := nonIdentifier.ReplaceAllString(name, "_")

	// Remove leading/trailing underscores
	return strings.Trim(result, "_")
}
