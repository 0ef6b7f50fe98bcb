// Package wizard builds profiles from answers to interactive questions.
//
// The wizard only decides what to ask and how answers become profiles. The
// terminal side lives behind the Prompter interface, so every flow can be
// driven by a scripted prompter in tests.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/extraargs"
	"github.com/abdul-hamid-achik/rdiff/packages/import/curl"
)

// Prompter asks the operator for values.
type Prompter interface {
	// Input asks for one line of text. validate, when not nil, is called on
	// every submission and the question is repeated while it fails.
	Input(prompt string, validate func(string) error) (string, error)
	// MultiSelect asks the operator to pick any number of options.
	MultiSelect(prompt string, options []string) ([]string, error)
}

// Preflight sends a request and returns the response header names.
type Preflight func(ctx context.Context, p *profile.RequestProfile) ([]string, error)

// SendPreflight returns a Preflight that sends through client without
// overrides.
func SendPreflight(client profile.Doer) Preflight {
	return func(ctx context.Context, p *profile.RequestProfile) ([]string, error) {
		resp, err := p.Send(ctx, client, extraargs.ExtraArgs{})
		if err != nil {
			return nil, err
		}
		return resp.HeaderKeys(), nil
	}
}

const (
	PromptURL1        = "Url1"
	PromptURL2        = "Url2"
	PromptURL         = "Url"
	PromptName        = "Profile"
	PromptSkipHeaders = "Select response headers to skip"
)

type Wizard struct {
	prompter  Prompter
	preflight Preflight
}

func New(prompter Prompter, preflight Preflight) *Wizard {
	return &Wizard{prompter: prompter, preflight: preflight}
}

// ParseInput turns an answer into a request profile. Answers starting with
// "curl " are read as curl commands, everything else as a URL.
func ParseInput(input string) (*profile.RequestProfile, error) {
	input = strings.TrimSpace(input)
	if curl.IsCommand(input) {
		return curl.ConvertCommand(input)
	}
	return profile.ParseURL(input)
}

// ValidateInput accepts answers ParseInput can turn into a profile.
func ValidateInput(input string) error {
	_, err := ParseInput(input)
	return err
}

// ValidateName accepts non-empty profile names without surrounding spaces.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("profile name must not be empty")
	}
	if strings.TrimSpace(name) != name {
		return errors.New("profile name must not start or end with spaces")
	}
	return nil
}

func (w *Wizard) askRequest(prompt string) (*profile.RequestProfile, error) {
	answer, err := w.prompter.Input(prompt, ValidateInput)
	if err != nil {
		return nil, err
	}
	return ParseInput(answer)
}

// BuildDiffConfig asks for two requests and a profile name, sends the first
// request to learn its response headers and lets the operator pick the
// headers to skip.
func (w *Wizard) BuildDiffConfig(ctx context.Context) (*profile.DiffConfig, error) {
	req1, err := w.askRequest(PromptURL1)
	if err != nil {
		return nil, err
	}
	req2, err := w.askRequest(PromptURL2)
	if err != nil {
		return nil, err
	}

	var headerKeys []string
	if w.preflight != nil {
		headerKeys, err = w.preflight(ctx, req1)
		if err != nil {
			return nil, fmt.Errorf("preflight request: %w", err)
		}
		log.WithField("headers", len(headerKeys)).Debug("preflight complete")
	}

	name, err := w.prompter.Input(PromptName, ValidateName)
	if err != nil {
		return nil, err
	}

	var skip []string
	if len(headerKeys) > 0 {
		skip, err = w.prompter.MultiSelect(PromptSkipHeaders, headerKeys)
		if err != nil {
			return nil, err
		}
	}

	diffProfile := profile.NewDiffProfile(req1, req2, profile.NewResponseProfile(skip, nil))
	cfg := profile.NewDiffConfig(map[string]*profile.DiffProfile{name: diffProfile})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildRequestConfig asks for one request and a profile name.
func (w *Wizard) BuildRequestConfig(ctx context.Context) (*profile.RequestConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, err := w.askRequest(PromptURL)
	if err != nil {
		return nil, err
	}

	name, err := w.prompter.Input(PromptName, ValidateName)
	if err != nil {
		return nil, err
	}

	cfg := profile.NewRequestConfig(map[string]*profile.RequestProfile{name: req})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
