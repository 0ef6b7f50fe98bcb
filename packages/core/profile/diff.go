package profile

import (
	"fmt"
	"slices"
)

// ResponseProfile lists what to drop from a response before comparing it.
// Header names match exactly against the canonical form net/http reports
// ("Content-Length", not "content-length"); body keys are top-level object
// keys.
type ResponseProfile struct {
	SkipHeaders []string `yaml:"skip_headers,omitempty" json:"skip_headers,omitempty"`
	SkipBody    []string `yaml:"skip_body,omitempty" json:"skip_body,omitempty"`
}

func NewResponseProfile(skipHeaders, skipBody []string) ResponseProfile {
	return ResponseProfile{SkipHeaders: skipHeaders, SkipBody: skipBody}
}

// IsDefault reports whether the profile equals the empty filter.
func (r ResponseProfile) IsDefault() bool {
	return len(r.SkipHeaders) == 0 && len(r.SkipBody) == 0
}

// IsZero lets yaml omitempty drop a default filter.
func (r ResponseProfile) IsZero() bool {
	return r.IsDefault()
}

// SkipsHeader reports whether name is in the header skip-list.
func (r ResponseProfile) SkipsHeader(name string) bool {
	return slices.Contains(r.SkipHeaders, name)
}

// DiffProfile is one comparison: two requests sharing a response filter.
type DiffProfile struct {
	Req1 RequestProfile  `yaml:"req1"`
	Req2 RequestProfile  `yaml:"req2"`
	Resp ResponseProfile `yaml:"resp,omitempty"`
}

func NewDiffProfile(req1, req2 *RequestProfile, resp ResponseProfile) *DiffProfile {
	return &DiffProfile{Req1: *req1, Req2: *req2, Resp: resp}
}

func (d *DiffProfile) Validate() error {
	if err := d.Req1.Validate(); err != nil {
		return fmt.Errorf("req1: %w", err)
	}
	if err := d.Req2.Validate(); err != nil {
		return fmt.Errorf("req2: %w", err)
	}
	return nil
}
