package cmd

import (
	"context"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/extraargs"
	"github.com/abdul-hamid-achik/rdiff/packages/output"
	"github.com/abdul-hamid-achik/rdiff/packages/wizard"
)

// profileFile is a loaded profile document of either flavor.
type profileFile interface {
	profile.Config
	Marshal() ([]byte, error)
}

// flavor binds the commands shared by diff and request profiles to one
// document type.
type flavor struct {
	defaultFile string
	load        func(path string, opts ...profile.LoadOption) (profileFile, error)
	summaries   func(cfg profileFile) []output.ProfileSummary
	build       func(ctx context.Context, w *wizard.Wizard) (profileFile, error)
}

var flavorDiff = flavor{
	defaultFile: profile.DefaultDiffFile,
	load: func(path string, opts ...profile.LoadOption) (profileFile, error) {
		return profile.LoadDiffConfig(path, opts...)
	},
	summaries: func(cfg profileFile) []output.ProfileSummary {
		c := cfg.(*profile.DiffConfig)
		out := make([]output.ProfileSummary, 0, len(c.Profiles))
		for _, name := range c.Names() {
			p, _ := c.Get(name)
			if p == nil {
				continue
			}
			out = append(out, output.ProfileSummary{Name: name, URLs: []string{displayURL(&p.Req1), displayURL(&p.Req2)}})
		}
		return out
	},
	build: func(ctx context.Context, w *wizard.Wizard) (profileFile, error) {
		return w.BuildDiffConfig(ctx)
	},
}

var flavorRequest = flavor{
	defaultFile: profile.DefaultRequestFile,
	load: func(path string, opts ...profile.LoadOption) (profileFile, error) {
		return profile.LoadRequestConfig(path, opts...)
	},
	summaries: func(cfg profileFile) []output.ProfileSummary {
		c := cfg.(*profile.RequestConfig)
		out := make([]output.ProfileSummary, 0, len(c.Profiles))
		for _, name := range c.Names() {
			p, _ := c.Get(name)
			if p == nil {
				continue
			}
			out = append(out, output.ProfileSummary{Name: name, URLs: []string{displayURL(p)}})
		}
		return out
	},
	build: func(ctx context.Context, w *wizard.Wizard) (profileFile, error) {
		return w.BuildRequestConfig(ctx)
	},
}

// displayURL is the URL a profile sends to without overrides, or its raw URL
// when it cannot be generated.
func displayURL(p *profile.RequestProfile) string {
	u, err := p.GetURL(extraargs.ExtraArgs{})
	if err != nil {
		u = p.URL
	}
	return p.Method + " " + u
}
