package runner

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/diff"
	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
	"github.com/abdul-hamid-achik/rdiff/packages/extraargs"
	"github.com/abdul-hamid-achik/rdiff/packages/http"
	"github.com/abdul-hamid-achik/rdiff/packages/normalize"
)

const (
	// DefaultTimeout bounds every HTTP call when no timeout is configured
	DefaultTimeout = 30 * time.Second

	TargetReq1    = "req1"
	TargetReq2    = "req2"
	TargetRequest = "request"
)

type Runner struct {
	client profile.Doer
	config *Config
}

type Config struct {
	Timeout        time.Duration
	FollowRedirect bool
	MaxRedirects   int
	Insecure       bool
	Proxy          string
	Headers        map[string]string
	Context        int
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{FollowRedirect: true}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clientOpts := []http.ClientOption{
		http.WithTimeout(timeout),
		http.WithFollowRedirects(cfg.FollowRedirect),
		http.WithValidateSSL(!cfg.Insecure),
	}
	if cfg.MaxRedirects > 0 {
		clientOpts = append(clientOpts, http.WithMaxRedirects(cfg.MaxRedirects))
	}
	if cfg.Proxy != "" {
		clientOpts = append(clientOpts, http.WithProxy(cfg.Proxy))
	}
	if len(cfg.Headers) > 0 {
		clientOpts = append(clientOpts, http.WithDefaultHeaders(cfg.Headers))
	}

	return NewRunnerWithClient(http.NewClient(clientOpts...), cfg)
}

// NewRunnerWithClient returns a runner that sends through client.
func NewRunnerWithClient(client profile.Doer, cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Runner{client: client, config: cfg}
}

func (r *Runner) context() int {
	if r.config.Context > 0 {
		return r.config.Context
	}
	return diff.DefaultContext
}

// Exchange is one sent request and its normalized response.
type Exchange struct {
	URL      string
	Response *http.Response
	Text     string
}

type DiffResult struct {
	Name     string
	Req1     *Exchange
	Req2     *Exchange
	Hunks    []diff.Hunk
	Duration time.Duration
}

// Changed reports whether the normalized responses differ.
func (r *DiffResult) Changed() bool {
	return diff.HasChanges(r.Hunks)
}

type RequestResult struct {
	Name     string
	URL      string
	Response *http.Response
	Duration time.Duration
}

// Diff sends req1 and req2 of p concurrently, normalizes both responses with
// p.Resp and diffs them. If either side fails the other is cancelled and no
// result is returned.
func (r *Runner) Diff(ctx context.Context, name string, p *profile.DiffProfile, args extraargs.ExtraArgs) (*DiffResult, error) {
	start := time.Now()
	result := &DiffResult{Name: name}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ex, err := r.exchange(gctx, &p.Req1, args, p.Resp)
		if err != nil {
			return errdefs.NewRequestError(name, TargetReq1, err)
		}
		result.Req1 = ex
		return nil
	})
	g.Go(func() error {
		ex, err := r.exchange(gctx, &p.Req2, args, p.Resp)
		if err != nil {
			return errdefs.NewRequestError(name, TargetReq2, err)
		}
		result.Req2 = ex
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Hunks = diff.Compute(result.Req1.Text, result.Req2.Text, r.context())
	result.Duration = time.Since(start)

	added, removed := diff.Stats(result.Hunks)
	log.WithFields(log.Fields{
		"profile":  name,
		"added":    added,
		"removed":  removed,
		"duration": result.Duration,
	}).Debug("diff complete")

	return result, nil
}

func (r *Runner) exchange(ctx context.Context, p *profile.RequestProfile, args extraargs.ExtraArgs, rp profile.ResponseProfile) (*Exchange, error) {
	req, err := p.Generate(args)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	text, err := normalize.FilterText(resp, rp)
	if err != nil {
		return nil, err
	}
	return &Exchange{URL: req.FullURL(), Response: resp, Text: text}, nil
}

// Request sends the single request of p.
func (r *Runner) Request(ctx context.Context, name string, p *profile.RequestProfile, args extraargs.ExtraArgs) (*RequestResult, error) {
	start := time.Now()

	req, err := p.Generate(args)
	if err != nil {
		return nil, errdefs.NewRequestError(name, TargetRequest, err)
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return nil, errdefs.NewRequestError(name, TargetRequest, err)
	}

	return &RequestResult{
		Name:     name,
		URL:      req.FullURL(),
		Response: resp,
		Duration: time.Since(start),
	}, nil
}

// Client returns the client the runner sends through.
func (r *Runner) Client() profile.Doer {
	return r.client
}
