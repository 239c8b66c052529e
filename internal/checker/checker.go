// Package checker runs one crawl. It drains the frontier in waves, sends each
// URL to an internal fetch or an external check, and aggregates the outcomes.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vnykmshr/goflow/pkg/ratelimit/bucket"
	"golang.org/x/sync/errgroup"

	"github.com/vnykmshr/linkcheck/internal/crawler"
	"github.com/vnykmshr/linkcheck/internal/domain"
	"github.com/vnykmshr/linkcheck/internal/frontier"
	"github.com/vnykmshr/linkcheck/internal/util"
)

// Checker orchestrates the crawl of one site.
type Checker struct {
	config      domain.CheckerConfig
	base        *url.URL
	client      *http.Client
	validator   domain.LinkValidator
	classifier  *crawler.Classifier
	extractor   *crawler.Extractor
	guard       *frontier.Guard
	rateLimiter domain.RateLimiter
	recorder    domain.Recorder
	progress    domain.ProgressNotifier
	onResult    func(domain.LinkResult)
	logger      *slog.Logger
}

// Option customizes a Checker.
type Option func(*Checker)

// WithVisitedStore replaces the in-memory visited set.
func WithVisitedStore(store domain.VisitedStore) Option {
	return func(c *Checker) { c.guard = frontier.NewGuard(store) }
}

// WithValidator replaces the HTTP validator used for external links.
func WithValidator(v domain.LinkValidator) Option {
	return func(c *Checker) { c.validator = v }
}

// WithHTTPClient replaces the client used for internal fetches and, unless
// WithValidator is also given, for external checks.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) { c.client = client }
}

// WithRecorder sends crawl events to r.
func WithRecorder(r domain.Recorder) Option {
	return func(c *Checker) { c.recorder = r }
}

// WithProgress notifies p of every URL as it is dispatched.
func WithProgress(p domain.ProgressNotifier) Option {
	return func(c *Checker) { c.progress = p }
}

// WithResultHandler calls fn with every counted result. fn is called from
// worker goroutines and must be safe for concurrent use.
func WithResultHandler(fn func(domain.LinkResult)) Option {
	return func(c *Checker) { c.onResult = fn }
}

// New creates a checker. The base URL must already be validated; a bad one is
// still reported as a *domain.ConfigError.
func New(config domain.CheckerConfig, logger *slog.Logger, opts ...Option) (*Checker, error) {
	base, err := util.ParseTarget("base_url", config.BaseURL)
	if err != nil {
		return nil, err
	}
	if config.Concurrency < 1 {
		config.Concurrency = domain.DefaultConcurrency
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = domain.DefaultMaxBodyBytes
	}

	c := &Checker{
		config:   config,
		base:     base,
		client:   &http.Client{Timeout: config.RequestTimeout},
		guard:    frontier.NewGuard(frontier.NewMemoryStore()),
		recorder: nopRecorder{},
		logger:   logger.With("run_id", config.RunID),
	}

	if config.Rate > 0 {
		// Burst of 2x the per-second rate, at least one token.
		burst := max(int(config.Rate*2), 1)
		limiter, err := bucket.NewSafe(bucket.Limit(config.Rate), burst)
		if err != nil {
			return nil, &domain.ConfigError{Field: "rate", Value: fmt.Sprint(config.Rate), Reason: err.Error()}
		}
		c.rateLimiter = limiter
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.validator == nil {
		c.validator = NewHTTPValidator(c.client, config.UserAgent)
	}

	c.classifier = crawler.NewClassifier(base, config.InternalOnly, config.MaxPathDepth)
	c.extractor = crawler.NewExtractor(crawler.NewHTMLTokenizer(), c.classifier, c.logger)

	return c, nil
}

// Check crawls from start until the frontier is empty. start must share the
// base URL's origin. When ctx is canceled mid-crawl, Check returns the partial
// report together with the context's error.
func (c *Checker) Check(ctx context.Context, start *url.URL) (*domain.Report, error) {
	if crawler.Origin(start) != crawler.Origin(c.base) {
		return nil, &domain.ConfigError{
			Field:  "start_url",
			Value:  start.String(),
			Reason: fmt.Sprintf("origin %s differs from base origin %s", crawler.Origin(start), crawler.Origin(c.base)),
		}
	}

	startedAt := time.Now()
	agg := NewAggregator()
	queue := frontier.New()
	queue.Seed(start)

	c.logger.Info("Starting link check",
		"base", util.RedactURL(c.base.String()),
		"start", util.RedactURL(start.String()),
		"concurrency", c.config.Concurrency,
		"internal_only", c.config.InternalOnly)

	waves, err := c.run(ctx, queue, agg)

	report := &domain.Report{
		RunID:      c.config.RunID,
		BaseURL:    c.base.String(),
		StartURL:   start.String(),
		StartedAt:  startedAt,
		Duration:   time.Since(startedAt),
		Waves:      waves,
		Total:      agg.Total(),
		Successful: agg.Successful(),
		Failed:     agg.Failed(),
		Passed:     agg.Passed(),
		Results:    agg.Results(),
	}

	c.logger.Info("Link check finished",
		"waves", waves,
		"discovered", queue.Discovered(),
		"total", report.Total,
		"failed", report.Failed,
		"duration", report.Duration)

	if err != nil {
		report.Passed = false
		return report, err
	}
	return report, nil
}

// run is the dispatcher loop. Each wave drains at most Concurrency entries and
// must finish before the next is drained, so links found in wave N are
// dispatched in wave N+1 at the earliest.
func (c *Checker) run(ctx context.Context, queue *frontier.Frontier, agg *Aggregator) (int, error) {
	waves := 0
	for {
		if err := ctx.Err(); err != nil {
			return waves, err
		}

		batch := queue.Drain(c.config.Concurrency)
		if len(batch) == 0 {
			return waves, nil
		}
		waves++
		c.recorder.WaveDone(len(batch))

		var g errgroup.Group
		g.SetLimit(c.config.Concurrency)
		for _, entry := range batch {
			g.Go(func() error {
				return c.process(ctx, queue, agg, entry)
			})
		}
		if err := g.Wait(); err != nil {
			return waves, err
		}

		c.recorder.FrontierSize(queue.Len())
		c.logger.Debug("Wave complete", "wave", waves, "size", len(batch), "pending", queue.Len())
	}
}

// process takes one frontier entry to a terminal state. The only error it
// returns is cancellation; every per-URL failure is recorded and contained.
func (c *Checker) process(ctx context.Context, queue *frontier.Frontier, agg *Aggregator, entry domain.FrontierEntry) error {
	u := entry.URL

	if reason, ok := c.classifier.Admit(u); !ok {
		c.skip(u, reason)
		return nil
	}

	kind := c.classifier.Classify(u)

	seen, err := c.guard.MarkVisited(ctx, u)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.record(agg, entry, domain.Outcome{Kind: kind, Err: err})
		return nil
	}
	if seen {
		c.skip(u, domain.SkipVisited)
		return nil
	}

	if c.progress != nil {
		c.progress.Checking(util.RedactURL(u.String()))
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	var out domain.Outcome
	switch kind {
	case domain.KindInternal:
		out = c.fetchInternal(ctx, u)
	default:
		out = c.checkExternal(ctx, u)
	}

	// A call cut short by cancellation is not a verdict on the link.
	if out.Err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	c.record(agg, entry, out)
	queue.Push(out.Links...)
	return nil
}

func (c *Checker) skip(u *url.URL, reason domain.SkipReason) {
	c.recorder.Skipped(reason)
	c.logger.Debug("Skipping URL", "url", util.RedactURL(u.String()), "reason", reason)
}

func (c *Checker) record(agg *Aggregator, entry domain.FrontierEntry, out domain.Outcome) {
	result := domain.LinkResult{
		URL:        util.RedactURL(entry.URL.String()),
		Referrer:   util.RedactURL(entry.ReferrerString()),
		Kind:       out.Kind,
		StatusCode: out.StatusCode,
		OK:         out.OK(),
		LinksFound: len(out.Links),
		Duration:   out.Duration,
	}
	if out.Err != nil {
		result.Error = out.Err.Error()
	}

	agg.Record(result)
	c.recorder.CheckDone(out.Kind, result.OK, out.Duration)

	if result.OK {
		c.logger.Debug("Link OK",
			"url", result.URL,
			"kind", out.Kind,
			"status", out.StatusCode,
			"links_found", result.LinksFound,
			"duration", out.Duration)
	} else {
		c.logger.Warn("Link failed",
			"url", result.URL,
			"referrer", result.Referrer,
			"kind", out.Kind,
			"error", result.Error)
	}

	if c.onResult != nil {
		c.onResult(result)
	}
}

type nopRecorder struct{}

func (nopRecorder) CheckDone(domain.LinkKind, bool, time.Duration) {}
func (nopRecorder) Skipped(domain.SkipReason)                        {}
func (nopRecorder) WaveDone(int)                                     {}
func (nopRecorder) FrontierSize(int)                                 {}
