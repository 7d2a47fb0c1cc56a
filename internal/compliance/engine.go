package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"mintgate/internal/audit"
	"mintgate/internal/compliance/metrics"
	"mintgate/internal/consent"
	"mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

// DefaultEvaluateTimeout bounds one evaluation. A stalled consent lookup
// fails the evaluation instead of hanging the caller.
const DefaultEvaluateTimeout = 10 * time.Second

// ConsentChecker is the engine's read-only view of the consent ledger, the
// only shared state the concurrent checks may touch.
type ConsentChecker interface {
	ValidRecord(ctx context.Context, subject string, purpose domain.ConsentPurpose) (consent.Record, bool, error)
}

// AuditPublisher records completed evaluations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Engine evaluates the five regulatory domains concurrently and aggregates
// their findings into a verdict that gates minting. It retains only the most
// recent verdict as observable state; subscribers are notified on change.
type Engine struct {
	consents ConsentChecker
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    AuditPublisher
	timeout  time.Duration

	mu          sync.RWMutex
	checking    bool
	lastVerdict *Verdict
	subscribers []func(Verdict)
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(e *Engine) {
		e.audit = publisher
	}
}

func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func New(consents ConsentChecker, opts ...Option) (*Engine, error) {
	if consents == nil {
		return nil, fmt.Errorf("consent checker is required")
	}

	e := &Engine{
		consents: consents,
		logger:   slog.Default(),
		timeout:  DefaultEvaluateTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate runs all five compliance checks concurrently, joins their
// results, and aggregates them in fixed domain order. On success the verdict
// becomes the engine's current state; on failure no partial verdict is
// published and the previous verdict remains current.
func (e *Engine) Evaluate(
	ctx context.Context,
	content ContentInfo,
	ai AIContentInfo,
	asset AssetInfo,
	bio BiometricInfo,
) (*Verdict, error) {
	start := time.Now()
	e.setChecking(true)
	defer e.setChecking(false)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	results, err := e.runChecks(ctx, content, ai, asset, bio)
	if err != nil {
		e.logger.ErrorContext(ctx, "compliance evaluation failed",
			"error", err,
			"subject", bio.Subject,
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "compliance evaluation timed out")
		}
		return nil, err
	}

	verdict := aggregate(time.Now(), *results)

	e.metrics.IncrementVerdict(verdict.Status.String())
	e.metrics.ObserveEvaluateLatency(time.Since(start))

	e.publish(verdict)
	e.emitAudit(ctx, bio.Subject, verdict)

	e.logger.InfoContext(ctx, "compliance evaluation completed",
		"status", verdict.Status,
		"warnings", len(verdict.Warnings),
		"blocking_issues", len(verdict.BlockingIssues),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return verdict, nil
}

// runChecks fans the five checks out onto their own goroutines and joins
// them. Each goroutine writes a distinct field of the shared results struct;
// no check observes another's output.
func (e *Engine) runChecks(
	ctx context.Context,
	content ContentInfo,
	ai AIContentInfo,
	asset AssetInfo,
	bio BiometricInfo,
) (*checkResults, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := &checkResults{}

	g.Go(func() error {
		defer e.observe(domain.DomainLicensing, time.Now())
		results.Licensing = checkLicensing(content)
		return nil
	})

	g.Go(func() error {
		defer e.observe(domain.DomainAttribution, time.Now())
		results.Attribution = checkAttribution(content)
		return nil
	})

	g.Go(func() error {
		defer e.observe(domain.DomainDisclosure, time.Now())
		results.Disclosure = checkDisclosure(ai)
		return nil
	})

	g.Go(func() error {
		defer e.observe(domain.DomainCryptoAsset, time.Now())
		results.Asset = checkAsset(asset)
		return nil
	})

	g.Go(func() error {
		defer e.observe(domain.DomainDataProtection, time.Now())
		record, ok, err := e.consents.ValidRecord(ctx, bio.Subject, domain.ConsentPurposeCreation)
		if err != nil {
			return fmt.Errorf("consent lookup: %w", err)
		}
		var consentAt *time.Time
		if ok {
			at := record.GrantedAt
			consentAt = &at
		}
		results.DataProtection = checkDataProtection(bio, ok, consentAt)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CurrentVerdict returns the most recently published verdict, or nil when no
// evaluation has completed yet.
func (e *Engine) CurrentVerdict() *Verdict {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastVerdict
}

// ActiveWarnings returns the warnings from the last verdict.
func (e *Engine) ActiveWarnings() []Warning {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.lastVerdict == nil {
		return nil
	}
	return slices.Clone(e.lastVerdict.Warnings)
}

// Checking reports whether an evaluation is in flight.
func (e *Engine) Checking() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.checking
}

// Subscribe registers a callback invoked with every newly published verdict.
// Callbacks run synchronously on the evaluating goroutine; keep them cheap.
func (e *Engine) Subscribe(fn func(Verdict)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

func (e *Engine) setChecking(v bool) {
	e.mu.Lock()
	e.checking = v
	e.mu.Unlock()
}

// publish atomically clears the checking flag and installs the new verdict,
// then notifies subscribers outside the lock.
func (e *Engine) publish(v *Verdict) {
	e.mu.Lock()
	e.checking = false
	e.lastVerdict = v
	subs := slices.Clone(e.subscribers)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(*v)
	}
}

func (e *Engine) observe(d domain.ComplianceDomain, start time.Time) {
	e.metrics.ObserveCheckLatency(d.String(), time.Since(start))
}

func (e *Engine) emitAudit(ctx context.Context, subject string, verdict *Verdict) {
	if e.audit == nil {
		return
	}
	reason := ""
	if len(verdict.BlockingIssues) > 0 {
		reason = verdict.BlockingIssues[0].Title
	}
	event := audit.Event{
		Category: audit.CategoryCompliance,
		Subject:  subject,
		Action:   string(audit.EventEvaluationCompleted),
		Decision: verdict.Status.String(),
		Reason:   reason,
	}
	if err := e.audit.Emit(ctx, event); err != nil {
		e.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}
