package consent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mintgate/internal/audit"
	"mintgate/internal/blobstore"
	"mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/platform/sentinel"
)

// Namespace is the blob store key under which the full record list is
// serialized.
const Namespace = "consent_records"

// DefaultTTL is how long a grant stays valid without explicit revocation.
const DefaultTTL = 365 * 24 * time.Hour

var consentOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mintgate_consent_operations_total",
	Help: "Total consent ledger operations by type",
}, []string{"op"})

// AuditPublisher records consent lifecycle events. Defined here to avoid
// coupling the ledger to a concrete audit implementation.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Ledger is the single mutable resource the compliance engine consults. It
// holds the full record list in memory and re-serializes it to the blob store
// on every mutation; writes are serialized against reads under one lock.
// Single-writer workload assumed, last write wins.
type Ledger struct {
	store  blobstore.Store
	logger *slog.Logger
	audit  AuditPublisher
	ttl    time.Duration

	mu      sync.RWMutex
	records []Record
}

type Option func(*Ledger)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(l *Ledger) {
		l.ttl = ttl
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(l *Ledger) {
		l.audit = publisher
	}
}

// NewLedger loads any previously persisted records and returns a ready
// ledger. A missing or unreadable blob yields an empty ledger, never an
// error: losing consent history is recoverable, refusing to start is not.
func NewLedger(ctx context.Context, store blobstore.Store, opts ...Option) (*Ledger, error) {
	if store == nil {
		return nil, errors.New("blob store is required")
	}

	l := &Ledger{
		store:  store,
		logger: slog.Default(),
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(l)
	}

	data, err := store.Load(ctx, Namespace)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		// First run, nothing persisted yet.
	case err != nil:
		l.logger.WarnContext(ctx, "consent ledger load failed, starting empty",
			"error", err,
		)
	default:
		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			l.logger.WarnContext(ctx, "consent ledger blob corrupt, starting empty",
				"error", err,
			)
		} else {
			l.records = records
		}
	}

	return l, nil
}

// Grant appends a new consent record and persists the ledger. The act of
// presenting and accepting a consent prompt belongs to the caller; this
// operation models only the record-keeping step, so granted is always true.
func (l *Ledger) Grant(
	ctx context.Context,
	subject string,
	consentType domain.ConsentType,
	purposes []domain.ConsentPurpose,
	categories []domain.DataCategory,
) (Record, error) {
	if subject == "" {
		return Record{}, dErrors.New(dErrors.CodeInvalidInput, "subject cannot be empty")
	}
	if !consentType.IsValid() {
		return Record{}, dErrors.New(dErrors.CodeInvalidInput, "invalid consent type: "+consentType.String())
	}
	if len(purposes) == 0 {
		return Record{}, dErrors.New(dErrors.CodeInvalidInput, "purposes cannot be empty")
	}
	for _, p := range purposes {
		if !p.IsValid() {
			return Record{}, dErrors.New(dErrors.CodeInvalidInput, "invalid purpose: "+p.String())
		}
	}
	for _, c := range categories {
		if !c.IsValid() {
			return Record{}, dErrors.New(dErrors.CodeInvalidInput, "invalid data category: "+c.String())
		}
	}

	now := time.Now()
	expiry := now.Add(l.ttl)
	record := Record{
		ID:             domain.NewConsentID(),
		Subject:        subject,
		Type:           consentType,
		Granted:        true,
		GrantedAt:      now,
		ExpiresAt:      &expiry,
		Purposes:       purposes,
		DataCategories: categories,
	}

	l.mu.Lock()
	l.records = append(l.records, record)
	l.persistLocked(ctx)
	l.mu.Unlock()

	consentOpsTotal.WithLabelValues("grant").Inc()
	l.emitAudit(ctx, audit.Event{
		Category: audit.CategoryCompliance,
		Subject:  subject,
		Action:   string(audit.EventConsentGranted),
		Purpose:  joinPurposes(purposes),
	})

	return record, nil
}

// Revoke removes the record with the given ID and persists the remainder.
// Revoking an unknown ID is a no-op, not an error.
func (l *Ledger) Revoke(ctx context.Context, id domain.ConsentID) error {
	l.mu.Lock()
	removed := false
	var subject string
	kept := l.records[:0]
	for _, r := range l.records {
		if r.ID == id {
			removed = true
			subject = r.Subject
			continue
		}
		kept = append(kept, r)
	}
	l.records = kept
	if removed {
		l.persistLocked(ctx)
	}
	l.mu.Unlock()

	if removed {
		consentOpsTotal.WithLabelValues("revoke").Inc()
		l.emitAudit(ctx, audit.Event{
			Category: audit.CategoryCompliance,
			Subject:  subject,
			Action:   string(audit.EventConsentRevoked),
			Reason:   id.String(),
		})
	}
	return nil
}

// IsValid reports whether the subject currently holds a valid consent for the
// purpose. Read-only O(n) scan over the ledger.
func (l *Ledger) IsValid(ctx context.Context, subject string, purpose domain.ConsentPurpose) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeTimeout, "consent lookup aborted")
	}

	now := time.Now()
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.records {
		if r.IsValidFor(subject, purpose, now) {
			return true, nil
		}
	}
	return false, nil
}

// ValidRecord returns the first valid consent record for the subject and
// purpose, if any. Used by the data protection check to report the consent
// timestamp.
func (l *Ledger) ValidRecord(ctx context.Context, subject string, purpose domain.ConsentPurpose) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, dErrors.Wrap(err, dErrors.CodeTimeout, "consent lookup aborted")
	}

	now := time.Now()
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.records {
		if r.IsValidFor(subject, purpose, now) {
			return r, true, nil
		}
	}
	return Record{}, false, nil
}

// List returns all records held for a subject, most recent last.
func (l *Ledger) List(_ context.Context, subject string) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Record
	for _, r := range l.records {
		if r.Subject == subject {
			out = append(out, r)
		}
	}
	return out
}

// persistLocked serializes the full record list to the blob store. Best
// effort: a failed write is logged, not returned, so consent decisions are
// never rejected because storage hiccupped. Callers needing durability
// guarantees must verify via a subsequent load. Must hold l.mu.
func (l *Ledger) persistLocked(ctx context.Context) {
	data, err := json.Marshal(l.records)
	if err != nil {
		l.logger.ErrorContext(ctx, "consent ledger marshal failed", "error", err)
		return
	}
	if err := l.store.Save(ctx, Namespace, data); err != nil {
		l.logger.WarnContext(ctx, "consent ledger persist failed",
			"error", err,
			"records", len(l.records),
		)
	}
}

func (l *Ledger) emitAudit(ctx context.Context, event audit.Event) {
	if l.audit == nil {
		return
	}
	if err := l.audit.Emit(ctx, event); err != nil {
		l.logger.WarnContext(ctx, "audit emit failed", "error", err, "action", event.Action)
	}
}

func joinPurposes(purposes []domain.ConsentPurpose) string {
	parts := make([]string, len(purposes))
	for i, p := range purposes {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}
