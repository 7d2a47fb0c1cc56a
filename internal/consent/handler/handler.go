package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mintgate/internal/consent"
	"mintgate/internal/platform/middleware"
	"mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/platform/httputil"
)

// Service defines the interface for consent ledger operations.
type Service interface {
	Grant(ctx context.Context, subject string, consentType domain.ConsentType, purposes []domain.ConsentPurpose, categories []domain.DataCategory) (consent.Record, error)
	Revoke(ctx context.Context, id domain.ConsentID) error
	IsValid(ctx context.Context, subject string, purpose domain.ConsentPurpose) (bool, error)
	List(ctx context.Context, subject string) []consent.Record
}

// Handler wires consent endpoints to the ledger.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a consent handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts consent endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/consent", h.HandleGrant)
	r.Post("/consent/revoke", h.HandleRevoke)
	r.Get("/consent", h.HandleList)
	r.Get("/consent/valid", h.HandleIsValid)
}

// HandleGrant handles POST /consent requests. Consent is always recorded for
// the authenticated caller, never for a third party.
func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	subject, ok := h.requireSubject(w, ctx)
	if !ok {
		return
	}

	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid grant request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Grant(ctx, subject, req.ParsedType(), req.ParsedPurposes(), req.ParsedCategories())
	if err != nil {
		h.logger.ErrorContext(ctx, "consent grant failed",
			"request_id", requestID,
			"subject", subject,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "consent granted",
		"request_id", requestID,
		"subject", subject,
		"consent_id", record.ID,
		"type", record.Type,
	)

	httputil.WriteJSON(w, http.StatusCreated, FromRecord(record))
}

// HandleRevoke handles POST /consent/revoke requests. Only the owner of a
// record may revoke it; revoking a record the caller does not hold is
// indistinguishable from revoking an unknown ID.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	subject, ok := h.requireSubject(w, ctx)
	if !ok {
		return
	}

	var req RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if !h.owns(ctx, subject, req.ParsedID()) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.service.Revoke(ctx, req.ParsedID()); err != nil {
		h.logger.ErrorContext(ctx, "consent revoke failed",
			"request_id", requestID,
			"subject", subject,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "consent revoked",
		"request_id", requestID,
		"subject", subject,
		"consent_id", req.ParsedID(),
	)

	w.WriteHeader(http.StatusNoContent)
}

// HandleList handles GET /consent requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subject, ok := h.requireSubject(w, ctx)
	if !ok {
		return
	}

	records := h.service.List(ctx, subject)
	resp := ListResponse{Records: make([]RecordResponse, 0, len(records))}
	for _, record := range records {
		resp.Records = append(resp.Records, FromRecord(record))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleIsValid handles GET /consent/valid?purpose= requests.
func (h *Handler) HandleIsValid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subject, ok := h.requireSubject(w, ctx)
	if !ok {
		return
	}

	purpose, err := domain.ParseConsentPurpose(r.URL.Query().Get("purpose"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	valid, err := h.service.IsValid(ctx, subject, purpose)
	if err != nil {
		h.logger.ErrorContext(ctx, "consent validity check failed",
			"request_id", middleware.GetRequestID(ctx),
			"subject", subject,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ValidityResponse{
		Purpose: purpose.String(),
		Valid:   valid,
	})
}

func (h *Handler) requireSubject(w http.ResponseWriter, ctx context.Context) (string, bool) {
	subject := middleware.GetSubject(ctx)
	if subject == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return "", false
	}
	return subject, true
}

func (h *Handler) owns(ctx context.Context, subject string, id domain.ConsentID) bool {
	for _, record := range h.service.List(ctx, subject) {
		if record.ID == id {
			return true
		}
	}
	return false
}
