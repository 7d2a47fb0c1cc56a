package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mintgate/internal/compliance"
	"mintgate/internal/platform/middleware"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/platform/httputil"
)

// Service defines the interface for compliance operations.
type Service interface {
	Evaluate(ctx context.Context, content compliance.ContentInfo, ai compliance.AIContentInfo, asset compliance.AssetInfo, bio compliance.BiometricInfo) (*compliance.Verdict, error)
	CurrentVerdict() *compliance.Verdict
	ActiveWarnings() []compliance.Warning
	Checking() bool
}

// Handler wires compliance endpoints to the engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a compliance handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compliance/evaluate", h.HandleEvaluate)
	r.Get("/compliance/verdict", h.HandleVerdict)
	r.Get("/compliance/warnings", h.HandleWarnings)
}

// HandleEvaluate handles POST /compliance/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	subject := middleware.GetSubject(ctx)
	if subject == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid evaluate request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(ctx, "invalid evaluate request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	// The biometric subject defaults to the authenticated caller so consent
	// lookups cannot be pointed at someone else's records.
	bio := req.Biometric
	if bio.Subject == "" {
		bio.Subject = subject
	}

	verdict, err := h.service.Evaluate(ctx, req.Content, req.AI, req.Asset, bio)
	if err != nil {
		h.logger.ErrorContext(ctx, "compliance evaluation failed",
			"request_id", requestID,
			"subject", subject,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "compliance evaluated",
		"request_id", requestID,
		"subject", subject,
		"status", verdict.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromVerdict(verdict))
}

// HandleVerdict handles GET /compliance/verdict requests. It reports the most
// recent verdict without triggering a new evaluation.
func (h *Handler) HandleVerdict(w http.ResponseWriter, r *http.Request) {
	verdict := h.service.CurrentVerdict()
	if verdict == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no evaluation has completed yet"))
		return
	}

	resp := FromVerdict(verdict)
	resp.Checking = h.service.Checking()
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleWarnings handles GET /compliance/warnings requests.
func (h *Handler) HandleWarnings(w http.ResponseWriter, r *http.Request) {
	warnings := h.service.ActiveWarnings()
	if warnings == nil {
		warnings = []compliance.Warning{}
	}
	httputil.WriteJSON(w, http.StatusOK, WarningsResponse{Warnings: warnings})
}
