package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"laser-compare/internal/handlers"
	"laser-compare/internal/observability"
)

var tracer = otel.Tracer("catalog")

const (
	maxBodyBytes   = 64 << 10
	maxImportBytes = 10 << 20
)

// Handler serves the public catalog and the admin back-office.
type Handler struct {
	store       *Store
	metrics     *Metrics
	importLimit int64
}

func NewHandler(store *Store, metrics *Metrics) *Handler {
	return &Handler{store: store, metrics: metrics, importLimit: maxImportBytes}
}

// ReviewRequest is the optional body of approve and reject calls.
type ReviewRequest struct {
	Note string `json:"note"`
}

func (h *Handler) startSpan(r *http.Request, op string) (context.Context, trace.Span) {
	return tracer.Start(r.Context(), "catalog."+op, trace.WithAttributes(
		attribute.String("request.id", observability.RequestIDFromContext(r.Context())),
	))
}

// fail maps store errors to statuses and writes the JSON error body.
func fail(ctx context.Context, span trace.Span, w http.ResponseWriter, op string, err error) {
	status, body := http.StatusInternalServerError, handlers.ErrorBody{Error: "internal error"}

	var (
		fe     *FieldError
		tooBig *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooBig):
		status, body = http.StatusRequestEntityTooLarge, handlers.ErrorBody{Error: fmt.Sprintf("request body exceeds %d bytes", tooBig.Limit)}
	case errors.As(err, &fe):
		status, body = http.StatusUnprocessableEntity, handlers.ErrorBody{Error: fe.Error(), Field: fe.Field}
	case errors.Is(err, ErrNotFound):
		status, body = http.StatusNotFound, handlers.ErrorBody{Error: "not found"}
	case errors.Is(err, ErrConflict):
		status, body = http.StatusConflict, handlers.ErrorBody{Error: err.Error()}
	case errors.Is(err, errBadBody):
		status, body = http.StatusBadRequest, handlers.ErrorBody{Error: "invalid request body"}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, body.Error)

	logger := observability.LoggerWithTrace(ctx)
	log := logger.Warn
	if status >= http.StatusInternalServerError {
		log = logger.Error
	}
	body.RequestID = observability.RequestIDFromContext(ctx)
	log(body.Error,
		zap.String("operation", op),
		zap.Int("status", status),
		zap.Error(err),
		zap.String("request_id", body.RequestID),
	)

	handlers.WriteJSON(w, status, body)
}

var errBadBody = errors.New("bad request body")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// List handles GET /api/equipment.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "list")
	defer span.End()

	f, err := ParseListFilter(r.URL.Query())
	if err != nil {
		fail(ctx, span, w, "list", err)
		return
	}
	page, err := h.store.List(ctx, f)
	if err != nil {
		fail(ctx, span, w, "list", err)
		return
	}
	span.SetAttributes(attribute.Int("catalog.total", page.Total))
	handlers.WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/equipment/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "get")
	defer span.End()

	e, err := h.store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		fail(ctx, span, w, "get", err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, e)
}

// Compare handles GET /api/compare?ids=a,b.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "compare")
	defer span.End()

	cmp, err := h.store.Compare(ctx, ParseIDs(r.URL.Query().Get("ids")))
	if err != nil {
		fail(ctx, span, w, "compare", err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, cmp)
}

// Submit handles POST /api/submissions.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "submit")
	defer span.End()

	var in SubmissionInput
	if err := decodeJSON(w, r, &in, false); err != nil {
		fail(ctx, span, w, "submit", err)
		return
	}
	sub, err := h.store.Submit(ctx, in)
	if err != nil {
		fail(ctx, span, w, "submit", err)
		return
	}

	observability.LoggerWithTrace(ctx).Info("submission received",
		zap.String("submission_id", sub.ID),
		zap.String("brand", sub.Brand),
		zap.String("model", sub.Model),
	)
	handlers.WriteJSON(w, http.StatusCreated, sub)
}

// Create handles POST /api/admin/equipment.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "create")
	defer span.End()

	var in EquipmentInput
	if err := decodeJSON(w, r, &in, false); err != nil {
		fail(ctx, span, w, "create", err)
		return
	}
	e, err := h.store.Create(ctx, in)
	if err != nil {
		fail(ctx, span, w, "create", err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, e)
}

// Update handles PUT /api/admin/equipment/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "update")
	defer span.End()

	var in EquipmentInput
	if err := decodeJSON(w, r, &in, false); err != nil {
		fail(ctx, span, w, "update", err)
		return
	}
	e, err := h.store.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		fail(ctx, span, w, "update", err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, e)
}

// Delete handles DELETE /api/admin/equipment/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "delete")
	defer span.End()

	if err := h.store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		fail(ctx, span, w, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubmissions handles GET /api/admin/submissions.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "submissions")
	defer span.End()

	subs, err := h.store.Submissions(ctx, SubmissionStatus(r.URL.Query().Get("status")))
	if err != nil {
		fail(ctx, span, w, "submissions", err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, subs)
}

// Approve handles POST /api/admin/submissions/{id}/approve.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "approve", h.store.Approve)
}

// Reject handles POST /api/admin/submissions/{id}/reject.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "reject", h.store.Reject)
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request, op string, apply func(ctx context.Context, id, note string) (Submission, error)) {
	ctx, span := h.startSpan(r, op)
	defer span.End()

	var req ReviewRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		fail(ctx, span, w, op, err)
		return
	}
	sub, err := apply(ctx, chi.URLParam(r, "id"), req.Note)
	if err != nil {
		fail(ctx, span, w, op, err)
		return
	}

	observability.LoggerWithTrace(ctx).Info("submission reviewed",
		zap.String("submission_id", sub.ID),
		zap.String("status", string(sub.Status)),
	)
	handlers.WriteJSON(w, http.StatusOK, sub)
}

// Import handles POST /api/admin/import.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "import")
	defer span.End()

	format, ok := FormatFromContentType(r.Header.Get("Content-Type"))
	if !ok {
		handlers.WriteJSON(w, http.StatusUnsupportedMediaType, handlers.ErrorBody{
			Error:     "content type must be text/csv, application/json or " + xlsxMediaType,
			RequestID: observability.RequestIDFromContext(ctx),
		})
		return
	}
	span.SetAttributes(attribute.String("import.format", string(format)))

	rows, rowErrs, err := ParseImport(format, http.MaxBytesReader(w, r.Body, h.importLimit))
	if err != nil {
		fail(ctx, span, w, "import", err)
		return
	}
	res, err := h.store.Import(ctx, rows, rowErrs)
	if err != nil {
		fail(ctx, span, w, "import", err)
		return
	}
	h.metrics.observeImport(res)

	observability.LoggerWithTrace(ctx).Info("import completed",
		zap.String("format", string(format)),
		zap.Int("inserted", res.Inserted),
		zap.Int("skipped", res.Skipped),
	)
	handlers.WriteJSON(w, http.StatusOK, res)
}
