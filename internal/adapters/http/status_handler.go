package http

import (
	"net/http"

	"kunlun/internal/adapters/http/request"
	"kunlun/internal/adapters/http/response"
	"kunlun/internal/adapters/http/validator"
	"kunlun/internal/domain"
	"kunlun/internal/logger"
)

// maxFormBytes bounds a status POST; a full report is well under 2 KiB.
const maxFormBytes = 64 << 10

type StatusHandler struct {
	svc       domain.StatusService
	decoder   request.RequestDecoder
	validator validator.Validator
	writer    response.ResponseWriter
	log       logger.Logger
}

func NewStatusHandler(svc domain.StatusService, log logger.Logger) *StatusHandler {
	return &StatusHandler{
		svc:       svc,
		decoder:   request.NewFormDecoder(maxFormBytes),
		validator: validator.NewValidator(),
		writer:    response.NewJSONWriter(log),
		log:       log,
	}
}

func (h *StatusHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req domain.StatusReport
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.WriteError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	result, err := h.svc.Ingest(r.Context(), req)
	if err != nil {
		h.log.Error("failed to store status", "error", err)
		h.writer.WriteError(w, http.StatusInternalServerError, "database operation failed")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{Data: result})
}

func (h *StatusHandler) Latest(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.svc.Latest(r.Context())
	if err != nil {
		h.log.Error("failed to load latest statuses", "error", err)
		h.writer.WriteError(w, http.StatusInternalServerError, "database operation failed")
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	h.writer.Write(w, http.StatusOK, &response.Response{Data: statuses})
}

// Ping answers liveness probes from agents and dashboards.
func (h *StatusHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte("kunlun"))
}

func (h *StatusHandler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteError(w, http.StatusTooManyRequests, "too many requests, try again later")
}

func (h *StatusHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteError(w, http.StatusNotFound, "resource not found")
}
