package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/awmpietro/algoviz/internal/app"
	"github.com/awmpietro/algoviz/internal/logging"
	"github.com/awmpietro/algoviz/internal/transport/gendto"
)

// maxBody bounds request bodies; the largest valid request is a few KB.
const maxBody = 1 << 20

type Handler struct {
	svc    app.GenerateService
	logger *slog.Logger
}

func NewHandler(svc app.GenerateService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{svc: svc, logger: logging.Component(logger, "http")}
}

// Router mounts the API. metrics serves GET /metrics when non-nil.
func (h *Handler) Router(metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.Healthz)
	r.Get("/algorithms", h.Algorithms)
	r.Post("/generate", h.Generate)
	r.Post("/generate/batch", h.GenerateBatch)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return r
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Algorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gendto.FromAlgorithms(h.svc.Algorithms()))
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var in gendto.GenerateRequest
	if !decode(w, r, &in) {
		return
	}

	res, err := h.svc.Generate(r.Context(), in.App())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gendto.FromResult(*res))
}

func (h *Handler) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	var in gendto.BatchRequest
	if !decode(w, r, &in) {
		return
	}

	res, err := h.svc.GenerateBatch(r.Context(), in.App())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gendto.FromResults(res))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := gendto.Error(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("generate_failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, gendto.ErrorBody{Error: "invalid json", Details: err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
