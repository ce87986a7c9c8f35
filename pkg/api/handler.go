package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazyhaar/wordcalc/pkg/kit"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	Logger *slog.Logger
	// Metrics is mounted on GET /metrics when non-nil.
	Metrics http.Handler
}

// NewRouter returns an http.Handler with all wordcalc API routes.
func NewRouter(svc Service, cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	h := &handler{
		ep: newEndpoints(svc, func(name string) kit.Middleware {
			return kit.Chain(kit.RequestID(), kit.Logging(cfg.Logger, name))
		}),
		svc:    svc,
		logger: cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(kit.HTTPRequestID)
	r.Use(cors)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/compute", h.handleCompute)
		r.Get("/history", h.handleListHistory)
		r.Delete("/history", h.handleClearHistory)
		r.Get("/operators", h.handleListOperators)
		r.Get("/health", h.handleHealth)
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

type handler struct {
	ep     endpoints
	svc    Service
	logger *slog.Logger
}

// --- compute ---

func (h *handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req computeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.ep.compute(r.Context(), &req)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- history ---

func (h *handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ep.listHistory(r.Context(), nil)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ep.clearHistory(r.Context(), nil)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- operators ---

func (h *handler) handleListOperators(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ep.listOperators(r.Context(), nil)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status    string `json:"status"`
	Locale    string `json:"locale"`
	Operators int    `json:"operators"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Locale:    string(h.svc.Locale()),
		Operators: len(h.svc.Operators()),
	})
}

// --- helpers ---

func (h *handler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidRequest) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
