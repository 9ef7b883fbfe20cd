package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/vinyldns/batchcore/internal/core/domain"
	"github.com/vinyldns/batchcore/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIHandler serves the batch change HTTP surface.
type APIHandler struct {
	svc      ports.BatchChangeService
	authRepo ports.AuthRepository
}

// NewAPIHandler creates and returns a new APIHandler instance.
func NewAPIHandler(svc ports.BatchChangeService, authRepo ports.AuthRepository) *APIHandler {
	return &APIHandler{svc: svc, authRepo: authRepo}
}

// RegisterRoutes registers the API routes with the provided ServeMux.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	// Public routes
	mux.HandleFunc("GET /ping", h.Ping)
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /metrics", h.Metrics)

	auth := AuthMiddleware(h.authRepo)

	// Protected batch change routes (scoped by the caller's principal)
	mux.Handle("POST /zones/batchrecordchanges", auth(http.HandlerFunc(h.CreateBatchChange)))
	mux.Handle("GET /zones/batchrecordchanges/{id}", auth(http.HandlerFunc(h.GetBatchChange)))
	mux.Handle("GET /zones/batchrecordchanges", auth(http.HandlerFunc(h.ListBatchChangeSummaries)))
}

// Ping is a liveness probe independent of any dependency.
func (h *APIHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("PONG")); err != nil {
		log.Printf("failed to write ping response: %v", err)
	}
}

// Metrics handles Prometheus metrics scraping requests.
func (h *APIHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// HealthCheck reports readiness. It stays dependency-free and probes
// nothing: cmd/batchcore pings the Redis converter once at startup, and the
// database is not probed at all.
func (h *APIHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "UP"}); err != nil {
		log.Printf("failed to encode health check response: %v", err)
	}
}

// CreateBatchChange accepts a new batch change submission.
func (h *APIHandler) CreateBatchChange(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing principal context", http.StatusUnauthorized)
		return
	}

	var input domain.BatchChangeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	batch, errResp, err := h.svc.ApplyBatchChange(r.Context(), input, principal)
	if err != nil {
		var bce *domain.BatchChangeError
		if errors.As(err, &bce) {
			writeJSON(w, http.StatusBadRequest, bce)
			return
		}
		log.Printf("ApplyBatchChange failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if errResp != nil {
		writeJSON(w, http.StatusBadRequest, errResp)
		return
	}

	writeJSON(w, http.StatusAccepted, batch)
}

// GetBatchChange retrieves a single batch change by id.
func (h *APIHandler) GetBatchChange(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing principal context", http.StatusUnauthorized)
		return
	}

	id := r.PathValue("id")
	batch, err := h.svc.GetBatchChange(r.Context(), id, principal)
	if err != nil {
		var bce *domain.BatchChangeError
		if errors.As(err, &bce) {
			status := http.StatusBadRequest
			if bce.Code == "BatchChangeNotFound" {
				status = http.StatusNotFound
			} else if bce.Code == "UserNotAuthorizedToView" {
				status = http.StatusForbidden
			}
			writeJSON(w, status, bce)
			return
		}
		log.Printf("GetBatchChange failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, batch)
}

// ListBatchChangeSummaries returns a page of the caller's own batch changes.
func (h *APIHandler) ListBatchChangeSummaries(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing principal context", http.StatusUnauthorized)
		return
	}

	startFrom := r.URL.Query().Get("startFrom")
	maxItems := 0
	if raw := r.URL.Query().Get("maxItems"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid maxItems", http.StatusBadRequest)
			return
		}
		maxItems = parsed
	}

	list, err := h.svc.ListBatchChangeSummaries(r.Context(), principal, startFrom, maxItems)
	if err != nil {
		log.Printf("ListBatchChangeSummaries failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
