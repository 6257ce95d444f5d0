package handler

import (
	"net/http"

	"github.com/docaura/backend/internal/httputil"
)

// availableEndpoints is the self-describing catalog returned on unknown
// routes to aid API consumers.
var availableEndpoints = []string{
	"POST /analyze - Analyze text content",
	"GET /documents - List all documents",
	"GET /documents/:id - Get document with analysis",
}

// NewRouter builds the public API route table. The table is static,
// resolved once at startup; anything it does not match (unknown path or
// wrong method) falls through to the 404 catalog.
func NewRouter(analyze *AnalyzeHandler, documents *DocumentHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", analyze.Analyze)
	mux.HandleFunc("GET /documents", documents.ListDocuments)
	mux.HandleFunc("GET /documents/{id}", documents.GetDocument)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ServeMux would answer a matching path with the wrong method with
		// a bare 405; the public API promises the endpoint catalog for
		// everything unmatched instead.
		if _, pattern := mux.Handler(r); pattern == "" {
			NotFound(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// NotFound responds with the endpoint catalog
func NotFound(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondErrorWithExtras(w, http.StatusNotFound, "Not found", map[string]interface{}{
		"available_endpoints": availableEndpoints,
	})
}

// HealthCheck handles GET /health (unauthenticated liveness probe)
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AllowOptions answers OPTIONS requests that are not CORS preflights with
// an empty 204. Preflights never get here; the CORS layer answers them
// before the mux. Registered ahead of authentication so a bare OPTIONS is
// never challenged for a key.
func AllowOptions(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
