// Package relay implements the same-origin proxy that forwards provider
// requests server-side, so browser clients never hit cross-origin limits.
package relay

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Config configures the relay router.
type Config struct {
	// AllowedOrigins are the CORS origins permitted to call the relay.
	AllowedOrigins []string
	// Client is the HTTP client used for upstream requests. A 10s-timeout
	// default is used when nil.
	Client *http.Client
}

// errorEnvelope is the failure body: {error, details}.
type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// New builds the relay router: GET /api/proxy?url=<target> forwards the
// request and relays the body verbatim; GET /api/health is a liveness probe.
func New(cfg Config) chi.Router {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
	}))

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/proxy", func(w http.ResponseWriter, req *http.Request) {
		target := req.URL.Query().Get("url")
		if target == "" {
			writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: "URL parameter is required"})
			return
		}

		parsed, err := url.Parse(target)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: "URL parameter must be an absolute http(s) URL"})
			return
		}

		upstreamReq, err := http.NewRequestWithContext(req.Context(), http.MethodGet, target, nil)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: "Proxy request failed", Details: err.Error()})
			return
		}

		resp, err := client.Do(upstreamReq)
		if err != nil {
			zap.L().Error("relay: upstream request failed",
				zap.String("host", parsed.Host),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: "Proxy request failed", Details: err.Error()})
			return
		}
		defer resp.Body.Close() //nolint:errcheck

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: "Proxy request failed", Details: err.Error()})
			return
		}
		if resp.StatusCode >= http.StatusBadRequest {
			zap.L().Warn("relay: upstream returned error status",
				zap.String("host", parsed.Host),
				zap.Int("status", resp.StatusCode),
			)
			writeJSON(w, http.StatusInternalServerError, errorEnvelope{
				Error:   "Proxy request failed",
				Details: "upstream status " + resp.Status,
			})
			return
		}

		ct := resp.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/json"
		}
		w.Header().Set("Content-Type", ct)
		w.WriteHeader(http.StatusOK)
		w.Write(body) //nolint:errcheck
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
