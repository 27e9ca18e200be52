package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// actingUserHeader carries the id of the user performing the request
const actingUserHeader = "X-Sharer-User-Id"

// Proxy is the thin gateway in front of the server tier. It rejects
// requests that would fail anyway (missing acting-user header, malformed
// booking date ranges) and forwards everything else untouched.
type Proxy struct {
	proxy *httputil.ReverseProxy
}

// NewProxy creates a gateway proxy forwarding to the server tier at serverURL
func NewProxy(serverURL string) (*Proxy, error) {
	target, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	return &Proxy{proxy: httputil.NewSingleHostReverseProxy(target)}, nil
}

type bookingPayload struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// ServeHTTP implements http.Handler
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if requiresActingUser(r) && r.Header.Get(actingUserHeader) == "" {
		respondError(w, http.StatusBadRequest, actingUserHeader+" header is required")
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/bookings" {
		if ok := p.validateBookingBody(w, r); !ok {
			return
		}
	}

	p.proxy.ServeHTTP(w, r)
}

// validateBookingBody pre-checks the booking date range before forwarding.
// The body is restored for the proxied request.
func (p *Proxy) validateBookingBody(w http.ResponseWriter, r *http.Request) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))

	var payload bookingPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}

	if !payload.End.After(payload.Start) {
		respondError(w, http.StatusBadRequest, "end must be after start")
		return false
	}
	if payload.Start.Before(time.Now()) {
		respondError(w, http.StatusBadRequest, "start must not be in the past")
		return false
	}

	return true
}

// requiresActingUser reports whether the route needs the acting-user header.
// User signup and lookups, health checks and item search are anonymous.
func requiresActingUser(r *http.Request) bool {
	path := r.URL.Path
	switch {
	case path == "/health":
		return false
	case strings.HasPrefix(path, "/users"):
		return false
	case path == "/items/search":
		return false
	default:
		return true
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Warn().Err(err).Msg("failed to write gateway error response")
	}
}
