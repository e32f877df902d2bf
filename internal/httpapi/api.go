// Package httpapi is the HTTP layer: routing, authentication, error
// mapping and the middleware chain.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"reserva.org/internal/obs"
	"reserva.org/internal/reservation"
	"reserva.org/internal/stream"
	"reserva.org/internal/task"
	"reserva.org/internal/user"
)

// ReadyProbe reports readiness, typically by pinging the database.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer.
type API struct {
	mux          *http.ServeMux
	readyProbe   ReadyProbe
	version      string
	reservations *reservation.Service
	tasks        *task.Service
	users        *user.Service
	stream       *stream.Stream

	rateBurst  int
	ratePerSec int
}

func New(rp ReadyProbe, version string, reservations *reservation.Service, tasks *task.Service, users *user.Service, st *stream.Stream) *API {
	a := &API{
		mux:          http.NewServeMux(),
		readyProbe:   rp,
		version:      version,
		reservations: reservations,
		tasks:        tasks,
		users:        users,
		stream:       st,
		rateBurst:    20,
		ratePerSec:   10,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// auth
	a.mux.HandleFunc("/v1/auth/token", a.handleAuthToken)
	a.mux.HandleFunc("/v1/auth/register", a.handleAuthRegister)

	// reservations
	a.mux.HandleFunc("/v1/reservations", a.handleReservationsCollection)
	a.mux.HandleFunc("/v1/reservations/", a.handleReservationResource)

	// tasks and categories
	a.mux.HandleFunc("/v1/tasks", a.handleTasksCollection)
	a.mux.HandleFunc("/v1/tasks/", a.handleTaskResource)
	a.mux.HandleFunc("/v1/categories", a.handleCategoriesCollection)
	a.mux.HandleFunc("/v1/categories/", a.handleCategoryResource)

	// user directory
	a.mux.HandleFunc("/v1/users", a.handleUsersCollection)

	// live reservation events
	a.mux.HandleFunc("/v1/stream", a.Stream)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler assembles the middleware chain around the mux.
func (a *API) Handler() http.Handler {
	h := a.withAuth(obs.Instrument(a.mux))
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, a.rateBurst, a.ratePerSec)
	h = LoggingJSON(h)
	h = RequestID(h)
	h = CORS(h)
	h = SecurityHeaders(h)
	return h
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "reserva-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		obs.SetReady(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "reserva-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
