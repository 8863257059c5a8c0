package httpapi

import (
	"net/http"
	"time"

	"fundacite.org/internal/auth"
	"fundacite.org/internal/obs"
	"fundacite.org/internal/report"
	"fundacite.org/internal/solicitud"
)

// API is the HTTP surface of the solicitudes service.
type API struct {
	mux          *http.ServeMux
	readyProbe   ReadyProbe
	version      string
	auth         *auth.Service
	solicitudes  solicitud.Store
	reports      *report.Generator
	sessionTTL   time.Duration
	maxBodyBytes int64
	rateBurst    int
	ratePerSec   int
	now          func() time.Time
}

// Option customizes API construction.
type Option func(*API)

// WithVersion sets the version reported by the health endpoints.
func WithVersion(v string) Option {
	return func(a *API) { a.version = v }
}

// WithReadyProbe sets the readiness check backend.
func WithReadyProbe(p ReadyProbe) Option {
	return func(a *API) { a.readyProbe = p }
}

// WithSessionTTL overrides the lifetime of issued session cookies.
func WithSessionTTL(ttl time.Duration) Option {
	return func(a *API) { a.sessionTTL = ttl }
}

// WithRateLimit overrides the per-IP token bucket parameters.
func WithRateLimit(burst, perSecond int) Option {
	return func(a *API) {
		a.rateBurst = burst
		a.ratePerSec = perSecond
	}
}

// WithClock injects the time source used to stamp new records.
func WithClock(fn func() time.Time) Option {
	return func(a *API) { a.now = fn }
}

// New wires the routes for the solicitudes API.
func New(authSvc *auth.Service, store solicitud.Store, reports *report.Generator, opts ...Option) *API {
	a := &API{
		mux:          http.NewServeMux(),
		version:      "dev",
		auth:         authSvc,
		solicitudes:  store,
		reports:      reports,
		sessionTTL:   auth.DefaultSessionTTL,
		maxBodyBytes: 1 << 20,
		rateBurst:    20,
		ratePerSec:   10,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.mux.HandleFunc("/healthz", a.handleHealthz)
	a.mux.HandleFunc("/readyz", a.handleReady)
	a.mux.HandleFunc("/api/info", a.handleInfo)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/api/login", a.handleLogin)
	a.mux.HandleFunc("/api/logout", a.handleLogout)
	a.mux.HandleFunc("/api/current_user", a.handleCurrentUser)
	a.mux.HandleFunc("/api/solicitudes", a.handleSolicitudes)
	a.mux.HandleFunc("/api/solicitudes/", a.handleSolicitudByID)
	a.mux.HandleFunc("/api/export-pdf", a.handleExportPDF)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
	return a
}

// Handler returns the fully assembled middleware chain.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withSession(h)
	h = MaxBodyBytes(h, a.maxBodyBytes)
	h = RateLimit(h, a.rateBurst, a.ratePerSec)
	h = SecurityHeaders(h)
	h = CORS(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}
