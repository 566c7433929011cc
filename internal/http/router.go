package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"vote-ledger/internal/domain/admin"
	"vote-ledger/internal/domain/ledger"
	jwtpkg "vote-ledger/internal/platform/jwt"
	"vote-ledger/internal/worker"
)

type Deps struct {
	Ledger            *ledger.Service
	Admin             *admin.Controller
	Poller            *worker.SyncPoller
	JWT               *jwtpkg.Manager
	AdminPasswordHash []byte
	// Zero VoteRate means 10 votes per minute per client IP.
	VoteRate  rate.Limit
	VoteBurst int
	// RequestTimeout bounds every route except the tally stream, which lives
	// as long as its client. Zero means 60s.
	RequestTimeout time.Duration
}

type Handler struct {
	ledger            *ledger.Service
	admin             *admin.Controller
	poller            *worker.SyncPoller
	jwtMgr            *jwtpkg.Manager
	adminPasswordHash []byte
}

func NewRouter(d Deps) http.Handler {
	h := &Handler{
		ledger:            d.Ledger,
		admin:             d.Admin,
		poller:            d.Poller,
		jwtMgr:            d.JWT,
		adminPasswordHash: d.AdminPasswordHash,
	}

	voteRate, voteBurst := d.VoteRate, d.VoteBurst
	if voteRate == 0 {
		voteRate = rate.Every(time.Minute / 10)
	}
	if voteBurst <= 0 {
		voteBurst = 3
	}

	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(timeout))
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/ready", h.handleReady)
		r.Get("/swagger/*", httpSwagger.WrapHandler)
		r.Get("/metrics", promhttp.Handler().ServeHTTP)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Long-lived: ends when the client disconnects.
		r.Get("/tally/stream", h.handleTallyStream)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(timeout))

			r.Post("/auth/admin", h.handleAdminLogin)
			r.Get("/tally", h.handleTally)
			r.Get("/voters/{voterID}", h.handleVoterStatus)
			r.With(RateLimitVotes(voteRate, voteBurst)).Post("/votes", h.handleCastVote)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(d.JWT))
				r.Use(RequireRole(roleAdmin))
				r.Post("/candidates", h.handleAddCandidate)
				r.Post("/reset", h.handleReset)
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ledger.Snapshot(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "store_unavailable",
			"message": "store not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
