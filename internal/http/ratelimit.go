package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"vote-ledger/internal/platform/apperr"
)

const visitorTTL = 10 * time.Minute

// RateLimitVotes throttles each client address independently. It relies on
// chi's RealIP middleware having already resolved RemoteAddr.
func RateLimitVotes(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	visitors := newVisitorTable(limit, burst, visitorTTL)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !visitors.allow(remoteHost(r.RemoteAddr)) {
				w.Header().Set("Retry-After", "60")
				errorResponse(w, apperr.TooManyRequests("rate_limited", "too many votes from this address", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorTable struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newVisitorTable(limit rate.Limit, burst int, ttl time.Duration) *visitorTable {
	return &visitorTable{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (t *visitorTable) allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if now.Sub(t.lastSweep) > t.ttl {
		for k, v := range t.visitors {
			if now.Sub(v.lastSeen) > t.ttl {
				delete(t.visitors, k)
			}
		}
		t.lastSweep = now
	}

	v, ok := t.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (t *visitorTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.visitors)
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
