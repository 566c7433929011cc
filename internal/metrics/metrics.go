package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal  *prometheus.CounterVec
	mutationsTotal     *prometheus.CounterVec
	casConflictsTotal  *prometheus.CounterVec
	votesCastTotal     *prometheus.CounterVec
	pollFailuresTotal  prometheus.Counter
	ledgerVersionGauge prometheus.Gauge
	ledgerVotersGauge  prometheus.Gauge
	registerOnce       sync.Once

	stateMu     sync.Mutex
	lastVersion int64
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the vote ledger API.",
		}, []string{"method", "path", "status"})
		mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "mutations_total",
			Help:      "Ledger mutations by operation and outcome.",
		}, []string{"op", "result"})
		casConflictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "cas_conflicts_total",
			Help:      "Compare-and-set attempts rejected because of a stale version.",
		}, []string{"op"})
		votesCastTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "votes_cast_total",
			Help:      "Committed votes per candidate.",
		}, []string{"candidate"})
		pollFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "sync_poll_failures_total",
			Help:      "Snapshot polls skipped because the store was unavailable.",
		})
		ledgerVersionGauge = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "ledger",
			Name:      "version",
			Help:      "Last observed ledger version.",
		})
		ledgerVotersGauge = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "ledger",
			Name:      "voters",
			Help:      "Number of voters recorded in the last observed snapshot.",
		})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncMutation(op, result string) {
	if mutationsTotal == nil {
		return
	}
	mutationsTotal.WithLabelValues(op, result).Inc()
}

func IncConflict(op string) {
	if casConflictsTotal == nil {
		return
	}
	casConflictsTotal.WithLabelValues(op).Inc()
}

func IncVoteCast(candidate string) {
	if votesCastTotal == nil {
		return
	}
	votesCastTotal.WithLabelValues(candidate).Inc()
}

func IncPollFailure() {
	if pollFailuresTotal == nil {
		return
	}
	pollFailuresTotal.Inc()
}

// SetLedgerState records the ledger version and voter count. Reports from
// concurrent writers arrive in any order, so a version older than the last
// one recorded is ignored and the gauges never move backwards.
func SetLedgerState(version, voters int64) bool {
	stateMu.Lock()
	defer stateMu.Unlock()
	if version <= lastVersion {
		return false
	}
	lastVersion = version
	if ledgerVersionGauge != nil {
		ledgerVersionGauge.Set(float64(version))
		ledgerVotersGauge.Set(float64(voters))
	}
	return true
}

// LedgerVersion is the highest version passed to SetLedgerState.
func LedgerVersion() int64 {
	stateMu.Lock()
	defer stateMu.Unlock()
	return lastVersion
}
