// Package metrics holds the prometheus indicators shared by the guard
// services, the API and the keeper.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "guardian"

// PromIndicators is safe to use through a nil pointer, in which case every
// observation is dropped.
type PromIndicators struct {
	guardDecisionsTotal     *prometheus.CounterVec
	registryChangesTotal    *prometheus.CounterVec
	approvalsTotal          prometheus.Counter
	pausesTotal             *prometheus.CounterVec
	httpRequestDuration     *prometheus.HistogramVec
	rpcRequestDuration      *prometheus.HistogramVec
	keeperAlertsTotal       *prometheus.CounterVec
	ledgerTransactionsTotal *prometheus.CounterVec
	guardSyncChangesTotal   *prometheus.CounterVec
	guardSyncBlock          prometheus.Gauge
}

func NewPromIndicators(reg prometheus.Registerer) *PromIndicators {
	factory := promauto.With(reg)
	return &PromIndicators{
		guardDecisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "guard_decisions_total",
				Help:      "Pre-execution checks by result and rejection reason",
			},
			[]string{"result", "reason"},
		),
		registryChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "registry_changes_total",
				Help:      "Executor and auditor registry mutations",
			},
			[]string{"kind", "action"},
		),
		approvalsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "approvals_total",
				Help:      "Fingerprints recorded by auditors",
			},
		),
		pausesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "market_pauses_total",
				Help:      "Market pause attempts by market kind and result",
			},
			[]string{"kind", "result"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of API requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		rpcRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "rpc_request_duration_seconds",
				Help:      "Duration of json-rpc <method> in seconds",
			},
			[]string{"method"},
		),
		keeperAlertsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "keeper_alerts_total",
				Help:      "Monitoring alerts handled by the keeper",
			},
			[]string{"result"},
		),
		ledgerTransactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "ledger_transactions_total",
				Help:      "Drill ledger transactions by method and status",
			},
			[]string{"method", "status"},
		),
		guardSyncChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "guard_sync_changes_total",
				Help:      "SafeGuard logs mirrored into the store by event",
			},
			[]string{"event"},
		),
		guardSyncBlock: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "guard_sync_block",
				Help:      "Last block whose SafeGuard logs were mirrored",
			},
		),
	}
}

// AddGuardDecision counts one checkTransaction outcome.
func (p *PromIndicators) AddGuardDecision(result, reason string) {
	if p == nil {
		return
	}
	p.guardDecisionsTotal.WithLabelValues(result, reason).Inc()
}

// AddRegistryChange counts one add or remove.
func (p *PromIndicators) AddRegistryChange(kind, action string) {
	if p == nil {
		return
	}
	p.registryChangesTotal.WithLabelValues(kind, action).Inc()
}

func (p *PromIndicators) AddApprovals(n int) {
	if p == nil {
		return
	}
	p.approvalsTotal.Add(float64(n))
}

func (p *PromIndicators) AddPause(kind, result string) {
	if p == nil {
		return
	}
	p.pausesTotal.WithLabelValues(kind, result).Inc()
}

func (p *PromIndicators) ObserveHTTPRequest(method, route, status string, seconds float64) {
	if p == nil {
		return
	}
	p.httpRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func (p *PromIndicators) ObserveRPCRequest(method string, seconds float64) {
	if p == nil {
		return
	}
	p.rpcRequestDuration.WithLabelValues(method).Observe(seconds)
}

func (p *PromIndicators) AddKeeperAlert(result string) {
	if p == nil {
		return
	}
	p.keeperAlertsTotal.WithLabelValues(result).Inc()
}

func (p *PromIndicators) AddLedgerTransaction(method, status string) {
	if p == nil {
		return
	}
	p.ledgerTransactionsTotal.WithLabelValues(method, status).Inc()
}

// AddGuardSyncChange counts one mirrored SafeGuard log.
func (p *PromIndicators) AddGuardSyncChange(event string) {
	if p == nil {
		return
	}
	p.guardSyncChangesTotal.WithLabelValues(event).Inc()
}

func (p *PromIndicators) SetGuardSyncBlock(block uint64) {
	if p == nil {
		return
	}
	p.guardSyncBlock.Set(float64(block))
}

// Handler exposes the gatherer in the prometheus text format.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
