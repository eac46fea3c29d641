package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fiscal",
		Name:      "sessions_active",
		Help:      "Number of open sessions.",
	})
	sessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fiscal",
		Name:      "sessions_expired_total",
		Help:      "Sessions closed by the idle sweep.",
	})
	reportsCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fiscal",
		Name:      "reports_committed_total",
		Help:      "Reports appended to a history.",
	})
	submissionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fiscal",
		Name:      "submissions_rejected_total",
		Help:      "Submissions refused because the draft was incomplete.",
	})
	bonusCredited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fiscal",
		Name:      "bonus_credited_reais_total",
		Help:      "Sum of bonuses credited to wallets, in reais.",
	})
)
