package watcher

import (
	cst "github.com/nspcc-dev/reputation-scoreboard/contracts/scoreboard/scoreboardconst"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "scoreboard"
	subsystem = "watcher"
)

// Metrics groups Prometheus collectors updated by Watcher.
type Metrics struct {
	boards  prometheus.Counter
	votes   *prometheus.CounterVec
	resets  prometheus.Counter
	unlocks prometheus.Counter
	height  prometheus.Gauge
}

// NewMetrics creates watcher metrics and registers them in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		boards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "board_initializations_total",
			Help:      "Number of observed board initializations",
		}),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "votes_total",
			Help:      "Number of observed votes by direction",
		}, []string{"direction"}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "score_resets_total",
			Help:      "Number of observed score resets",
		}),
		unlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "role_unlocks_total",
			Help:      "Number of observed top contributor role unlocks",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "processed_height",
			Help:      "Index of the last processed block",
		}),
	}

	// Zero values are exported before the first vote.
	m.votes.WithLabelValues(cst.DirectionUpvote)
	m.votes.WithLabelValues(cst.DirectionDownvote)

	reg.MustRegister(m.boards, m.votes, m.resets, m.unlocks, m.height)
	return m
}
