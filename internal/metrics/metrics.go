package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	RoundsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoundsStarted,
			Help: HelpTextRoundsStarted,
		},
	)

	RoundsFinished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRoundsFinished,
			Help: HelpTextRoundsFinished,
		},
	)

	RoundScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameRoundScore,
			Help:    HelpTextRoundScore,
			Buckets: RoundScoreBuckets,
		},
	)

	Whacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWhacks,
			Help: HelpTextWhacks,
		},
		[]string{LabelArchetype, LabelResult},
	)

	Misses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMisses,
			Help: HelpTextMisses,
		},
	)

	MoneySaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneySaved,
			Help: HelpTextMoneySaved,
		},
	)
)

// Collaborator Metrics
var (
	TauntFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTauntFetches,
			Help: HelpTextTauntFetches,
		},
		[]string{LabelSource, LabelResult},
	)

	ArchiveWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameArchiveWrites,
			Help: HelpTextArchiveWrites,
		},
		[]string{LabelResult},
	)

	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWebSocketActive,
			Help: HelpTextWebSocketActive,
		},
	)

	LeaderboardTopScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameTopScore,
			Help: HelpTextTopScore,
		},
	)
)
