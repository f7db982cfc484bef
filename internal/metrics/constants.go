package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Game metric names
const (
	MetricNameActiveSessions  = "game_active_sessions"
	MetricNameRoundsStarted   = "game_rounds_started_total"
	MetricNameRoundsFinished  = "game_rounds_finished_total"
	MetricNameRoundScore      = "game_round_score"
	MetricNameWhacks          = "game_whacks_total"
	MetricNameMisses          = "game_misses_total"
	MetricNameMoneySaved      = "game_money_saved_total"
	MetricNameTauntFetches    = "taunt_fetches_total"
	MetricNameArchiveWrites   = "archive_writes_total"
	MetricNameWebSocketActive = "websocket_connections"
	MetricNameTopScore        = "leaderboard_top_score"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of session events published"
)

// Game metric help text
const (
	HelpTextActiveSessions  = "Current number of open game sessions"
	HelpTextRoundsStarted   = "Total number of rounds started"
	HelpTextRoundsFinished  = "Total number of rounds finished"
	HelpTextRoundScore      = "Final score of finished rounds"
	HelpTextWhacks          = "Total number of whacks on active lawyers"
	HelpTextMisses          = "Total number of clicks on empty board space"
	HelpTextMoneySaved      = "Total legal fees avoided"
	HelpTextTauntFetches    = "Total number of taunt table fetches by outcome"
	HelpTextArchiveWrites   = "Total number of round archive writes by outcome"
	HelpTextWebSocketActive = "Current number of open session WebSocket connections"
	HelpTextTopScore        = "Best archived round score, refreshed periodically"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelArchetype = "archetype"
	LabelResult    = "result"
	LabelSource    = "source"
)

// Label values
const (
	ResultKill     = "kill"
	ResultArmor    = "armor"
	ResultSuccess  = "success"
	ResultFallback = "fallback"
	ResultCached   = "cached"
	ResultError    = "error"
	PathUnmatched  = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RoundScoreBuckets spans a casual round up to a long combo streak
var RoundScoreBuckets = []float64{0, 500, 1000, 2500, 5000, 10000, 20000, 40000}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadUnexpected = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
