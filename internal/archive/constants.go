package archive

import "time"

// Leaderboard limits
const (
	DefaultLimit = 10
	MaxLimit     = 100

	// DefaultMemoryCapacity bounds the in-memory archive
	DefaultMemoryCapacity = 10000
)

// RefreshInterval is how often the leaderboard gauges are recomputed
const RefreshInterval = time.Minute

// RefreshTaskName is the scheduler task that recomputes the leaderboard gauges
const RefreshTaskName = "archive:leaderboard-refresh"

// Log messages
const (
	LogMsgRoundArchived      = "Round archived"
	LogMsgRoundArchiveFailed = "Failed to archive round"
	LogMsgRefreshFailed      = "Failed to refresh leaderboard gauges"
)
