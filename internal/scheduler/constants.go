package scheduler

import "time"

// Log messages for scheduler operations
const (
	LogMsgTaskJobFailed = "Scheduled job failed"
	LogMsgTaskStarted   = "Scheduled task started"
	LogMsgTaskStopped   = "Scheduled task stopped"
)

// MinInterval is the shortest delay a task is ever armed with
const MinInterval = time.Millisecond
