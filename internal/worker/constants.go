package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerQueueFull  = "Worker queue full, job dropped"
	LogMsgWorkerPoolClosed = "Worker pool stopped, job dropped"
)

// DefaultJobTimeout bounds a single job's context
const DefaultJobTimeout = 30 * time.Second

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
	TestWaitTimeout      = time.Second
)
