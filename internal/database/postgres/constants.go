package postgres

// Error Messages - Round Archive Operations
const (
	ErrMsgFailedToInsertRound = "failed to insert round summary"
	ErrMsgFailedToQueryTop    = "failed to query top rounds"
	ErrMsgFailedToScanRound   = "failed to scan round summary"
)
