package logger

// Accepted LOG_LEVEL values. "warning" is an alias of "warn".
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Accepted LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Defaults stamped on every record when the caller leaves them blank
const (
	DefaultServiceName = "whack-a-lawyer"
	DefaultVersion     = "dev"
)

// Deployment environments. Source locations are attached only in dev.
const (
	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
	EnvironmentTest       = "test"
)

// Attribute keys shared by the process-wide logger and the scoped loggers
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeySessionID   = "session_id"
)
