package domain

import "time"

// File permission constants.
const (
	DirectoryPermissions  = 0o755
	SecureFilePermissions = 0o600
)

// Timeout constants for external collaborators.
const (
	// DefaultHTTPTimeout bounds Drupal API calls.
	DefaultHTTPTimeout = 30 * time.Second
	// DefaultClassifyTimeout bounds the AI intent-classification fallback.
	DefaultClassifyTimeout = 15 * time.Second
	// DefaultGenerateTimeout bounds AI content generation.
	DefaultGenerateTimeout = 120 * time.Second
	// DrushTimeout bounds a single drush invocation.
	DrushTimeout = 5 * time.Minute
	// LifecycleStartTimeout bounds platform start/restart.
	LifecycleStartTimeout = 5 * time.Minute
	// LifecycleStopTimeout bounds platform stop.
	LifecycleStopTimeout = 2 * time.Minute
	// LifecycleStatusTimeout bounds the read-only status query.
	LifecycleStatusTimeout = time.Minute
	// ScaffoldTimeout bounds composer project creation.
	ScaffoldTimeout = 10 * time.Minute
)

// Query limits.
const (
	// DefaultQueryLimit applies when no count is given.
	DefaultQueryLimit = 10
	// MaxQueryLimit caps any requested count.
	MaxQueryLimit = 100
)

// History constants.
const (
	DefaultHistoryLimit = 20
)

// TimestampFormat is the standard timestamp format for persisted records.
const TimestampFormat = time.RFC3339
