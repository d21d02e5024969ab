package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and name the specific problem.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTargets is returned when no layout snapshot is specified.
	ErrNoTargets = errors.New("no layout snapshot specified: provide one or more snapshot files")

	// ErrOutputConflict is returned when both --output and --stdout are
	// specified. The two destinations are mutually exclusive.
	ErrOutputConflict = errors.New("conflicting destinations: --output and --stdout cannot be used together")

	// ErrOutputWithMultipleTargets is returned when --output is combined
	// with more than one snapshot. Batch runs derive one output path per
	// target instead.
	ErrOutputWithMultipleTargets = errors.New("--output requires exactly one layout snapshot")

	// ErrInvalidPageSize is returned when the page size is zero.
	// The figure is displayed on every output-section row and must be
	// a real page size.
	ErrInvalidPageSize = errors.New("invalid page size: must be positive")

	// ErrInvalidJobs is returned when the job count is not positive.
	// Zero jobs would mean no renders run at all.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")
)
