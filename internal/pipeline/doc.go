// Package pipeline coordinates rendering of multiple layout snapshots.
//
// A single render is synchronous and cheap; what the pipeline adds is
// bounded concurrency across many snapshots (a build tree's worth of
// link outputs) with per-input logging and first-error cancellation.
// Each individual map file is still published atomically, so a failed
// batch leaves every already-written output valid and every pending
// output absent.
package pipeline
