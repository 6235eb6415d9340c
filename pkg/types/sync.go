package types

import (
	"fmt"
	"time"
)

// SyncOutcome classifies a completed sync pass for the audit log.
type SyncOutcome string

// Sync log outcomes.
const (
	OutcomeSuccess SyncOutcome = "success"
	OutcomePartial SyncOutcome = "partial"
	OutcomeError   SyncOutcome = "error"
)

// SyncLogEntry is one append-only audit record of a sync attempt.
type SyncLogEntry struct {
	ID          int64       `json:"id"`
	Timestamp   time.Time   `json:"sync_date"`
	Status      SyncOutcome `json:"status"`
	Message     string      `json:"message"`
	ItemsSynced int         `json:"items_synced"`
}

// SyncResult is the aggregate outcome of a push, pull, or full sync pass.
// It is the only thing surfaced to callers about a pass; individual item
// failures are collected into Errors and the pass keeps going.
type SyncResult struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	ItemsSynced int      `json:"items_synced"`
	Errors      []string `json:"errors"`
}

// Absorb folds another phase's result into r, summing counts and
// concatenating errors. Success survives only if both phases succeeded.
func (r *SyncResult) Absorb(other SyncResult) {
	r.ItemsSynced += other.ItemsSynced
	r.Errors = append(r.Errors, other.Errors...)
	if !other.Success {
		r.Success = false
	}
}

// Fail records a per-item error without aborting the pass.
func (r *SyncResult) Fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Success = false
}

// Outcome maps the result to a sync log classification: a clean pass is a
// success, a pass that synced some items despite errors is partial, and a
// pass that collected errors while syncing nothing failed outright.
func (r *SyncResult) Outcome() SyncOutcome {
	switch {
	case len(r.Errors) == 0:
		return OutcomeSuccess
	case r.ItemsSynced > 0:
		return OutcomePartial
	default:
		return OutcomeError
	}
}

// PendingCount reports how many local rows still await a push, partitioned
// by entity type.
type PendingCount struct {
	Soils      int `json:"soils"`
	Parameters int `json:"parameters"`
}

// Total returns the combined pending count.
func (c PendingCount) Total() int { return c.Soils + c.Parameters }
