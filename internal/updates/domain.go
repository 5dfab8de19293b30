package updates

import (
	"context"
	"time"

	"github.com/githerd/githerd/internal/git"
	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeUpToDate Outcome = "up_to_date" // local matches upstream, nothing done
	OutcomeUpdated  Outcome = "updated"    // fast-forward pulled, process (re)launched
	OutcomeDiverged Outcome = "diverged"   // histories diverged, manual intervention required
	OutcomeFailed   Outcome = "failed"     // fetch, pull, or process action failed
)

type CycleDraft struct {
	// Inputs
	Upstream string // upstream revision the cycle compared against

	// Repository state
	Local     string // local HEAD at cycle start
	Remote    string // upstream-tracking commit
	MergeBase string // merge-base of the two

	// Result
	Outcome   Outcome
	Restarted bool   // a running process was terminated and relaunched
	Error     string // failure detail when Outcome is failed

	StartedAt  time.Time
	FinishedAt time.Time
}

type Cycle struct {
	CycleDraft

	ID        uuid.UUID
	CreatedAt time.Time
}

// GitSyncer is the slice of the git service the updater depends on.
type GitSyncer interface {
	// Fetch updates remote-tracking refs.
	Fetch(ctx context.Context) error

	// State resolves local, upstream, and merge-base commits. An empty
	// upstream selects the configured default.
	State(ctx context.Context, upstream string) (git.SyncState, error)

	// Pull fast-forwards the checkout.
	Pull(ctx context.Context) error

	// Upstream returns the configured default upstream revision.
	Upstream() string
}

// ProcessRunner is the slice of the runner the updater depends on.
type ProcessRunner interface {
	// Start launches the monitored process.
	Start(ctx context.Context) error

	// Restart stops the monitored process if running and starts it again.
	Restart(ctx context.Context) error

	// Running reports whether the monitored process is alive.
	Running() bool
}
