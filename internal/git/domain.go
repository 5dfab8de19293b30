package git

// Position describes where the local branch stands relative to upstream.
type Position string

const (
	// PositionUpToDate means local and upstream point at the same commit.
	PositionUpToDate Position = "up_to_date"
	// PositionBehind means local is a strict ancestor of upstream and can
	// fast-forward.
	PositionBehind Position = "behind"
	// PositionDiverged means local is neither equal to upstream nor an
	// ancestor of it.
	PositionDiverged Position = "diverged"
)

// SyncState holds the three commit identifiers the update decision is made
// from. Hashes are opaque strings compared only for equality.
type SyncState struct {
	Local     string // local HEAD commit
	Remote    string // upstream-tracking commit
	MergeBase string // merge-base of the two
}

// Position classifies the state. Local ahead of upstream (remote equal to
// the merge-base) counts as diverged: there is nothing to fast-forward and
// pushing is not this system's job.
func (s SyncState) Position() Position {
	switch {
	case s.Local == s.Remote:
		return PositionUpToDate
	case s.Local == s.MergeBase:
		return PositionBehind
	default:
		return PositionDiverged
	}
}
