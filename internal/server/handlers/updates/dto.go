package updates

import (
	"time"

	"github.com/githerd/githerd/internal/updates"
	"github.com/google/uuid"
)

// TriggerRequest represents the request payload for running a cycle now.
type TriggerRequest struct {
	// Ref overrides the configured upstream revision, e.g. "origin/main".
	Ref string `json:"ref,omitempty" validate:"omitempty,min=1,max=255"`
}

// CycleResponse represents one recorded update cycle.
type CycleResponse struct {
	ID uuid.UUID `json:"id"`

	Upstream  string `json:"upstream"`
	Local     string `json:"local"`
	Remote    string `json:"remote"`
	MergeBase string `json:"merge_base"`

	Outcome   updates.Outcome `json:"outcome"`
	Restarted bool            `json:"restarted"`
	Error     string          `json:"error,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func newCycleResponse(domain *updates.Cycle) CycleResponse {
	return CycleResponse{
		ID: domain.ID,

		Upstream:  domain.Upstream,
		Local:     domain.Local,
		Remote:    domain.Remote,
		MergeBase: domain.MergeBase,

		Outcome:   domain.Outcome,
		Restarted: domain.Restarted,
		Error:     domain.Error,

		StartedAt:  domain.StartedAt,
		FinishedAt: domain.FinishedAt,
		CreatedAt:  domain.CreatedAt,
	}
}
