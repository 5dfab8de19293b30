package updates

import (
	"time"

	"github.com/google/uuid"
)

// cycleModel is the storage representation of an update cycle.
type cycleModel struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Upstream  string `json:"upstream"`
	Local     string `json:"local"`
	Remote    string `json:"remote"`
	MergeBase string `json:"merge_base"`

	Outcome   Outcome `json:"outcome"`
	Restarted bool    `json:"restarted"`
	Error     string  `json:"error,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func newCycleModel(draft *CycleDraft) *cycleModel {
	if draft == nil {
		return nil
	}

	return &cycleModel{
		ID:        uuid.Must(uuid.NewV7()),
		CreatedAt: time.Now(),

		Upstream:  draft.Upstream,
		Local:     draft.Local,
		Remote:    draft.Remote,
		MergeBase: draft.MergeBase,

		Outcome:   draft.Outcome,
		Restarted: draft.Restarted,
		Error:     draft.Error,

		StartedAt:  draft.StartedAt,
		FinishedAt: draft.FinishedAt,
	}
}

func newCycle(model *cycleModel) *Cycle {
	if model == nil {
		return nil
	}

	return &Cycle{
		CycleDraft: CycleDraft{
			Upstream:   model.Upstream,
			Local:      model.Local,
			Remote:     model.Remote,
			MergeBase:  model.MergeBase,
			Outcome:    model.Outcome,
			Restarted:  model.Restarted,
			Error:      model.Error,
			StartedAt:  model.StartedAt,
			FinishedAt: model.FinishedAt,
		},
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
	}
}
