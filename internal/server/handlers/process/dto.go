package process

import (
	"time"

	"github.com/githerd/githerd/internal/runner"
)

// StatusResponse represents the monitored process state.
type StatusResponse struct {
	Running   bool       `json:"running"`
	PID       int        `json:"pid,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Restarts  int        `json:"restarts"`
	LastExit  string     `json:"last_exit,omitempty"`
}

func newStatusResponse(status runner.Status) StatusResponse {
	return StatusResponse{
		Running:   status.Running,
		PID:       status.PID,
		StartedAt: status.StartedAt,
		Restarts:  status.Restarts,
		LastExit:  status.LastExit,
	}
}
