package updates

import (
	"context"
	"sync"
	"time"

	"github.com/githerd/githerd/internal/git"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	git    GitSyncer
	proc   ProcessRunner
	cycles *Repository

	logger *zap.Logger

	// Serializes cycles so a manual trigger cannot overlap the periodic
	// loop. Contenders are rejected, not queued.
	mu sync.Mutex
}

func NewService(git GitSyncer, proc ProcessRunner, cycles *Repository, logger *zap.Logger) *Service {
	return &Service{
		git:    git,
		proc:   proc,
		cycles: cycles,

		logger: logger,
	}
}

// Run executes one update cycle: fetch, compare local HEAD, the upstream
// ref (configured default when empty), and their merge-base, then act on
// the three-way outcome. The cycle is always recorded; operational failures
// are carried in the record's outcome, not in the returned error.
//
// The comparison honors the given upstream, but a resulting pull always
// fast-forwards the configured branch.
func (s *Service) Run(ctx context.Context, upstream string) (*Cycle, error) {
	if !s.mu.TryLock() {
		return nil, ErrCycleInProgress
	}
	defer s.mu.Unlock()

	if upstream == "" {
		upstream = s.git.Upstream()
	}

	logger := s.logger.With(zap.String("upstream", upstream))
	logger.Info("starting update cycle")

	draft := CycleDraft{
		Upstream:  upstream,
		StartedAt: time.Now(),
	}

	s.execute(ctx, logger, &draft)
	draft.FinishedAt = time.Now()

	cyclesTotal.WithLabelValues(string(draft.Outcome)).Inc()

	cycle, err := s.cycles.Create(ctx, &draft)
	if err != nil {
		logger.Error("failed to record update cycle", zap.Error(err))
		return nil, err
	}

	logger.Info("update cycle finished",
		zap.String("id", cycle.ID.String()),
		zap.String("outcome", string(cycle.Outcome)),
		zap.Bool("restarted", cycle.Restarted))

	return cycle, nil
}

func (s *Service) execute(ctx context.Context, logger *zap.Logger, draft *CycleDraft) {
	if err := s.git.Fetch(ctx); err != nil {
		// Not masked as "up to date": a failed fetch is a reportable
		// outcome of its own. The next cycle retries.
		logger.Warn("fetch failed", zap.Error(err))
		draft.Outcome = OutcomeFailed
		draft.Error = err.Error()
		return
	}

	state, err := s.git.State(ctx, draft.Upstream)
	if err != nil {
		logger.Warn("failed to resolve sync state", zap.Error(err))
		draft.Outcome = OutcomeFailed
		draft.Error = err.Error()
		return
	}

	draft.Local = state.Local
	draft.Remote = state.Remote
	draft.MergeBase = state.MergeBase

	switch state.Position() {
	case git.PositionUpToDate:
		logger.Info("up to date")
		draft.Outcome = OutcomeUpToDate

	case git.PositionBehind:
		s.applyUpdate(ctx, logger, draft)

	case git.PositionDiverged:
		logger.Warn("local and remote histories have diverged, manual intervention required",
			zap.String("local", state.Local),
			zap.String("remote", state.Remote),
			zap.String("merge_base", state.MergeBase))
		draft.Outcome = OutcomeDiverged
	}
}

func (s *Service) applyUpdate(ctx context.Context, logger *zap.Logger, draft *CycleDraft) {
	if err := s.git.Pull(ctx); err != nil {
		logger.Error("pull failed", zap.Error(err))
		draft.Outcome = OutcomeFailed
		draft.Error = err.Error()
		return
	}

	var err error
	if s.proc.Running() {
		draft.Restarted = true
		err = s.proc.Restart(ctx)
	} else {
		err = s.proc.Start(ctx)
	}

	if err != nil {
		// The pull already landed; only the process action failed.
		logger.Error("process action failed after pull", zap.Error(err))
		draft.Outcome = OutcomeFailed
		draft.Error = err.Error()
		return
	}

	logger.Info("update complete", zap.Bool("restarted", draft.Restarted))
	draft.Outcome = OutcomeUpdated
}

// Get retrieves a cycle by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Cycle, error) {
	s.logger.Debug("getting cycle", zap.String("id", id.String()))

	cycle, err := s.cycles.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get cycle", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	return cycle, nil
}

// List retrieves recent cycles, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Cycle, error) {
	s.logger.Debug("listing cycles", zap.Int("limit", limit))

	cycles, err := s.cycles.List(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list cycles", zap.Error(err))
		return nil, err
	}

	return cycles, nil
}

// Latest retrieves the most recent cycle.
func (s *Service) Latest(ctx context.Context) (*Cycle, error) {
	return s.cycles.Latest(ctx)
}
