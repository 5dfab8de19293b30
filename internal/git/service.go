package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"go.uber.org/zap"
)

type Service struct {
	config Config
	logger *zap.Logger
}

// NewService creates a new git service bound to the configured checkout.
func NewService(config Config, logger *zap.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// Upstream returns the configured default upstream revision.
func (s *Service) Upstream() string {
	return s.config.Upstream()
}

// Fetch updates remote-tracking refs from the configured remote. A remote
// that is already up to date is not an error.
func (s *Service) Fetch(ctx context.Context) error {
	s.logger.Debug("fetching remote",
		zap.String("dir", s.config.Dir),
		zap.String("remote", s.config.Remote))

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	repo, err := git.PlainOpen(s.config.Dir)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: s.config.Remote,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.logger.Error("failed to fetch remote", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	s.logger.Debug("remote fetched", zap.String("remote", s.config.Remote))

	return nil
}

// State resolves the local HEAD, the upstream-tracking commit, and their
// merge-base. An empty upstream falls back to the configured
// "<remote>/<branch>".
func (s *Service) State(_ context.Context, upstream string) (SyncState, error) {
	if upstream == "" {
		upstream = s.config.Upstream()
	}

	repo, err := git.PlainOpen(s.config.Dir)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return SyncState{}, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	head, err := repo.Head()
	if err != nil {
		s.logger.Error("failed to get HEAD", zap.Error(err))
		return SyncState{}, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	remoteHash, err := repo.ResolveRevision(plumbing.Revision(upstream))
	if err != nil {
		s.logger.Error("failed to resolve upstream",
			zap.String("upstream", upstream), zap.Error(err))
		return SyncState{}, fmt.Errorf("%w: %s: %w", ErrRevisionNotFound, upstream, err)
	}

	base, err := s.mergeBase(repo, head.Hash(), *remoteHash)
	if err != nil {
		return SyncState{}, err
	}

	state := SyncState{
		Local:     head.Hash().String(),
		Remote:    remoteHash.String(),
		MergeBase: base,
	}

	s.logger.Debug("sync state resolved",
		zap.String("local", state.Local),
		zap.String("remote", state.Remote),
		zap.String("merge_base", state.MergeBase),
		zap.String("position", string(state.Position())))

	return state, nil
}

// Pull fast-forwards the checkout to the configured upstream branch.
func (s *Service) Pull(ctx context.Context) error {
	s.logger.Info("pulling repository",
		zap.String("dir", s.config.Dir),
		zap.String("branch", s.config.Branch))

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	repo, err := git.PlainOpen(s.config.Dir)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		s.logger.Error("failed to get worktree", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName:    s.config.Remote,
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.logger.Error("failed to pull repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPullFailed, err)
	}

	s.logger.Info("repository pulled", zap.String("dir", s.config.Dir))

	return nil
}

func (s *Service) mergeBase(repo *git.Repository, local, remote plumbing.Hash) (string, error) {
	if local == remote {
		return local.String(), nil
	}

	localCommit, err := repo.CommitObject(local)
	if err != nil {
		s.logger.Error("failed to get local commit", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	remoteCommit, err := repo.CommitObject(remote)
	if err != nil {
		s.logger.Error("failed to get remote commit", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	bases, err := localCommit.MergeBase(remoteCommit)
	if err != nil {
		s.logger.Error("failed to compute merge-base", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	// Unrelated histories have no merge-base; the empty string can never
	// equal a commit hash, so the state classifies as diverged.
	if len(bases) == 0 {
		return "", nil
	}

	return bases[0].Hash.String(), nil
}
