package runner

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

// terminateStale kills processes whose command line matches the configured
// pattern but that this runner does not own. It preserves the original
// kill-by-pattern contract for processes that predate the daemon, so a
// fresh launch never races a leftover instance.
func (r *Runner) terminateStale(ctx context.Context) error {
	if r.config.Pattern == "" {
		return nil
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := int32(os.Getpid())
	var owned int32
	if r.cmd != nil && r.cmd.Process != nil {
		owned = int32(r.cmd.Process.Pid)
	}

	for _, p := range procs {
		if p.Pid == self || p.Pid == owned {
			continue
		}

		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil || !strings.Contains(cmdline, r.config.Pattern) {
			continue
		}

		r.logger.Warn("terminating stale process matching pattern",
			zap.Int32("pid", p.Pid),
			zap.String("pattern", r.config.Pattern),
			zap.String("cmdline", cmdline))

		if err := p.TerminateWithContext(ctx); err != nil {
			r.logger.Warn("failed to terminate stale process",
				zap.Int32("pid", p.Pid), zap.Error(err))
		}
	}

	return nil
}
