package git

import "time"

type Config struct {
	Dir     string        // path to the working checkout
	Remote  string        // remote to fetch, usually "origin"
	Branch  string        // branch the checkout tracks
	Timeout time.Duration // bound on fetch and pull network calls
}

// Upstream is the default upstream-tracking revision, e.g. "origin/main".
func (c Config) Upstream() string {
	return c.Remote + "/" + c.Branch
}
