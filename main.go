// githerd keeps a long-running process in lockstep with a git remote: it
// polls the upstream branch, fast-forwards the local checkout when it falls
// behind, and restarts the monitored process on every update.
package main

import "github.com/githerd/githerd/internal"

func main() {
	internal.Run()
}
