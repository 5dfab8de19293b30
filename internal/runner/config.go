package runner

import "time"

type Config struct {
	Command     string        // executable to launch
	Args        []string      // arguments to the executable
	Dir         string        // working directory for the process
	LogFile     string        // combined stdout+stderr append target
	Pattern     string        // command-line substring identifying the process
	GracePeriod time.Duration // time between SIGTERM and SIGKILL on stop
}
