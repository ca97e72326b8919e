package domain

// Options holds the recognized CLI switches, decoded from their flags.
type Options struct {
	Help     bool
	Version  bool
	File     string
	Loud     bool
	Question bool
	Jobs     int
	Time     bool
	Clear    bool
}

// DefaultFile is the entry script name used when --file is not given.
const DefaultFile = "Exmakefile"

// DefaultTarget is the target built when none is requested on the command line.
const DefaultTarget = "all"

// CacheDirName is the cache directory name under the working directory.
const CacheDirName = ".exmake"

// Config is the fully-parsed invocation: the targets requested, the decoded
// switches, and the opaque tail arguments following --args.
type Config struct {
	Targets []string
	Options Options
	Args    []string
}

// JobsOrDefault returns Options.Jobs, defaulting to 1 when unset or invalid.
func (c Config) JobsOrDefault() int {
	if c.Options.Jobs < 1 {
		return 1
	}
	return c.Options.Jobs
}

// TargetsOrDefault returns Targets, defaulting to []string{DefaultTarget}
// when none were requested.
func (c Config) TargetsOrDefault() []string {
	if len(c.Targets) == 0 {
		return []string{DefaultTarget}
	}
	return c.Targets
}
