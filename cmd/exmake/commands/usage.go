package commands

import (
	"fmt"
	"io"
)

const usageText = `exmake [switches] [--] [targets] [--args tail-args]

Switches:
  -h, --help       show this help and exit
  -v, --version    show the version and exit
  -f, --file       entry script path (default "Exmakefile")
  -l, --loud       print a status line for every recipe invocation
  -q, --question   check staleness only; run nothing
  -j, --jobs       maximum number of concurrent recipe invocations (default 1)
  -t, --time       record a build timing trace
  -c, --clear      clear the cache before building
  -a, --args       everything after this switch is passed through opaquely

A literal -- forces everything up to --args to be parsed as target names.
Default target when none are given: all.
`

// PrintUsage writes the command-line surface's usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
