package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/restqa/books-contract-tests/framework"
)

const defaultProbeTimeout = time.Second * 10

type commandParams struct {
	baseURL      string
	settingsPath string
	filters      framework.RegexFilters
	probeTimeout time.Duration
	debug        bool
	debugAll     bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.baseURL, "url", "", "base URL of the Books API (overrides settings file and environment)")
	fs.StringVar(&c.settingsPath, "config", "", "path to a YAML settings file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.DurationVar(&c.probeTimeout, "timeout", defaultProbeTimeout, "how long to wait for the service to answer the initial probe")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that reruns only the failed tests. Filters
// apply at every level of the test tree, so each failure contributes anchored
// patterns for itself and each of its ancestors.
func rerunCommand(params commandParams, results framework.Results) string {
	var b commandBuilder
	b.add(os.Args[0])
	if params.baseURL != "" {
		b.add("-url", params.baseURL)
	}
	if params.settingsPath != "" {
		b.add("-config", params.settingsPath)
	}
	seen := map[string]bool{}
	for _, f := range results.Failures {
		for i := range f.TestID.Path {
			name := strings.Join(f.TestID.Path[:i+1], "/")
			pattern := "^" + regexp.QuoteMeta(name) + "$"
			if !seen[pattern] {
				seen[pattern] = true
				b.add("-run", pattern)
			}
		}
	}
	return b.String()
}
