package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

const defaultScraperCommand = "python3 stackoverflow_scraper.py"
const defaultCasesPath = "tests/test_cases.json"
const defaultReadyTimeout = time.Second * 30

type commandParams struct {
	serviceURL     string
	port           int
	casesPath      string
	scraperCommand string
	readyTimeout   time.Duration
	filters        framework.RegexFilters
	debug          bool
	debugAll       bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "attach to an already-running scraper at this URL instead of launching one")
	fs.IntVar(&c.port, "port", 0, "the port to use for the scraper service (overrides STACKOVERFLOW_API_PORT)")
	fs.StringVar(&c.casesPath, "cases", defaultCasesPath, "path to the test case file")
	fs.StringVar(&c.scraperCommand, "command", defaultScraperCommand, "command that launches the scraper service")
	fs.DurationVar(&c.readyTimeout, "timeout", defaultReadyTimeout, "how long to wait for the scraper service to start")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}

	// Anything after the flags is treated as the scraper command, so that
	// arguments with spaces survive: harness -port 5001 python3 my_scraper.py
	if fs.NArg() > 0 {
		var b commandBuilder
		b.add(fs.Args()...)
		c.scraperCommand = b.String()
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
