package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

var (
	badgeStart = color.New(color.FgBlack, color.BgBlue, color.Bold).Sprint("[START]")
	badgePass  = color.New(color.FgBlack, color.BgGreen, color.Bold).Sprint("[PASS]")
	badgeFail  = color.New(color.FgBlack, color.BgRed, color.Bold).Sprint("[FAIL]")
	badgeSkip  = color.New(color.FgBlack, color.BgYellow, color.Bold).Sprint("[SKIP]")
)

// ConsoleTestLogger prints test progress to the console with colored status
// badges, and mirrors the same output uncolored to an optional writer,
// normally the per-run log file.
type ConsoleTestLogger struct {
	// DebugOutputOnFailure dumps a test's captured debug output when it fails.
	DebugOutputOnFailure bool
	// DebugOutputOnSuccess dumps debug output for passing tests too.
	DebugOutputOnSuccess bool
	// Output is the console writer; os.Stdout when nil.
	Output io.Writer
	// Mirror receives an uncolored copy of everything printed.
	Mirror io.Writer
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	c.printBadged(badgeStart, "[START]", "%s", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		c.printPlain("  %s", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		c.printBadged(badgeFail, "[FAIL]", "%s", id)
	} else {
		c.printBadged(badgePass, "[PASS]", "%s", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.console(), "    DEBUG ")
		if c.Mirror != nil {
			debugOutput.Dump(c.Mirror, "    DEBUG ")
		}
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		c.printBadged(badgeSkip, "[SKIP]", "%s", id)
	} else {
		c.printBadged(badgeSkip, "[SKIP]", "%s (%s)", id, reason)
	}
}

func (c *ConsoleTestLogger) console() io.Writer {
	if c.Output != nil {
		return c.Output
	}
	return os.Stdout
}

func (c *ConsoleTestLogger) printBadged(coloredBadge, plainBadge, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(c.console(), "%s %s\n", coloredBadge, message)
	if c.Mirror != nil {
		fmt.Fprintf(c.Mirror, "%s %s\n", plainBadge, message)
	}
}

func (c *ConsoleTestLogger) printPlain(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.console(), message)
	if c.Mirror != nil {
		fmt.Fprintln(c.Mirror, message)
	}
}
