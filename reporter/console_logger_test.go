package reporter

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

func testID(name string) framework.TestID {
	return framework.TestID{Path: []string{name}}
}

func TestConsoleLoggerBadges(t *testing.T) {
	var out bytes.Buffer
	logger := &ConsoleTestLogger{Output: &out}

	logger.TestStarted(testID("case 1 /collectives"))
	logger.TestFinished(testID("case 1 /collectives"), false, nil)
	logger.TestFinished(testID("case 2 /questions"), true, nil)
	logger.TestSkipped(testID("case 3 /tags"), "excluded by filter parameters")

	text := out.String()
	assert.Contains(t, text, "[START]")
	assert.Contains(t, text, "[PASS]")
	assert.Contains(t, text, "[FAIL]")
	assert.Contains(t, text, "[SKIP]")
	assert.Contains(t, text, "excluded by filter parameters")
}

func TestConsoleLoggerMirrorsPlainText(t *testing.T) {
	var out, mirror bytes.Buffer
	logger := &ConsoleTestLogger{Output: &out, Mirror: &mirror}

	logger.TestFinished(testID("case 1"), true, nil)
	logger.TestError(testID("case 1"), errors.New("differences found"))

	assert.Contains(t, mirror.String(), "[FAIL] case 1")
	assert.Contains(t, mirror.String(), "differences found")
	assert.NotContains(t, mirror.String(), "\x1b[", "mirror output must not contain ANSI escapes")
}

func TestConsoleLoggerDebugOutputRules(t *testing.T) {
	debugOutput := framework.CapturedOutput{
		{Time: time.Now(), Message: "fetched 3 items"},
	}

	var quiet bytes.Buffer
	(&ConsoleTestLogger{Output: &quiet}).TestFinished(testID("t"), true, debugOutput)
	assert.NotContains(t, quiet.String(), "fetched 3 items")

	var onFailure bytes.Buffer
	(&ConsoleTestLogger{Output: &onFailure, DebugOutputOnFailure: true}).TestFinished(testID("t"), true, debugOutput)
	assert.Contains(t, onFailure.String(), "fetched 3 items")

	var passed bytes.Buffer
	(&ConsoleTestLogger{Output: &passed, DebugOutputOnFailure: true}).TestFinished(testID("t"), false, debugOutput)
	assert.NotContains(t, passed.String(), "fetched 3 items")

	var verbose bytes.Buffer
	(&ConsoleTestLogger{Output: &verbose, DebugOutputOnSuccess: true}).TestFinished(testID("t"), false, debugOutput)
	assert.Contains(t, verbose.String(), "fetched 3 items")
}
