package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runNoopSuite(t *testing.T, filter Filter, action func(*Context)) Results {
	t.Helper()
	return Run(filter, nil, action)
}

func TestRunCollectsResultsForEachSubtest(t *testing.T) {
	results := runNoopSuite(t, nil, func(c *Context) {
		c.Run("first", func(c *Context) {})
		c.Run("second", func(c *Context) {
			c.Errorf("something went wrong")
		})
	})

	require.Len(t, results.Tests, 2)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "second", results.Failures[0].TestID.String())
	assert.False(t, results.OK())
}

func TestFailNowStopsTestWithoutStoppingSuite(t *testing.T) {
	reachedAfterFailNow := false
	ranNextTest := false

	results := runNoopSuite(t, nil, func(c *Context) {
		c.Run("fails fast", func(c *Context) {
			c.Errorf("broken")
			c.FailNow()
			reachedAfterFailNow = true
		})
		c.Run("still runs", func(c *Context) {
			ranNextTest = true
		})
	})

	assert.False(t, reachedAfterFailNow)
	assert.True(t, ranNextTest)
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "broken", results.Failures[0].Errors[0].Error())
}

func TestUnexpectedPanicBecomesFailure(t *testing.T) {
	results := runNoopSuite(t, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
	})

	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "boom")
}

func TestSkippedTestIsNotAFailure(t *testing.T) {
	results := runNoopSuite(t, nil, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not supported")
			c.Errorf("should never be reached")
		})
	})

	assert.True(t, results.OK())
	require.Len(t, results.Skips, 1)
	assert.Equal(t, "not supported", results.Skips[0].SkipReason)
	assert.Empty(t, results.Skips[0].Errors)
}

func TestFilterExcludesTests(t *testing.T) {
	ran := []string{}
	filter := func(id TestID) bool { return id.String() != "excluded" }

	results := runNoopSuite(t, filter, func(c *Context) {
		c.Run("included", func(c *Context) { ran = append(ran, "included") })
		c.Run("excluded", func(c *Context) { ran = append(ran, "excluded") })
	})

	assert.Equal(t, []string{"included"}, ran)
	require.Len(t, results.Skips, 1)
	assert.Equal(t, "excluded", results.Skips[0].TestID.String())
}

func TestSubtestIDsAreSlashJoinedPaths(t *testing.T) {
	var seen []string
	results := runNoopSuite(t, nil, func(c *Context) {
		c.Run("outer", func(c *Context) {
			c.Run("inner", func(c *Context) {
				seen = append(seen, c.ID().String())
			})
		})
	})

	assert.Equal(t, []string{"outer/inner"}, seen)
	require.Len(t, results.Tests, 2)
}

func TestDebugOutputIsCapturedPerTest(t *testing.T) {
	logger := capturingTestLogger{}
	Run(nil, &logger, func(c *Context) {
		c.Run("with debug", func(c *Context) {
			c.Debug("value was %d", 42)
		})
	})

	require.Len(t, logger.finished, 1)
	require.Len(t, logger.finished[0].output, 1)
	assert.Equal(t, "value was 42", logger.finished[0].output[0].Message)
}

type finishedEvent struct {
	id     TestID
	failed bool
	output CapturedOutput
}

type capturingTestLogger struct {
	finished []finishedEvent
}

func (l *capturingTestLogger) TestStarted(TestID)      {}
func (l *capturingTestLogger) TestError(TestID, error) {}
func (l *capturingTestLogger) TestFinished(id TestID, failed bool, output CapturedOutput) {
	l.finished = append(l.finished, finishedEvent{id: id, failed: failed, output: output})
}
func (l *capturingTestLogger) TestSkipped(TestID, string) {}
