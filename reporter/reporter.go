// Package reporter writes test run output: per-case JSON artifacts, a run
// manifest, per-run log files, and the colored console progress display.
package reporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

const logFileTimestampFormat = "20060102-150405"

// Artifact is the JSON document written for each contract test so that
// contributors can inspect exactly what differed.
type Artifact struct {
	Diff    string      `json:"diff"`
	Cached  interface{} `json:"cached"`
	Scraper interface{} `json:"scraper"`
}

// Manifest summarizes a whole run in results/run.json.
type Manifest struct {
	RunID     string    `json:"runId"`
	StartedAt time.Time `json:"startedAt"`
	Tests     int       `json:"tests"`
	Failures  int       `json:"failures"`
	Skips     int       `json:"skips"`
}

// Reporter writes artifacts for one test run into a results directory.
type Reporter struct {
	dir       string
	runID     uuid.UUID
	startedAt time.Time
}

// New creates the results directory if needed and starts a new run.
func New(dir string) (*Reporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating results directory")
	}
	return &Reporter{
		dir:       dir,
		runID:     uuid.New(),
		startedAt: time.Now(),
	}, nil
}

// RunID identifies this run in the manifest.
func (r *Reporter) RunID() string {
	return r.runID.String()
}

// WriteArtifact writes the artifact for a numbered test case and returns the
// file path.
func (r *Reporter) WriteArtifact(id int, artifact Artifact) (string, error) {
	data, err := json.MarshalIndent(artifact, "", "    ")
	if err != nil {
		return "", errors.Wrap(err, "encoding result artifact")
	}
	path := filepath.Join(r.dir, fmt.Sprintf("%d.json", id))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// WriteManifest records the run totals in results/run.json.
func (r *Reporter) WriteManifest(results framework.Results) error {
	m := Manifest{
		RunID:     r.runID.String(),
		StartedAt: r.startedAt,
		Tests:     len(results.Tests),
		Failures:  len(results.Failures),
		Skips:     len(results.Skips),
	}
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encoding run manifest")
	}
	path := filepath.Join(r.dir, "run.json")
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing %s", path)
}

// OpenRunLog creates a per-run log file under dir, named with a timestamp and
// the service it belongs to, e.g. "20240131-154500-tester.log".
func OpenRunLog(dir, service string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}
	name := fmt.Sprintf("%s-%s.log", time.Now().Format(logFileTimestampFormat), service)
	f, err := os.Create(filepath.Join(dir, name))
	return f, errors.Wrap(err, "creating run log")
}
