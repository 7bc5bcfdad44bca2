package scraper

import (
	"io"
	"os/exec"
	"sync"
	"syscall"

	"github.com/pkg/errors"

	"github.com/DylanKirbs/Stack-Overflow-Scraper-Tests/framework"
)

// Service is a scraper process launched by the harness. When the harness is
// attached to an already-running scraper with -url, no Service is created and
// the lifecycle is the caller's problem.
type Service struct {
	command  string
	output   io.Writer
	logger   framework.Logger
	cmd      *exec.Cmd
	stopOnce sync.Once
}

// NewService prepares a scraper service to be launched with the given shell
// command. The process's stdout and stderr are redirected to output, normally
// a per-run log file.
func NewService(command string, output io.Writer, logger framework.Logger) *Service {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Service{command: command, output: output, logger: logger}
}

// Start launches the scraper process in its own process group so that Stop can
// terminate it along with any children it spawns.
func (s *Service) Start() error {
	if s.cmd != nil {
		return errors.New("scraper service already started")
	}
	s.logger.Printf("Starting the scraper service: %s", s.command)

	cmd := exec.Command("/bin/sh", "-c", s.command)
	cmd.Stdout = s.output
	cmd.Stderr = s.output
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "starting scraper service with command %q", s.command)
	}
	s.cmd = cmd
	return nil
}

// Stop terminates the scraper process group. It is safe to call more than
// once, and safe to call if Start was never called or failed.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		if s.cmd == nil || s.cmd.Process == nil {
			return
		}
		s.logger.Printf("Stopping the scraper service")
		// Negative pid signals the whole process group; the shell that
		// launched the scraper is in the same group.
		if err := syscall.Kill(-s.cmd.Process.Pid, syscall.SIGTERM); err != nil {
			_ = s.cmd.Process.Kill()
		}
		_ = s.cmd.Wait()
	})
}
