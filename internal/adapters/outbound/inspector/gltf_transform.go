package inspector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/ntbtools/glbcheck/internal/domain"
)

// GLTFTransform implements domain.Inspector by running
// "<command> inspect <path>" and capturing stdout.
type GLTFTransform struct {
	command string
	args    []string
	timeout time.Duration
	log     *zap.Logger
}

// New creates an inspector for the given command. A non-positive timeout
// falls back to domain.DefaultInspectTimeout.
func New(cfg domain.InspectConfig, log *zap.Logger) *GLTFTransform {
	cmd := cfg.Command
	if cmd == "" {
		cmd = domain.DefaultInspectCommand
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultInspectTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GLTFTransform{
		command: cmd,
		args:    []string{"inspect"},
		timeout: timeout,
		log:     log,
	}
}

// Inspect never fails: every problem is reported as an unavailable result.
func (g *GLTFTransform) Inspect(ctx context.Context, path string) domain.InspectResult {
	bin, err := exec.LookPath(g.command)
	if err != nil {
		return g.unavailable(path, fmt.Sprintf("%s not found on PATH", g.command))
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	args := append(append([]string{}, g.args...), path)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Children that inherit the pipes must not hold Run open past the timeout.
	cmd.WaitDelay = time.Second

	err = cmd.Run()
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return g.unavailable(path, fmt.Sprintf("timed out after %s", g.timeout))
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return g.unavailable(path, fmt.Sprintf("exited with status %d", exitErr.ExitCode()))
		}
		return g.unavailable(path, err.Error())
	}

	if stdout.Len() == 0 {
		return g.unavailable(path, "no output")
	}
	return domain.InspectResult{Available: true, Output: stdout.String()}
}

func (g *GLTFTransform) unavailable(path, reason string) domain.InspectResult {
	g.log.Debug("inspection unavailable",
		zap.String("file", path),
		zap.String("command", g.command),
		zap.String("reason", reason),
	)
	return domain.InspectResult{Reason: reason}
}

// Disabled is an Inspector that never runs anything.
type Disabled struct{}

func (Disabled) Inspect(context.Context, string) domain.InspectResult {
	return domain.InspectResult{Reason: "inspection disabled"}
}
