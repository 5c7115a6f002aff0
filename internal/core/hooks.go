package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Hook names passed to scripts in MODLINK_HOOK
const (
	HookLinkBefore  = "link.before"
	HookLinkAfter   = "link.after"
	HookResetBefore = "reset.before"
	HookResetAfter  = "reset.after"
)

// HookContext provides environment information for hook scripts
type HookContext struct {
	GameID      string
	GamePath    string // Install directory
	Profile     string // Empty for reset hooks when no profile is active
	ProfilePath string
	HookName    string // e.g. "link.before"
}

func (hc HookContext) env() []string {
	return append(os.Environ(),
		"MODLINK_GAME_ID="+hc.GameID,
		"MODLINK_GAME_PATH="+hc.GamePath,
		"MODLINK_PROFILE="+hc.Profile,
		"MODLINK_PROFILE_PATH="+hc.ProfilePath,
		"MODLINK_HOOK="+hc.HookName,
	)
}

// HookResult contains the output from running a hook
type HookResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// HookRunner executes hook scripts with timeout and environment
type HookRunner struct {
	timeout time.Duration
}

// NewHookRunner creates a new hook runner with the given timeout
func NewHookRunner(timeout time.Duration) *HookRunner {
	return &HookRunner{timeout: timeout}
}

// Run executes a hook script and returns its output
func (r *HookRunner) Run(ctx context.Context, scriptPath string, hc HookContext) (*HookResult, error) {
	result := &HookResult{}

	info, err := os.Stat(scriptPath)
	if os.IsNotExist(err) {
		return result, fmt.Errorf("hook script not found: %s", scriptPath)
	}
	if err != nil {
		return result, fmt.Errorf("checking hook script: %w", err)
	}
	if info.Mode()&0111 == 0 {
		return result, fmt.Errorf("hook script not executable: %s", scriptPath)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, scriptPath)
	cmd.WaitDelay = 100 * time.Millisecond
	cmd.Env = hc.env()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return result, fmt.Errorf("hook timed out after %v: %s", r.timeout, scriptPath)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("hook failed with exit code %d: %s", result.ExitCode, scriptPath)
		}
		return result, fmt.Errorf("running hook: %w", err)
	}

	return result, nil
}
