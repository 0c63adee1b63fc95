package store

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrShareUnavailable is returned when no share mechanism is configured.
var ErrShareUnavailable = errors.New("sharing unavailable")

// Sharer hands a written file to the platform.
type Sharer interface {
	Available() bool
	Share(ctx context.Context, path string) error
}

// NopSharer is never available.
type NopSharer struct{}

// Available always reports false.
func (NopSharer) Available() bool { return false }

// Share always fails with ErrShareUnavailable.
func (NopSharer) Share(context.Context, string) error { return ErrShareUnavailable }

// CommandSharer runs an external command with the file path appended,
// e.g. ["xdg-open"] or ["mail", "-A"].
type CommandSharer struct {
	Command []string
}

// Available reports whether the command is configured and found in PATH.
func (s CommandSharer) Available() bool {
	if len(s.Command) == 0 {
		return false
	}
	_, err := exec.LookPath(s.Command[0])
	return err == nil
}

// Share runs the command and waits for it to exit.
func (s CommandSharer) Share(ctx context.Context, path string) error {
	if len(s.Command) == 0 {
		return ErrShareUnavailable
	}

	args := append(append([]string{}, s.Command[1:]...), path)
	out, err := exec.CommandContext(ctx, s.Command[0], args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", s.Command[0], err, out)
	}

	return nil
}

// NewSharer returns a CommandSharer for a non-empty command, NopSharer otherwise.
func NewSharer(command []string) Sharer {
	if len(command) == 0 {
		return NopSharer{}
	}
	return CommandSharer{Command: command}
}
