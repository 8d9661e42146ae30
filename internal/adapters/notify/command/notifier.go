package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/ports"
)

const (
	DefaultCommand = "notify-send"

	titlePlaceholder = "{title}"
	bodyPlaceholder  = "{body}"
)

var ErrUnavailable = errors.New("notification command unavailable")

// DefaultArgs suits notify-send.
var DefaultArgs = []string{"--app-name=Daily Activity", titlePlaceholder, bodyPlaceholder}

type runFunc func(ctx context.Context, path string, args ...string) (stderr string, err error)

type lookPathFunc func(file string) (string, error)

type Config struct {
	Enabled bool
	Command string
	// Args may reference {title} and {body}.
	Args []string
}

// Notifier posts desktop notifications through an external command such as
// notify-send.
type Notifier struct {
	enabled  bool
	command  string
	args     []string
	run      runFunc
	lookPath lookPathFunc
}

var (
	_ ports.Notifier       = (*Notifier)(nil)
	_ ports.PermissionGate = (*Notifier)(nil)
)

func NewNotifier(cfg Config) *Notifier {
	command := strings.TrimSpace(cfg.Command)
	if command == "" {
		command = DefaultCommand
	}

	args := cfg.Args
	if len(args) == 0 {
		args = DefaultArgs
	}

	return &Notifier{
		enabled:  cfg.Enabled,
		command:  command,
		args:     append([]string(nil), args...),
		run:      runCommand,
		lookPath: exec.LookPath,
	}
}

// NotificationsPermitted is true when notifications are enabled and the
// command can be found.
func (n *Notifier) NotificationsPermitted(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !n.enabled {
		return false, nil
	}

	if _, err := n.lookPath(n.command); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("locate %s command: %w", n.command, err)
	}

	return true, nil
}

func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !n.enabled {
		return domain.ErrNotificationsDenied
	}

	path, err := n.lookPath(n.command)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ErrUnavailable
		}
		return fmt.Errorf("locate %s command: %w", n.command, err)
	}

	stderr, err := n.run(ctx, path, expandArgs(n.args, title, body)...)
	if err != nil {
		return formatError(n.command, err, stderr)
	}

	return nil
}

func expandArgs(args []string, title, body string) []string {
	replacer := strings.NewReplacer(titlePlaceholder, title, bodyPlaceholder, body)
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, replacer.Replace(arg))
	}
	return out
}

func runCommand(ctx context.Context, path string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}

func formatError(command string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("run %s: %w", command, err)
	}

	return fmt.Errorf("run %s: %w: %s", command, err, stderr)
}
