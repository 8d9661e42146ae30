package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

// Notifier prints reminders to a terminal writer. It stands in for desktop
// notifications on headless hosts.
type Notifier struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	box     lipgloss.Style
	title   lipgloss.Style
}

var (
	_ ports.Notifier       = (*Notifier)(nil)
	_ ports.PermissionGate = (*Notifier)(nil)
)

func NewNotifier(out io.Writer, enabled bool) *Notifier {
	return &Notifier{
		out:     out,
		enabled: enabled,
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1),
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}

func (n *Notifier) NotificationsPermitted(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return n.enabled && n.out != nil, nil
}

func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !n.enabled {
		return domain.ErrNotificationsDenied
	}
	if n.out == nil {
		return errors.New("terminal notifier has no output")
	}

	rendered := n.box.Render(lipgloss.JoinVertical(lipgloss.Left, n.title.Render(title), body))

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintln(n.out, rendered); err != nil {
		return fmt.Errorf("write terminal notification: %w", err)
	}

	return nil
}
