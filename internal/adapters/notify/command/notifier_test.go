package command

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func foundAt(path string) lookPathFunc {
	return func(string) (string, error) { return path, nil }
}

func notFound(file string) (string, error) {
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

func TestNotifyRunsCommandWithExpandedArgs(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier(Config{Enabled: true})
	notifier.lookPath = foundAt("/usr/bin/notify-send")

	var gotPath string
	var gotArgs []string
	notifier.run = func(_ context.Context, path string, args ...string) (string, error) {
		gotPath = path
		gotArgs = args
		return "", nil
	}

	require.NoError(t, notifier.Notify(context.Background(), domain.ReminderTitle, domain.ReminderBody))
	assert.Equal(t, "/usr/bin/notify-send", gotPath)
	assert.Equal(t, []string{"--app-name=Daily Activity", domain.ReminderTitle, domain.ReminderBody}, gotArgs)
}

func TestNotifyCustomCommandArgs(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier(Config{
		Enabled: true,
		Command: "terminal-notifier",
		Args:    []string{"-title", "{title}", "-message", "{body}"},
	})
	notifier.lookPath = foundAt("/opt/bin/terminal-notifier")

	var gotArgs []string
	notifier.run = func(_ context.Context, _ string, args ...string) (string, error) {
		gotArgs = args
		return "", nil
	}

	require.NoError(t, notifier.Notify(context.Background(), "T", "B"))
	assert.Equal(t, []string{"-title", "T", "-message", "B"}, gotArgs)
}

func TestNotifyIncludesStderrOnFailure(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier(Config{Enabled: true})
	notifier.lookPath = foundAt("/usr/bin/notify-send")
	notifier.run = func(context.Context, string, ...string) (string, error) {
		return "cannot connect to session bus", errors.New("exit status 1")
	}

	err := notifier.Notify(context.Background(), "T", "B")
	require.Error(t, err)
	assert.ErrorContains(t, err, "run notify-send: exit status 1: cannot connect to session bus")
}

func TestNotifyDisabled(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier(Config{Enabled: false})
	notifier.run = func(context.Context, string, ...string) (string, error) {
		t.Fatal("command must not run when disabled")
		return "", nil
	}

	assert.ErrorIs(t, notifier.Notify(context.Background(), "T", "B"), domain.ErrNotificationsDenied)

	permitted, err := notifier.NotificationsPermitted(context.Background())
	require.NoError(t, err)
	assert.False(t, permitted)
}

func TestNotifyMissingCommand(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier(Config{Enabled: true})
	notifier.lookPath = notFound

	assert.ErrorIs(t, notifier.Notify(context.Background(), "T", "B"), ErrUnavailable)

	permitted, err := notifier.NotificationsPermitted(context.Background())
	require.NoError(t, err)
	assert.False(t, permitted)
}

func TestNotificationsPermittedWhenCommandFound(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier(Config{Enabled: true})
	notifier.lookPath = foundAt("/usr/bin/notify-send")

	permitted, err := notifier.NotificationsPermitted(context.Background())
	require.NoError(t, err)
	assert.True(t, permitted)
}

func TestNotificationsPermittedLookupError(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier(Config{Enabled: true})
	notifier.lookPath = func(string) (string, error) { return "", errors.New("permission denied") }

	permitted, err := notifier.NotificationsPermitted(context.Background())
	require.Error(t, err)
	assert.False(t, permitted)
}
