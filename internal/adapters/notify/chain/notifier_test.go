package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/daily-activity-cli/internal/domain"
	portmocks "github.com/bnema/daily-activity-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	*portmocks.MockNotifier
	*portmocks.MockPermissionGate
}

func newMockBackend(t *testing.T) (mockBackend, *portmocks.MockNotifier, *portmocks.MockPermissionGate) {
	notifier := portmocks.NewMockNotifier(t)
	gate := portmocks.NewMockPermissionGate(t)
	return mockBackend{MockNotifier: notifier, MockPermissionGate: gate}, notifier, gate
}

func TestNewNotifierRejectsNilBackends(t *testing.T) {
	t.Parallel()

	backend, _, _ := newMockBackend(t)

	_, err := NewNotifier(nil, backend)
	assert.ErrorIs(t, err, errNilPrimaryNotifier)

	_, err = NewNotifier(backend, nil)
	assert.ErrorIs(t, err, errNilFallbackNotifier)
}

func TestNotifyUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary, primaryNotify, primaryGate := newMockBackend(t)
	fallback, _, _ := newMockBackend(t)
	notifier, err := NewNotifier(primary, fallback)
	require.NoError(t, err)

	primaryGate.EXPECT().NotificationsPermitted(mock.Anything).Return(true, nil).Once()
	primaryNotify.EXPECT().Notify(mock.Anything, domain.ReminderTitle, domain.ReminderBody).Return(nil).Once()

	require.NoError(t, notifier.Notify(context.Background(), domain.ReminderTitle, domain.ReminderBody))
}

func TestNotifyFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary, primaryNotify, primaryGate := newMockBackend(t)
	fallback, fallbackNotify, _ := newMockBackend(t)
	notifier, err := NewNotifier(primary, fallback)
	require.NoError(t, err)

	primaryGate.EXPECT().NotificationsPermitted(mock.Anything).Return(true, nil).Once()
	primaryNotify.EXPECT().Notify(mock.Anything, "title", "body").Return(errors.New("dbus unavailable")).Once()
	fallbackNotify.EXPECT().Notify(mock.Anything, "title", "body").Return(nil).Once()

	require.NoError(t, notifier.Notify(context.Background(), "title", "body"))
}

func TestNotifySkipsPrimaryWhenNotPermitted(t *testing.T) {
	t.Parallel()

	primary, _, primaryGate := newMockBackend(t)
	fallback, fallbackNotify, _ := newMockBackend(t)
	notifier, err := NewNotifier(primary, fallback)
	require.NoError(t, err)

	primaryGate.EXPECT().NotificationsPermitted(mock.Anything).Return(false, nil).Once()
	fallbackNotify.EXPECT().Notify(mock.Anything, "title", "body").Return(nil).Once()

	require.NoError(t, notifier.Notify(context.Background(), "title", "body"))
}

func TestNotifyReturnsCombinedErrorWhenBothFail(t *testing.T) {
	t.Parallel()

	primary, primaryNotify, primaryGate := newMockBackend(t)
	fallback, fallbackNotify, _ := newMockBackend(t)
	notifier, err := NewNotifier(primary, fallback)
	require.NoError(t, err)

	primaryGate.EXPECT().NotificationsPermitted(mock.Anything).Return(true, nil).Once()
	primaryNotify.EXPECT().Notify(mock.Anything, "title", "body").Return(errors.New("command failed")).Once()
	fallbackNotify.EXPECT().Notify(mock.Anything, "title", "body").Return(domain.ErrNotificationsDenied).Once()

	err = notifier.Notify(context.Background(), "title", "body")
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary notifier")
	assert.ErrorContains(t, err, "command failed")
	assert.ErrorIs(t, err, domain.ErrNotificationsDenied)
}

func TestNotifyDoesNotFallBackOnCanceledContext(t *testing.T) {
	t.Parallel()

	primary, _, primaryGate := newMockBackend(t)
	fallback, _, _ := newMockBackend(t)
	notifier, err := NewNotifier(primary, fallback)
	require.NoError(t, err)

	primaryGate.EXPECT().NotificationsPermitted(mock.Anything).Return(false, context.Canceled).Once()

	err = notifier.Notify(context.Background(), "title", "body")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNotificationsPermitted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		primary          bool
		primaryErr       error
		callFallback     bool
		fallback         bool
		fallbackErr      error
		want             bool
		wantErrSubstring string
	}{
		{name: "primary permitted", primary: true, want: true},
		{name: "fallback permitted", callFallback: true, fallback: true, want: true},
		{name: "neither permitted", callFallback: true},
		{name: "primary error fallback permitted", primaryErr: errors.New("lookup failed"), callFallback: true, fallback: true, want: true},
		{
			name:             "both error",
			primaryErr:       errors.New("lookup failed"),
			callFallback:     true,
			fallbackErr:      errors.New("no terminal"),
			wantErrSubstring: "fallback notifier permission check failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			primary, _, primaryGate := newMockBackend(t)
			fallback, _, fallbackGate := newMockBackend(t)
			notifier, err := NewNotifier(primary, fallback)
			require.NoError(t, err)

			primaryGate.EXPECT().NotificationsPermitted(mock.Anything).Return(tt.primary, tt.primaryErr).Once()
			if tt.callFallback {
				fallbackGate.EXPECT().NotificationsPermitted(mock.Anything).Return(tt.fallback, tt.fallbackErr).Once()
			}

			got, err := notifier.NotificationsPermitted(context.Background())
			if tt.wantErrSubstring != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErrSubstring)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
