package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/daily-activity-cli/internal/ports"
)

// Backend is a notifier that can also report whether it may post.
type Backend interface {
	ports.Notifier
	ports.PermissionGate
}

// Notifier posts through primary and falls back to fallback when primary is
// not permitted or fails.
type Notifier struct {
	primary  Backend
	fallback Backend
}

var (
	_ ports.Notifier       = (*Notifier)(nil)
	_ ports.PermissionGate = (*Notifier)(nil)
)

var (
	errNilPrimaryNotifier  = errors.New("primary notifier is nil")
	errNilFallbackNotifier = errors.New("fallback notifier is nil")
	errPrimaryNotPermitted = errors.New("primary notifier not permitted")
)

func NewNotifier(primary Backend, fallback Backend) (*Notifier, error) {
	if primary == nil {
		return nil, errNilPrimaryNotifier
	}
	if fallback == nil {
		return nil, errNilFallbackNotifier
	}

	return &Notifier{primary: primary, fallback: fallback}, nil
}

func (n *Notifier) NotificationsPermitted(ctx context.Context) (bool, error) {
	permitted, err := n.primary.NotificationsPermitted(ctx)
	if err == nil && permitted {
		return true, nil
	}
	if err != nil && shouldSkipFallback(err) {
		return false, err
	}

	fallbackPermitted, fallbackErr := n.fallback.NotificationsPermitted(ctx)
	if fallbackErr == nil {
		return fallbackPermitted, nil
	}
	if err != nil {
		return false, fmt.Errorf("primary notifier permission check failed: %w; fallback notifier permission check failed: %w", err, fallbackErr)
	}
	return false, fallbackErr
}

func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	err := n.notifyPrimary(ctx, title, body)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := n.fallback.Notify(ctx, title, body)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary notifier failed: %w; fallback notifier failed: %w", err, fallbackErr)
}

// notifyPrimary skips the primary when it is not permitted to post.
func (n *Notifier) notifyPrimary(ctx context.Context, title, body string) error {
	permitted, err := n.primary.NotificationsPermitted(ctx)
	if err != nil {
		return err
	}
	if !permitted {
		return errPrimaryNotPermitted
	}
	return n.primary.Notify(ctx, title, body)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
