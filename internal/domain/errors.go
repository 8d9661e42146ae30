package domain

import "errors"

var (
	ErrKeyNotFound         = errors.New("key not found")
	ErrEmptyDescription    = errors.New("completion description is empty")
	ErrNoSuggestion        = errors.New("no activity suggested for today")
	ErrNotificationsDenied = errors.New("notifications not permitted")
	ErrRemoteUnavailable   = errors.New("remote source unavailable")
	ErrStorage             = errors.New("storage failure")
)
