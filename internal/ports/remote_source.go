package ports

import (
	"context"

	"github.com/bnema/daily-activity-cli/internal/domain"
)

// RemoteSource lists suggestion candidates. Transport and decoding failures
// are returned as errors.
type RemoteSource interface {
	ListCandidates(ctx context.Context) ([]domain.ProposedActivity, error)
}
