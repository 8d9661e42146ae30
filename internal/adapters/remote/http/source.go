package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/ports"
	"github.com/bnema/daily-activity-cli/internal/version"
)

const (
	DefaultURL = "https://raw.githubusercontent.com/GuiSchveitzer/M3_Data/main/Atividades.json"

	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 10 * time.Second
)

var ErrMalformedPayload = errors.New("malformed candidates payload")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Source fetches the candidate list from a JSON document of the form
// [{"atividade": "..."}].
type Source struct {
	URL            string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.RemoteSource = (*Source)(nil)

func (s *Source) ListCandidates(ctx context.Context) ([]domain.ProposedActivity, error) {
	endpoint, err := s.endpoint()
	if err != nil {
		return nil, err
	}

	requestCtx, cancel := s.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create candidates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "daily-activity-cli/"+version.Version)

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request candidates: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("request candidates: %w", &StatusError{StatusCode: resp.StatusCode})
	}

	var payload []domain.ProposedActivity
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode candidates response: %w: %w", ErrMalformedPayload, err)
	}

	candidates := make([]domain.ProposedActivity, 0, len(payload))
	for _, entry := range payload {
		if strings.TrimSpace(entry.Text) == "" {
			continue
		}
		candidates = append(candidates, entry)
	}

	return candidates, nil
}

// IsPermanent reports whether retrying err cannot help: client errors other
// than 408 and 429, and payloads that do not decode.
func IsPermanent(err error) bool {
	if errors.Is(err, ErrMalformedPayload) {
		return true
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}

	switch statusErr.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500
}

func (s *Source) endpoint() (string, error) {
	raw := strings.TrimSpace(s.URL)
	if raw == "" {
		raw = DefaultURL
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse remote url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("remote url must use http or https")
	}

	return parsed.String(), nil
}

func (s *Source) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

// requestContext bounds a single attempt. A caller deadline that ends
// sooner still wins.
func (s *Source) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	requestTimeout := s.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}
