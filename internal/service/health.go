package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iliyamo/solvely-pub/internal/logging"
)

// ErrDownstreamUnavailable is returned when the self-probe does not answer 200.
var ErrDownstreamUnavailable = errors.New("service unavailable")

const defaultProbeTimeout = 2 * time.Second

// HealthProber checks liveness by calling the server's own ping endpoint,
// so a passing check proves the listener, router and handlers all work.
type HealthProber struct {
	URL    string
	Client *http.Client
}

func NewHealthProber(url string) *HealthProber {
	return &HealthProber{URL: url, Client: &http.Client{Timeout: defaultProbeTimeout}}
}

// Check returns nil when the probe answers 200 and an error wrapping
// ErrDownstreamUnavailable otherwise.
func (h *HealthProber) Check(ctx context.Context) error {
	log := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownstreamUnavailable, err)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", h.URL).Msg("healthcheck probe failed")
		return fmt.Errorf("%w: %v", ErrDownstreamUnavailable, err)
	}
	defer resp.Body.Close()

	log.Info().Int("status", resp.StatusCode).Msg("healthcheck probe")
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: probe returned %d", ErrDownstreamUnavailable, resp.StatusCode)
	}
	return nil
}
