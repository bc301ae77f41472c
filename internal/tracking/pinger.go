// Package tracking fires best-effort impression and click pings at the ad
// network. Pings are detached from the request lifecycle: failures are
// logged and never propagated.
package tracking

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"chatads/internal/validation"
)

// Pinger sends fire-and-forget GET requests to tracking URLs.
type Pinger struct {
	client  *http.Client
	timeout time.Duration
}

// NewPinger creates a Pinger.
func NewPinger() *Pinger {
	return &Pinger{
		client:  &http.Client{Timeout: 5 * time.Second},
		timeout: 5 * time.Second,
	}
}

// Ping hits url asynchronously. Empty URLs are ignored; non-http(s) URLs
// and URLs resolving to private, loopback, or cloud-metadata addresses are
// rejected, since tracking URLs come from the ad network and from
// unauthenticated click reports.
func (p *Pinger) Ping(url string) {
	if url == "" {
		return
	}
	if ok, reason := validation.ValidateTrackingURL(url); !ok {
		slog.Warn("skipping tracking ping with unsafe URL", "url", url, "reason", reason)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			slog.Error("failed to build tracking request", "url", url, "error", err)
			return
		}
		resp, err := p.client.Do(req)
		if err != nil {
			slog.Error("tracking ping failed", "url", url, "error", err)
			return
		}
		resp.Body.Close()
	}()
}
