package plex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mvvid/internal/config"
	"mvvid/internal/logging"
	"mvvid/internal/relocate"
	"mvvid/internal/services"
)

const userAgent = "mvvid/1.0"

// HTTPDoer describes the HTTP client used by HTTPNotifier.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPNotifier refreshes a section through the Plex HTTP API.
type HTTPNotifier struct {
	cfg     config.Plex
	baseURL string
	token   string
	client  HTTPDoer
	logger  *slog.Logger
}

// NewHTTPNotifier constructs a notifier from the [plex] config section. A nil
// client uses an http.Client bounded by plex.request_timeout.
func NewHTTPNotifier(cfg config.Plex, client HTTPDoer, logger *slog.Logger) (*HTTPNotifier, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	token := strings.TrimSpace(cfg.Token)
	if baseURL == "" || token == "" {
		return nil, errors.New("plex url and token required")
	}
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second}
	}
	return &HTTPNotifier{
		cfg:     cfg,
		baseURL: baseURL,
		token:   token,
		client:  client,
		logger:  logging.NewComponentLogger(logger, "plex-http"),
	}, nil
}

func (n *HTTPNotifier) Name() string { return "plex-http" }

// NotifyLibraryChanged requests GET /library/sections/{N}/refresh.
func (n *HTTPNotifier) NotifyLibraryChanged(ctx context.Context, kind relocate.ContentType) error {
	section := kind.Section(n.cfg)
	refreshURL := fmt.Sprintf("%s/library/sections/%d/refresh", n.baseURL, section)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, refreshURL, nil)
	if err != nil {
		return fmt.Errorf("build plex refresh request: %w", err)
	}
	req.Header.Set("X-Plex-Token", n.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	logging.WithContext(ctx, n.logger).Info("requesting plex section refresh", logging.Int("section", section))
	resp, err := n.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "refresh", "plex http", "request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(
			services.ErrExternalTool,
			"refresh",
			"plex http",
			fmt.Sprintf("section %d returned %d: %s", section, resp.StatusCode, strings.TrimSpace(string(body))),
			nil,
		)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
