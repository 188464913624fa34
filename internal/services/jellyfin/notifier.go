package jellyfin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mvvid/internal/config"
	"mvvid/internal/logging"
	"mvvid/internal/relocate"
	"mvvid/internal/services"
)

// HTTPDoer describes the HTTP client used by the Jellyfin notifier.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Notifier refreshes every Jellyfin library. Jellyfin has no per-section
// endpoint, so the content type only annotates logs.
type Notifier struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
	logger  *slog.Logger
}

// NewNotifier constructs a notifier from the [jellyfin] config section.
func NewNotifier(cfg config.Jellyfin, client HTTPDoer, logger *slog.Logger) (*Notifier, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	apiKey := strings.TrimSpace(cfg.APIKey)
	if baseURL == "" || apiKey == "" {
		return nil, errors.New("jellyfin url and api key required")
	}
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second}
	}
	return &Notifier{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		logger:  logging.NewComponentLogger(logger, "jellyfin"),
	}, nil
}

func (n *Notifier) Name() string { return "jellyfin" }

func (n *Notifier) NotifyLibraryChanged(ctx context.Context, kind relocate.ContentType) error {
	refreshURL := fmt.Sprintf("%s/Library/Refresh", n.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, refreshURL, nil)
	if err != nil {
		return fmt.Errorf("build jellyfin refresh request: %w", err)
	}
	req.Header.Set("X-Emby-Token", n.apiKey)

	logging.WithContext(ctx, n.logger).Info("requesting jellyfin library refresh", logging.String("library", kind.String()))
	resp, err := n.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "refresh", "jellyfin", "request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrExternalTool, "refresh", "jellyfin", fmt.Sprintf("refresh returned %d", resp.StatusCode), nil)
	}
	return nil
}
