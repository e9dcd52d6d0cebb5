package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const ntfyUserAgent = "autopush/0.1"

const defaultNtfyTimeout = 10 * time.Second

// NtfyNotifier publishes notifications to an ntfy topic over HTTP, so
// backup runs on a headless machine can still reach a phone or desktop.
type NtfyNotifier struct {
	endpoint string
	client   *http.Client
}

// NewNtfyNotifier creates an NtfyNotifier for the given topic URL.
func NewNtfyNotifier(topic string, timeout time.Duration) *NtfyNotifier {
	if timeout <= 0 {
		timeout = defaultNtfyTimeout
	}
	return &NtfyNotifier{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

// Notify implements Notifier.
func (n *NtfyNotifier) Notify(ctx context.Context, title, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", ntfyUserAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if title != "" {
		req.Header.Set("Title", title)
	}
	req.Header.Set("Tags", "autopush,backup")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
