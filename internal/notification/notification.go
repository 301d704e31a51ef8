// Package notification forwards check results to external services.
package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/containrrr/shoutrrr"
	"github.com/zorak1103/check-container/internal/check"
	"github.com/zorak1103/check-container/internal/config"
	"github.com/zorak1103/check-container/internal/reporting"
)

// Notifier handles sending notifications via Shoutrrr
type Notifier struct {
	enabled     bool
	shoutrrrURL string
	minStatus   check.Status
	send        func(url, message string) error
}

// NewNotifier initializes a Shoutrrr-based notification client from config.
func NewNotifier(cfg *config.Config) (*Notifier, error) {
	if !cfg.Notification.Enabled {
		return &Notifier{enabled: false}, nil
	}

	url := strings.TrimSpace(cfg.Notification.ShoutrrURL)
	if url == "" {
		return &Notifier{enabled: false}, fmt.Errorf("notification enabled but shoutrrr_url not configured: provide URL in format 'service://credentials' (e.g., slack://token@channel, discord://token@webhookid)")
	}

	minStatus, err := check.ParseStatus(cfg.Notification.MinStatus)
	if err != nil {
		return &Notifier{enabled: false}, fmt.Errorf("invalid notification.min_status: %w", err)
	}

	return &Notifier{
		enabled:     true,
		shoutrrrURL: url,
		minStatus:   minStatus,
		send:        shoutrrr.Send,
	}, nil
}

// ShouldNotify reports whether a result with status s is forwarded.
// UNKNOWN ranks above CRITICAL.
func (n *Notifier) ShouldNotify(s check.Status) bool {
	return n.enabled && s.ExitCode() >= n.minStatus.ExitCode()
}

// SendCheckResult delivers result if its severity reaches the configured minimum.
// The returned error never changes the check outcome.
func (n *Notifier) SendCheckResult(checkName string, result check.Result) error {
	if !n.ShouldNotify(result.Status) {
		return nil
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	var sb strings.Builder
	sb.WriteString(statusIcon(result.Status))
	sb.WriteString(" Container check ")
	sb.WriteString(result.Status.String())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("📅 Time: %s\n", timestamp))
	sb.WriteString("\n")
	sb.WriteString(reporting.FormatLine(checkName, result))

	if err := n.send(n.shoutrrrURL, sb.String()); err != nil {
		// Extract service type from URL (e.g., "slack://..." -> "slack")
		serviceType := "unknown"
		if idx := strings.Index(n.shoutrrrURL, "://"); idx > 0 {
			serviceType = n.shoutrrrURL[:idx]
		}
		return fmt.Errorf("notification failed to send via %s (status: %s): %w", serviceType, result.Status, err)
	}

	return nil
}

// IsEnabled reports whether notifications are configured and active.
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

func statusIcon(s check.Status) string {
	switch s {
	case check.StatusOK:
		return "✅"
	case check.StatusWarning:
		return "⚠️"
	case check.StatusCritical:
		return "🚨"
	default:
		return "❓"
	}
}
