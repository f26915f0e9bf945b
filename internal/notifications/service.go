package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"comicgrabr/internal/config"
)

const userAgent = "ComicGrabr/0.1.0"

// Embed accent colors, Discord's decimal RGB form.
const (
	colorInfo    = 0x3498DB
	colorSuccess = 0x2ECC71
	colorWarning = 0xF1C40F
	colorError   = 0xE74C3C
)

// Service defines the notification surface exposed to the acquisition run.
type Service interface {
	NotifyRunStarted(ctx context.Context, releaseDay time.Time, count int) error
	NotifyItemQueued(ctx context.Context, title string) error
	NotifyItemSkipped(ctx context.Context, title string) error
	NotifyItemFailed(ctx context.Context, title string, err error) error
	NotifyRunCompleted(ctx context.Context, queued, skipped, failed int, duration time.Duration) error
	NotifyUpcoming(ctx context.Context, releaseDay time.Time, titles []string) error
	NotifySyncCompleted(ctx context.Context, kept int) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by a Discord webhook when
// configured. When no webhook URL is set, a noop implementation is returned.
// In dry-run mode every message is prefixed so a test run is never mistaken
// for a real one.
func NewService(cfg *config.Config, dryRun bool) Service {
	endpoint := strings.TrimSpace(cfg.Discord.WebhookURL)
	if endpoint == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Discord.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &discordService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		dryRun:   dryRun,
	}
}

type payload struct {
	title   string
	message string
	color   int
}

type webhookEmbed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
	Color       int    `json:"color,omitempty"`
}

type webhookBody struct {
	Embeds []webhookEmbed `json:"embeds"`
}

type discordService struct {
	endpoint string
	client   *http.Client
	dryRun   bool
}

func (d *discordService) NotifyRunStarted(ctx context.Context, releaseDay time.Time, count int) error {
	return d.send(ctx, payload{
		title:   "ComicGrabr - Run Started",
		message: fmt.Sprintf("Checking %d releases for %s", count, releaseDay.Format("2006-01-02")),
		color:   colorInfo,
	})
}

func (d *discordService) NotifyItemQueued(ctx context.Context, title string) error {
	return d.send(ctx, payload{
		message: fmt.Sprintf("Queued: %s", strings.TrimSpace(title)),
		color:   colorSuccess,
	})
}

func (d *discordService) NotifyItemSkipped(ctx context.Context, title string) error {
	return d.send(ctx, payload{
		message: fmt.Sprintf("Already on disk: %s", strings.TrimSpace(title)),
		color:   colorWarning,
	})
}

func (d *discordService) NotifyItemFailed(ctx context.Context, title string, err error) error {
	message := fmt.Sprintf("Failed: %s", strings.TrimSpace(title))
	if err != nil {
		message = fmt.Sprintf("%s\n%s", message, strings.TrimSpace(err.Error()))
	}
	return d.send(ctx, payload{message: message, color: colorError})
}

func (d *discordService) NotifyRunCompleted(ctx context.Context, queued, skipped, failed int, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	color := colorSuccess
	title := "ComicGrabr - Run Complete"
	if failed > 0 {
		color = colorWarning
		title = "ComicGrabr - Run Complete (with failures)"
	}
	return d.send(ctx, payload{
		title: title,
		message: fmt.Sprintf("%d queued, %d skipped, %d failed in %s",
			queued, skipped, failed, duration),
		color: color,
	})
}

func (d *discordService) NotifyUpcoming(ctx context.Context, releaseDay time.Time, titles []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Releases for %s:", releaseDay.Format("2006-01-02"))
	if len(titles) == 0 {
		b.WriteString(" none tracked")
	}
	for _, title := range titles {
		b.WriteString("\n- ")
		b.WriteString(strings.TrimSpace(title))
	}
	return d.send(ctx, payload{
		title:   "ComicGrabr - Upcoming Releases",
		message: b.String(),
		color:   colorInfo,
	})
}

func (d *discordService) NotifySyncCompleted(ctx context.Context, kept int) error {
	return d.send(ctx, payload{
		title:   "ComicGrabr - Pull List Synced",
		message: fmt.Sprintf("Pull list now tracks %d upcoming releases", kept),
		color:   colorInfo,
	})
}

func (d *discordService) TestNotification(ctx context.Context) error {
	return d.send(ctx, payload{
		title:   "ComicGrabr - Test",
		message: "Notification system test",
		color:   colorInfo,
	})
}

func (d *discordService) send(ctx context.Context, data payload) error {
	if d == nil || d.client == nil {
		return nil
	}

	message := data.message
	if d.dryRun {
		message = "[DRY RUN] " + message
	}
	body, err := json.Marshal(webhookBody{
		Embeds: []webhookEmbed{{Title: data.title, Description: message, Color: data.color}},
	})
	if err != nil {
		return fmt.Errorf("encode webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunStarted(context.Context, time.Time, int) error { return nil }
func (noopService) NotifyItemQueued(context.Context, string) error         { return nil }
func (noopService) NotifyItemSkipped(context.Context, string) error        { return nil }
func (noopService) NotifyItemFailed(context.Context, string, error) error  { return nil }
func (noopService) NotifyRunCompleted(context.Context, int, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyUpcoming(context.Context, time.Time, []string) error { return nil }
func (noopService) NotifySyncCompleted(context.Context, int) error            { return nil }
func (noopService) TestNotification(context.Context) error                    { return nil }
