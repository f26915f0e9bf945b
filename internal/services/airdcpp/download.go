package airdcpp

import (
	"context"
	"errors"
	"strings"

	"comicgrabr/internal/logging"
	"comicgrabr/internal/services"
)

// alreadyQueuedMarker is the backend's rejection text when the target file is
// already present on disk. The match is substring-based because the backend
// embeds the text in a larger error payload.
const alreadyQueuedMarker = "File exists on the disk already"

// EnqueueResult describes what happened to a queue request.
type EnqueueResult int

const (
	// EnqueueFailed means the request was rejected or could not be sent.
	EnqueueFailed EnqueueResult = iota
	// EnqueueQueued means the bundle was accepted for download.
	EnqueueQueued
	// EnqueueSkippedExists means the backend already has the file on disk.
	EnqueueSkippedExists
)

func (r EnqueueResult) String() string {
	switch r {
	case EnqueueQueued:
		return "queued"
	case EnqueueSkippedExists:
		return "skipped"
	default:
		return "failed"
	}
}

// Enqueue asks the backend to queue the candidate as a file bundle. In dry-run
// mode nothing is validated or sent and the candidate reports as queued. A
// rejection because the file already exists on disk is a success-adjacent
// outcome, not an error.
func (c *Client) Enqueue(ctx context.Context, candidate *Candidate, dryRun bool) (EnqueueResult, error) {
	if dryRun {
		if candidate != nil {
			c.logger.Info("dry run, skipping queue request",
				logging.String("name", candidate.Name), logging.Int64("size", candidate.Size))
		}
		return EnqueueQueued, nil
	}

	if candidate == nil || candidate.Name == "" || candidate.Size <= 0 || candidate.TTH == "" {
		return EnqueueFailed, services.Wrap(services.ErrProtocol, "airdcpp", "queue_bundle",
			"candidate missing name, size, or tth", nil)
	}
	log := c.logger.With(logging.String("name", candidate.Name), logging.Int64("size", candidate.Size))

	token, err := c.sessions.Token(ctx, false)
	if err != nil {
		return EnqueueFailed, err
	}

	payload := queueBundleRequest{
		TargetName: candidate.Name,
		Size:       candidate.Size,
		TTH:        candidate.TTH,
	}
	if err := c.postJSON(ctx, "queue/bundles/file", token, payload, nil); err != nil {
		var status *statusError
		if errors.As(err, &status) && strings.Contains(status.body, alreadyQueuedMarker) {
			log.Info("file already on disk, skipping")
			return EnqueueSkippedExists, nil
		}
		return EnqueueFailed, classify("queue_bundle", err)
	}

	log.Info("bundle queued")
	return EnqueueQueued, nil
}
