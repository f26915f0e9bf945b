package airdcpp

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"comicgrabr/internal/logging"
	"comicgrabr/internal/services"
)

// PollDelay returns the wait before the zero-based result-fetch attempt:
// initial + attempt*increment seconds. The linear ramp models the backend's
// asynchronous indexing latency.
func PollDelay(attempt, initialSeconds, incrementSeconds int) time.Duration {
	return time.Duration(initialSeconds+attempt*incrementSeconds) * time.Second
}

// Search resolves a release title to a download candidate using the
// three-phase protocol: create a search instance, run the hub search with
// extension-filter fallback variants, then poll results with linear backoff.
//
// The returned candidate and session id are independently optional: a
// session can exist with no usable match. The error describes why no
// candidate was produced and is always item-level.
func (c *Client) Search(ctx context.Context, title string) (*Candidate, string, error) {
	token, err := c.sessions.Token(ctx, false)
	if err != nil {
		return nil, "", err
	}

	sessionID, err := c.createInstance(ctx, token, title)
	if err != nil {
		return nil, "", err
	}
	log := c.logger.With(logging.String(logging.FieldTitle, title), logging.String(logging.FieldSessionID, sessionID))
	log.Debug("search instance created")

	opID := c.runHubSearch(ctx, log, token, sessionID, title)
	if opID == "" {
		return nil, sessionID, services.Wrap(services.ErrNotFound, "airdcpp", "hub_search",
			"no query variant accepted", nil)
	}

	results := c.pollResults(ctx, log, token, sessionID)
	candidate := selectCandidate(results, c.cfg.AirDCPP.PrimaryExtension, c.cfg.AirDCPP.SecondaryExtension)
	if candidate == nil {
		return nil, sessionID, services.Wrap(services.ErrNotFound, "airdcpp", "results",
			"no result with an accepted extension", nil)
	}
	log.Info("search resolved", logging.String("path", candidate.Path), logging.Int64("size", candidate.Size))
	return candidate, sessionID, nil
}

func (c *Client) createInstance(ctx context.Context, token, title string) (string, error) {
	payload := searchInstanceRequest{
		Pattern:    title,
		Limit:      c.cfg.AirDCPP.SearchLimit,
		Expiration: c.cfg.AirDCPP.SearchExpiration,
	}
	var decoded searchInstanceResponse
	if err := c.postJSON(ctx, "search", token, payload, &decoded); err != nil {
		return "", classify("create_instance", err)
	}
	if decoded.ID.String() == "" {
		return "", services.Wrap(services.ErrProtocol, "airdcpp", "create_instance",
			"id missing from response", nil)
	}
	return decoded.ID.String(), nil
}

// runHubSearch tries the query variants in fixed order and returns the first
// operation id obtained, or "" when every variant fails. Transport errors on
// one variant do not stop the fallback chain.
func (c *Client) runHubSearch(ctx context.Context, log *slog.Logger, token, sessionID, title string) string {
	settle := time.Duration(c.cfg.AirDCPP.SettleSeconds) * time.Second
	endpoint := "search/" + sessionID + "/hub_search"

	for i, variant := range c.hubSearchVariants(title) {
		c.sleep(settle)

		var decoded hubSearchResponse
		if err := c.postJSON(ctx, endpoint, token, variant, &decoded); err != nil {
			log.Warn("hub search variant failed", logging.Int(logging.FieldAttempt, i+1), logging.Error(err))
			continue
		}
		if decoded.SearchID.String() == "" {
			log.Debug("hub search variant returned no operation id", logging.Int(logging.FieldAttempt, i+1))
			continue
		}
		return decoded.SearchID.String()
	}
	return ""
}

func (c *Client) hubSearchVariants(title string) []hubSearchRequest {
	base := hubSearchQuery{Pattern: title, Limit: c.cfg.AirDCPP.SearchLimit}

	primary := base
	primary.FileExtensions = []string{c.cfg.AirDCPP.PrimaryExtension}
	secondary := base
	secondary.FileExtensions = []string{c.cfg.AirDCPP.SecondaryExtension}

	return []hubSearchRequest{
		{Query: primary},
		{Query: secondary},
		{Query: base},
	}
}

// pollResults fetches the result page with linearly increasing waits,
// stopping at the first non-empty list. Transport errors count as an empty
// attempt and do not abort the loop.
func (c *Client) pollResults(ctx context.Context, log *slog.Logger, token, sessionID string) []searchResult {
	endpoint := fmt.Sprintf("search/%s/results/0/%d", sessionID, c.cfg.AirDCPP.ResultPageSize)

	for attempt := 0; attempt < c.cfg.AirDCPP.MaxPollAttempts; attempt++ {
		delay := PollDelay(attempt, c.cfg.AirDCPP.PollInitialDelay, c.cfg.AirDCPP.PollDelayIncrement)
		log.Debug("waiting before result fetch",
			logging.Int(logging.FieldAttempt, attempt+1),
			logging.Duration("delay", delay),
		)
		c.sleep(delay)

		var results []searchResult
		if err := c.getJSON(ctx, endpoint, token, &results); err != nil {
			log.Warn("result fetch failed", logging.Int(logging.FieldAttempt, attempt+1), logging.Error(classify("results", err)))
			continue
		}
		if len(results) > 0 {
			return results
		}
	}
	return nil
}

// selectCandidate filters results to accepted extensions and prefers the
// primary one; otherwise the first accepted match in backend order wins.
// Result ordering is backend-defined and deliberately not re-sorted.
func selectCandidate(results []searchResult, primary, secondary string) *Candidate {
	var fallback *searchResult
	for i := range results {
		ext := pathExtension(results[i].Path)
		switch ext {
		case primary:
			return candidateFromResult(&results[i], ext)
		case secondary:
			if fallback == nil {
				fallback = &results[i]
			}
		}
	}
	if fallback != nil {
		return candidateFromResult(fallback, secondary)
	}
	return nil
}

func candidateFromResult(result *searchResult, ext string) *Candidate {
	return &Candidate{
		ID:   result.ID.String(),
		Name: result.Name,
		Path: result.Path,
		Size: result.Size,
		TTH:  result.TTH,
		Ext:  ext,
	}
}

func pathExtension(p string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}
