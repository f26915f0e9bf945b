package acquisition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"comicgrabr/internal/config"
	"comicgrabr/internal/logging"
	"comicgrabr/internal/notifications"
	"comicgrabr/internal/pulllist"
	"comicgrabr/internal/services"
	"comicgrabr/internal/services/airdcpp"
)

// Backend is the search-and-queue surface the orchestrator drives. It is
// satisfied by the AirDC++ client.
type Backend interface {
	Search(ctx context.Context, title string) (*airdcpp.Candidate, string, error)
	Enqueue(ctx context.Context, candidate *airdcpp.Candidate, dryRun bool) (airdcpp.EnqueueResult, error)
}

// Outcome classifies what happened to a single release.
type Outcome int

const (
	OutcomeQueued Outcome = iota
	OutcomeSkipped
	OutcomeNotFound
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQueued:
		return "queued"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNotFound:
		return "not found"
	default:
		return "failed"
	}
}

// ItemOutcome records the fate of one release in a run.
type ItemOutcome struct {
	Release pulllist.Release
	Outcome Outcome
	Err     error
}

// Summary tallies a completed run. NotFound items count into Failed, the
// run's headline numbers being queued, skipped, and everything else.
type Summary struct {
	RunID      string
	ReleaseDay time.Time
	Queued     int
	Skipped    int
	Failed     int
	Duration   time.Duration
	Items      []ItemOutcome

	// Look-ahead report: the next release weekday occurrence and the titles
	// stored for it.
	NextReleaseDay time.Time
	Upcoming       []string
}

// Orchestrator owns a release run end to end.
type Orchestrator struct {
	cfg     *config.Config
	store   *pulllist.Store
	backend Backend
	notify  notifications.Service
	logger  *slog.Logger
	sleep   func(time.Duration)
	now     func() time.Time
	dryRun  bool
}

// Option customises Orchestrator construction.
type Option func(*Orchestrator)

// WithSleep overrides the pacing sleep (used in tests).
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New builds a run orchestrator.
func New(cfg *config.Config, store *pulllist.Store, backend Backend, notify notifications.Service, logger *slog.Logger, dryRun bool, opts ...Option) *Orchestrator {
	orch := &Orchestrator{
		cfg:     cfg,
		store:   store,
		backend: backend,
		notify:  notify,
		logger:  logging.NewComponentLogger(logger, "acquisition"),
		sleep:   time.Sleep,
		now:     time.Now,
		dryRun:  dryRun,
	}
	for _, opt := range opts {
		opt(orch)
	}
	if orch.notify == nil {
		orch.notify = notifications.NewService(cfg, dryRun)
	}
	return orch
}

// Run processes the releases due today. With includeBacklog set, releases
// from earlier days that are still in the store are processed too. Every run
// ends with a look-ahead report of the titles stored for the next release
// weekday. The returned error covers setup problems only; per-item failures
// land in the summary.
func (o *Orchestrator) Run(ctx context.Context, includeBacklog bool) (*Summary, error) {
	started := o.now()
	runID := uuid.NewString()
	log := o.logger.With(logging.String(logging.FieldRunID, runID))

	today := pulllist.Midnight(started)
	due, err := o.selectDue(ctx, today, includeBacklog)
	if err != nil {
		return nil, fmt.Errorf("select due releases: %w", err)
	}

	log.Info("run started",
		logging.String("release_day", today.Format(pulllist.DateLayout)),
		logging.Int("due", len(due)),
		logging.Bool("dry_run", o.dryRun),
		logging.Bool("backlog", includeBacklog),
	)
	if err := o.notify.NotifyRunStarted(ctx, today, len(due)); err != nil {
		log.Warn("run-started notification failed", logging.Error(err))
	}

	summary := &Summary{RunID: runID, ReleaseDay: today}
	pacing := time.Duration(o.cfg.Schedule.ItemPacingSeconds) * time.Second
	for i, release := range due {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 && pacing > 0 {
			o.sleep(pacing)
		}
		summary.record(o.processItem(ctx, log, release))
	}

	o.reportUpcoming(ctx, log, started, summary)

	summary.Duration = o.now().Sub(started)
	log.Info("run completed",
		logging.Int("queued", summary.Queued),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration),
	)
	if err := o.notify.NotifyRunCompleted(ctx, summary.Queued, summary.Skipped, summary.Failed, summary.Duration); err != nil {
		log.Warn("run-completed notification failed", logging.Error(err))
	}
	return summary, nil
}

func (o *Orchestrator) selectDue(ctx context.Context, today time.Time, includeBacklog bool) ([]pulllist.Release, error) {
	if includeBacklog {
		return o.store.DueOnOrBefore(ctx, today)
	}
	return o.store.DueOn(ctx, today)
}

// reportUpcoming announces the titles stored for the next release weekday.
// The report always runs, even after an empty or failed item loop.
func (o *Orchestrator) reportUpcoming(ctx context.Context, log *slog.Logger, started time.Time, summary *Summary) {
	nextDay := NextReleaseDay(started, o.cfg.ReleaseWeekday())
	summary.NextReleaseDay = nextDay

	upcoming, err := o.store.DueOn(ctx, nextDay)
	if err != nil {
		log.Warn("look-ahead query failed", logging.Error(err))
		return
	}
	titles := make([]string, 0, len(upcoming))
	for _, release := range upcoming {
		titles = append(titles, release.Title)
	}
	summary.Upcoming = titles

	log.Info("upcoming releases",
		logging.String("release_day", nextDay.Format(pulllist.DateLayout)),
		logging.Int("count", len(titles)),
	)
	if err := o.notify.NotifyUpcoming(ctx, nextDay, titles); err != nil {
		log.Warn("upcoming notification failed", logging.Error(err))
	}
}

func (o *Orchestrator) processItem(ctx context.Context, log *slog.Logger, release pulllist.Release) ItemOutcome {
	itemLog := log.With(logging.String(logging.FieldTitle, release.Title))

	candidate, _, err := o.backend.Search(ctx, release.Title)
	if err != nil {
		outcome := OutcomeFailed
		if errors.Is(err, services.ErrNotFound) {
			outcome = OutcomeNotFound
			itemLog.Warn("no download candidate", logging.Error(err))
		} else {
			itemLog.Error("search failed", logging.Error(err))
		}
		o.notifyFailure(ctx, itemLog, release.Title, err)
		return ItemOutcome{Release: release, Outcome: outcome, Err: err}
	}

	result, err := o.backend.Enqueue(ctx, candidate, o.dryRun)
	if err != nil {
		itemLog.Error("queue failed", logging.Error(err))
		o.notifyFailure(ctx, itemLog, release.Title, err)
		return ItemOutcome{Release: release, Outcome: OutcomeFailed, Err: err}
	}

	switch result {
	case airdcpp.EnqueueSkippedExists:
		itemLog.Info("already on disk")
		if err := o.notify.NotifyItemSkipped(ctx, release.Title); err != nil {
			itemLog.Warn("skip notification failed", logging.Error(err))
		}
		return ItemOutcome{Release: release, Outcome: OutcomeSkipped}
	default:
		itemLog.Info("queued", logging.String("name", candidate.Name))
		if err := o.notify.NotifyItemQueued(ctx, release.Title); err != nil {
			itemLog.Warn("queue notification failed", logging.Error(err))
		}
		return ItemOutcome{Release: release, Outcome: OutcomeQueued}
	}
}

func (o *Orchestrator) notifyFailure(ctx context.Context, log *slog.Logger, title string, cause error) {
	if err := o.notify.NotifyItemFailed(ctx, title, cause); err != nil {
		log.Warn("failure notification failed", logging.Error(err))
	}
}

func (s *Summary) record(item ItemOutcome) {
	s.Items = append(s.Items, item)
	switch item.Outcome {
	case OutcomeQueued:
		s.Queued++
	case OutcomeSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

// Sync replaces the stored pull list from a snapshot file and returns the
// number of upcoming releases now tracked.
func (o *Orchestrator) Sync(ctx context.Context, snapshotPath string) (int, error) {
	releases, err := pulllist.ReadSnapshot(o.logger, snapshotPath)
	if err != nil {
		return 0, err
	}
	kept, err := o.store.Reconcile(ctx, releases, o.now())
	if err != nil {
		return 0, fmt.Errorf("reconcile pull list: %w", err)
	}
	o.logger.Info("pull list synced",
		logging.Int("snapshot_rows", len(releases)),
		logging.Int("kept", kept),
	)
	if err := o.notify.NotifySyncCompleted(ctx, kept); err != nil {
		o.logger.Warn("sync notification failed", logging.Error(err))
	}
	return kept, nil
}
