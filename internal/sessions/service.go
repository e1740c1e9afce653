package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"ticketly/internal/shared/constants"
	"ticketly/internal/titles"
	"ticketly/internal/venues"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// HallSource lists the halls sessions can be placed in.
type HallSource interface {
	ListHalls(ctx context.Context, cinemaID *uuid.UUID) ([]venues.Hall, error)
}

type TitleSource interface {
	GetTitle(ctx context.Context, id uuid.UUID) (*titles.Title, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

// ScheduledEvent describes one committed batch of new sessions.
type ScheduledEvent struct {
	MovieID    uuid.UUID `json:"movie_id"`
	SessionIDs []string  `json:"session_ids"`
	Created    int       `json:"created"`
	FirstStart time.Time `json:"first_start"`
	LastStart  time.Time `json:"last_start"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishSessionsScheduled(ctx context.Context, event ScheduledEvent) error
}

// Options configures the ensure service.
type Options struct {
	Plan    PlanOptions
	Slots   []SlotConfig
	LockTTL time.Duration
	Workers int
	Now     func() time.Time
}

// CoverageReport summarizes one EnsureAll pass.
type CoverageReport struct {
	Titles  int `json:"titles"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type Service interface {
	// EnsureSessions fills every uncovered day in the window for movieID and
	// returns the full stored set for it together with the number created.
	EnsureSessions(ctx context.Context, movieID uuid.UUID, cinemaID *uuid.UUID) (*EnsureResult, error)
	EnsureAll(ctx context.Context) (*CoverageReport, error)
	ListSessions(ctx context.Context, movieID uuid.UUID, query SessionListQuery) ([]Session, error)
}

type service struct {
	repo      Repository
	halls     HallSource
	titles    TitleSource
	locker    Locker
	publisher Publisher
	cache     cache.Service
	opts      Options
	log       *logger.Logger
}

func NewService(repo Repository, halls HallSource, titleSource TitleSource, locker Locker, publisher Publisher, cacheService cache.Service, opts Options) Service {
	if len(opts.Slots) == 0 {
		opts.Slots = DefaultSlots
	}
	if opts.Plan.WindowDays == 0 && opts.Plan.SlotsPerDay == 0 {
		opts.Plan = DefaultPlanOptions()
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 30 * time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &service{
		repo:      repo,
		halls:     halls,
		titles:    titleSource,
		locker:    locker,
		publisher: publisher,
		cache:     cacheService,
		opts:      opts,
		log:       logger.GetDefault(),
	}
}

func (s *service) EnsureSessions(ctx context.Context, movieID uuid.UUID, cinemaID *uuid.UUID) (*EnsureResult, error) {
	if _, err := s.titles.GetTitle(ctx, movieID); err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, constants.BuildEnsureLockKey(movieID.String()), s.opts.LockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	halls, err := s.halls.ListHalls(ctx, cinemaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list halls: %w", err)
	}
	hallIDs := make([]uuid.UUID, 0, len(halls))
	for _, h := range halls {
		hallIDs = append(hallIDs, h.ID)
	}

	existing, err := s.repo.FindSessionsForMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	planned, err := Plan(movieID, hallIDs, existing, s.opts.Slots, s.opts.Plan, s.opts.Now())
	if err != nil {
		return nil, err
	}

	for i := range planned {
		planned[i].ID = uuid.New()
	}
	if err := s.repo.CreateSessions(ctx, planned); err != nil {
		return nil, fmt.Errorf("failed to create sessions: %w", err)
	}

	all := make([]Session, 0, len(existing)+len(planned))
	all = append(all, existing...)
	all = append(all, planned...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartsAt.Before(all[j].StartsAt)
	})

	if len(planned) > 0 {
		if err := s.cache.Delete(ctx, constants.BuildSessionsByTitleKey(movieID.String())); err != nil {
			s.log.WarnContext(ctx, "Failed to invalidate session cache", slog.Any("error", err))
		}
		s.publish(ctx, movieID, planned)
	}
	s.log.LogSessionsScheduled(ctx, movieID.String(), len(planned), len(all))

	return &EnsureResult{MovieID: movieID, Sessions: all, Created: len(planned)}, nil
}

func (s *service) publish(ctx context.Context, movieID uuid.UUID, planned []Session) {
	if s.publisher == nil {
		return
	}

	event := ScheduledEvent{
		MovieID:    movieID,
		SessionIDs: make([]string, 0, len(planned)),
		Created:    len(planned),
		FirstStart: planned[0].StartsAt,
		LastStart:  planned[0].StartsAt,
		OccurredAt: s.opts.Now(),
	}
	for _, p := range planned {
		event.SessionIDs = append(event.SessionIDs, p.ID.String())
		if p.StartsAt.Before(event.FirstStart) {
			event.FirstStart = p.StartsAt
		}
		if p.StartsAt.After(event.LastStart) {
			event.LastStart = p.StartsAt
		}
	}

	// sessions are already committed; a lost event is only logged
	if err := s.publisher.PublishSessionsScheduled(ctx, event); err != nil {
		s.log.WithTitleID(movieID.String()).WithError(err).WarnContext(ctx, "Failed to publish sessions scheduled event")
	}
}

// EnsureAll runs EnsureSessions for every active title with at most
// Workers calls in flight. Per-title failures are counted, not returned.
func (s *service) EnsureAll(ctx context.Context) (*CoverageReport, error) {
	ids, err := s.titles.ListActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active titles: %w", err)
	}

	report := &CoverageReport{Titles: len(ids)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for _, id := range ids {
		g.Go(func() error {
			result, err := s.EnsureSessions(gctx, id, nil)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Created += result.Created
			case errors.Is(err, ErrLockHeld):
				report.Skipped++
				s.log.LogCoverageSkipped(gctx, id.String(), "lock held")
			case errors.Is(err, ErrNoHallsAvailable):
				report.Skipped++
				s.log.LogCoverageSkipped(gctx, id.String(), "no halls")
			default:
				report.Failed++
				s.log.ErrorWithContext(gctx, "Failed to ensure sessions", err, map[string]interface{}{
					"title_id": id.String(),
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func (s *service) ListSessions(ctx context.Context, movieID uuid.UUID, query SessionListQuery) ([]Session, error) {
	if query.From == "" && query.To == "" {
		var list []Session
		err := s.cache.GetOrSet(ctx, constants.BuildSessionsByTitleKey(movieID.String()), constants.TTL_SESSIONS_BY_TITLE,
			func() (interface{}, error) {
				return s.repo.FindSessionsForMovie(ctx, movieID)
			}, &list)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		return list, nil
	}

	loc := s.opts.Plan.Location
	if loc == nil {
		loc = time.Local
	}

	var from, to *time.Time
	if query.From != "" {
		t, err := time.ParseInLocation("2006-01-02", query.From, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		from = &t
	}
	if query.To != "" {
		t, err := time.ParseInLocation("2006-01-02", query.To, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		// inclusive of the whole day
		t = t.AddDate(0, 0, 1)
		to = &t
	}

	return s.repo.FindSessionsInRange(ctx, movieID, from, to)
}
