package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ticketly/internal/titles"
	"ticketly/internal/venues"
	"ticketly/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu       sync.Mutex
	sessions []Session
	writes   int
	failNext error
}

func (m *memRepo) FindSessionsForMovie(ctx context.Context, movieID uuid.UUID) ([]Session, error) {
	return m.FindSessionsInRange(ctx, movieID, nil, nil)
}

func (m *memRepo) FindSessionsInRange(ctx context.Context, movieID uuid.UUID, from, to *time.Time) ([]Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Session
	for _, s := range m.sessions {
		if s.MovieID != movieID {
			continue
		}
		if from != nil && s.StartsAt.Before(*from) {
			continue
		}
		if to != nil && !s.StartsAt.Before(*to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memRepo) CreateSessions(ctx context.Context, sessions []Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	if len(sessions) > 0 {
		m.writes++
	}
	m.sessions = append(m.sessions, sessions...)
	return nil
}

type staticHalls []venues.Hall

func (h staticHalls) ListHalls(ctx context.Context, cinemaID *uuid.UUID) ([]venues.Hall, error) {
	var out []venues.Hall
	for _, hall := range h {
		if cinemaID == nil || hall.CinemaID == *cinemaID {
			out = append(out, hall)
		}
	}
	return out, nil
}

type memTitles map[uuid.UUID]*titles.Title

func (m memTitles) GetTitle(ctx context.Context, id uuid.UUID) (*titles.Title, error) {
	t, ok := m[id]
	if !ok {
		return nil, titles.ErrTitleNotFound
	}
	return t, nil
}

func (m memTitles) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ScheduledEvent
	err    error
}

func (p *recordingPublisher) PublishSessionsScheduled(ctx context.Context, event ScheduledEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type heldLocker struct{}

func (heldLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	return nil, ErrLockHeld
}

type fixture struct {
	svc       Service
	repo      *memRepo
	titles    memTitles
	publisher *recordingPublisher
	cinema    uuid.UUID
	halls     staticHalls
}

func newFixture(t *testing.T, hallCount int, locker Locker) *fixture {
	t.Helper()

	cinema := uuid.New()
	halls := make(staticHalls, hallCount)
	for i := range halls {
		halls[i] = venues.Hall{ID: uuid.New(), CinemaID: cinema}
	}

	f := &fixture{
		repo:      &memRepo{},
		titles:    memTitles{},
		publisher: &recordingPublisher{},
		cinema:    cinema,
		halls:     halls,
	}
	if locker == nil {
		locker = NewLocalLocker()
	}
	f.svc = NewService(f.repo, halls, f.titles, locker, f.publisher, cache.NewService(nil), Options{
		Plan:  opts(7, 2),
		Slots: testSlots(),
		Now:   testNow,
	})
	return f
}

func (f *fixture) addTitle() uuid.UUID {
	id := uuid.New()
	f.titles[id] = &titles.Title{ID: id, Name: "Title " + id.String()[:8], IsActive: true}
	return id
}

func TestEnsureSessions_CreatesFullWindow(t *testing.T) {
	f := newFixture(t, 2, nil)
	movie := f.addTitle()

	result, err := f.svc.EnsureSessions(context.Background(), movie, nil)
	require.NoError(t, err)

	assert.Equal(t, 14, result.Created)
	assert.Len(t, result.Sessions, 14)
	assert.Equal(t, 1, f.repo.writes)

	for i := 1; i < len(result.Sessions); i++ {
		assert.False(t, result.Sessions[i].StartsAt.Before(result.Sessions[i-1].StartsAt))
	}
	for _, s := range result.Sessions {
		assert.NotEqual(t, uuid.Nil, s.ID)
	}

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, movie, event.MovieID)
	assert.Equal(t, 14, event.Created)
	assert.Len(t, event.SessionIDs, 14)
	assert.Equal(t, result.Sessions[0].StartsAt, event.FirstStart)
	assert.Equal(t, result.Sessions[13].StartsAt, event.LastStart)
}

func TestEnsureSessions_SecondCallCreatesNothing(t *testing.T) {
	f := newFixture(t, 2, nil)
	movie := f.addTitle()
	ctx := context.Background()

	_, err := f.svc.EnsureSessions(ctx, movie, nil)
	require.NoError(t, err)

	result, err := f.svc.EnsureSessions(ctx, movie, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Len(t, result.Sessions, 14)
	assert.Equal(t, 1, f.repo.writes)
	assert.Len(t, f.publisher.events, 1)
}

func TestEnsureSessions_FillsOnlyGaps(t *testing.T) {
	f := newFixture(t, 2, nil)
	movie := f.addTitle()
	f.repo.sessions = []Session{{
		ID:       uuid.New(),
		MovieID:  movie,
		HallID:   f.halls[0].ID,
		StartsAt: time.Date(2026, time.March, 13, 18, 0, 0, 0, brt),
	}}

	result, err := f.svc.EnsureSessions(context.Background(), movie, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, result.Created)
	assert.Len(t, result.Sessions, 13)

	onDay := 0
	for _, s := range result.Sessions {
		if s.StartsAt.In(brt).Day() == 13 {
			onDay++
		}
	}
	assert.Equal(t, 1, onDay)
}

func TestEnsureSessions_Errors(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, 0, nil)
	movie := f.addTitle()
	_, err := f.svc.EnsureSessions(ctx, movie, nil)
	assert.ErrorIs(t, err, ErrNoHallsAvailable)

	_, err = f.svc.EnsureSessions(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, titles.ErrTitleNotFound)

	f = newFixture(t, 2, heldLocker{})
	movie = f.addTitle()
	_, err = f.svc.EnsureSessions(ctx, movie, nil)
	assert.ErrorIs(t, err, ErrLockHeld)
	assert.Empty(t, f.repo.sessions)
}

func TestEnsureSessions_FailedWriteLeavesNothing(t *testing.T) {
	f := newFixture(t, 2, nil)
	movie := f.addTitle()
	f.repo.failNext = errors.New("connection reset")

	_, err := f.svc.EnsureSessions(context.Background(), movie, nil)
	require.Error(t, err)
	assert.Empty(t, f.repo.sessions)
	assert.Empty(t, f.publisher.events)

	// the lock was released, a retry succeeds
	result, err := f.svc.EnsureSessions(context.Background(), movie, nil)
	require.NoError(t, err)
	assert.Equal(t, 14, result.Created)
}

func TestEnsureSessions_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, 1, nil)
	f.publisher.err = errors.New("broker down")
	movie := f.addTitle()

	result, err := f.svc.EnsureSessions(context.Background(), movie, nil)
	require.NoError(t, err)
	assert.Equal(t, 14, result.Created)
}

func TestEnsureSessions_CinemaFilter(t *testing.T) {
	f := newFixture(t, 2, nil)
	movie := f.addTitle()
	other := uuid.New()

	_, err := f.svc.EnsureSessions(context.Background(), movie, &other)
	assert.ErrorIs(t, err, ErrNoHallsAvailable)

	result, err := f.svc.EnsureSessions(context.Background(), movie, &f.cinema)
	require.NoError(t, err)
	assert.Equal(t, 14, result.Created)
}

func TestEnsureAll(t *testing.T) {
	f := newFixture(t, 3, nil)
	for i := 0; i < 5; i++ {
		f.addTitle()
	}

	report, err := f.svc.EnsureAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &CoverageReport{Titles: 5, Created: 70}, report)

	report, err = f.svc.EnsureAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &CoverageReport{Titles: 5}, report)
}

func TestEnsureAll_CountsSkipped(t *testing.T) {
	f := newFixture(t, 2, heldLocker{})
	f.addTitle()
	f.addTitle()

	report, err := f.svc.EnsureAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 0, report.Created)
}

func TestListSessions_DateRange(t *testing.T) {
	f := newFixture(t, 2, nil)
	movie := f.addTitle()
	ctx := context.Background()

	_, err := f.svc.EnsureSessions(ctx, movie, nil)
	require.NoError(t, err)

	all, err := f.svc.ListSessions(ctx, movie, SessionListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 14)

	some, err := f.svc.ListSessions(ctx, movie, SessionListQuery{From: "2026-03-11", To: "2026-03-12"})
	require.NoError(t, err)
	assert.Len(t, some, 4)
}
