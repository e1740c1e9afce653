package titles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTitleNotFound = errors.New("title not found")

type Service interface {
	CreateTitle(ctx context.Context, req CreateTitleRequest) (*Title, error)
	GetTitle(ctx context.Context, id uuid.UUID) (*Title, error)
	ListTitles(ctx context.Context, query TitleListQuery) ([]Title, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateTitle stores a new title. A title with the same external reference
// is returned as is, which keeps catalog imports idempotent.
func (s *service) CreateTitle(ctx context.Context, req CreateTitleRequest) (*Title, error) {
	if req.ExternalRef != "" {
		existing, err := s.repo.GetByExternalRef(ctx, req.ExternalRef)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check external reference: %w", err)
		}
	}

	kind := KindMovie
	if req.Kind != "" {
		kind = Kind(req.Kind)
	}

	genres := make([]string, 0, len(req.Genres))
	for _, g := range req.Genres {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}

	title := &Title{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(req.Name),
		Kind:            kind,
		Genres:          genres,
		Rating:          strings.ToUpper(strings.TrimSpace(req.Rating)),
		IsHighProfile:   req.IsHighProfile,
		DurationMinutes: req.DurationMinutes,
		ExternalRef:     req.ExternalRef,
		IsActive:        true,
	}

	if err := s.repo.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("failed to create title: %w", err)
	}
	return title, nil
}

func (s *service) GetTitle(ctx context.Context, id uuid.UUID) (*Title, error) {
	title, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, fmt.Errorf("failed to get title: %w", err)
	}
	return title, nil
}

func (s *service) ListTitles(ctx context.Context, query TitleListQuery) ([]Title, error) {
	return s.repo.List(ctx, query)
}

func (s *service) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.ListActiveIDs(ctx)
}
