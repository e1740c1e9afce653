package venues

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"ticketly/internal/layout"
	"ticketly/internal/shared/constants"
	"ticketly/internal/titles"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCinemaNotFound = errors.New("cinema not found")
	ErrHallNotFound   = errors.New("hall not found")
)

type Service interface {
	// Registry
	ListTemplates(ctx context.Context) []VenueTemplate
	GetTemplateLayout(ctx context.Context, name string) (*TemplateLayoutResponse, error)
	ListCities(ctx context.Context) []CityResponse
	SelectTemplate(ctx context.Context, req SelectTemplateRequest) (*SelectionResponse, error)

	// Cinemas
	CreateCinema(ctx context.Context, req CreateCinemaRequest) (*Cinema, error)
	ListCinemas(ctx context.Context, city string) ([]Cinema, error)

	// Halls
	ProvisionHall(ctx context.Context, cinemaID uuid.UUID, req ProvisionHallRequest) (*ProvisionHallResponse, error)
	ListHalls(ctx context.Context, cinemaID *uuid.UUID) ([]Hall, error)
	GetHallLayout(ctx context.Context, hallID uuid.UUID) (*HallLayoutResponse, error)
}

// TitleLookup resolves the title a hall is being provisioned for.
type TitleLookup interface {
	GetTitle(ctx context.Context, id uuid.UUID) (*titles.Title, error)
}

type service struct {
	repo     Repository
	registry *Registry
	selector *Selector
	titles   TitleLookup
	cache    cache.Service
	log      *logger.Logger
}

func NewService(repo Repository, registry *Registry, titleLookup TitleLookup, cacheService cache.Service) Service {
	return &service{
		repo:     repo,
		registry: registry,
		selector: NewSelector(registry),
		titles:   titleLookup,
		cache:    cacheService,
		log:      logger.GetDefault(),
	}
}

//  REGISTRY

func (s *service) ListTemplates(ctx context.Context) []VenueTemplate {
	return s.registry.Templates()
}

func (s *service) GetTemplateLayout(ctx context.Context, name string) (*TemplateLayoutResponse, error) {
	template, ok := s.registry.Template(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	var result TemplateLayoutResponse
	err := s.cache.GetOrSet(ctx, constants.BuildTemplateLayoutKey(name), constants.TTL_TEMPLATE_LAYOUT,
		func() (interface{}, error) {
			grid, err := layout.Generate(template.LayoutConfig())
			if err != nil {
				return nil, err
			}
			return &TemplateLayoutResponse{Template: template, Layout: toLayoutResponse(grid)}, nil
		}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ListCities(ctx context.Context) []CityResponse {
	names := s.registry.Cities()
	sort.Strings(names)

	cities := make([]CityResponse, 0, len(names))
	for _, name := range names {
		cfg, _ := s.registry.City(name)
		cities = append(cities, CityResponse{Name: name, CityConfiguration: cfg})
	}
	return cities
}

func (s *service) SelectTemplate(ctx context.Context, req SelectTemplateRequest) (*SelectionResponse, error) {
	titleID, err := uuid.Parse(req.TitleID)
	if err != nil {
		return nil, fmt.Errorf("invalid title ID: %w", err)
	}
	title, err := s.titles.GetTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	selection, err := s.selector.Select(profileOf(title), req.City)
	if err != nil {
		return nil, err
	}

	return &SelectionResponse{
		City:     req.City,
		Template: selection.Template,
		Features: selection.Features,
		Layout:   toLayoutResponse(selection.Layout),
	}, nil
}

//  CINEMAS

func (s *service) CreateCinema(ctx context.Context, req CreateCinemaRequest) (*Cinema, error) {
	city := strings.TrimSpace(req.City)
	if _, ok := s.registry.City(city); !ok {
		return nil, fmt.Errorf("%w: %q", ErrConfigurationNotFound, city)
	}

	existing, err := s.repo.GetCinemaByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check cinema name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("cinema with name '%s' already exists", req.Name)
	}

	cinema := &Cinema{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		City:    city,
		Address: req.Address,
	}
	if err := s.repo.CreateCinema(ctx, cinema); err != nil {
		return nil, fmt.Errorf("failed to create cinema: %w", err)
	}
	return cinema, nil
}

func (s *service) ListCinemas(ctx context.Context, city string) ([]Cinema, error) {
	return s.repo.ListCinemas(ctx, city)
}

//  HALLS

// ProvisionHall picks a template for the cinema's city, generates the
// seating map and stores the hall with all of its seats.
func (s *service) ProvisionHall(ctx context.Context, cinemaID uuid.UUID, req ProvisionHallRequest) (*ProvisionHallResponse, error) {
	cinema, err := s.repo.GetCinemaByID(ctx, cinemaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCinemaNotFound
		}
		return nil, fmt.Errorf("failed to get cinema: %w", err)
	}

	var selection *Selection
	if req.TemplateName != "" {
		selection, err = s.selector.SelectNamed(req.TemplateName, cinema.City)
	} else {
		var titleID uuid.UUID
		titleID, err = uuid.Parse(req.TitleID)
		if err != nil {
			return nil, fmt.Errorf("invalid title ID: %w", err)
		}
		var title *titles.Title
		title, err = s.titles.GetTitle(ctx, titleID)
		if err != nil {
			return nil, err
		}
		selection, err = s.selector.Select(profileOf(title), cinema.City)
	}
	if err != nil {
		return nil, err
	}

	hall := &Hall{
		ID:           uuid.New(),
		CinemaID:     cinema.ID,
		Name:         strings.TrimSpace(req.Name),
		TemplateName: selection.Template.Name,
		TemplateType: selection.Template.Type,
		Rows:         selection.Template.RowCount,
		SeatsPerRow:  selection.Template.SeatsPerRow,
		Capacity:     selection.Layout.Capacity(),
		Features:     selection.Features,
		IsActive:     true,
	}
	seats := hallSeatsFromLayout(hall.ID, selection.Layout)

	if err := s.repo.CreateHallWithSeats(ctx, hall, seats); err != nil {
		return nil, fmt.Errorf("failed to create hall: %w", err)
	}

	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_HALLS_ALL); err != nil {
		s.log.WarnContext(ctx, "Failed to invalidate hall cache", slog.Any("error", err))
	}
	s.log.LogHallProvisioned(ctx, hall.ID.String(), cinema.ID.String(), hall.TemplateName, hall.Capacity)

	return &ProvisionHallResponse{
		Hall:     *hall,
		Template: selection.Template,
		Layout:   toLayoutResponse(selection.Layout),
	}, nil
}

func (s *service) ListHalls(ctx context.Context, cinemaID *uuid.UUID) ([]Hall, error) {
	key := constants.BuildHallsByCinemaKey("")
	if cinemaID != nil {
		key = constants.BuildHallsByCinemaKey(cinemaID.String())
	}

	var halls []Hall
	err := s.cache.GetOrSet(ctx, key, constants.TTL_HALLS_BY_CINEMA, func() (interface{}, error) {
		return s.repo.ListHalls(ctx, cinemaID)
	}, &halls)
	if err != nil {
		return nil, fmt.Errorf("failed to list halls: %w", err)
	}
	return halls, nil
}

func (s *service) GetHallLayout(ctx context.Context, hallID uuid.UUID) (*HallLayoutResponse, error) {
	var result HallLayoutResponse
	err := s.cache.GetOrSet(ctx, constants.BuildHallLayoutKey(hallID.String()), constants.TTL_HALL_LAYOUT,
		func() (interface{}, error) {
			hall, err := s.repo.GetHallByID(ctx, hallID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrHallNotFound
				}
				return nil, err
			}
			seats, err := s.repo.GetHallSeats(ctx, hallID)
			if err != nil {
				return nil, err
			}
			return &HallLayoutResponse{Hall: *hall, Rows: groupHallSeats(seats)}, nil
		}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func profileOf(t *titles.Title) TitleProfile {
	return TitleProfile{
		Genres:        t.Genres,
		Rating:        t.Rating,
		IsHighProfile: t.IsHighProfile,
	}
}
