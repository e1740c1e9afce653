package venues

import (
	"errors"
	"fmt"
	"strings"

	"ticketly/internal/layout"
)

var (
	ErrConfigurationNotFound = errors.New("no configuration for city")
	ErrNoTemplateAvailable   = errors.New("no template available")
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateNotPermitted  = errors.New("template not permitted in city")
)

// allAgesRatings are classification codes that admit any audience.
var allAgesRatings = map[string]struct{}{
	"G":   {},
	"L":   {},
	"U":   {},
	"TP":  {},
	"0+":  {},
	"ALL": {},
}

// Selection is the outcome of matching a title against a city's templates.
type Selection struct {
	Template VenueTemplate `json:"template"`
	Layout   layout.Layout `json:"layout"`
	Features []string      `json:"features"`
}

// Selector picks the template that best fits a title within a city.
type Selector struct {
	registry *Registry
}

func NewSelector(registry *Registry) *Selector {
	return &Selector{registry: registry}
}

// Select resolves a template for title in city and generates its layout.
//
// Candidates are tried in this order, each restricted to the city's
// available templates: large format or stadium rooms for action and
// adventure, the 3D room for animation or all-ages ratings, the VIP room
// for high profile titles, then the first template the city allows.
func (s *Selector) Select(title TitleProfile, city string) (*Selection, error) {
	cityCfg, ok := s.registry.City(city)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrConfigurationNotFound, city)
	}

	template, ok := s.match(title, cityCfg)
	if !ok {
		return nil, fmt.Errorf("%w: city %q", ErrNoTemplateAvailable, city)
	}

	return s.build(template, cityCfg)
}

// SelectNamed builds a specific template, still gated by the city.
func (s *Selector) SelectNamed(name, city string) (*Selection, error) {
	cityCfg, ok := s.registry.City(city)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrConfigurationNotFound, city)
	}
	if !contains(cityCfg.AvailableTemplates, name) {
		return nil, fmt.Errorf("%w: %q in %q", ErrTemplateNotPermitted, name, city)
	}
	template, ok := s.registry.Template(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return s.build(template, cityCfg)
}

func (s *Selector) build(template VenueTemplate, cityCfg CityConfiguration) (*Selection, error) {
	grid, err := layout.Generate(template.LayoutConfig())
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", template.Name, err)
	}

	features := make([]string, 0, len(template.Features)+len(cityCfg.DefaultFeatures))
	features = append(features, template.Features...)
	features = append(features, cityCfg.DefaultFeatures...)

	return &Selection{
		Template: template,
		Layout:   grid,
		Features: features,
	}, nil
}

func (s *Selector) match(title TitleProfile, cityCfg CityConfiguration) (VenueTemplate, bool) {
	switch {
	case hasGenre(title.Genres, "Action", "Adventure"):
		if t, ok := s.firstOfType(cityCfg, TemplateTypePremiumLargeFormat, TemplateTypeStadium); ok {
			return t, true
		}
	case hasGenre(title.Genres, "Animation") || isAllAges(title.Rating):
		if t, ok := s.firstOfType(cityCfg, TemplateType3D); ok {
			return t, true
		}
	case title.IsHighProfile:
		if t, ok := s.firstOfType(cityCfg, TemplateTypeVIP); ok {
			return t, true
		}
	}

	for _, name := range cityCfg.AvailableTemplates {
		if t, ok := s.registry.Template(name); ok {
			return t, true
		}
	}
	return VenueTemplate{}, false
}

func (s *Selector) firstOfType(cityCfg CityConfiguration, types ...string) (VenueTemplate, bool) {
	for _, name := range cityCfg.AvailableTemplates {
		t, ok := s.registry.Template(name)
		if !ok {
			continue
		}
		for _, want := range types {
			if t.Type == want {
				return t, true
			}
		}
	}
	return VenueTemplate{}, false
}

func hasGenre(genres []string, wanted ...string) bool {
	for _, g := range genres {
		for _, w := range wanted {
			if strings.EqualFold(strings.TrimSpace(g), w) {
				return true
			}
		}
	}
	return false
}

func isAllAges(rating string) bool {
	_, ok := allAgesRatings[strings.ToUpper(strings.TrimSpace(rating))]
	return ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
