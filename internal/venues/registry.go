package venues

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultRegistry []byte

// Registry is the read-only template and city reference data. It is loaded
// once at startup and injected wherever templates are needed.
type Registry struct {
	templates []VenueTemplate
	byName    map[string]int
	cities    map[string]CityConfiguration
}

type registryFile struct {
	Templates []VenueTemplate              `yaml:"templates" validate:"required,min=1,dive"`
	Cities    map[string]CityConfiguration `yaml:"cities" validate:"required"`
}

var registryValidator = validator.New()

// LoadRegistry reads a registry file, or the embedded default when path is empty.
func LoadRegistry(path string) (*Registry, error) {
	data := defaultRegistry
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read venue registry: %w", err)
		}
		data = raw
	}
	return ParseRegistry(data)
}

// ParseRegistry decodes and validates registry YAML.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse venue registry: %w", err)
	}
	if err := registryValidator.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid venue registry: %w", err)
	}
	return NewRegistry(file.Templates, file.Cities)
}

// NewRegistry builds a registry from in-memory data. Every template layout
// is validated and every city may only reference known templates.
func NewRegistry(templates []VenueTemplate, cities map[string]CityConfiguration) (*Registry, error) {
	reg := &Registry{
		templates: make([]VenueTemplate, 0, len(templates)),
		byName:    make(map[string]int, len(templates)),
		cities:    make(map[string]CityConfiguration, len(cities)),
	}

	var errs []error
	for _, t := range templates {
		if _, dup := reg.byName[t.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate template %q", t.Name))
			continue
		}
		if err := t.LayoutConfig().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("template %q: %w", t.Name, err))
			continue
		}
		reg.byName[t.Name] = len(reg.templates)
		reg.templates = append(reg.templates, t)
	}

	for city, cfg := range cities {
		for _, name := range cfg.AvailableTemplates {
			if _, ok := reg.byName[name]; !ok {
				errs = append(errs, fmt.Errorf("city %q references unknown template %q", city, name))
			}
		}
		reg.cities[city] = cfg
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return reg, nil
}

// Templates returns every template in file order.
func (r *Registry) Templates() []VenueTemplate {
	out := make([]VenueTemplate, len(r.templates))
	copy(out, r.templates)
	return out
}

func (r *Registry) Template(name string) (VenueTemplate, bool) {
	i, ok := r.byName[name]
	if !ok {
		return VenueTemplate{}, false
	}
	return r.templates[i], true
}

func (r *Registry) City(name string) (CityConfiguration, bool) {
	cfg, ok := r.cities[name]
	return cfg, ok
}

// Cities lists the configured city names.
func (r *Registry) Cities() []string {
	names := make([]string, 0, len(r.cities))
	for name := range r.cities {
		names = append(names, name)
	}
	return names
}
