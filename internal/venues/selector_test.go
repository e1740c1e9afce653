package venues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tpl(name, typ string) VenueTemplate {
	return VenueTemplate{
		Name:        name,
		Type:        typ,
		RowCount:    2,
		SeatsPerRow: 4,
		Features:    []string{name + "-feature"},
	}
}

func testRegistry(t *testing.T, cities map[string]CityConfiguration) *Registry {
	t.Helper()
	reg, err := NewRegistry([]VenueTemplate{
		tpl("plf", TemplateTypePremiumLargeFormat),
		tpl("stadium", TemplateTypeStadium),
		tpl("3d", TemplateType3D),
		tpl("vip", TemplateTypeVIP),
		tpl("standard", TemplateTypeStandard),
	}, cities)
	require.NoError(t, err)
	return reg
}

func TestSelect_Priorities(t *testing.T) {
	reg := testRegistry(t, map[string]CityConfiguration{
		"Metro": {AvailableTemplates: []string{"standard", "vip", "3d", "stadium", "plf"}},
	})
	sel := NewSelector(reg)

	cases := []struct {
		name  string
		title TitleProfile
		want  string
	}{
		{"action picks first large format or stadium", TitleProfile{Genres: []string{"Action"}}, "stadium"},
		{"adventure case insensitive", TitleProfile{Genres: []string{" adventure "}}, "stadium"},
		{"animation picks 3d", TitleProfile{Genres: []string{"Animation"}}, "3d"},
		{"all ages rating picks 3d", TitleProfile{Genres: []string{"Drama"}, Rating: "L"}, "3d"},
		{"high profile picks vip", TitleProfile{Genres: []string{"Drama"}, IsHighProfile: true}, "vip"},
		{"action beats high profile", TitleProfile{Genres: []string{"Action"}, IsHighProfile: true}, "stadium"},
		{"fallback is first available", TitleProfile{Genres: []string{"Drama"}}, "standard"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sel.Select(tc.title, "Metro")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Template.Name)
			assert.Equal(t, 8, got.Layout.Capacity())
		})
	}
}

func TestSelect_CityGating(t *testing.T) {
	reg := testRegistry(t, map[string]CityConfiguration{
		"Small Town": {AvailableTemplates: []string{"standard", "vip"}},
	})
	sel := NewSelector(reg)

	// no large format in town, and a matched branch does not fall through
	// to the next rule
	got, err := sel.Select(TitleProfile{Genres: []string{"Action"}, IsHighProfile: true}, "Small Town")
	require.NoError(t, err)
	assert.Equal(t, "standard", got.Template.Name)

	got, err = sel.Select(TitleProfile{IsHighProfile: true}, "Small Town")
	require.NoError(t, err)
	assert.Equal(t, "vip", got.Template.Name)
}

func TestSelect_UnknownCity(t *testing.T) {
	sel := NewSelector(testRegistry(t, nil))

	_, err := sel.Select(TitleProfile{}, "Atlantis")
	assert.ErrorIs(t, err, ErrConfigurationNotFound)
}

func TestSelect_EmptyCity(t *testing.T) {
	reg := testRegistry(t, map[string]CityConfiguration{"Ghost": {}})
	sel := NewSelector(reg)

	_, err := sel.Select(TitleProfile{Genres: []string{"Action"}}, "Ghost")
	assert.ErrorIs(t, err, ErrNoTemplateAvailable)
}

func TestSelect_FeaturesConcatenated(t *testing.T) {
	reg := testRegistry(t, map[string]CityConfiguration{
		"Metro": {
			AvailableTemplates: []string{"standard"},
			DefaultFeatures:    []string{"Parking", "standard-feature"},
		},
	})
	sel := NewSelector(reg)

	got, err := sel.Select(TitleProfile{}, "Metro")
	require.NoError(t, err)
	assert.Equal(t, []string{"standard-feature", "Parking", "standard-feature"}, got.Features)
}

func TestSelectNamed(t *testing.T) {
	reg := testRegistry(t, map[string]CityConfiguration{
		"Metro": {AvailableTemplates: []string{"standard", "vip"}},
	})
	sel := NewSelector(reg)

	got, err := sel.SelectNamed("vip", "Metro")
	require.NoError(t, err)
	assert.Equal(t, TemplateTypeVIP, got.Template.Type)

	_, err = sel.SelectNamed("plf", "Metro")
	assert.ErrorIs(t, err, ErrTemplateNotPermitted)

	_, err = sel.SelectNamed("vip", "Nowhere")
	assert.ErrorIs(t, err, ErrConfigurationNotFound)
}
