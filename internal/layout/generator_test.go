package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(rows, seats int) Config {
	return Config{
		Rows:        rows,
		SeatsPerRow: seats,
		Geometry:    Geometry{RowSpacing: 1, SeatSpacing: 1},
	}
}

func TestGenerate_FlatTwoByTwo(t *testing.T) {
	grid, err := Generate(flat(2, 2))
	require.NoError(t, err)
	require.Len(t, grid, 2)

	for r, row := range grid {
		require.Len(t, row, 2)
		for s, seat := range row {
			require.NotNil(t, seat)
			assert.Equal(t, s+1, seat.Number)
			assert.Equal(t, SeatTypeStandard, seat.Type)
			assert.Equal(t, RowLabel(r), seat.Row)
		}
	}

	assert.Greater(t, grid[1][0].Position.Y, grid[0][0].Position.Y, "y grows with row")
	assert.Greater(t, grid[0][1].Position.X, grid[0][0].Position.X, "x grows with seat")
	assert.InDelta(t, 0, grid[0][0].Position.X, 1e-9)
	assert.InDelta(t, 1, grid[1][0].Position.Y, 1e-9)
}

func TestGenerate_AisleSkipsNumber(t *testing.T) {
	cfg := flat(1, 3)
	cfg.Aisles = []int{1}

	grid, err := Generate(cfg)
	require.NoError(t, err)

	row := grid[0]
	require.Len(t, row, 3)
	require.NotNil(t, row[0])
	assert.Nil(t, row[1])
	require.NotNil(t, row[2])
	assert.Equal(t, 1, row[0].Number)
	assert.Equal(t, 2, row[2].Number)
	assert.Equal(t, 2, row[2].Column)
}

func TestGenerate_DenseNumberingPerRow(t *testing.T) {
	cfg := flat(4, 12)
	cfg.Aisles = []int{0, 5, 6, 11}

	grid, err := Generate(cfg)
	require.NoError(t, err)

	for _, row := range grid {
		want := 1
		for s, seat := range row {
			if s == 0 || s == 5 || s == 6 || s == 11 {
				assert.Nil(t, seat, "column %d is an aisle", s)
				continue
			}
			require.NotNil(t, seat)
			assert.Equal(t, want, seat.Number)
			want++
		}
		assert.Equal(t, 12-4+1, want)
	}
	assert.Equal(t, 4*12-4*4, grid.Capacity())
}

func TestGenerate_WholeRowZone(t *testing.T) {
	cfg := flat(2, 6)
	cfg.Aisles = []int{3}
	cfg.SpecialRows = map[string]Zone{"A": {Type: SeatTypeVIP, WholeRow: true}}

	grid, err := Generate(cfg)
	require.NoError(t, err)

	for s, seat := range grid[0] {
		if s == 3 {
			assert.Nil(t, seat, "zones never fill an aisle")
			continue
		}
		assert.Equal(t, SeatTypeVIP, seat.Type)
	}
	for _, seat := range grid[1] {
		if seat != nil {
			assert.Equal(t, SeatTypeStandard, seat.Type)
		}
	}
}

func TestGenerate_PositionZone(t *testing.T) {
	cfg := flat(3, 8)
	cfg.Aisles = []int{4}
	cfg.SpecialRows = map[string]Zone{
		"C": {Type: SeatTypeWheelchair, Positions: []int{0, 7}},
		"B": {Type: SeatTypeLoveseat, Positions: []int{2, 3, 4}},
	}

	grid, err := Generate(cfg)
	require.NoError(t, err)

	c := grid[2]
	assert.Equal(t, SeatTypeWheelchair, c[0].Type)
	assert.True(t, c[0].IsAccessible)
	assert.Equal(t, SeatTypeWheelchair, c[7].Type)
	assert.Equal(t, SeatTypeStandard, c[1].Type)
	assert.False(t, c[1].IsAccessible)

	b := grid[1]
	assert.True(t, b[2].IsLoveseat)
	assert.True(t, b[3].IsLoveseat)
	assert.Nil(t, b[4], "aisle position listed in a zone stays empty")
	assert.False(t, b[5].IsLoveseat)

	counts := grid.CountByType()
	assert.Equal(t, 2, counts[SeatTypeWheelchair])
	assert.Equal(t, 2, counts[SeatTypeLoveseat])
	assert.Equal(t, grid.Capacity()-4, counts[SeatTypeStandard])
}

func TestGenerate_Curvature(t *testing.T) {
	cfg := flat(1, 10)
	cfg.SeatSpacing = 2
	cfg.CurveAngle = 30

	grid, err := Generate(cfg)
	require.NoError(t, err)

	seat := grid[0][9]
	angle := (9.0 - 5.0) * (30.0 / 10.0) * math.Pi / 180
	assert.InDelta(t, 18*math.Cos(angle), seat.Position.X, 1e-9)
	assert.InDelta(t, 18*math.Sin(angle), seat.Position.Y, 1e-9)

	// left of center bends the other way
	assert.Less(t, grid[0][2].Position.Y, 0.0)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero rows", flat(0, 4)},
		{"negative seats", flat(2, -1)},
		{"aisle out of range", Config{Rows: 1, SeatsPerRow: 3, Geometry: Geometry{Aisles: []int{3}}}},
		{"negative aisle", Config{Rows: 1, SeatsPerRow: 3, Geometry: Geometry{Aisles: []int{-1}}}},
		{"negative spacing", Config{Rows: 1, SeatsPerRow: 3, Geometry: Geometry{RowSpacing: -2}}},
		{"lower-case special row", Config{Rows: 2, SeatsPerRow: 3, Geometry: Geometry{
			SpecialRows: map[string]Zone{"a": {Type: SeatTypeVIP, WholeRow: true}},
		}}},
		{"special row past last row", Config{Rows: 10, SeatsPerRow: 3, Geometry: Geometry{
			SpecialRows: map[string]Zone{"Z": {Type: SeatTypeVIP, WholeRow: true}},
		}}},
		{"zone position past last seat", Config{Rows: 2, SeatsPerRow: 3, Geometry: Geometry{
			SpecialRows: map[string]Zone{"B": {Type: SeatTypeWheelchair, Positions: []int{0, 3}}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := Generate(tt.cfg)
			assert.Nil(t, grid)
			assert.True(t, errors.Is(err, ErrInvalidLayoutConfig), "got %v", err)
		})
	}
}

func TestLayout_SeatsFlattensInOrder(t *testing.T) {
	cfg := flat(2, 3)
	cfg.Aisles = []int{1}

	grid, err := Generate(cfg)
	require.NoError(t, err)

	seats := grid.Seats()
	require.Len(t, seats, 4)
	assert.Equal(t, "A", seats[0].Row)
	assert.Equal(t, 2, seats[1].Number)
	assert.Equal(t, "B", seats[2].Row)
	assert.Equal(t, 1, seats[2].Number)
}

func TestValidate_LastRowAndSeatAccepted(t *testing.T) {
	cfg := flat(28, 4)
	cfg.SpecialRows = map[string]Zone{
		"AB": {Type: SeatTypeWheelchair, Positions: []int{0, 3}},
	}
	require.NoError(t, cfg.Validate())
}
