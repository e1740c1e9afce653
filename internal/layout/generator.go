package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidLayoutConfig is returned before any row is generated.
var ErrInvalidLayoutConfig = errors.New("invalid layout config")

var validate = validator.New()

// Validate checks counts, spacing, aisle bounds and that every special row
// and zone position falls inside the grid.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayoutConfig, err)
	}
	for _, aisle := range c.Aisles {
		if aisle < 0 || aisle >= c.SeatsPerRow {
			return fmt.Errorf("%w: aisle %d outside [0, %d)", ErrInvalidLayoutConfig, aisle, c.SeatsPerRow)
		}
	}
	for label, zone := range c.SpecialRows {
		if idx := RowIndex(label); idx < 0 || idx >= c.Rows {
			return fmt.Errorf("%w: special row %q is not one of %d rows", ErrInvalidLayoutConfig, label, c.Rows)
		}
		for _, p := range zone.Positions {
			if p >= c.SeatsPerRow {
				return fmt.Errorf("%w: row %s position %d outside [0, %d)", ErrInvalidLayoutConfig, label, p, c.SeatsPerRow)
			}
		}
	}
	return nil
}

// Generate builds the seating grid for cfg.
//
// Aisle columns are nil in every row and never consume a seat number, so
// numbers run 1..k over the remaining columns and restart on each row.
// Positions fan out along a shallow arc controlled by CurveAngle.
func Generate(cfg Config) (Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	aisles := make(map[int]struct{}, len(cfg.Aisles))
	for _, a := range cfg.Aisles {
		aisles[a] = struct{}{}
	}

	// degrees of curvature per column
	step := cfg.CurveAngle / float64(cfg.SeatsPerRow)
	center := float64(cfg.SeatsPerRow) / 2

	grid := make(Layout, 0, cfg.Rows)
	for r := 0; r < cfg.Rows; r++ {
		label := RowLabel(r)
		zone, hasZone := cfg.SpecialRows[label]

		row := make(Row, cfg.SeatsPerRow)
		number := 0
		for s := 0; s < cfg.SeatsPerRow; s++ {
			if _, isAisle := aisles[s]; isAisle {
				continue
			}
			number++

			seatType := SeatTypeStandard
			if hasZone && zone.covers(s) {
				seatType = zone.Type
			}

			rad := (float64(s) - center) * step * math.Pi / 180
			offset := float64(s) * cfg.SeatSpacing

			row[s] = &Seat{
				Row:    label,
				Number: number,
				Column: s,
				Type:   seatType,
				Position: Position{
					X: offset * math.Cos(rad),
					Y: float64(r)*cfg.RowSpacing + offset*math.Sin(rad),
				},
				IsAccessible: seatType == SeatTypeWheelchair,
				IsLoveseat:   seatType == SeatTypeLoveseat,
			}
		}
		grid = append(grid, row)
	}

	return grid, nil
}

func (z Zone) covers(column int) bool {
	if z.WholeRow {
		return true
	}
	for _, p := range z.Positions {
		if p == column {
			return true
		}
	}
	return false
}
