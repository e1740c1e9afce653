package layout

// SeatType classifies a generated seat. Zone descriptors may declare any tag;
// the constants below are the ones the storefront knows how to render.
type SeatType string

const (
	SeatTypeStandard   SeatType = "STANDARD"
	SeatTypeWheelchair SeatType = "WHEELCHAIR"
	SeatTypeLoveseat   SeatType = "LOVESEAT"
	SeatTypeVIP        SeatType = "VIP"
)

// Zone marks special seats inside a row. WholeRow wins over Positions.
type Zone struct {
	Type      SeatType `json:"type" yaml:"type" validate:"required"`
	WholeRow  bool     `json:"whole_row,omitempty" yaml:"wholeRow"`
	Positions []int    `json:"positions,omitempty" yaml:"positions" validate:"dive,gte=0"`
}

// Geometry is the spacing, aisle and zoning part of a venue template.
type Geometry struct {
	RowSpacing  float64         `json:"row_spacing" yaml:"rowSpacing" validate:"gte=0"`
	SeatSpacing float64         `json:"seat_spacing" yaml:"seatSpacing" validate:"gte=0"`
	Aisles      []int           `json:"aisles,omitempty" yaml:"aisles"`
	SpecialRows map[string]Zone `json:"special_rows,omitempty" yaml:"specialRows" validate:"dive"`
	CurveAngle  float64         `json:"curve_angle" yaml:"curveAngle"`
}

// Config is everything Generate needs to build a seating grid.
type Config struct {
	Rows        int `json:"rows" validate:"gt=0"`
	SeatsPerRow int `json:"seats_per_row" validate:"gt=0"`
	Geometry
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Seat is a purchasable slot in a generated layout.
type Seat struct {
	Row          string   `json:"row"`
	Number       int      `json:"number"`
	Column       int      `json:"column"`
	Type         SeatType `json:"type"`
	Position     Position `json:"position"`
	IsAccessible bool     `json:"is_accessible"`
	IsLoveseat   bool     `json:"is_loveseat"`
}

// Row holds one slot per seat column; aisle columns are nil.
type Row []*Seat

// Layout is the generated seating grid, front row first.
type Layout []Row

// Capacity counts the purchasable seats.
func (l Layout) Capacity() int {
	total := 0
	for _, row := range l {
		total += row.countSeats()
	}
	return total
}

func (r Row) countSeats() int {
	total := 0
	for _, seat := range r {
		if seat != nil {
			total++
		}
	}
	return total
}

// Seats flattens the grid in row then column order, skipping aisles.
func (l Layout) Seats() []Seat {
	seats := make([]Seat, 0, l.Capacity())
	for _, row := range l {
		for _, seat := range row {
			if seat != nil {
				seats = append(seats, *seat)
			}
		}
	}
	return seats
}

// CountByType tallies seats per classification.
func (l Layout) CountByType() map[SeatType]int {
	counts := make(map[SeatType]int)
	for _, row := range l {
		for _, seat := range row {
			if seat != nil {
				counts[seat.Type]++
			}
		}
	}
	return counts
}
