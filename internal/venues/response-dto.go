package venues

import "ticketly/internal/layout"

// RowResponse is one row of a generated layout. Aisle slots are null.
type RowResponse struct {
	Label string         `json:"label"`
	Seats []*layout.Seat `json:"seats"`
}

type LayoutResponse struct {
	Rows        []RowResponse  `json:"rows"`
	Capacity    int            `json:"capacity"`
	SeatsByType map[string]int `json:"seats_by_type"`
}

type TemplateLayoutResponse struct {
	Template VenueTemplate  `json:"template"`
	Layout   LayoutResponse `json:"layout"`
}

type SelectionResponse struct {
	City     string         `json:"city"`
	Template VenueTemplate  `json:"template"`
	Features []string       `json:"features"`
	Layout   LayoutResponse `json:"layout"`
}

type CityResponse struct {
	Name string `json:"name"`
	CityConfiguration
}

type HallRowResponse struct {
	Label string     `json:"label"`
	Seats []HallSeat `json:"seats"`
}

type HallLayoutResponse struct {
	Hall Hall              `json:"hall"`
	Rows []HallRowResponse `json:"rows"`
}

type ProvisionHallResponse struct {
	Hall     Hall           `json:"hall"`
	Template VenueTemplate  `json:"template"`
	Layout   LayoutResponse `json:"layout"`
}

func toLayoutResponse(grid layout.Layout) LayoutResponse {
	rows := make([]RowResponse, 0, len(grid))
	for r, row := range grid {
		rows = append(rows, RowResponse{
			Label: layout.RowLabel(r),
			Seats: row,
		})
	}

	byType := make(map[string]int)
	for t, n := range grid.CountByType() {
		byType[string(t)] = n
	}

	return LayoutResponse{
		Rows:        rows,
		Capacity:    grid.Capacity(),
		SeatsByType: byType,
	}
}

// groupHallSeats groups persisted seats by row, preserving row order.
func groupHallSeats(seats []HallSeat) []HallRowResponse {
	rows := []HallRowResponse{}
	for _, seat := range seats {
		if n := len(rows); n == 0 || rows[n-1].Label != seat.Row {
			rows = append(rows, HallRowResponse{Label: seat.Row})
		}
		last := &rows[len(rows)-1]
		last.Seats = append(last.Seats, seat)
	}
	return rows
}
