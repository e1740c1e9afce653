package venues

import (
	"time"

	"ticketly/internal/layout"

	"github.com/google/uuid"
)

// Template categories. Hall selection matches on these tags only.
const (
	TemplateTypePremiumLargeFormat = "PREMIUM_LARGE_FORMAT"
	TemplateTypeStadium            = "STADIUM"
	TemplateType3D                 = "3D_STANDARD"
	TemplateTypeVIP                = "VIP"
	TemplateTypeStandard           = "STANDARD"
)

// VenueTemplate is an immutable seating blueprint from the registry.
type VenueTemplate struct {
	Name        string          `json:"name" yaml:"name" validate:"required"`
	Type        string          `json:"type" yaml:"type" validate:"required"`
	RowCount    int             `json:"row_count" yaml:"rowCount" validate:"gt=0"`
	SeatsPerRow int             `json:"seats_per_row" yaml:"seatsPerRow" validate:"gt=0"`
	Features    []string        `json:"features" yaml:"features"`
	Layout      layout.Geometry `json:"layout" yaml:"layout"`
}

// LayoutConfig combines the template counts with its geometry.
func (t VenueTemplate) LayoutConfig() layout.Config {
	return layout.Config{
		Rows:        t.RowCount,
		SeatsPerRow: t.SeatsPerRow,
		Geometry:    t.Layout,
	}
}

// CityConfiguration restricts the templates a city may build and adds the
// amenities every hall there advertises.
type CityConfiguration struct {
	AvailableTemplates []string `json:"available_templates" yaml:"availableTemplates"`
	DefaultFeatures    []string `json:"default_features" yaml:"defaultFeatures"`
}

// TitleProfile is the part of a movie or event that drives hall selection.
type TitleProfile struct {
	Genres        []string
	Rating        string
	IsHighProfile bool
}

type Cinema struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255;uniqueIndex"`
	City      string    `json:"city" gorm:"not null;size:120;index"`
	Address   string    `json:"address" gorm:"size:500"`
	Halls     []Hall    `json:"halls,omitempty" gorm:"foreignKey:CinemaID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Cinema) TableName() string {
	return "cinemas"
}

// Hall is a physical room bound to one template at provisioning time.
type Hall struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CinemaID     uuid.UUID  `json:"cinema_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_cinema_hall_name"`
	Name         string     `json:"name" gorm:"not null;size:120;uniqueIndex:idx_cinema_hall_name"`
	TemplateName string     `json:"template_name" gorm:"not null;size:120"`
	TemplateType string     `json:"template_type" gorm:"not null;size:60"`
	Rows         int        `json:"rows" gorm:"not null"`
	SeatsPerRow  int        `json:"seats_per_row" gorm:"not null"`
	Capacity     int        `json:"capacity" gorm:"not null;check:capacity > 0"`
	Features     []string   `json:"features" gorm:"serializer:json"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	Seats        []HallSeat `json:"-" gorm:"foreignKey:HallID;constraint:OnDelete:CASCADE;"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Hall) TableName() string {
	return "halls"
}

// HallSeat is a generated seat persisted with its hall.
type HallSeat struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	HallID       uuid.UUID `json:"hall_id" gorm:"type:uuid;not null;uniqueIndex:idx_hall_seat"`
	Row          string    `json:"row" gorm:"not null;size:4;uniqueIndex:idx_hall_seat"`
	Number       int       `json:"number" gorm:"not null;uniqueIndex:idx_hall_seat"`
	Column       int       `json:"column" gorm:"column:seat_column;not null"`
	RowIndex     int       `json:"row_index" gorm:"not null"`
	Type         string    `json:"type" gorm:"type:varchar(30);not null;default:'STANDARD'"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	IsAccessible bool      `json:"is_accessible"`
	IsLoveseat   bool      `json:"is_loveseat"`
}

func (HallSeat) TableName() string {
	return "hall_seats"
}

// hallSeatsFromLayout converts a generated grid into rows for hall_seats.
func hallSeatsFromLayout(hallID uuid.UUID, grid layout.Layout) []HallSeat {
	seats := make([]HallSeat, 0, grid.Capacity())
	for r, row := range grid {
		for _, seat := range row {
			if seat == nil {
				continue
			}
			seats = append(seats, HallSeat{
				ID:           uuid.New(),
				HallID:       hallID,
				Row:          seat.Row,
				Number:       seat.Number,
				Column:       seat.Column,
				RowIndex:     r,
				Type:         string(seat.Type),
				X:            seat.Position.X,
				Y:            seat.Position.Y,
				IsAccessible: seat.IsAccessible,
				IsLoveseat:   seat.IsLoveseat,
			})
		}
	}
	return seats
}
