package sessions

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is one showtime of a title in a hall.
type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID   uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_session_slot"`
	HallID    uuid.UUID `json:"hall_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_session_slot"`
	StartsAt  time.Time `json:"starts_at" gorm:"not null;index;uniqueIndex:idx_session_slot"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null;check:price >= 0"`
	Language  string    `json:"language" gorm:"size:40;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

// SlotConfig is one entry of the time-slot rotation.
type SlotConfig struct {
	Hour     int     `json:"hour" validate:"gte=0,lte=23"`
	Minute   int     `json:"minute" validate:"gte=0,lte=59"`
	Language string  `json:"language" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// DefaultSlots is the rotation used when none is configured.
var DefaultSlots = []SlotConfig{
	{Hour: 14, Minute: 0, Language: "dubbed", Price: 24.00},
	{Hour: 20, Minute: 30, Language: "subtitled", Price: 32.00},
}

// ParseSlots reads entries of the form "HH:MM|language|price".
func ParseSlots(entries []string) ([]SlotConfig, error) {
	slots := make([]SlotConfig, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("slot %q: expected HH:MM|language|price", entry)
		}

		clock, err := time.Parse("15:04", strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("slot %q: invalid time: %w", entry, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("slot %q: invalid price: %w", entry, err)
		}

		slot := SlotConfig{
			Hour:     clock.Hour(),
			Minute:   clock.Minute(),
			Language: strings.TrimSpace(parts[1]),
			Price:    price,
		}
		if err := validate.Struct(slot); err != nil {
			return nil, fmt.Errorf("slot %q: %w", entry, err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// EnsureResult is what an ensure call leaves behind for a title: every
// session now stored for it, and how many of those this call created.
type EnsureResult struct {
	MovieID  uuid.UUID `json:"movie_id"`
	Sessions []Session `json:"sessions"`
	Created  int       `json:"created"`
}

// SessionListQuery filters session listing for a title.
type SessionListQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}
