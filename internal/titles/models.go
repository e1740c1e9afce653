package titles

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindMovie Kind = "MOVIE"
	KindEvent Kind = "EVENT"
)

// Title is a movie or live event that can be put on the showtime calendar.
type Title struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name            string    `json:"name" gorm:"not null;size:255"`
	Kind            Kind      `json:"kind" gorm:"type:varchar(10);not null;default:'MOVIE'"`
	Genres          []string  `json:"genres" gorm:"serializer:json"`
	Rating          string    `json:"rating" gorm:"size:10"`
	IsHighProfile   bool      `json:"is_high_profile" gorm:"default:false"`
	DurationMinutes int       `json:"duration_minutes" gorm:"check:duration_minutes >= 0"`
	ExternalRef     string    `json:"external_ref,omitempty" gorm:"size:120;index"`
	IsActive        bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Title) TableName() string {
	return "titles"
}

type CreateTitleRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=255"`
	Kind            string   `json:"kind" binding:"omitempty,oneof=MOVIE EVENT"`
	Genres          []string `json:"genres" binding:"omitempty,dive,min=1,max=60"`
	Rating          string   `json:"rating" binding:"max=10"`
	IsHighProfile   bool     `json:"is_high_profile"`
	DurationMinutes int      `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	ExternalRef     string   `json:"external_ref" binding:"max=120"`
}

type TitleListQuery struct {
	Kind       string `form:"kind" binding:"omitempty,oneof=MOVIE EVENT"`
	ActiveOnly bool   `form:"active_only"`
}
