package venues

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for cinema and hall persistence
type Repository interface {
	// Cinemas
	CreateCinema(ctx context.Context, cinema *Cinema) error
	GetCinemaByID(ctx context.Context, id uuid.UUID) (*Cinema, error)
	GetCinemaByName(ctx context.Context, name string) (*Cinema, error)
	ListCinemas(ctx context.Context, city string) ([]Cinema, error)

	// Halls
	CreateHallWithSeats(ctx context.Context, hall *Hall, seats []HallSeat) error
	GetHallByID(ctx context.Context, id uuid.UUID) (*Hall, error)
	ListHalls(ctx context.Context, cinemaID *uuid.UUID) ([]Hall, error)
	GetHallSeats(ctx context.Context, hallID uuid.UUID) ([]HallSeat, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new venue repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ============= CINEMAS =============

func (r *repository) CreateCinema(ctx context.Context, cinema *Cinema) error {
	return r.db.WithContext(ctx).Create(cinema).Error
}

func (r *repository) GetCinemaByID(ctx context.Context, id uuid.UUID) (*Cinema, error) {
	var cinema Cinema
	err := r.db.WithContext(ctx).First(&cinema, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cinema, nil
}

func (r *repository) GetCinemaByName(ctx context.Context, name string) (*Cinema, error) {
	var cinema Cinema
	err := r.db.WithContext(ctx).First(&cinema, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &cinema, nil
}

func (r *repository) ListCinemas(ctx context.Context, city string) ([]Cinema, error) {
	var cinemas []Cinema
	query := r.db.WithContext(ctx).Model(&Cinema{})
	if city != "" {
		query = query.Where("city = ?", city)
	}
	err := query.Order("name ASC").Find(&cinemas).Error
	return cinemas, err
}

// ============= HALLS =============

// CreateHallWithSeats stores the hall and its generated seats atomically.
func (r *repository) CreateHallWithSeats(ctx context.Context, hall *Hall, seats []HallSeat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Seats").Create(hall).Error; err != nil {
			return err
		}
		if len(seats) == 0 {
			return nil
		}
		return tx.CreateInBatches(seats, 500).Error
	})
}

func (r *repository) GetHallByID(ctx context.Context, id uuid.UUID) (*Hall, error) {
	var hall Hall
	err := r.db.WithContext(ctx).First(&hall, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

// ListHalls returns active halls ordered by creation so that rotation over
// them is stable between calls.
func (r *repository) ListHalls(ctx context.Context, cinemaID *uuid.UUID) ([]Hall, error) {
	var halls []Hall
	query := r.db.WithContext(ctx).Model(&Hall{}).Where("is_active = ?", true)
	if cinemaID != nil {
		query = query.Where("cinema_id = ?", *cinemaID)
	}
	err := query.Order("created_at ASC, id ASC").Find(&halls).Error
	return halls, err
}

func (r *repository) GetHallSeats(ctx context.Context, hallID uuid.UUID) ([]HallSeat, error) {
	var seats []HallSeat
	err := r.db.WithContext(ctx).
		Where("hall_id = ?", hallID).
		Order("row_index ASC, seat_column ASC").
		Find(&seats).Error
	return seats, err
}
