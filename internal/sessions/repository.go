package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	FindSessionsForMovie(ctx context.Context, movieID uuid.UUID) ([]Session, error)
	FindSessionsInRange(ctx context.Context, movieID uuid.UUID, from, to *time.Time) ([]Session, error)

	// CreateSessions inserts the whole batch or nothing.
	CreateSessions(ctx context.Context, sessions []Session) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindSessionsForMovie(ctx context.Context, movieID uuid.UUID) ([]Session, error) {
	return r.FindSessionsInRange(ctx, movieID, nil, nil)
}

func (r *repository) FindSessionsInRange(ctx context.Context, movieID uuid.UUID, from, to *time.Time) ([]Session, error) {
	var sessions []Session
	query := r.db.WithContext(ctx).Where("movie_id = ?", movieID)
	if from != nil {
		query = query.Where("starts_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("starts_at < ?", *to)
	}

	err := query.Order("starts_at ASC, hall_id ASC").Find(&sessions).Error
	return sessions, err
}

func (r *repository) CreateSessions(ctx context.Context, sessions []Session) error {
	if len(sessions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(sessions, 200).Error
	})
}
