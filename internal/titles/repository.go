package titles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, title *Title) error
	GetByID(ctx context.Context, id uuid.UUID) (*Title, error)
	GetByExternalRef(ctx context.Context, ref string) (*Title, error)
	List(ctx context.Context, query TitleListQuery) ([]Title, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, title *Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Title, error) {
	var title Title
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&title).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *repository) GetByExternalRef(ctx context.Context, ref string) (*Title, error) {
	var title Title
	err := r.db.WithContext(ctx).Where("external_ref = ?", ref).First(&title).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *repository) List(ctx context.Context, query TitleListQuery) ([]Title, error) {
	var titles []Title
	db := r.db.WithContext(ctx).Model(&Title{})
	if query.Kind != "" {
		db = db.Where("kind = ?", query.Kind)
	}
	if query.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("created_at DESC").Find(&titles).Error
	return titles, err
}

func (r *repository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Title{}).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}
