package repository

import (
	"context"

	"golang-market-briefing/internal/entity"

	"gorm.io/gorm"
)

type briefingRepository struct {
	db *gorm.DB
}

// NewBriefingRepository creates a new BriefingRepository.
func NewBriefingRepository(db *gorm.DB) BriefingRepository {
	return &briefingRepository{db: db}
}

func (r *briefingRepository) Create(ctx context.Context, briefing *entity.Briefing) error {
	return r.db.WithContext(ctx).Create(briefing).Error
}

// List returns the newest briefings first.
func (r *briefingRepository) List(ctx context.Context, limit int) ([]entity.Briefing, error) {
	var briefings []entity.Briefing
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&briefings).Error; err != nil {
		return nil, err
	}
	return briefings, nil
}
