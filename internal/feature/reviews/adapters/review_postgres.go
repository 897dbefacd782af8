// Package adapters provides repository implementations for the reviews feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tours_backend/internal/feature/reviews/domain/entity"
	"tours_backend/internal/feature/reviews/usecase"
)

// reviewPostgres implements the ReviewRepository interface over gorm.
type reviewPostgres struct {
	db *gorm.DB
}

var _ usecase.ReviewRepository = (*reviewPostgres)(nil)

// NewReviewRepository creates a reviewPostgres instance for dependency injection.
func NewReviewRepository(db *gorm.DB) *reviewPostgres {
	return &reviewPostgres{db: db}
}

// Create adds a review to the database.
func (r *reviewPostgres) Create(ctx context.Context, rev *entity.Review) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

// FindByID retrieves a review by ID.
// It returns usecase.ErrReviewNotFound when no such review exists.
func (r *reviewPostgres) FindByID(ctx context.Context, id uint) (*entity.Review, error) {
	var rev entity.Review
	if err := r.db.WithContext(ctx).First(&rev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrReviewNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// ListByTour returns reviews with the author's display name joined in,
// newest first. tourID 0 lists across all tours.
func (r *reviewPostgres) ListByTour(ctx context.Context, tourID uint) ([]entity.Review, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("reviews.*, users.name AS author_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Order("reviews.created_at DESC")
	if tourID != 0 {
		tx = tx.Where("reviews.tour_id = ?", tourID)
	}

	var reviews []entity.Review
	if err := tx.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Save writes an existing review's fields.
func (r *reviewPostgres) Save(ctx context.Context, rev *entity.Review) error {
	return r.db.WithContext(ctx).Save(rev).Error
}

// Delete removes a review.
// It returns usecase.ErrReviewNotFound when the review does not exist.
func (r *reviewPostgres) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrReviewNotFound
	}
	return nil
}

// AggregateForTour computes the current average rating and review count.
func (r *reviewPostgres) AggregateForTour(ctx context.Context, tourID uint) (float64, int, error) {
	var row struct {
		Avg float64
		Cnt int
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS cnt").
		Where("tour_id = ?", tourID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Cnt, nil
}
