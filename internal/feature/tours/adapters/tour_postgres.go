// Package adapters provides repository implementations for the tours feature.
package adapters

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tours_backend/internal/feature/tours/domain/entity"
	"tours_backend/internal/feature/tours/usecase"
	"tours_backend/internal/platform/query"
)

const pgUniqueViolation = "23505"

// tourPostgres implements the TourRepository interface over gorm.
type tourPostgres struct {
	db *gorm.DB
}

var _ usecase.TourRepository = (*tourPostgres)(nil)

// NewTourRepository creates a tourPostgres instance for dependency injection.
func NewTourRepository(db *gorm.DB) *tourPostgres {
	return &tourPostgres{db: db}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Create inserts a tour together with its start dates.
// It returns usecase.ErrNameAlreadyExists on a duplicate name.
func (r *tourPostgres) Create(ctx context.Context, t *entity.Tour) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrNameAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID returns a non-secret tour with start dates preloaded.
// It returns usecase.ErrTourNotFound when no such tour exists.
func (r *tourPostgres) FindByID(ctx context.Context, id uint) (*entity.Tour, error) {
	var t entity.Tour
	err := r.db.WithContext(ctx).
		Preload("StartDates").
		Where("id = ?", id).
		Where("secret = ?", false).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTourNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns non-secret tours matching the translated specification.
// Start dates are only preloaded for full-row reads; a projection read
// returns the selected columns alone.
func (r *tourPostgres) List(ctx context.Context, spec *query.Spec) ([]entity.Tour, error) {
	tx := r.db.WithContext(ctx).Model(&entity.Tour{})
	if len(spec.Columns) == 0 {
		tx = tx.Preload("StartDates")
	}

	var tours []entity.Tour
	err := tx.
		Where("secret = ?", false).
		Scopes(spec.Scope()).
		Find(&tours).Error
	if err != nil {
		return nil, err
	}
	return tours, nil
}

// Save rewrites a tour and replaces its start dates in one transaction.
func (r *tourPostgres) Save(ctx context.Context, t *entity.Tour) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("StartDates").Save(t).Error; err != nil {
			return err
		}
		if err := tx.Where("tour_id = ?", t.ID).Delete(&entity.StartDate{}).Error; err != nil {
			return err
		}
		if len(t.StartDates) == 0 {
			return nil
		}
		for i := range t.StartDates {
			t.StartDates[i].ID = 0
			t.StartDates[i].TourID = t.ID
		}
		return tx.Create(&t.StartDates).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return usecase.ErrNameAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a tour and its start dates.
// It returns usecase.ErrTourNotFound when the tour does not exist.
func (r *tourPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tour_id = ?", id).Delete(&entity.StartDate{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Tour{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrTourNotFound
		}
		return nil
	})
}

// Stats aggregates well-rated, non-secret tours per difficulty,
// cheapest difficulty first.
func (r *tourPostgres) Stats(ctx context.Context) ([]usecase.DifficultyStats, error) {
	var stats []usecase.DifficultyStats
	err := r.db.WithContext(ctx).
		Model(&entity.Tour{}).
		Select("difficulty",
			"COUNT(*) AS num_tours",
			"SUM(ratings_quantity) AS num_ratings",
			"AVG(ratings_average) AS avg_rating",
			"AVG(price) AS avg_price",
			"MIN(price) AS min_price",
			"MAX(price) AS max_price").
		Where("ratings_average >= ?", 4.5).
		Where("secret = ?", false).
		Group("difficulty").
		Order("avg_price").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// MonthlyPlan folds the year's departures into per-month buckets, busiest
// month first. The month extraction happens in Go so the query stays
// portable across the production and test drivers.
func (r *tourPostgres) MonthlyPlan(ctx context.Context, year int) ([]usecase.MonthlyDeparture, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var rows []struct {
		StartsAt time.Time
		Name     string
	}
	err := r.db.WithContext(ctx).
		Table("start_dates").
		Select("start_dates.starts_at, tours.name").
		Joins("JOIN tours ON tours.id = start_dates.tour_id").
		Where("tours.secret = ?", false).
		Where("start_dates.starts_at >= ? AND start_dates.starts_at < ?", from, to).
		Order("start_dates.starts_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := map[time.Month][]string{}
	for _, row := range rows {
		m := row.StartsAt.Month()
		byMonth[m] = append(byMonth[m], row.Name)
	}

	plan := make([]usecase.MonthlyDeparture, 0, len(byMonth))
	for m, names := range byMonth {
		plan = append(plan, usecase.MonthlyDeparture{
			Month:     m,
			TourCount: len(names),
			Tours:     names,
		})
	}
	sort.Slice(plan, func(i, j int) bool {
		if plan[i].TourCount != plan[j].TourCount {
			return plan[i].TourCount > plan[j].TourCount
		}
		return plan[i].Month < plan[j].Month
	})
	return plan, nil
}

// UpdateRatingStats persists a recomputed rating aggregate for a tour.
func (r *tourPostgres) UpdateRatingStats(ctx context.Context, tourID uint, avg float64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Tour{}).
		Where("id = ?", tourID).
		Updates(map[string]any{
			"ratings_average":  avg,
			"ratings_quantity": quantity,
		}).Error
}
