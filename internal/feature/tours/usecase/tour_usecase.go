package usecase

import (
	"context"
	"net/url"
	"time"

	"github.com/gosimple/slug"

	"tours_backend/internal/feature/tours/domain/entity"
	"tours_backend/internal/platform/query"
)

// tourSchema declares the fields the tour collection exposes to querying.
// It mirrors the parameter allow-list of the public API.
var tourSchema = query.Schema{
	"name":            {Column: "name", Kind: query.String},
	"duration":        {Column: "duration", Kind: query.Number},
	"maxGroupSize":    {Column: "max_group_size", Kind: query.Number},
	"difficulty":      {Column: "difficulty", Kind: query.String},
	"ratingsAverage":  {Column: "ratings_average", Kind: query.Number},
	"ratingsQuantity": {Column: "ratings_quantity", Kind: query.Number},
	"price":           {Column: "price", Kind: query.Number},
	"createdAt":       {Column: "created_at", Kind: query.String},
}

const defaultTourListLimit = 100

// DifficultyStats is an aggregate row of the tour statistics read.
type DifficultyStats struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int     `json:"numTours"`
	NumRatings int     `json:"numRatings"`
	AvgRating  float64 `json:"avgRating"`
	AvgPrice   float64 `json:"avgPrice"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}

// MonthlyDeparture is one month of the yearly departure plan.
type MonthlyDeparture struct {
	Month     time.Month `json:"month"`
	TourCount int        `json:"tourCount"`
	Tours     []string   `json:"tours"`
}

// TourPatch carries the optional fields of a tour update. Nil means
// "leave unchanged".
type TourPatch struct {
	Name          *string
	Duration      *int
	MaxGroupSize  *int
	Difficulty    *entity.Difficulty
	Price         *float64
	PriceDiscount *float64
	Summary       *string
	Description   *string
	ImageCover    *string
	Images        []string
	StartDates    []time.Time
	Secret        *bool
}

// TourRepository abstracts persistence for tour entities.
// Following Go convention, the consumer (usecase) defines the interface
// rather than the provider (adapters).
type TourRepository interface {
	// Create persists a new tour. It returns ErrNameAlreadyExists when the
	// name is taken.
	Create(ctx context.Context, t *entity.Tour) error

	// FindByID returns the non-secret tour with the given ID, start dates
	// included.
	FindByID(ctx context.Context, id uint) (*entity.Tour, error)

	// List returns non-secret tours matching the specification.
	List(ctx context.Context, spec *query.Spec) ([]entity.Tour, error)

	// Save writes every field of an existing tour, replacing its start dates.
	Save(ctx context.Context, t *entity.Tour) error

	// Delete removes a tour and its start dates.
	Delete(ctx context.Context, id uint) error

	// Stats aggregates non-secret tours with RatingsAverage >= 4.5 per
	// difficulty.
	Stats(ctx context.Context) ([]DifficultyStats, error)

	// MonthlyPlan aggregates departures of the given year per month.
	MonthlyPlan(ctx context.Context, year int) ([]MonthlyDeparture, error)

	// UpdateRatingStats persists a recomputed rating aggregate.
	UpdateRatingStats(ctx context.Context, tourID uint, avg float64, quantity int) error
}

// tourUsecase implements tour business logic.
type tourUsecase struct {
	tours TourRepository
}

// NewTourUsecase creates a new tourUsecase instance.
func NewTourUsecase(tours TourRepository) *tourUsecase {
	return &tourUsecase{tours: tours}
}

// List translates raw query parameters and returns matching tours.
func (u *tourUsecase) List(ctx context.Context, params url.Values) ([]entity.Tour, error) {
	spec, err := query.Parse(params, tourSchema, query.Defaults{
		Sort:  "-createdAt",
		Limit: defaultTourListLimit,
	})
	if err != nil {
		return nil, err
	}
	return u.tours.List(ctx, spec)
}

// TopTours returns the five best-rated, cheapest-first tours. It is the
// fixed alias behind /tours/top-5-cheap.
func (u *tourUsecase) TopTours(ctx context.Context) ([]entity.Tour, error) {
	params := url.Values{}
	params.Set("sort", "-ratingsAverage,price")
	params.Set("limit", "5")

	spec, err := query.Parse(params, tourSchema, query.Defaults{Limit: 5})
	if err != nil {
		return nil, err
	}
	return u.tours.List(ctx, spec)
}

// Get returns one visible tour.
func (u *tourUsecase) Get(ctx context.Context, id uint) (*entity.Tour, error) {
	return u.tours.FindByID(ctx, id)
}

// Create validates and persists a new tour. The slug is computed here, at
// the mutation site, rather than in a persistence hook.
func (u *tourUsecase) Create(ctx context.Context, t *entity.Tour) error {
	if !t.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}
	if t.PriceDiscount != 0 && t.PriceDiscount >= t.Price {
		return ErrInvalidDiscount
	}
	if t.RatingsAverage == 0 {
		t.RatingsAverage = 4.5
	}
	t.Slug = slug.Make(t.Name)

	return u.tours.Create(ctx, t)
}

// Update applies a patch to an existing tour. Renames recompute the slug.
func (u *tourUsecase) Update(ctx context.Context, id uint, patch TourPatch) (*entity.Tour, error) {
	t, err := u.tours.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		t.Name = *patch.Name
		t.Slug = slug.Make(t.Name)
	}
	if patch.Duration != nil {
		t.Duration = *patch.Duration
	}
	if patch.MaxGroupSize != nil {
		t.MaxGroupSize = *patch.MaxGroupSize
	}
	if patch.Difficulty != nil {
		if !patch.Difficulty.Valid() {
			return nil, ErrInvalidDifficulty
		}
		t.Difficulty = *patch.Difficulty
	}
	if patch.Price != nil {
		t.Price = *patch.Price
	}
	if patch.PriceDiscount != nil {
		t.PriceDiscount = *patch.PriceDiscount
	}
	if patch.Summary != nil {
		t.Summary = *patch.Summary
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.ImageCover != nil {
		t.ImageCover = *patch.ImageCover
	}
	if patch.Images != nil {
		t.Images = patch.Images
	}
	if patch.StartDates != nil {
		dates := make([]entity.StartDate, 0, len(patch.StartDates))
		for _, d := range patch.StartDates {
			dates = append(dates, entity.StartDate{TourID: t.ID, StartsAt: d})
		}
		t.StartDates = dates
	}
	if patch.Secret != nil {
		t.Secret = *patch.Secret
	}

	if t.PriceDiscount != 0 && t.PriceDiscount >= t.Price {
		return nil, ErrInvalidDiscount
	}

	if err := u.tours.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a tour.
func (u *tourUsecase) Delete(ctx context.Context, id uint) error {
	return u.tours.Delete(ctx, id)
}

// Stats returns the per-difficulty aggregates.
func (u *tourUsecase) Stats(ctx context.Context) ([]DifficultyStats, error) {
	return u.tours.Stats(ctx)
}

// MonthlyPlan returns departures per month for a year.
func (u *tourUsecase) MonthlyPlan(ctx context.Context, year int) ([]MonthlyDeparture, error) {
	return u.tours.MonthlyPlan(ctx, year)
}
