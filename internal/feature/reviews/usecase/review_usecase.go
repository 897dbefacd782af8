package usecase

import (
	"context"
	"fmt"

	authentity "tours_backend/internal/feature/auth/domain/entity"
	"tours_backend/internal/feature/reviews/domain/entity"
	tourentity "tours_backend/internal/feature/tours/domain/entity"
)

// defaultRating is what a tour falls back to once its last review is gone.
const defaultRating = 4.5

// ReviewRepository abstracts persistence for review entities.
// Following Go convention, the consumer (usecase) defines the interface
// rather than the provider (adapters).
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, r *entity.Review) error

	// FindByID returns the review with the given ID.
	FindByID(ctx context.Context, id uint) (*entity.Review, error)

	// ListByTour returns reviews for a tour, author names joined in.
	// tourID 0 lists across all tours.
	ListByTour(ctx context.Context, tourID uint) ([]entity.Review, error)

	// Save writes an existing review's fields.
	Save(ctx context.Context, r *entity.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uint) error

	// AggregateForTour computes the average rating and review count of a
	// tour from its current reviews.
	AggregateForTour(ctx context.Context, tourID uint) (avg float64, count int, err error)
}

// TourStore is the slice of the tours repository the review flows need:
// existence checks on create, and persisting the recomputed aggregate.
type TourStore interface {
	FindByID(ctx context.Context, id uint) (*tourentity.Tour, error)
	UpdateRatingStats(ctx context.Context, tourID uint, avg float64, quantity int) error
}

// ReviewPatch carries the optional fields of a review update.
type ReviewPatch struct {
	Review *string
	Rating *int
}

// reviewUsecase implements review business logic.
type reviewUsecase struct {
	reviews ReviewRepository
	tours   TourStore
}

// NewReviewUsecase creates a new reviewUsecase instance.
func NewReviewUsecase(reviews ReviewRepository, tours TourStore) *reviewUsecase {
	return &reviewUsecase{reviews: reviews, tours: tours}
}

// List returns reviews, scoped to one tour when tourID is non-zero.
func (u *reviewUsecase) List(ctx context.Context, tourID uint) ([]entity.Review, error) {
	return u.reviews.ListByTour(ctx, tourID)
}

// Create adds a review for a tour the caller has seen, then recomputes the
// tour's rating aggregate. The recomputation is an explicit step here, not
// a persistence hook.
func (u *reviewUsecase) Create(ctx context.Context, userID, tourID uint, text string, rating int) (*entity.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	// Surfaces the tours feature's not-found error for unknown tours.
	if _, err := u.tours.FindByID(ctx, tourID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		Review: text,
		Rating: rating,
		TourID: tourID,
		UserID: userID,
	}
	if err := u.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := u.syncTourRatings(ctx, tourID); err != nil {
		return nil, err
	}
	return review, nil
}

// Update changes a review's text and/or rating. Only the author may update,
// regardless of role.
func (u *reviewUsecase) Update(ctx context.Context, callerID uint, reviewID uint, patch ReviewPatch) (*entity.Review, error) {
	if patch.Review == nil && patch.Rating == nil {
		return nil, ErrEmptyPatch
	}

	review, err := u.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != callerID {
		return nil, ErrNotReviewAuthor
	}

	if patch.Review != nil {
		review.Review = *patch.Review
	}
	if patch.Rating != nil {
		if *patch.Rating < 1 || *patch.Rating > 5 {
			return nil, ErrInvalidRating
		}
		review.Rating = *patch.Rating
	}

	if err := u.reviews.Save(ctx, review); err != nil {
		return nil, err
	}
	if err := u.syncTourRatings(ctx, review.TourID); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review. The author may delete their own; admins may
// delete any.
func (u *reviewUsecase) Delete(ctx context.Context, callerID uint, callerRole authentity.Role, reviewID uint) error {
	review, err := u.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != callerID && callerRole != authentity.RoleAdmin {
		return ErrNotReviewAuthor
	}

	if err := u.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	return u.syncTourRatings(ctx, review.TourID)
}

// syncTourRatings recomputes and persists the tour's rating aggregate from
// its current reviews. With no reviews left the tour returns to the
// default 4.5 with quantity zero.
func (u *reviewUsecase) syncTourRatings(ctx context.Context, tourID uint) error {
	avg, count, err := u.reviews.AggregateForTour(ctx, tourID)
	if err != nil {
		return fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	if count == 0 {
		avg = defaultRating
	}
	if err := u.tours.UpdateRatingStats(ctx, tourID, avg, count); err != nil {
		return fmt.Errorf("failed to persist rating stats: %w", err)
	}
	return nil
}
