package adapters

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tours_backend/internal/feature/tours/domain/entity"
	"tours_backend/internal/feature/tours/usecase"
	"tours_backend/internal/platform/query"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&entity.Tour{}, &entity.StartDate{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return gdb
}

func testTour(name string, price float64) *entity.Tour {
	return &entity.Tour{
		Name:           name,
		Slug:           "slug-" + name,
		Duration:       5,
		MaxGroupSize:   10,
		Difficulty:     entity.DifficultyEasy,
		RatingsAverage: 4.5,
		Price:          price,
		Summary:        "A test tour",
	}
}

func TestTourRepository_CreateAndFind(t *testing.T) {
	t.Parallel()

	repo := NewTourRepository(setupTestDB(t))

	tour := testTour("Forest Hiker", 397)
	tour.StartDates = []entity.StartDate{
		{StartsAt: time.Date(2026, time.April, 25, 9, 0, 0, 0, time.UTC)},
		{StartsAt: time.Date(2026, time.July, 20, 9, 0, 0, 0, time.UTC)},
	}
	if err := repo.Create(context.Background(), tour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(context.Background(), tour.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Name != "Forest Hiker" {
		t.Errorf("unexpected name %q", found.Name)
	}
	if len(found.StartDates) != 2 {
		t.Errorf("expected 2 start dates preloaded, got %d", len(found.StartDates))
	}
}

func TestTourRepository_DuplicateName(t *testing.T) {
	t.Parallel()

	repo := NewTourRepository(setupTestDB(t))
	if err := repo.Create(context.Background(), testTour("Forest Hiker", 397)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := repo.Create(context.Background(), testTour("Forest Hiker", 500))
	if !errors.Is(err, usecase.ErrNameAlreadyExists) {
		t.Fatalf("expected ErrNameAlreadyExists, got %v", err)
	}
}

func TestTourRepository_SecretToursAreHidden(t *testing.T) {
	t.Parallel()

	repo := NewTourRepository(setupTestDB(t))

	secret := testTour("Secret Expedition", 999)
	secret.Secret = true
	if err := repo.Create(context.Background(), secret); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(context.Background(), testTour("Public Walk", 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindByID(context.Background(), secret.ID); !errors.Is(err, usecase.ErrTourNotFound) {
		t.Errorf("expected secret tour to be hidden, got %v", err)
	}

	spec, err := query.Parse(url.Values{}, query.Schema{}, query.Defaults{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tours, err := repo.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tours) != 1 || tours[0].Name != "Public Walk" {
		t.Errorf("expected only the public tour, got %d tours", len(tours))
	}
}

func TestTourRepository_List_FilterSortPaginate(t *testing.T) {
	t.Parallel()

	repo := NewTourRepository(setupTestDB(t))
	prices := []float64{100, 200, 300, 400, 500}
	names := []string{"Tour A", "Tour B", "Tour C", "Tour D", "Tour E"}
	for i := range prices {
		if err := repo.Create(context.Background(), testTour(names[i], prices[i])); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	schema := query.Schema{
		"name":  {Column: "name", Kind: query.String},
		"price": {Column: "price", Kind: query.Number},
	}
	values, _ := url.ParseQuery("price[gte]=200&sort=-price&limit=2")
	spec, err := query.Parse(values, schema, query.Defaults{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tours, err := repo.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tours) != 2 {
		t.Fatalf("expected 2 tours, got %d", len(tours))
	}
	if tours[0].Price != 500 || tours[1].Price != 400 {
		t.Errorf("unexpected order: %v, %v", tours[0].Price, tours[1].Price)
	}
}

func TestTourRepository_SaveReplacesStartDates(t *testing.T) {
	t.Parallel()

	repo := NewTourRepository(setupTestDB(t))

	tour := testTour("Forest Hiker", 397)
	tour.StartDates = []entity.StartDate{
		{StartsAt: time.Date(2026, time.April, 25, 9, 0, 0, 0, time.UTC)},
	}
	if err := repo.Create(context.Background(), tour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tour.Price = 450
	tour.StartDates = []entity.StartDate{
		{StartsAt: time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)},
		{StartsAt: time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)},
	}
	if err := repo.Save(context.Background(), tour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(context.Background(), tour.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Price != 450 {
		t.Errorf("expected price 450, got %v", found.Price)
	}
	if len(found.StartDates) != 2 {
		t.Errorf("expected start dates replaced, got %d", len(found.StartDates))
	}
}

func TestTourRepository_Delete(t *testing.T) {
	t.Parallel()

	repo := NewTourRepository(setupTestDB(t))
	tour := testTour("Forest Hiker", 397)
	if err := repo.Create(context.Background(), tour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(context.Background(), tour.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), tour.ID); !errors.Is(err, usecase.ErrTourNotFound) {
		t.Errorf("expected tour gone, got %v", err)
	}

	if err := repo.Delete(context.Background(), 999); !errors.Is(err, usecase.ErrTourNotFound) {
		t.Errorf("expected ErrTourNotFound for missing tour, got %v", err)
	}
}

func TestTourRepository_Stats(t *testing.T) {
	t.Parallel()

	repo := NewTourRepository(setupTestDB(t))

	easy := testTour("Easy One", 100)
	easy.RatingsAverage = 4.8
	easy.RatingsQuantity = 10

	medium := testTour("Medium One", 300)
	medium.Difficulty = entity.DifficultyMedium
	medium.RatingsAverage = 4.6
	medium.RatingsQuantity = 5

	lowRated := testTour("Low Rated", 50)
	lowRated.RatingsAverage = 3.0

	for _, tour := range []*entity.Tour{easy, medium, lowRated} {
		if err := repo.Create(context.Background(), tour); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The low-rated tour is below the 4.5 cutoff, so two buckets remain,
	// cheapest first.
	if len(stats) != 2 {
		t.Fatalf("expected 2 difficulty buckets, got %d", len(stats))
	}
	if stats[0].Difficulty != string(entity.DifficultyEasy) {
		t.Errorf("expected easy bucket first, got %q", stats[0].Difficulty)
	}
	if stats[0].NumTours != 1 || stats[0].NumRatings != 10 {
		t.Errorf("unexpected easy bucket: %+v", stats[0])
	}
	if stats[1].AvgPrice != 300 {
		t.Errorf("expected medium avg price 300, got %v", stats[1].AvgPrice)
	}
}

func TestTourRepository_MonthlyPlan(t *testing.T) {
	t.Parallel()

	repo := NewTourRepository(setupTestDB(t))

	a := testTour("Tour A", 100)
	a.StartDates = []entity.StartDate{
		{StartsAt: time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC)},
		{StartsAt: time.Date(2026, time.April, 10, 9, 0, 0, 0, time.UTC)},
	}
	b := testTour("Tour B", 200)
	b.StartDates = []entity.StartDate{
		{StartsAt: time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC)},
		// Outside the requested year.
		{StartsAt: time.Date(2027, time.July, 15, 9, 0, 0, 0, time.UTC)},
	}
	for _, tour := range []*entity.Tour{a, b} {
		if err := repo.Create(context.Background(), tour); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	plan, err := repo.MonthlyPlan(context.Background(), 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("expected 2 months, got %d", len(plan))
	}
	if plan[0].Month != time.July || plan[0].TourCount != 2 {
		t.Errorf("expected July with 2 departures first, got %+v", plan[0])
	}
	if plan[1].Month != time.April || plan[1].TourCount != 1 {
		t.Errorf("expected April with 1 departure, got %+v", plan[1])
	}
}

func TestTourRepository_UpdateRatingStats(t *testing.T) {
	t.Parallel()

	repo := NewTourRepository(setupTestDB(t))
	tour := testTour("Forest Hiker", 397)
	if err := repo.Create(context.Background(), tour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.UpdateRatingStats(context.Background(), tour.ID, 4.2, 17); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(context.Background(), tour.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.RatingsAverage != 4.2 || found.RatingsQuantity != 17 {
		t.Errorf("expected 4.2/17, got %v/%v", found.RatingsAverage, found.RatingsQuantity)
	}
}
