package movies

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/basakrdnz/vibevault/internal/db"
	"github.com/basakrdnz/vibevault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrMovieNotFound indicates no movie exists for the given ID.
var ErrMovieNotFound = errors.New("movies: movie not found")

// spotlightSize is how many movies the landing page spotlight shows.
const spotlightSize = 3

// scanLimit caps how many rows spotlight and random selection consider.
const scanLimit = 1000

// Input carries the writable fields of a movie record.
type Input struct {
	Title      string `json:"title" binding:"required"`
	Year       string `json:"year" binding:"required"`
	Genre      string `json:"genre"`
	Director   string `json:"director"`
	Plot       string `json:"plot"`
	Poster     string `json:"poster"`
	IMDbRating string `json:"imdbRating"`
	Runtime    string `json:"runtime"`
	Language   string `json:"language"`
	Country    string `json:"country"`
}

// ShuffleFunc shuffles n elements via swap, matching rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Service manages the local movie catalogue.
type Service struct {
	db        *gorm.DB
	cache     *ListCache
	nowFn     func() time.Time
	shuffleFn ShuffleFunc
}

// NewService constructs a Service. Nil nowFn and shuffleFn default to
// time.Now and rand.Shuffle.
func NewService(conn *gorm.DB, nowFn func() time.Time, shuffleFn ShuffleFunc) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	if shuffleFn == nil {
		shuffleFn = rand.Shuffle
	}
	return &Service{
		db:        conn,
		cache:     NewListCache(conn, nowFn),
		nowFn:     nowFn,
		shuffleFn: shuffleFn,
	}
}

// Cache exposes the movie list cache for admin endpoints.
func (s *Service) Cache() *ListCache {
	return s.cache
}

// Create inserts a new movie.
func (s *Service) Create(ctx context.Context, input Input) (*models.Movie, error) {
	now := s.nowFn().UTC()
	movie := models.Movie{
		ID:         uuid.NewString(),
		Title:      input.Title,
		Year:       input.Year,
		Genre:      input.Genre,
		Director:   input.Director,
		Plot:       input.Plot,
		Poster:     input.Poster,
		IMDbRating: input.IMDbRating,
		Runtime:    input.Runtime,
		Language:   input.Language,
		Country:    input.Country,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if errCreate := s.db.WithContext(ctx).Create(&movie).Error; errCreate != nil {
		return nil, fmt.Errorf("movies: create: %w", errCreate)
	}
	return &movie, nil
}

// Search matches the query against title, director, genre and plot.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.Movie, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := db.NormalizeLikePattern(s.db, "%"+query+"%")
	where := fmt.Sprintf("%s OR %s OR %s OR %s",
		db.CaseInsensitiveLikeExpr(s.db, "title"),
		db.CaseInsensitiveLikeExpr(s.db, "director"),
		db.CaseInsensitiveLikeExpr(s.db, "genre"),
		db.CaseInsensitiveLikeExpr(s.db, "plot"),
	)
	var results []models.Movie
	if errFind := s.db.WithContext(ctx).
		Where(where, pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; errFind != nil {
		return nil, fmt.Errorf("movies: search: %w", errFind)
	}
	return results, nil
}

// ByID returns a single movie.
func (s *Service) ByID(ctx context.Context, id string) (*models.Movie, error) {
	var movie models.Movie
	if errFind := s.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("movies: load: %w", errFind)
	}
	return &movie, nil
}

// Update applies non-empty input fields to an existing movie.
func (s *Service) Update(ctx context.Context, id string, input Input) (*models.Movie, error) {
	movie, errLoad := s.ByID(ctx, id)
	if errLoad != nil {
		return nil, errLoad
	}

	updates := map[string]any{"updated_at": s.nowFn().UTC()}
	setIfPresent := func(column, value string) {
		if strings.TrimSpace(value) != "" {
			updates[column] = value
		}
	}
	setIfPresent("title", input.Title)
	setIfPresent("year", input.Year)
	setIfPresent("genre", input.Genre)
	setIfPresent("director", input.Director)
	setIfPresent("plot", input.Plot)
	setIfPresent("poster", input.Poster)
	setIfPresent("imdb_rating", input.IMDbRating)
	setIfPresent("runtime", input.Runtime)
	setIfPresent("language", input.Language)
	setIfPresent("country", input.Country)

	if errUpdate := s.db.WithContext(ctx).Model(&models.Movie{}).
		Where("id = ?", id).
		Updates(updates).Error; errUpdate != nil {
		return nil, fmt.Errorf("movies: update: %w", errUpdate)
	}
	return s.ByID(ctx, movie.ID)
}

// Delete removes a movie.
func (s *Service) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Movie{})
	if result.Error != nil {
		return fmt.Errorf("movies: delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// All lists movies newest first.
func (s *Service) All(ctx context.Context, limit, offset int) ([]models.Movie, error) {
	if limit <= 0 {
		limit = 20
	}
	var results []models.Movie
	if errFind := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; errFind != nil {
		return nil, fmt.Errorf("movies: list: %w", errFind)
	}
	return results, nil
}

// ByIDs loads the given movies, newest first.
func (s *Service) ByIDs(ctx context.Context, ids []string) ([]models.Movie, error) {
	if len(ids) == 0 {
		return []models.Movie{}, nil
	}
	var results []models.Movie
	if errFind := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&results).Error; errFind != nil {
		return nil, fmt.Errorf("movies: load by ids: %w", errFind)
	}
	return results, nil
}

// Exists reports whether a movie with the title and year is already stored.
func (s *Service) Exists(ctx context.Context, title, year string) (bool, error) {
	var count int64
	if errCount := s.db.WithContext(ctx).Model(&models.Movie{}).
		Where("title = ? AND year = ?", title, year).
		Count(&count).Error; errCount != nil {
		return false, fmt.Errorf("movies: check exists: %w", errCount)
	}
	return count > 0, nil
}

// Spotlight returns the top three spotlight movies: rated at least 7.0 or
// released within the last five years, best rating first, newer first on
// ties. Results are cached for 24h; cached reports whether the cache served
// this call.
func (s *Service) Spotlight(ctx context.Context) (movies []models.Movie, cached bool, err error) {
	cachedIDs, fresh, errCache := s.cache.Get(ctx, models.MovieListCachePopular)
	if errCache != nil {
		return nil, false, errCache
	}
	if fresh {
		fromCache, errLoad := s.ByIDs(ctx, cachedIDs)
		if errLoad != nil {
			return nil, false, errLoad
		}
		return fromCache, true, nil
	}

	all, errAll := s.All(ctx, scanLimit, 0)
	if errAll != nil {
		return nil, false, errAll
	}
	currentYear := s.nowFn().UTC().Year()

	selected := make([]models.Movie, 0, len(all))
	for _, movie := range all {
		rating := parseRating(movie.IMDbRating)
		year := parseYear(movie.Year)
		if rating >= 7.0 || year >= currentYear-5 {
			selected = append(selected, movie)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		ratingI, ratingJ := parseRating(selected[i].IMDbRating), parseRating(selected[j].IMDbRating)
		if ratingI != ratingJ {
			return ratingI > ratingJ
		}
		return parseYear(selected[i].Year) > parseYear(selected[j].Year)
	})
	if len(selected) > spotlightSize {
		selected = selected[:spotlightSize]
	}

	ids := make([]string, 0, len(selected))
	for _, movie := range selected {
		ids = append(ids, movie.ID)
	}
	if errSet := s.cache.Set(ctx, models.MovieListCachePopular, ids); errSet != nil {
		return nil, false, errSet
	}
	return selected, false, nil
}

// Random returns up to limit shuffled movies, optionally filtered to a genre
// category. When the category holds fewer than limit movies the filter is
// dropped rather than returning a short list.
func (s *Service) Random(ctx context.Context, limit int, category string) ([]models.Movie, error) {
	if limit <= 0 {
		limit = 20
	}
	all, errAll := s.All(ctx, scanLimit, 0)
	if errAll != nil {
		return nil, errAll
	}
	if len(all) == 0 {
		return []models.Movie{}, nil
	}

	filtered := all
	if category != "" && category != "all" {
		loweredCategory := strings.ToLower(category)
		filtered = make([]models.Movie, 0, len(all))
		for _, movie := range all {
			if strings.Contains(strings.ToLower(movie.Genre), loweredCategory) {
				filtered = append(filtered, movie)
			}
		}
		if len(filtered) < limit {
			filtered = all
		}
	}

	shuffled := make([]models.Movie, len(filtered))
	copy(shuffled, filtered)
	s.shuffleFn(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	return shuffled, nil
}

func parseRating(raw string) float64 {
	rating, errParse := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if errParse != nil {
		return 0
	}
	return rating
}

func parseYear(raw string) int {
	year, errParse := strconv.Atoi(strings.TrimSpace(raw))
	if errParse != nil {
		return 0
	}
	return year
}
