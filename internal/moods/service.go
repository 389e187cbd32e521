package moods

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/basakrdnz/vibevault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Validation failures for new mood entries.
var (
	ErrUnknownEmotion   = errors.New("moods: unknown emotion")
	ErrInvalidIntensity = errors.New("moods: intensity out of range")
)

// EmotionShare holds an emotion's occurrence count and percentage of total.
type EmotionShare struct {
	Emotion    string `json:"emotion"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// MovieAnalytics aggregates mood entries for a single movie.
type MovieAnalytics struct {
	MovieID      string         `json:"movieId"`
	TotalEntries int            `json:"totalEntries"`
	TopEmotions  []EmotionShare `json:"topEmotions"`
}

// UserStats summarizes a user's mood history for the dashboard.
type UserStats struct {
	TotalEntries     int    `json:"totalEntries"`
	MostFrequentMood string `json:"mostFrequentMood"`
	AverageIntensity int    `json:"averageIntensity"`
}

// Distribution holds chart-ready mood counts.
type Distribution struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
	Colors []string `json:"colors"`
}

// IntensityTrends holds per-week average intensities.
type IntensityTrends struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// Service aggregates mood entries into analytics views.
type Service struct {
	db    *gorm.DB
	nowFn func() time.Time
}

// NewService constructs a Service. A nil nowFn defaults to time.Now.
func NewService(db *gorm.DB, nowFn func() time.Time) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Service{db: db, nowFn: nowFn}
}

// AddEntry records an emotional reaction for a movie.
func (s *Service) AddEntry(ctx context.Context, userID, movieID, mood string, intensity int, notes string) (*models.MoodEntry, error) {
	if !IsKnownEmotion(mood) {
		return nil, ErrUnknownEmotion
	}
	if intensity < 1 || intensity > 10 {
		return nil, ErrInvalidIntensity
	}
	entry := models.MoodEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		MovieID:   movieID,
		Mood:      mood,
		Intensity: intensity,
		Notes:     notes,
		CreatedAt: s.nowFn().UTC(),
	}
	if errCreate := s.db.WithContext(ctx).Create(&entry).Error; errCreate != nil {
		return nil, fmt.Errorf("moods: create entry: %w", errCreate)
	}
	return &entry, nil
}

// MovieAnalytics returns the two most-logged emotions for a movie with their
// percentage share of all entries.
func (s *Service) MovieAnalytics(ctx context.Context, movieID string) (*MovieAnalytics, error) {
	var moodsLogged []string
	if errFind := s.db.WithContext(ctx).Model(&models.MoodEntry{}).
		Where("movie_id = ?", movieID).
		Pluck("mood", &moodsLogged).Error; errFind != nil {
		return nil, fmt.Errorf("moods: load movie entries: %w", errFind)
	}

	analytics := &MovieAnalytics{MovieID: movieID, TopEmotions: []EmotionShare{}}
	if len(moodsLogged) == 0 {
		return analytics, nil
	}

	counts := countMoods(moodsLogged)
	total := len(moodsLogged)
	shares := make([]EmotionShare, 0, len(counts))
	for mood, count := range counts {
		shares = append(shares, EmotionShare{
			Emotion:    mood,
			Count:      count,
			Percentage: int(math.Round(float64(count) / float64(total) * 100)),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Percentage != shares[j].Percentage {
			return shares[i].Percentage > shares[j].Percentage
		}
		return shares[i].Emotion < shares[j].Emotion
	})
	if len(shares) > 2 {
		shares = shares[:2]
	}

	analytics.TotalEntries = total
	analytics.TopEmotions = shares
	return analytics, nil
}

// UserEntries returns a user's mood entries, newest first, optionally
// filtered to one movie. Movies are preloaded for display.
func (s *Service) UserEntries(ctx context.Context, userID, movieID string) ([]models.MoodEntry, error) {
	query := s.db.WithContext(ctx).Preload("Movie").Where("user_id = ?", userID)
	if movieID != "" {
		query = query.Where("movie_id = ?", movieID)
	}
	var entries []models.MoodEntry
	if errFind := query.Order("created_at DESC").Find(&entries).Error; errFind != nil {
		return nil, fmt.Errorf("moods: load user entries: %w", errFind)
	}
	return entries, nil
}

// UserStats returns dashboard statistics over a user's mood history.
func (s *Service) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	var entries []models.MoodEntry
	if errFind := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&entries).Error; errFind != nil {
		return nil, fmt.Errorf("moods: load user entries: %w", errFind)
	}

	stats := &UserStats{}
	if len(entries) == 0 {
		return stats, nil
	}

	counts := make(map[string]int, len(entries))
	totalIntensity := 0
	for _, entry := range entries {
		counts[entry.Mood]++
		totalIntensity += entry.Intensity
	}

	best := ""
	bestCount := 0
	for mood, count := range counts {
		if count > bestCount || (count == bestCount && mood < best) {
			best = mood
			bestCount = count
		}
	}

	stats.TotalEntries = len(entries)
	stats.MostFrequentMood = best
	stats.AverageIntensity = int(math.Round(float64(totalIntensity) / float64(len(entries))))
	return stats, nil
}

// UserDistribution returns the user's top eight moods with chart colors.
func (s *Service) UserDistribution(ctx context.Context, userID string) (*Distribution, error) {
	var moodsLogged []string
	if errFind := s.db.WithContext(ctx).Model(&models.MoodEntry{}).
		Where("user_id = ?", userID).
		Pluck("mood", &moodsLogged).Error; errFind != nil {
		return nil, fmt.Errorf("moods: load user entries: %w", errFind)
	}

	dist := &Distribution{Labels: []string{}, Data: []int{}, Colors: []string{}}
	if len(moodsLogged) == 0 {
		return dist, nil
	}

	counts := countMoods(moodsLogged)
	type moodCount struct {
		mood  string
		count int
	}
	sorted := make([]moodCount, 0, len(counts))
	for mood, count := range counts {
		sorted = append(sorted, moodCount{mood: mood, count: count})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].mood < sorted[j].mood
	})
	if len(sorted) > 8 {
		sorted = sorted[:8]
	}

	for _, item := range sorted {
		dist.Labels = append(dist.Labels, item.mood)
		dist.Data = append(dist.Data, item.count)
		dist.Colors = append(dist.Colors, ColorFor(item.mood))
	}
	return dist, nil
}

// UserIntensityTrends returns average intensity per week bucket, oldest
// bucket first. Buckets are keyed "<year>-W<n>" where n is the week of the
// month the entry falls in.
func (s *Service) UserIntensityTrends(ctx context.Context, userID string) (*IntensityTrends, error) {
	var entries []models.MoodEntry
	if errFind := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error; errFind != nil {
		return nil, fmt.Errorf("moods: load user entries: %w", errFind)
	}

	trends := &IntensityTrends{Labels: []string{}, Data: []int{}}
	if len(entries) == 0 {
		return trends, nil
	}

	weekly := make(map[string][]int)
	for _, entry := range entries {
		created := entry.CreatedAt.UTC()
		weekKey := fmt.Sprintf("%d-W%d", created.Year(), (created.Day()+6)/7)
		weekly[weekKey] = append(weekly[weekKey], entry.Intensity)
	}

	labels := make([]string, 0, len(weekly))
	for week := range weekly {
		labels = append(labels, week)
	}
	sort.Strings(labels)

	for _, week := range labels {
		intensities := weekly[week]
		sum := 0
		for _, intensity := range intensities {
			sum += intensity
		}
		trends.Labels = append(trends.Labels, week)
		trends.Data = append(trends.Data, int(math.Round(float64(sum)/float64(len(intensities)))))
	}
	return trends, nil
}

func countMoods(moodsLogged []string) map[string]int {
	counts := make(map[string]int, len(moodsLogged))
	for _, mood := range moodsLogged {
		counts[mood]++
	}
	return counts
}
