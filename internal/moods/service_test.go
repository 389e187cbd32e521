package moods

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/basakrdnz/vibevault/internal/db"
	"github.com/basakrdnz/vibevault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var testDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:moods_test_%d?mode=memory&cache=shared", testDBSeq)
	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		t.Fatalf("expected open to succeed, got %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("expected migrate to succeed, got %v", errMigrate)
	}
	return conn
}

func seedEntry(t *testing.T, conn *gorm.DB, userID, movieID, mood string, intensity int, createdAt time.Time) {
	t.Helper()
	entry := models.MoodEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		MovieID:   movieID,
		Mood:      mood,
		Intensity: intensity,
		CreatedAt: createdAt,
	}
	if errCreate := conn.Create(&entry).Error; errCreate != nil {
		t.Fatalf("expected seed entry to succeed, got %v", errCreate)
	}
}

func TestAddEntry_Validation(t *testing.T) {
	conn := openTestDB(t)
	svc := NewService(conn, nil)
	ctx := context.Background()

	if _, err := svc.AddEntry(ctx, "u", "m", "Confounded", 5, ""); !errors.Is(err, ErrUnknownEmotion) {
		t.Fatalf("expected ErrUnknownEmotion, got %v", err)
	}
	if _, err := svc.AddEntry(ctx, "u", "m", "Happy", 0, ""); !errors.Is(err, ErrInvalidIntensity) {
		t.Fatalf("expected ErrInvalidIntensity for 0, got %v", err)
	}
	if _, err := svc.AddEntry(ctx, "u", "m", "Happy", 11, ""); !errors.Is(err, ErrInvalidIntensity) {
		t.Fatalf("expected ErrInvalidIntensity for 11, got %v", err)
	}

	entry, err := svc.AddEntry(ctx, "u", "m", "Happy", 8, "great")
	if err != nil {
		t.Fatalf("expected add to succeed, got %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected entry to be assigned an id")
	}
}

func TestMovieAnalytics_TopTwoWithPercentages(t *testing.T) {
	conn := openTestDB(t)
	svc := NewService(conn, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 3x Happy, 2x Sad, 1x Scared over 6 entries.
	for i := 0; i < 3; i++ {
		seedEntry(t, conn, fmt.Sprintf("u%d", i), "movie-1", "Happy", 7, now)
	}
	for i := 0; i < 2; i++ {
		seedEntry(t, conn, fmt.Sprintf("v%d", i), "movie-1", "Sad", 4, now)
	}
	seedEntry(t, conn, "w0", "movie-1", "Scared", 9, now)
	seedEntry(t, conn, "x0", "movie-2", "Amused", 5, now)

	analytics, err := svc.MovieAnalytics(context.Background(), "movie-1")
	if err != nil {
		t.Fatalf("expected analytics to succeed, got %v", err)
	}
	if analytics.TotalEntries != 6 {
		t.Fatalf("expected 6 entries, got %d", analytics.TotalEntries)
	}
	if len(analytics.TopEmotions) != 2 {
		t.Fatalf("expected top 2 emotions, got %d", len(analytics.TopEmotions))
	}
	if analytics.TopEmotions[0].Emotion != "Happy" || analytics.TopEmotions[0].Percentage != 50 {
		t.Fatalf("expected Happy at 50%%, got %+v", analytics.TopEmotions[0])
	}
	if analytics.TopEmotions[1].Emotion != "Sad" || analytics.TopEmotions[1].Percentage != 33 {
		t.Fatalf("expected Sad at 33%%, got %+v", analytics.TopEmotions[1])
	}
}

func TestMovieAnalytics_Empty(t *testing.T) {
	conn := openTestDB(t)
	svc := NewService(conn, nil)

	analytics, err := svc.MovieAnalytics(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected analytics to succeed, got %v", err)
	}
	if analytics.TotalEntries != 0 || len(analytics.TopEmotions) != 0 {
		t.Fatalf("expected empty analytics, got %+v", analytics)
	}
}

func TestUserStats(t *testing.T) {
	conn := openTestDB(t)
	svc := NewService(conn, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedEntry(t, conn, "u1", "m1", "Happy", 8, now)
	seedEntry(t, conn, "u1", "m2", "Happy", 7, now)
	seedEntry(t, conn, "u1", "m3", "Sad", 2, now)
	seedEntry(t, conn, "u2", "m1", "Angry", 10, now)

	stats, err := svc.UserStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected stats to succeed, got %v", err)
	}
	if stats.TotalEntries != 3 {
		t.Fatalf("expected 3 entries, got %d", stats.TotalEntries)
	}
	if stats.MostFrequentMood != "Happy" {
		t.Fatalf("expected most frequent Happy, got %q", stats.MostFrequentMood)
	}
	// (8+7+2)/3 = 5.67 rounds to 6.
	if stats.AverageIntensity != 6 {
		t.Fatalf("expected average intensity 6, got %d", stats.AverageIntensity)
	}
}

func TestUserDistribution_TopEightWithColors(t *testing.T) {
	conn := openTestDB(t)
	svc := NewService(conn, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	emotions := AvailableEmotions()
	// Seed counts descending so the cut at eight is deterministic.
	for i, mood := range emotions[:10] {
		for j := 0; j < 10-i; j++ {
			seedEntry(t, conn, "u1", fmt.Sprintf("m%d-%d", i, j), mood, 5, now)
		}
	}

	dist, err := svc.UserDistribution(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected distribution to succeed, got %v", err)
	}
	if len(dist.Labels) != 8 {
		t.Fatalf("expected 8 labels, got %d", len(dist.Labels))
	}
	if dist.Labels[0] != emotions[0] || dist.Data[0] != 10 {
		t.Fatalf("expected %q with count 10 first, got %q/%d", emotions[0], dist.Labels[0], dist.Data[0])
	}
	if dist.Colors[0] != ColorFor(emotions[0]) {
		t.Fatalf("expected color %q, got %q", ColorFor(emotions[0]), dist.Colors[0])
	}
}

func TestUserIntensityTrends_WeeklyBuckets(t *testing.T) {
	conn := openTestDB(t)
	svc := NewService(conn, nil)

	week1 := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)  // Day 3: bucket W1.
	week2 := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) // Day 10: bucket W2.
	seedEntry(t, conn, "u1", "m1", "Happy", 4, week1)
	seedEntry(t, conn, "u1", "m2", "Sad", 7, week1)
	seedEntry(t, conn, "u1", "m3", "Excited", 9, week2)

	trends, err := svc.UserIntensityTrends(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected trends to succeed, got %v", err)
	}
	if len(trends.Labels) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(trends.Labels))
	}
	if trends.Labels[0] != "2025-W1" || trends.Labels[1] != "2025-W2" {
		t.Fatalf("expected labels 2025-W1, 2025-W2, got %v", trends.Labels)
	}
	// (4+7)/2 = 5.5 rounds to 6; single 9 stays 9.
	if trends.Data[0] != 6 || trends.Data[1] != 9 {
		t.Fatalf("expected averages [6 9], got %v", trends.Data)
	}
}
