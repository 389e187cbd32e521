package users

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basakrdnz/vibevault/internal/db"
	"github.com/basakrdnz/vibevault/internal/models"
)

var testDBSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:users_test_%d?mode=memory&cache=shared", testDBSeq)
	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		t.Fatalf("expected open to succeed, got %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("expected migrate to succeed, got %v", errMigrate)
	}
	return conn
}

func seedMovie(t *testing.T, conn *gorm.DB, title string) models.Movie {
	t.Helper()
	movie := models.Movie{ID: uuid.NewString(), Title: title, Year: "2020"}
	if errCreate := conn.Create(&movie).Error; errCreate != nil {
		t.Fatalf("expected movie seed to succeed, got %v", errCreate)
	}
	return movie
}

func intptr(v int) *int { return &v }

func boolptr(v bool) *bool { return &v }

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(openTestDB(t), nil)
	ctx := context.Background()

	user, errRegister := svc.Register(ctx, "  Alice@Example.COM ", "s3cret-pass", "Alice")
	if errRegister != nil {
		t.Fatalf("expected register to succeed, got %v", errRegister)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Password == "s3cret-pass" {
		t.Fatal("expected the stored password to be hashed")
	}

	if _, errDup := svc.Register(ctx, "alice@example.com", "other", "Alice 2"); !errors.Is(errDup, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", errDup)
	}

	authed, errAuth := svc.Authenticate(ctx, "ALICE@example.com", "s3cret-pass")
	if errAuth != nil {
		t.Fatalf("expected authenticate to succeed, got %v", errAuth)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}

	if _, errBad := svc.Authenticate(ctx, "alice@example.com", "wrong"); !errors.Is(errBad, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errBad)
	}
	if _, errBad := svc.Authenticate(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(errBad, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", errBad)
	}
}

func TestUpdateName(t *testing.T) {
	svc := NewService(openTestDB(t), nil)
	ctx := context.Background()

	user, errRegister := svc.Register(ctx, "bob@example.com", "password1", "Bob")
	if errRegister != nil {
		t.Fatalf("expected register to succeed, got %v", errRegister)
	}

	updated, errUpdate := svc.UpdateName(ctx, user.ID, "  Robert  ")
	if errUpdate != nil {
		t.Fatalf("expected update to succeed, got %v", errUpdate)
	}
	if updated.Name != "Robert" {
		t.Fatalf("expected trimmed name, got %q", updated.Name)
	}

	if _, errBlank := svc.UpdateName(ctx, user.ID, "   "); !errors.Is(errBlank, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", errBlank)
	}
	if _, errMissing := svc.UpdateName(ctx, uuid.NewString(), "Someone"); !errors.Is(errMissing, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", errMissing)
	}
}

func TestProfileStats(t *testing.T) {
	conn := openTestDB(t)
	svc := NewService(conn, nil)
	ctx := context.Background()

	user, errRegister := svc.Register(ctx, "carol@example.com", "password1", "Carol")
	if errRegister != nil {
		t.Fatalf("expected register to succeed, got %v", errRegister)
	}
	m1 := seedMovie(t, conn, "First")
	m2 := seedMovie(t, conn, "Second")

	items := []models.WatchlistItem{
		{ID: uuid.NewString(), UserID: user.ID, MovieID: m1.ID, Status: models.WatchlistStatusWatched, Rating: intptr(8)},
		{ID: uuid.NewString(), UserID: user.ID, MovieID: m2.ID, Status: models.WatchlistStatusWatching, Rating: intptr(6)},
	}
	for i := range items {
		if errCreate := conn.Create(&items[i]).Error; errCreate != nil {
			t.Fatalf("expected watchlist seed to succeed, got %v", errCreate)
		}
	}
	moodsLogged := []string{"joyful", "joyful", "tense"}
	for _, mood := range moodsLogged {
		entry := models.MoodEntry{ID: uuid.NewString(), UserID: user.ID, MovieID: m1.ID, Mood: mood, Intensity: 5}
		if errCreate := conn.Create(&entry).Error; errCreate != nil {
			t.Fatalf("expected mood seed to succeed, got %v", errCreate)
		}
	}

	profile, errProfile := svc.Profile(ctx, user.ID)
	if errProfile != nil {
		t.Fatalf("expected profile to succeed, got %v", errProfile)
	}
	if profile.Stats.TotalMovies != 2 {
		t.Fatalf("expected 2 movies, got %d", profile.Stats.TotalMovies)
	}
	if profile.Stats.TotalMoods != 3 {
		t.Fatalf("expected 3 moods, got %d", profile.Stats.TotalMoods)
	}
	if profile.Stats.AverageRating != 7 {
		t.Fatalf("expected average rating 7, got %v", profile.Stats.AverageRating)
	}
	if profile.Stats.FavoriteGenre != "joyful" {
		t.Fatalf("expected favorite mood joyful, got %q", profile.Stats.FavoriteGenre)
	}
}

func TestProfileStats_Empty(t *testing.T) {
	svc := NewService(openTestDB(t), nil)
	ctx := context.Background()

	user, errRegister := svc.Register(ctx, "dave@example.com", "password1", "Dave")
	if errRegister != nil {
		t.Fatalf("expected register to succeed, got %v", errRegister)
	}
	profile, errProfile := svc.Profile(ctx, user.ID)
	if errProfile != nil {
		t.Fatalf("expected profile to succeed, got %v", errProfile)
	}
	if profile.Stats.AverageRating != 0 {
		t.Fatalf("expected zero average rating, got %v", profile.Stats.AverageRating)
	}
	if profile.Stats.FavoriteGenre != "N/A" {
		t.Fatalf("expected N/A favorite, got %q", profile.Stats.FavoriteGenre)
	}
}

func TestSocialSettings_GetOrCreateAndUpdate(t *testing.T) {
	svc := NewService(openTestDB(t), nil)
	ctx := context.Background()

	user, errRegister := svc.Register(ctx, "erin@example.com", "password1", "Erin")
	if errRegister != nil {
		t.Fatalf("expected register to succeed, got %v", errRegister)
	}

	settings, errGet := svc.SocialSettings(ctx, user.ID)
	if errGet != nil {
		t.Fatalf("expected settings to succeed, got %v", errGet)
	}
	if settings.IsProfilePrivate || !settings.ShareViewingHistory || !settings.ShareEmotionalResponses {
		t.Fatalf("expected default settings, got %+v", settings)
	}

	again, errAgain := svc.SocialSettings(ctx, user.ID)
	if errAgain != nil {
		t.Fatalf("expected second get to succeed, got %v", errAgain)
	}
	if again.ID != settings.ID {
		t.Fatal("expected the same settings row on repeat access")
	}

	updated, errUpdate := svc.UpdateSocialSettings(ctx, user.ID, SettingsUpdate{
		IsProfilePrivate:    boolptr(true),
		ShareViewingHistory: boolptr(false),
	})
	if errUpdate != nil {
		t.Fatalf("expected update to succeed, got %v", errUpdate)
	}
	if !updated.IsProfilePrivate || updated.ShareViewingHistory {
		t.Fatalf("expected toggles applied, got %+v", updated)
	}
	if !updated.ShareEmotionalResponses {
		t.Fatal("expected untouched toggle to keep its value")
	}
}

func TestExportData(t *testing.T) {
	conn := openTestDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(conn, func() time.Time { return now })
	ctx := context.Background()

	user, errRegister := svc.Register(ctx, "frank@example.com", "password1", "Frank")
	if errRegister != nil {
		t.Fatalf("expected register to succeed, got %v", errRegister)
	}
	movie := seedMovie(t, conn, "Exported")

	item := models.WatchlistItem{ID: uuid.NewString(), UserID: user.ID, MovieID: movie.ID, Status: models.WatchlistStatusWatched, Rating: intptr(9)}
	if errCreate := conn.Create(&item).Error; errCreate != nil {
		t.Fatalf("expected watchlist seed to succeed, got %v", errCreate)
	}
	entry := models.MoodEntry{ID: uuid.NewString(), UserID: user.ID, MovieID: movie.ID, Mood: "inspired", Intensity: 7}
	if errCreate := conn.Create(&entry).Error; errCreate != nil {
		t.Fatalf("expected mood seed to succeed, got %v", errCreate)
	}
	discovery := models.MovieDiscovery{ID: uuid.NewString(), UserID: user.ID, MovieID: movie.ID, DiscoveredAt: now}
	if errCreate := conn.Create(&discovery).Error; errCreate != nil {
		t.Fatalf("expected discovery seed to succeed, got %v", errCreate)
	}

	export, errExport := svc.ExportData(ctx, user.ID)
	if errExport != nil {
		t.Fatalf("expected export to succeed, got %v", errExport)
	}
	if export.User.Email != "frank@example.com" {
		t.Fatalf("expected export email, got %q", export.User.Email)
	}
	if !export.User.ExportDate.Equal(now) {
		t.Fatalf("expected export date %v, got %v", now, export.User.ExportDate)
	}
	if len(export.Watchlist) != 1 || export.Watchlist[0].Movie.Title != "Exported" {
		t.Fatalf("expected one watchlist row with movie, got %+v", export.Watchlist)
	}
	if len(export.MoodEntries) != 1 || export.MoodEntries[0].Mood != "inspired" {
		t.Fatalf("expected one mood row, got %+v", export.MoodEntries)
	}
	if export.Summary.TotalDiscoveries != 1 || export.Summary.WatchedMovies != 1 {
		t.Fatalf("expected summary counts, got %+v", export.Summary)
	}
	if export.Summary.AverageRating != 9 {
		t.Fatalf("expected average rating 9, got %v", export.Summary.AverageRating)
	}
}

func TestDelete_RemovesEverything(t *testing.T) {
	conn := openTestDB(t)
	svc := NewService(conn, nil)
	ctx := context.Background()

	user, errRegister := svc.Register(ctx, "gina@example.com", "password1", "Gina")
	if errRegister != nil {
		t.Fatalf("expected register to succeed, got %v", errRegister)
	}
	other, errOther := svc.Register(ctx, "henry@example.com", "password1", "Henry")
	if errOther != nil {
		t.Fatalf("expected register to succeed, got %v", errOther)
	}
	movie := seedMovie(t, conn, "Doomed")

	seeds := []interface{}{
		&models.WatchlistItem{ID: uuid.NewString(), UserID: user.ID, MovieID: movie.ID, Status: models.WatchlistStatusWatched},
		&models.MoodEntry{ID: uuid.NewString(), UserID: user.ID, MovieID: movie.ID, Mood: "joyful", Intensity: 5},
		&models.MovieDiscovery{ID: uuid.NewString(), UserID: user.ID, MovieID: movie.ID, DiscoveredAt: time.Now()},
		&models.FriendRequest{ID: uuid.NewString(), SenderID: user.ID, ReceiverID: other.ID, Status: models.FriendRequestPending},
		&models.SocialSettings{ID: uuid.NewString(), UserID: user.ID},
	}
	for _, seed := range seeds {
		if errCreate := conn.Create(seed).Error; errCreate != nil {
			t.Fatalf("expected seed to succeed, got %v", errCreate)
		}
	}
	a, b := models.NormalizePair(user.ID, other.ID)
	friendship := models.Friendship{ID: uuid.NewString(), UserAID: a, UserBID: b}
	if errCreate := conn.Create(&friendship).Error; errCreate != nil {
		t.Fatalf("expected friendship seed to succeed, got %v", errCreate)
	}

	if errDelete := svc.Delete(ctx, user.ID); errDelete != nil {
		t.Fatalf("expected delete to succeed, got %v", errDelete)
	}

	if _, errGone := svc.ByID(ctx, user.ID); !errors.Is(errGone, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", errGone)
	}
	counts := map[string]int64{}
	tables := map[string]interface{}{
		"watchlist": &models.WatchlistItem{},
		"moods":     &models.MoodEntry{},
		"discovery": &models.MovieDiscovery{},
		"settings":  &models.SocialSettings{},
	}
	for name, model := range tables {
		var count int64
		if errCount := conn.Model(model).Where("user_id = ?", user.ID).Count(&count).Error; errCount != nil {
			t.Fatalf("expected count to succeed, got %v", errCount)
		}
		counts[name] = count
	}
	for name, count := range counts {
		if count != 0 {
			t.Fatalf("expected %s rows to be removed, found %d", name, count)
		}
	}
	var requests int64
	if errCount := conn.Model(&models.FriendRequest{}).Where("sender_id = ? OR receiver_id = ?", user.ID, user.ID).Count(&requests).Error; errCount != nil {
		t.Fatalf("expected count to succeed, got %v", errCount)
	}
	if requests != 0 {
		t.Fatalf("expected friend requests removed, found %d", requests)
	}
	var friendships int64
	if errCount := conn.Model(&models.Friendship{}).Where("user_a_id = ? OR user_b_id = ?", user.ID, user.ID).Count(&friendships).Error; errCount != nil {
		t.Fatalf("expected count to succeed, got %v", errCount)
	}
	if friendships != 0 {
		t.Fatalf("expected friendships removed, found %d", friendships)
	}

	if _, errOtherStill := svc.ByID(ctx, other.ID); errOtherStill != nil {
		t.Fatalf("expected other user to survive, got %v", errOtherStill)
	}
}

func TestDelete_UnknownUser(t *testing.T) {
	svc := NewService(openTestDB(t), nil)
	if errDelete := svc.Delete(context.Background(), uuid.NewString()); !errors.Is(errDelete, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", errDelete)
	}
}
