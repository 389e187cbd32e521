package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/basakrdnz/vibevault/internal/models"
	"github.com/basakrdnz/vibevault/internal/security"
)

// Business-rule rejections for account operations.
var (
	ErrEmailExists        = errors.New("users: email already registered")
	ErrInvalidCredentials = errors.New("users: invalid credentials")
	ErrUserNotFound       = errors.New("users: user not found")
	ErrNameRequired       = errors.New("users: name is required")
)

// ProfileStats summarizes a user's activity for the profile page.
type ProfileStats struct {
	TotalMovies   int64   `json:"totalMovies"`
	TotalMoods    int64   `json:"totalMoods"`
	AverageRating float64 `json:"averageRating"`
	FavoriteGenre string  `json:"favoriteGenre"`
}

// Profile bundles the account summary with its activity stats.
type Profile struct {
	User  models.PublicSummary `json:"user"`
	Stats ProfileStats         `json:"stats"`
}

// SettingsUpdate carries social settings toggles; nil means unchanged.
type SettingsUpdate struct {
	IsProfilePrivate        *bool `json:"isProfilePrivate"`
	ShareViewingHistory     *bool `json:"shareViewingHistory"`
	ShareEmotionalResponses *bool `json:"shareEmotionalResponses"`
}

// Export is the full downloadable snapshot of a user's data.
type Export struct {
	User struct {
		Name        string    `json:"name"`
		Email       string    `json:"email"`
		MemberSince time.Time `json:"memberSince"`
		ExportDate  time.Time `json:"exportDate"`
	} `json:"user"`
	Watchlist   []ExportWatchlistItem `json:"watchlist"`
	MoodEntries []ExportMoodEntry     `json:"moodEntries"`
	Discoveries []ExportDiscovery     `json:"discoveries"`
	Summary     ExportSummary         `json:"summary"`
}

// ExportMovie is the movie shape embedded in export records.
type ExportMovie struct {
	Title      string `json:"title"`
	Year       string `json:"year"`
	Genre      string `json:"genre,omitempty"`
	Director   string `json:"director,omitempty"`
	Plot       string `json:"plot,omitempty"`
	IMDbRating string `json:"imdbRating,omitempty"`
}

// ExportWatchlistItem is a watchlist entry in the export snapshot.
type ExportWatchlistItem struct {
	Movie     ExportMovie `json:"movie"`
	Status    string      `json:"status"`
	Rating    *int        `json:"rating"`
	Notes     *string     `json:"notes"`
	AddedAt   time.Time   `json:"addedAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ExportMoodEntry is a mood log entry in the export snapshot.
type ExportMoodEntry struct {
	Movie     ExportMovie `json:"movie"`
	Mood      string      `json:"mood"`
	Intensity int         `json:"intensity"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ExportDiscovery is a discovery record in the export snapshot.
type ExportDiscovery struct {
	Movie        ExportMovie `json:"movie"`
	DiscoveredAt time.Time   `json:"discoveredAt"`
}

// ExportSummary aggregates counts over the exported data.
type ExportSummary struct {
	TotalMovies      int     `json:"totalMovies"`
	TotalMoods       int     `json:"totalMoods"`
	TotalDiscoveries int     `json:"totalDiscoveries"`
	WatchedMovies    int     `json:"watchedMovies"`
	AverageRating    float64 `json:"averageRating"`
}

// Service manages user accounts, profiles, and social settings.
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

// Register creates a new account with a hashed password. The email is
// normalized to lower case and must not already be registered.
func (s *Service) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var count int64
	if errCount := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; errCount != nil {
		return nil, fmt.Errorf("users: check email: %w", errCount)
	}
	if count > 0 {
		return nil, ErrEmailExists
	}
	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		return nil, fmt.Errorf("users: hash password: %w", errHash)
	}
	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(name),
	}
	if errCreate := s.db.WithContext(ctx).Create(&user).Error; errCreate != nil {
		if isUniqueViolation(errCreate) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("users: create user: %w", errCreate)
	}
	return &user, nil
}

// Authenticate verifies an email/password pair and returns the account.
// A wrong email and a wrong password both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	errFind := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(errFind, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if errFind != nil {
		return nil, fmt.Errorf("users: find user: %w", errFind)
	}
	if !security.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ByID fetches a user by primary key.
func (s *Service) ByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	errFind := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(errFind, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if errFind != nil {
		return nil, fmt.Errorf("users: find user: %w", errFind)
	}
	return &user, nil
}

// UpdateName changes the user's display name. Whitespace is trimmed and
// the result must be non-empty.
func (s *Service) UpdateName(ctx context.Context, userID, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("name", name)
	if res.Error != nil {
		return nil, fmt.Errorf("users: update name: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.ByID(ctx, userID)
}

// Profile returns the user's public summary together with activity stats:
// watchlist size, mood count, mean of the ratings the user has set, and
// the most frequently logged emotion.
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, errUser := s.ByID(ctx, userID)
	if errUser != nil {
		return nil, errUser
	}

	var totalMovies int64
	if errCount := s.db.WithContext(ctx).Model(&models.WatchlistItem{}).Where("user_id = ?", userID).Count(&totalMovies).Error; errCount != nil {
		return nil, fmt.Errorf("users: count watchlist: %w", errCount)
	}
	var totalMoods int64
	if errCount := s.db.WithContext(ctx).Model(&models.MoodEntry{}).Where("user_id = ?", userID).Count(&totalMoods).Error; errCount != nil {
		return nil, fmt.Errorf("users: count moods: %w", errCount)
	}

	var ratings []int
	if errPluck := s.db.WithContext(ctx).Model(&models.WatchlistItem{}).
		Where("user_id = ? AND rating IS NOT NULL", userID).
		Pluck("rating", &ratings).Error; errPluck != nil {
		return nil, fmt.Errorf("users: load ratings: %w", errPluck)
	}
	average := 0.0
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		average = float64(sum) / float64(len(ratings))
	}

	favorite, errFav := s.favoriteMood(ctx, userID)
	if errFav != nil {
		return nil, errFav
	}

	return &Profile{
		User: user.Summary(),
		Stats: ProfileStats{
			TotalMovies:   totalMovies,
			TotalMoods:    totalMoods,
			AverageRating: average,
			FavoriteGenre: favorite,
		},
	}, nil
}

func (s *Service) favoriteMood(ctx context.Context, userID string) (string, error) {
	var moodsLogged []string
	if errPluck := s.db.WithContext(ctx).Model(&models.MoodEntry{}).
		Where("user_id = ?", userID).
		Pluck("mood", &moodsLogged).Error; errPluck != nil {
		return "", fmt.Errorf("users: load moods: %w", errPluck)
	}
	if len(moodsLogged) == 0 {
		return "N/A", nil
	}
	counts := make(map[string]int, len(moodsLogged))
	for _, m := range moodsLogged {
		counts[m]++
	}
	best, bestCount := "", 0
	for mood, count := range counts {
		if count > bestCount || (count == bestCount && mood < best) {
			best, bestCount = mood, count
		}
	}
	return best, nil
}

// SocialSettings returns the user's social sharing preferences, creating
// a default row on first access.
func (s *Service) SocialSettings(ctx context.Context, userID string) (*models.SocialSettings, error) {
	var settings models.SocialSettings
	errFind := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errFind == nil {
		return &settings, nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("users: find settings: %w", errFind)
	}
	settings = models.SocialSettings{
		ID:                      uuid.NewString(),
		UserID:                  userID,
		IsProfilePrivate:        false,
		ShareViewingHistory:     true,
		ShareEmotionalResponses: true,
	}
	if errCreate := s.db.WithContext(ctx).Create(&settings).Error; errCreate != nil {
		if isUniqueViolation(errCreate) {
			return s.SocialSettings(ctx, userID)
		}
		return nil, fmt.Errorf("users: create settings: %w", errCreate)
	}
	return &settings, nil
}

// UpdateSocialSettings applies the provided toggles on top of the user's
// current settings and returns the result.
func (s *Service) UpdateSocialSettings(ctx context.Context, userID string, update SettingsUpdate) (*models.SocialSettings, error) {
	settings, errLoad := s.SocialSettings(ctx, userID)
	if errLoad != nil {
		return nil, errLoad
	}
	if update.IsProfilePrivate != nil {
		settings.IsProfilePrivate = *update.IsProfilePrivate
	}
	if update.ShareViewingHistory != nil {
		settings.ShareViewingHistory = *update.ShareViewingHistory
	}
	if update.ShareEmotionalResponses != nil {
		settings.ShareEmotionalResponses = *update.ShareEmotionalResponses
	}
	if errSave := s.db.WithContext(ctx).Save(settings).Error; errSave != nil {
		return nil, fmt.Errorf("users: save settings: %w", errSave)
	}
	return settings, nil
}

// ExportData assembles the full downloadable snapshot of everything the
// user has stored: watchlist, mood entries, discoveries, and a summary.
func (s *Service) ExportData(ctx context.Context, userID string) (*Export, error) {
	user, errUser := s.ByID(ctx, userID)
	if errUser != nil {
		return nil, errUser
	}

	var items []models.WatchlistItem
	if errList := s.db.WithContext(ctx).Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; errList != nil {
		return nil, fmt.Errorf("users: load watchlist: %w", errList)
	}
	var entries []models.MoodEntry
	if errList := s.db.WithContext(ctx).Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; errList != nil {
		return nil, fmt.Errorf("users: load moods: %w", errList)
	}
	var discoveries []models.MovieDiscovery
	if errList := s.db.WithContext(ctx).Preload("Movie").
		Where("user_id = ?", userID).
		Order("discovered_at DESC").
		Find(&discoveries).Error; errList != nil {
		return nil, fmt.Errorf("users: load discoveries: %w", errList)
	}

	export := Export{}
	export.User.Name = user.Name
	export.User.Email = user.Email
	export.User.MemberSince = user.CreatedAt
	export.User.ExportDate = s.nowFn()

	watched := 0
	ratingSum, ratingCount := 0, 0
	export.Watchlist = make([]ExportWatchlistItem, 0, len(items))
	for _, item := range items {
		if item.Status == models.WatchlistStatusWatched {
			watched++
		}
		if item.Rating != nil {
			ratingSum += *item.Rating
			ratingCount++
		}
		export.Watchlist = append(export.Watchlist, ExportWatchlistItem{
			Movie:     exportMovie(item.Movie, true),
			Status:    item.Status,
			Rating:    item.Rating,
			Notes:     item.Notes,
			AddedAt:   item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	export.MoodEntries = make([]ExportMoodEntry, 0, len(entries))
	for _, entry := range entries {
		export.MoodEntries = append(export.MoodEntries, ExportMoodEntry{
			Movie:     exportMovie(entry.Movie, false),
			Mood:      entry.Mood,
			Intensity: entry.Intensity,
			Notes:     entry.Notes,
			CreatedAt: entry.CreatedAt,
		})
	}
	export.Discoveries = make([]ExportDiscovery, 0, len(discoveries))
	for _, discovery := range discoveries {
		export.Discoveries = append(export.Discoveries, ExportDiscovery{
			Movie:        exportMovie(discovery.Movie, false),
			DiscoveredAt: discovery.DiscoveredAt,
		})
	}

	export.Summary = ExportSummary{
		TotalMovies:      len(items),
		TotalMoods:       len(entries),
		TotalDiscoveries: len(discoveries),
		WatchedMovies:    watched,
	}
	if ratingCount > 0 {
		export.Summary.AverageRating = float64(ratingSum) / float64(ratingCount)
	}
	return &export, nil
}

// Delete removes the account and every row that references it in a single
// transaction.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if _, errUser := s.ByID(ctx, userID); errUser != nil {
		return errUser
	}
	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.MoodEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.MovieDiscovery{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.WatchlistItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_a_id = ? OR user_b_id = ?", userID, userID).Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.SocialSettings{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&models.User{}).Error
	})
	if errTx != nil {
		return fmt.Errorf("users: delete account: %w", errTx)
	}
	return nil
}

func exportMovie(movie *models.Movie, full bool) ExportMovie {
	if movie == nil {
		return ExportMovie{}
	}
	out := ExportMovie{Title: movie.Title, Year: movie.Year}
	if full {
		out.Genre = movie.Genre
		out.Director = movie.Director
		out.Plot = movie.Plot
		out.IMDbRating = movie.IMDbRating
	}
	return out
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
