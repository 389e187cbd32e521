package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/basakrdnz/vibevault/internal/config"
	"github.com/basakrdnz/vibevault/internal/db"
	"github.com/basakrdnz/vibevault/internal/models"
	"github.com/basakrdnz/vibevault/internal/security"
)

// seedUserEmail is the demo account created by the seeder.
const seedUserEmail = "test@example.com"

var seedMovies = []models.Movie{
	{
		Title: "Inception", Year: "2010", Genre: "Action, Sci-Fi, Thriller",
		Director:   "Christopher Nolan",
		Plot:       "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_SX300.jpg",
		IMDbRating: "8.8", Runtime: "148 min", Language: "English", Country: "United States",
	},
	{
		Title: "The Matrix", Year: "1999", Genre: "Action, Sci-Fi",
		Director:   "Lana Wachowski, Lilly Wachowski",
		Plot:       "When a beautiful stranger leads computer hacker Neo to a forbidding underworld, he discovers the shocking truth--the life he knows is the elaborate deception of an evil cyber-intelligence.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BNzQzOTk3OTAtNDQ0Zi00ZTVkLWI0MTEtMDllZjNkYzNjNTc4L2ltYWdlXkEyXkFqcGdeQXVyNjU0OTQ0OTY@._V1_SX300.jpg",
		IMDbRating: "8.7", Runtime: "136 min", Language: "English", Country: "United States",
	},
	{
		Title: "Interstellar", Year: "2014", Genre: "Adventure, Drama, Sci-Fi",
		Director:   "Christopher Nolan",
		Plot:       "When Earth becomes uninhabitable in the future, a farmer and ex-NASA pilot, Joseph Cooper, is tasked to pilot a spacecraft, along with a team of researchers, to find a new planet for humans.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BZjdkOTU3MDktN2IxOS00OGEyLWFmMjktY2FiMmZkNWIyODZiXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg",
		IMDbRating: "8.6", Runtime: "169 min", Language: "English", Country: "United States",
	},
	{
		Title: "The Dark Knight", Year: "2008", Genre: "Action, Crime, Drama",
		Director:   "Christopher Nolan",
		Plot:       "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_SX300.jpg",
		IMDbRating: "9.0", Runtime: "152 min", Language: "English", Country: "United States",
	},
	{
		Title: "Pulp Fiction", Year: "1994", Genre: "Crime, Drama",
		Director:   "Quentin Tarantino",
		Plot:       "The lives of two mob hitmen, a boxer, a gangster and his wife, and a pair of diner bandits intertwine in four tales of violence and redemption.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BNGNhMDIzZTUtNTBlZi00MTRlLWFjM2ItYzViMjE3YzI5MjljXkEyXkFqcGdeQXVyNzkwMjQ5NzM@._V1_SX300.jpg",
		IMDbRating: "8.9", Runtime: "154 min", Language: "English", Country: "United States",
	},
	{
		Title: "Forrest Gump", Year: "1994", Genre: "Drama, Romance",
		Director:   "Robert Zemeckis",
		Plot:       "The presidencies of Kennedy and Johnson, the Vietnam War, the Watergate scandal and other historical events unfold from the perspective of an Alabama man with an IQ of 75.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BNWIwODRlZTUtY2U3ZS00Yzg1LWJhNzYtMmZiYmEyNmU1NjMzXkEyXkFqcGdeQXVyMTQxNzMzNDI@._V1_SX300.jpg",
		IMDbRating: "8.8", Runtime: "142 min", Language: "English", Country: "United States",
	},
	{
		Title: "The Shawshank Redemption", Year: "1994", Genre: "Drama",
		Director:   "Frank Darabont",
		Plot:       "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BMDFkYTc0MGEtZmNhMC00ZDIzLWFmNTEtODM1ZmRlYWMwMWFmXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg",
		IMDbRating: "9.3", Runtime: "142 min", Language: "English", Country: "United States",
	},
	{
		Title: "The Godfather", Year: "1972", Genre: "Crime, Drama",
		Director:   "Francis Ford Coppola",
		Plot:       "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BM2MyNjYxNmUtYTAwNi00MTYxLWJmNWYtYzZlODY3ZTk3OTFlXkEyXkFqcGdeQXVyNzkwMjQ5NzM@._V1_SX300.jpg",
		IMDbRating: "9.2", Runtime: "175 min", Language: "English", Country: "United States",
	},
	{
		Title: "Parasite", Year: "2019", Genre: "Comedy, Drama, Thriller",
		Director:   "Bong Joon Ho",
		Plot:       "A poor family, the Kims, con their way into becoming the servants of a rich family, the Parks. But their easy life gets complicated when their deception is threatened with exposure.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BYWZjMjk3ZTItODQ2ZC00NTY5LWE0ZDYtZTI3MjcwN2Q5NTVkXkEyXkFqcGdeQXVyODk4OTc3MTY@._V1_SX300.jpg",
		IMDbRating: "8.5", Runtime: "132 min", Language: "Korean", Country: "South Korea",
	},
	{
		Title: "Dune", Year: "2021", Genre: "Action, Adventure, Drama",
		Director:   "Denis Villeneuve",
		Plot:       "Paul Atreides, a brilliant and gifted young man born into a great destiny beyond his understanding, must travel to the most dangerous planet in the universe to ensure the future of his family and his people.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BN2FjNmEyNWMtYzM0ZS00NjIyLTg5YzYtYThlMGVjNzE1OGViXkEyXkFqcGdeQXVyMTkxNjUyNQ@@._V1_SX300.jpg",
		IMDbRating: "8.0", Runtime: "155 min", Language: "English", Country: "United States",
	},
	{
		Title: "Whiplash", Year: "2014", Genre: "Drama, Music",
		Director:   "Damien Chazelle",
		Plot:       "A young and ambitious drummer pursues greatness at a cutthroat music conservatory.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BOTA5NDZlZGUtMjAxOS00YTRkLTkwYmMtYWQ0NWEwZDZiNjEzXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg",
		IMDbRating: "8.5", Runtime: "106 min", Language: "English", Country: "United States",
	},
	{
		Title: "La La Land", Year: "2016", Genre: "Comedy, Drama, Music",
		Director:   "Damien Chazelle",
		Plot:       "While navigating their careers in Los Angeles, a pianist and an actress fall in love while attempting to reconcile their aspirations for the future.",
		Poster:     "https://m.media-amazon.com/images/M/MV5BMzUzNDM2NzM2MV5BMl5BanBnXkFtZTgwNTM3NTg4OTE@._V1_SX300.jpg",
		IMDbRating: "8.0", Runtime: "128 min", Language: "English", Country: "United States",
	},
}

// seedMoods are sample entries logged for the first seeded movies.
var seedMoods = []struct {
	movieIndex int
	mood       string
	intensity  int
}{
	{0, "Excited", 9}, {0, "Excited", 8}, {0, "Happy", 7}, {0, "Inspired", 8},
	{1, "Scared", 8}, {1, "Excited", 9}, {1, "Curious", 7},
	{2, "Nostalgic", 8}, {2, "Sad", 7}, {2, "Melancholic", 8},
}

// Seed loads the sample movie catalogue, a demo account, and sample mood
// entries. Running it twice is safe.
func Seed(ctx context.Context, cfg config.AppConfig) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, err := config.LoadDatabaseDSN(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	return SeedWithConn(ctx, conn)
}

// SeedWithConn seeds sample data into an already opened database.
func SeedWithConn(ctx context.Context, conn *gorm.DB) error {
	user, errUser := seedDemoUser(ctx, conn)
	if errUser != nil {
		return errUser
	}
	movieIDs, errMovies := seedSampleMovies(ctx, conn)
	if errMovies != nil {
		return errMovies
	}
	return seedSampleMoods(ctx, conn, user.ID, movieIDs)
}

func seedDemoUser(ctx context.Context, conn *gorm.DB) (*models.User, error) {
	var user models.User
	errFind := conn.WithContext(ctx).Where("email = ?", seedUserEmail).First(&user).Error
	if errFind == nil {
		log.Infof("seed: user %s already exists", seedUserEmail)
		return &user, nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("app: find seed user: %w", errFind)
	}

	hash, errHash := security.HashPassword("password123")
	if errHash != nil {
		return nil, fmt.Errorf("app: hash seed password: %w", errHash)
	}
	user = models.User{
		ID:       uuid.NewString(),
		Email:    seedUserEmail,
		Password: hash,
		Name:     "Test User",
	}
	if errCreate := conn.WithContext(ctx).Create(&user).Error; errCreate != nil {
		return nil, fmt.Errorf("app: create seed user: %w", errCreate)
	}
	log.Infof("seed: created user %s", seedUserEmail)
	return &user, nil
}

func seedSampleMovies(ctx context.Context, conn *gorm.DB) ([]string, error) {
	ids := make([]string, 0, len(seedMovies))
	created := 0
	for _, movie := range seedMovies {
		var existing models.Movie
		errFind := conn.WithContext(ctx).
			Where("title = ? AND year = ?", movie.Title, movie.Year).
			First(&existing).Error
		if errFind == nil {
			ids = append(ids, existing.ID)
			continue
		}
		if !errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("app: find seed movie: %w", errFind)
		}
		movie.ID = uuid.NewString()
		if errCreate := conn.WithContext(ctx).Create(&movie).Error; errCreate != nil {
			return nil, fmt.Errorf("app: create seed movie: %w", errCreate)
		}
		ids = append(ids, movie.ID)
		created++
	}
	log.Infof("seed: %d movies created, %d already present", created, len(seedMovies)-created)
	return ids, nil
}

func seedSampleMoods(ctx context.Context, conn *gorm.DB, userID string, movieIDs []string) error {
	var count int64
	if errCount := conn.WithContext(ctx).Model(&models.MoodEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error; errCount != nil {
		return fmt.Errorf("app: count seed moods: %w", errCount)
	}
	if count > 0 {
		log.Info("seed: mood entries already present")
		return nil
	}

	for _, sample := range seedMoods {
		if sample.movieIndex >= len(movieIDs) {
			continue
		}
		entry := models.MoodEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			MovieID:   movieIDs[sample.movieIndex],
			Mood:      sample.mood,
			Intensity: sample.intensity,
			Notes:     "Sample mood entry for testing",
		}
		if errCreate := conn.WithContext(ctx).Create(&entry).Error; errCreate != nil {
			return fmt.Errorf("app: create seed mood: %w", errCreate)
		}
	}
	log.Infof("seed: %d mood entries created", len(seedMoods))
	return nil
}
