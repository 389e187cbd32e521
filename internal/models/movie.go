package models

import "time"

// Movie represents a movie record in the local catalogue.
type Movie struct {
	ID string `gorm:"type:text;primaryKey"` // UUID primary key.

	Title string `gorm:"type:text;not null;index:idx_movies_title_year"` // Movie title.
	Year  string `gorm:"type:text;not null;index:idx_movies_title_year"` // Release year.

	Genre      string `gorm:"type:text"` // Comma-separated genre list.
	Director   string `gorm:"type:text"` // Director name(s).
	Plot       string `gorm:"type:text"` // Plot synopsis.
	Poster     string `gorm:"type:text"` // Poster image URL.
	IMDbRating string `gorm:"column:imdb_rating;type:text"` // IMDb rating as reported upstream.
	Runtime    string `gorm:"type:text"` // Runtime, e.g. "148 min".
	Language   string `gorm:"type:text"` // Spoken language(s).
	Country    string `gorm:"type:text"` // Production country/countries.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`       // Last update timestamp.
}
