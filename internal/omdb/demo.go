package omdb

// demoSearchResponse returns the fixed catalogue served in demo mode.
func demoSearchResponse() *SearchResponse {
	return &SearchResponse{
		Search: []SearchResult{
			{
				Title:  "Inception",
				Year:   "2010",
				IMDbID: "tt1375666",
				Type:   "movie",
				Poster: "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_SX300.jpg",
			},
			{
				Title:  "The Matrix",
				Year:   "1999",
				IMDbID: "tt0133093",
				Type:   "movie",
				Poster: "https://m.media-amazon.com/images/M/MV5BNzQzOTk3OTAtNDQ0Zi00ZTVkLWI0MTEtMDllZjNkYzNjNTc4L2ltYWdlXkEyXkFqcGdeQXVyNjU0OTQ0OTY@._V1_SX300.jpg",
			},
			{
				Title:  "Interstellar",
				Year:   "2014",
				IMDbID: "tt0816692",
				Type:   "movie",
				Poster: "https://m.media-amazon.com/images/M/MV5BZjdkOTU3MDktN2IxOS00OGEyLWFmMjktY2FiMmZkNWIyODZiXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg",
			},
		},
		TotalResults: "3",
		Response:     "True",
	}
}

// demoDetails holds the full demo records keyed by IMDb ID.
var demoDetails = map[string]Details{
	"tt1375666": {
		Title:      "Inception",
		Year:       "2010",
		IMDbID:     "tt1375666",
		Type:       "movie",
		Poster:     "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_SX300.jpg",
		Rated:      "PG-13",
		Released:   "16 Jul 2010",
		Runtime:    "148 min",
		Genre:      "Action, Sci-Fi, Thriller",
		Director:   "Christopher Nolan",
		Writer:     "Christopher Nolan",
		Actors:     "Leonardo DiCaprio, Marion Cotillard, Tom Hardy",
		Plot:       "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
		Language:   "English, Japanese, French",
		Country:    "United States, United Kingdom",
		Awards:     "Won 4 Oscars. 157 wins & 220 nominations total",
		IMDbRating: "8.8",
		Response:   "True",
	},
	"tt0133093": {
		Title:      "The Matrix",
		Year:       "1999",
		IMDbID:     "tt0133093",
		Type:       "movie",
		Poster:     "https://m.media-amazon.com/images/M/MV5BNzQzOTk3OTAtNDQ0Zi00ZTVkLWI0MTEtMDllZjNkYzNjNTc4L2ltYWdlXkEyXkFqcGdeQXVyNjU0OTQ0OTY@._V1_SX300.jpg",
		Rated:      "R",
		Released:   "31 Mar 1999",
		Runtime:    "136 min",
		Genre:      "Action, Sci-Fi",
		Director:   "Lana Wachowski, Lilly Wachowski",
		Writer:     "Lilly Wachowski, Lana Wachowski",
		Actors:     "Keanu Reeves, Laurence Fishburne, Carrie-Anne Moss",
		Plot:       "When a beautiful stranger leads computer hacker Neo to a forbidding underworld, he discovers the shocking truth--the life he knows is the elaborate deception of an evil cyber-intelligence.",
		Language:   "English",
		Country:    "United States, Australia",
		Awards:     "Won 4 Oscars. 42 wins & 52 nominations total",
		IMDbRating: "8.7",
		Response:   "True",
	},
	"tt0816692": {
		Title:      "Interstellar",
		Year:       "2014",
		IMDbID:     "tt0816692",
		Type:       "movie",
		Poster:     "https://m.media-amazon.com/images/M/MV5BZjdkOTU3MDktN2IxOS00OGEyLWFmMjktY2FiMmZkNWIyODZiXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg",
		Rated:      "PG-13",
		Released:   "07 Nov 2014",
		Runtime:    "169 min",
		Genre:      "Adventure, Drama, Sci-Fi",
		Director:   "Christopher Nolan",
		Writer:     "Jonathan Nolan, Christopher Nolan",
		Actors:     "Matthew McConaughey, Anne Hathaway, Jessica Chastain",
		Plot:       "When Earth becomes uninhabitable in the future, a farmer and ex-NASA pilot, Joseph Cooper, is tasked to pilot a spacecraft, along with a team of researchers, to find a new planet for humans.",
		Language:   "English",
		Country:    "United States, United Kingdom, Canada",
		Awards:     "Won 1 Oscar. 44 wins & 148 nominations total",
		IMDbRating: "8.6",
		Response:   "True",
	},
}
