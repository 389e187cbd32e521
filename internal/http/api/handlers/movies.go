package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/basakrdnz/vibevault/internal/movies"
	"github.com/basakrdnz/vibevault/internal/observability"
	"github.com/basakrdnz/vibevault/internal/omdb"
)

const defaultSearchLimit = 20

// MovieHandler manages the local catalogue and OMDb proxy endpoints.
type MovieHandler struct {
	movies *movies.Service
	omdb   *omdb.Client
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(movieSvc *movies.Service, omdbClient *omdb.Client) *MovieHandler {
	return &MovieHandler{movies: movieSvc, omdb: omdbClient}
}

// List searches the local catalogue.
func (h *MovieHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing q"})
		return
	}
	limit := intQuery(c, "limit", defaultSearchLimit)

	found, errSearch := h.movies.Search(c.Request.Context(), query, limit)
	if errSearch != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": found})
}

// Create adds a movie to the local catalogue.
func (h *MovieHandler) Create(c *gin.Context) {
	var body movies.Input
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title or year"})
		return
	}

	exists, errExists := h.movies.Exists(c.Request.Context(), body.Title, body.Year)
	if errExists != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "MovieExists"})
		return
	}

	movie, errCreate := h.movies.Create(c.Request.Context(), body)
	if errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, movie)
}

// Get returns a movie by ID.
func (h *MovieHandler) Get(c *gin.Context) {
	movie, errFind := h.movies.ByID(c.Request.Context(), c.Param("id"))
	if errors.Is(errFind, movies.ErrMovieNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "MovieNotFound"})
		return
	}
	if errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, movie)
}

// Update changes a movie's fields.
func (h *MovieHandler) Update(c *gin.Context) {
	var body movies.Input
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title or year"})
		return
	}
	movie, errUpdate := h.movies.Update(c.Request.Context(), c.Param("id"), body)
	if errors.Is(errUpdate, movies.ErrMovieNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "MovieNotFound"})
		return
	}
	if errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, movie)
}

// Delete removes a movie from the catalogue.
func (h *MovieHandler) Delete(c *gin.Context) {
	errDelete := h.movies.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(errDelete, movies.ErrMovieNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "MovieNotFound"})
		return
	}
	if errDelete != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Popular returns the spotlight selection, served from the 24h cache when
// fresh.
func (h *MovieHandler) Popular(c *gin.Context) {
	spotlight, cached, errSpotlight := h.movies.Spotlight(c.Request.Context())
	if errSpotlight != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"movies": spotlight,
		"cached": cached,
	})
}

// Random returns a shuffled selection, optionally filtered by genre.
func (h *MovieHandler) Random(c *gin.Context) {
	limit := intQuery(c, "limit", 6)
	category := strings.TrimSpace(c.Query("category"))

	selection, errRandom := h.movies.Random(c.Request.Context(), limit, category)
	if errRandom != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": selection})
}

// Search proxies a title search to OMDb.
func (h *MovieHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing q"})
		return
	}
	page := intQuery(c, "page", 1)

	resp, errSearch := h.omdb.SearchMovies(c.Request.Context(), query, page)
	if errors.Is(errSearch, omdb.ErrNotFound) {
		observability.IncOMDBRequest("search", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "no results"})
		return
	}
	if errSearch != nil {
		observability.IncOMDBRequest("search", "error")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
		return
	}
	observability.IncOMDBRequest("search", "ok")
	c.JSON(http.StatusOK, resp)
}

// Details proxies an IMDb-ID lookup to OMDb.
func (h *MovieHandler) Details(c *gin.Context) {
	imdbID := strings.TrimSpace(c.Query("id"))
	if imdbID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return
	}

	details, errDetails := h.omdb.GetMovieDetails(c.Request.Context(), imdbID)
	if errors.Is(errDetails, omdb.ErrNotFound) {
		observability.IncOMDBRequest("details", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return
	}
	if errDetails != nil {
		observability.IncOMDBRequest("details", "error")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
		return
	}
	observability.IncOMDBRequest("details", "ok")
	c.JSON(http.StatusOK, details)
}

// intQuery parses a positive integer query parameter with a fallback.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback
	}
	value, errParse := strconv.Atoi(raw)
	if errParse != nil || value <= 0 {
		return fallback
	}
	return value
}
