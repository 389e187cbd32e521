package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

// demoAPIKey switches the client to the built-in offline catalogue.
const demoAPIKey = "demo"

// ErrNotFound indicates OMDb reported no match for the query.
var ErrNotFound = errors.New("omdb: not found")

// SearchResult is one row of an OMDb search response.
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchResponse is the OMDb search envelope.
type SearchResponse struct {
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error,omitempty"`
}

// Details is the full OMDb record for one title.
type Details struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	IMDbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Poster     string `json:"Poster"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Awards     string `json:"Awards"`
	IMDbRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

// Client queries OMDb for movie metadata. With the "demo" API key it serves
// a small fixed catalogue without touching the network, so the app works out
// of the box without credentials.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client. Empty baseURL falls back to the public API.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: baseURL, httpClient: httpClient}
}

// DemoMode reports whether the client serves the built-in catalogue.
func (c *Client) DemoMode() bool {
	return c.apiKey == demoAPIKey
}

// SearchMovies searches OMDb by title, movies only.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*SearchResponse, error) {
	if c.DemoMode() {
		return demoSearchResponse(), nil
	}
	if c.apiKey == "" {
		return nil, errors.New("omdb: api key not configured")
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("type", "movie")

	var result SearchResponse
	if errGet := c.getJSON(ctx, params, &result); errGet != nil {
		return nil, errGet
	}
	if result.Response == "False" {
		return nil, ErrNotFound
	}
	return &result, nil
}

// GetMovieDetails fetches the full record for an IMDb ID.
func (c *Client) GetMovieDetails(ctx context.Context, imdbID string) (*Details, error) {
	if c.DemoMode() {
		details, ok := demoDetails[imdbID]
		if !ok {
			return nil, ErrNotFound
		}
		copied := details
		return &copied, nil
	}
	if c.apiKey == "" {
		return nil, errors.New("omdb: api key not configured")
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var result Details
	if errGet := c.getJSON(ctx, params, &result); errGet != nil {
		return nil, errGet
	}
	if result.Response == "False" {
		return nil, ErrNotFound
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, params url.Values, out any) error {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if errReq != nil {
		return fmt.Errorf("omdb: build request: %w", errReq)
	}
	resp, errDo := c.httpClient.Do(req)
	if errDo != nil {
		return fmt.Errorf("omdb: request: %w", errDo)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("omdb: unexpected status %d", resp.StatusCode)
	}
	if errDecode := json.NewDecoder(resp.Body).Decode(out); errDecode != nil {
		return fmt.Errorf("omdb: decode response: %w", errDecode)
	}
	return nil
}
