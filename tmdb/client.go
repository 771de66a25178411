package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage is the locale sent with every request
	DefaultLanguage = "en-US"
)

// Client represents a TMDB API client
type Client struct {
	baseURL        string
	imageBaseURL   string
	placeholderURL string
	apiKey         string
	httpClient     *http.Client
	logger         zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new TMDB client. No request is made until the first
// operation is called.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: tmdb API key is required", ErrInvalidConfig)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if _, err := url.ParseRequestURI(options.baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL %q: %v", ErrInvalidConfig, options.baseURL, err)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:        strings.TrimRight(options.baseURL, "/"),
		imageBaseURL:   strings.TrimRight(options.imageBaseURL, "/"),
		placeholderURL: options.placeholderURL,
		apiKey:         apiKey,
		httpClient:     httpClient,
		logger:         logger,
	}, nil
}

// doRequest performs a single authenticated GET and decodes the JSON body into out
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, out any) error {
	query := url.Values{}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	// Credentials and locale go last so callers cannot override them
	query.Set("api_key", c.apiKey)
	query.Set("language", DefaultLanguage)

	requestURL := c.baseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = redact(err, c.apiKey)
		c.logger.Debug().
			Str("endpoint", endpoint).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("TMDB request failed")
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("page", params.Get("page")).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("TMDB request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(endpoint, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, endpoint, err)
	}

	return nil
}

// classifyStatus turns a non-2xx response into AuthenticationError or APIError
func classifyStatus(endpoint string, statusCode int, body []byte) error {
	message := http.StatusText(statusCode)
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.StatusMessage != "" {
		message = envelope.StatusMessage
	}

	if statusCode == http.StatusUnauthorized {
		return &AuthenticationError{Endpoint: endpoint, Message: message}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Body:       string(body),
	}
}

// redact strips the API key from transport errors, which embed the request URL
func redact(err error, apiKey string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, apiKey, "REDACTED")
	}
	return err
}

// getPage fetches one page of a list endpoint
func (c *Client) getPage(ctx context.Context, endpoint string, page int, params url.Values) (*MoviePage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("page", strconv.Itoa(page))

	var result MoviePage
	if err := c.doRequest(ctx, endpoint, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTrending retrieves the movies trending today
func (c *Client) GetTrending(ctx context.Context, page int) (*MoviePage, error) {
	return c.getPage(ctx, "/trending/movie/day", page, nil)
}

// GetPopular retrieves the most popular movies
func (c *Client) GetPopular(ctx context.Context, page int) (*MoviePage, error) {
	return c.getPage(ctx, "/movie/popular", page, nil)
}

// GetTopRated retrieves the top rated movies
func (c *Client) GetTopRated(ctx context.Context, page int) (*MoviePage, error) {
	return c.getPage(ctx, "/movie/top_rated", page, nil)
}

// GetMovieDetails retrieves a movie with credits in a single round trip
func (c *Client) GetMovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var details MovieDetails
	if err := c.doRequest(ctx, fmt.Sprintf("/movie/%d", id), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GetSimilarMovies retrieves movies related to the given movie
func (c *Client) GetSimilarMovies(ctx context.Context, id int) (*MoviePage, error) {
	var result MoviePage
	if err := c.doRequest(ctx, fmt.Sprintf("/movie/%d/similar", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchMovies retrieves movies matching query. An empty query is sent as-is.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.getPage(ctx, "/search/movie", page, params)
}

// GetGenres retrieves the movie genre list
func (c *Client) GetGenres(ctx context.Context) ([]Genre, error) {
	var result genreList
	if err := c.doRequest(ctx, "/genre/movie/list", nil, &result); err != nil {
		return nil, err
	}
	return result.Genres, nil
}

// GetMoviesByGenre retrieves movies of a genre, most popular first
func (c *Client) GetMoviesByGenre(ctx context.Context, genreID, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	return c.getPage(ctx, "/discover/movie", page, params)
}
