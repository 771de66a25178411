package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)
	return client, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func strPtr(s string) *string { return &s }

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		apiKey  string
		opts    []Option
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			apiKey: "test-key",
		},
		{
			name:    "missing API key",
			apiKey:  "",
			wantErr: true,
			errMsg:  "API key is required",
		},
		{
			name:    "invalid base URL",
			apiKey:  "test-key",
			opts:    []Option{WithBaseURL("not a url")},
			wantErr: true,
			errMsg:  "invalid base URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, logger, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL, client.baseURL)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Same(t, customClient, client.httpClient)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithBaseURL("http://localhost:8080/3/"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/3", client.baseURL)
	})
}

func TestListEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		call     func(ctx context.Context, c *Client, page int) (*MoviePage, error)
		expected map[string]string
	}{
		{
			name: "trending",
			path: "/trending/movie/day",
			call: func(ctx context.Context, c *Client, page int) (*MoviePage, error) { return c.GetTrending(ctx, page) },
		},
		{
			name: "popular",
			path: "/movie/popular",
			call: func(ctx context.Context, c *Client, page int) (*MoviePage, error) { return c.GetPopular(ctx, page) },
		},
		{
			name: "top rated",
			path: "/movie/top_rated",
			call: func(ctx context.Context, c *Client, page int) (*MoviePage, error) { return c.GetTopRated(ctx, page) },
		},
		{
			name: "search",
			path: "/search/movie",
			call: func(ctx context.Context, c *Client, page int) (*MoviePage, error) {
				return c.SearchMovies(ctx, "blade runner", page)
			},
			expected: map[string]string{"query": "blade runner"},
		},
		{
			name: "discover by genre",
			path: "/discover/movie",
			call: func(ctx context.Context, c *Client, page int) (*MoviePage, error) {
				return c.GetMoviesByGenre(ctx, 878, page)
			},
			expected: map[string]string{"with_genres": "878", "sort_by": "popularity.desc"},
		},
	}

	for _, tt := range tests {
		for _, page := range []int{1, 2, 7} {
			t.Run(tt.name+"/page "+strconv.Itoa(page), func(t *testing.T) {
				calls := 0
				client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					calls++
					assert.Equal(t, tt.path, r.URL.Path)

					q := r.URL.Query()
					assert.Equal(t, strconv.Itoa(page), q.Get("page"))
					assert.Equal(t, "test-key", q.Get("api_key"))
					assert.Equal(t, "en-US", q.Get("language"))
					for key, want := range tt.expected {
						assert.Equal(t, want, q.Get(key), key)
					}

					writeJSON(t, w, map[string]any{
						"page": page,
						"results": []map[string]any{
							{"id": 3, "title": "Third", "poster_path": nil, "vote_average": 6.1},
							{"id": 1, "title": "First", "poster_path": "/first.jpg", "vote_average": 8.4},
							{"id": 2, "title": "Second", "release_date": "1982-06-25"},
						},
						"total_pages":   10,
						"total_results": 200,
					})
				})

				result, err := tt.call(context.Background(), client, page)
				require.NoError(t, err)
				assert.Equal(t, 1, calls)
				assert.Equal(t, page, result.Page)
				require.Len(t, result.Results, 3)

				// Results are returned verbatim, in server order
				assert.Equal(t, []int{3, 1, 2}, []int{result.Results[0].ID, result.Results[1].ID, result.Results[2].ID})
				assert.Nil(t, result.Results[0].PosterPath)
				require.NotNil(t, result.Results[1].PosterPath)
				assert.Equal(t, "/first.jpg", *result.Results[1].PosterPath)
				assert.Equal(t, "1982-06-25", result.Results[2].ReleaseDate)
				assert.True(t, result.HasMorePages())
			})
		}
	}
}

func TestInvalidPage(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	for _, page := range []int{0, -1} {
		_, err := client.GetPopular(context.Background(), page)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPage)
	}
	assert.Equal(t, 0, calls, "invalid pages must not reach the network")
}

func TestEmptySearchQueryForwarded(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		values, ok := r.URL.Query()["query"]
		assert.True(t, ok, "query parameter should be present")
		assert.Equal(t, []string{""}, values)
		writeJSON(t, w, map[string]any{"page": 1, "results": []any{}})
	})

	result, err := client.SearchMovies(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestEmptyResultsAreNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"page": 1, "results": []any{}, "total_pages": 0})
	})

	result, err := client.GetTrending(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotNil(t, result.Results)
	assert.Empty(t, result.Results)
	assert.False(t, result.HasMorePages())
}

func TestGetMovieDetails(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/movie/78", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		writeJSON(t, w, map[string]any{
			"id":            78,
			"title":         "Blade Runner",
			"poster_path":   "/br.jpg",
			"backdrop_path": nil,
			"overview":      "A blade runner must pursue replicants.",
			"release_date":  "1982-06-25",
			"vote_average":  7.9,
			"runtime":       117,
			"tagline":       "Man has made his match... now it's his problem.",
			"genres": []map[string]any{
				{"id": 878, "name": "Science Fiction"},
				{"id": 18, "name": "Drama"},
			},
			"credits": map[string]any{
				"cast": []map[string]any{
					{"id": 3, "name": "Harrison Ford", "character": "Rick Deckard", "profile_path": "/hf.jpg"},
					{"id": 585, "name": "Rutger Hauer", "character": "Roy Batty", "profile_path": nil},
				},
			},
		})
	})

	details, err := client.GetMovieDetails(context.Background(), 78)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "details and credits come from one round trip")

	assert.Equal(t, 78, details.ID)
	assert.Equal(t, "Blade Runner", details.Title)
	assert.Nil(t, details.BackdropPath)
	assert.Equal(t, 1982, details.Year())

	runtime, ok := details.RuntimeMinutes()
	assert.True(t, ok)
	assert.Equal(t, 117, runtime)

	assert.Equal(t, []Genre{{ID: 878, Name: "Science Fiction"}, {ID: 18, Name: "Drama"}}, details.Genres)

	cast := details.Cast()
	require.Len(t, cast, 2)
	assert.Equal(t, "Rick Deckard", cast[0].Character)
	assert.Nil(t, cast[1].ProfilePath)
}

func TestGetMovieDetailsUnknownRuntime(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": 1, "title": "Unreleased", "runtime": nil})
	})

	details, err := client.GetMovieDetails(context.Background(), 1)
	require.NoError(t, err)

	_, ok := details.RuntimeMinutes()
	assert.False(t, ok)
	assert.Nil(t, details.Cast())
}

func TestGetSimilarMovies(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550/similar", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("page"))
		writeJSON(t, w, map[string]any{
			"page":    1,
			"results": []map[string]any{{"id": 807, "title": "Se7en"}},
		})
	})

	result, err := client.GetSimilarMovies(context.Background(), 550)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "Se7en", result.Results[0].Title)
}

func TestGetGenres(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		writeJSON(t, w, map[string]any{
			"genres": []map[string]any{
				{"id": 28, "name": "Action"},
				{"id": 35, "name": "Comedy"},
			},
		})
	})

	genres, err := client.GetGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}}, genres)
}

func TestCredentialsCannotBeOverridden(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"test-key"}, q["api_key"])
		assert.Equal(t, []string{"en-US"}, q["language"])
		writeJSON(t, w, map[string]any{"page": 1, "results": []any{}})
	})

	// A query that looks like parameters is still only a query value
	_, err := client.SearchMovies(context.Background(), "x&api_key=evil&language=de", 1)
	require.NoError(t, err)
}

func TestErrorClassification(t *testing.T) {
	t.Run("401 is an authentication error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(t, w, map[string]any{
				"status_code":    7,
				"status_message": "Invalid API key: You must be granted a valid key.",
				"success":        false,
			})
		})

		_, err := client.GetPopular(context.Background(), 1)
		require.Error(t, err)

		var authErr *AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Contains(t, authErr.Message, "Invalid API key")
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.True(t, IsAuthentication(err))
		assert.False(t, IsTransport(err))

		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr), "401 must not be an APIError")

		code, ok := StatusCode(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("500 is an API error carrying the status", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("upstream exploded"))
		})

		_, err := client.GetTopRated(context.Background(), 1)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "Internal Server Error", apiErr.Message)
		assert.Equal(t, "upstream exploded", apiErr.Body)
		assert.True(t, apiErr.IsServerError())
		assert.False(t, IsAuthentication(err))
		assert.False(t, IsTransport(err))
	})

	t.Run("404 is an API error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(t, w, map[string]any{"status_code": 34, "status_message": "The resource you requested could not be found."})
		})

		_, err := client.GetMovieDetails(context.Background(), 999999)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.IsNotFound())
		assert.Equal(t, "The resource you requested could not be found.", apiErr.Message)
	})

	t.Run("connection refused is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		baseURL := server.URL
		server.Close()

		client, err := NewClient("secret-key", zerolog.Nop(), WithBaseURL(baseURL))
		require.NoError(t, err)

		_, err = client.GetPopular(context.Background(), 1)
		require.Error(t, err)
		assert.True(t, IsTransport(err))
		assert.ErrorIs(t, err, ErrNoConnection)
		assert.False(t, IsAuthentication(err))
		assert.NotContains(t, err.Error(), "secret-key")

		_, ok := StatusCode(err)
		assert.False(t, ok)
	})

	t.Run("deadline expiry is a transport error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := client.GetTrending(ctx, 1)
		require.Error(t, err)
		assert.True(t, IsTransport(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("cancelled context is a transport error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"genres": []any{}})
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.GetGenres(ctx)
		require.Error(t, err)
		assert.True(t, IsTransport(err))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("malformed body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		})

		_, err := client.GetPopular(context.Background(), 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidResponse)
		assert.False(t, IsTransport(err))
	})
}
