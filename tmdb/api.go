package tmdb

import (
	"context"
)

// API defines the catalog operations offered by the TMDB client
type API interface {
	// GetTrending retrieves the movies trending today
	GetTrending(ctx context.Context, page int) (*MoviePage, error)

	// GetPopular retrieves the most popular movies
	GetPopular(ctx context.Context, page int) (*MoviePage, error)

	// GetTopRated retrieves the top rated movies
	GetTopRated(ctx context.Context, page int) (*MoviePage, error)

	// GetMovieDetails retrieves a movie with its credits embedded
	GetMovieDetails(ctx context.Context, id int) (*MovieDetails, error)

	// GetSimilarMovies retrieves movies related to the given movie
	GetSimilarMovies(ctx context.Context, id int) (*MoviePage, error)

	// SearchMovies retrieves movies matching a free-text query
	SearchMovies(ctx context.Context, query string, page int) (*MoviePage, error)

	// GetGenres retrieves the movie genre list
	GetGenres(ctx context.Context) ([]Genre, error)

	// GetMoviesByGenre retrieves movies of a genre sorted by popularity
	GetMoviesByGenre(ctx context.Context, genreID, page int) (*MoviePage, error)

	// ImageURL resolves a relative image path to an absolute URL
	ImageURL(path *string, size ImageSize) string
}
