package tmdb

import "strconv"

// Movie is the summary representation returned by the list endpoints.
// PosterPath and BackdropPath are nil when TMDB has no artwork.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
}

// Is reports whether both values describe the same movie
func (m Movie) Is(other Movie) bool {
	return m.ID == other.ID
}

// Year returns the release year, or 0 when the date is unknown
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// Genre is a TMDB movie genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is a single cast credit
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

// Credits holds the cast embedded through append_to_response=credits
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// MovieDetails is the full representation returned by /movie/{id}
type MovieDetails struct {
	Movie
	Runtime *int     `json:"runtime"`
	Tagline string   `json:"tagline"`
	Genres  []Genre  `json:"genres"`
	Credits *Credits `json:"credits,omitempty"`
}

// RuntimeMinutes returns the runtime and whether it is known
func (d *MovieDetails) RuntimeMinutes() (int, bool) {
	if d.Runtime == nil || *d.Runtime <= 0 {
		return 0, false
	}
	return *d.Runtime, true
}

// Cast returns the embedded cast, or nil when no credits were returned
func (d *MovieDetails) Cast() []CastMember {
	if d.Credits == nil {
		return nil
	}
	return d.Credits.Cast
}

// MoviePage is the paginated envelope of the list endpoints
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasMorePages checks if there are more pages to fetch
func (p *MoviePage) HasMorePages() bool {
	return p.Page < p.TotalPages
}

// genreList is the envelope of /genre/movie/list
type genreList struct {
	Genres []Genre `json:"genres"`
}

// errorBody is the error envelope TMDB sends with non-2xx responses
type errorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
