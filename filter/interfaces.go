package filter

import (
	"context"

	"github.com/s0up4200/cinesphere/tmdb"
)

// Filter decides whether a single watchlist entry is kept
type Filter interface {
	Evaluate(movie tmdb.Movie) bool
}

// CompiledFilter is a Filter that remembers the expression it came from
type CompiledFilter interface {
	Filter
	Expression() string
}

// Compiler turns an expression such as `VoteAverage >= 7` into a filter
type Compiler interface {
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator runs a filter over a list. Matches keep their input order.
type Evaluator interface {
	Evaluate(ctx context.Context, filter CompiledFilter, movies []tmdb.Movie) ([]tmdb.Movie, error)
}

// CachingCompiler is a Compiler that reuses earlier compilations
type CachingCompiler interface {
	Compiler

	// Clear drops every cached program
	Clear()

	// Size reports how many programs are cached
	Size() int
}
