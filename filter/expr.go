package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cinesphere/tmdb"
)

const releaseDateLayout = "2006-01-02"

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
	now        func() time.Time
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// WithClock replaces time.Now in date helpers
func WithClock(now func() time.Time) ExprCompilerOption {
	return func(c *exprCompiler) {
		if now != nil {
			c.now = now
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helpers: make(map[string]any),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Built-ins are added last so custom functions cannot shadow them
	custom := c.helpers
	c.helpers = staticHelpers(c.now)
	for name, fn := range custom {
		if _, taken := c.helpers[name]; !taken {
			c.helpers[name] = fn
		}
	}

	return c
}

type exprCompiler struct {
	helpers map[string]any
	cache   *lruCache[CompiledFilter]
	now     func() time.Time
}

// Compile type-checks expression against the movie environment
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.environment(tmdb.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
		now:        c.now,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

func (c *exprCompiler) environment(movie tmdb.Movie) map[string]any {
	return movieEnvironment(movie, c.helpers, c.now)
}

// Evaluate reports whether movie matches. Runtime errors count as no match.
func (f *exprFilter) Evaluate(movie tmdb.Movie) bool {
	result, err := expr.Run(f.program, movieEnvironment(movie, f.helpers, f.now))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// staticHelpers are the movie-independent functions
func staticHelpers(now func() time.Time) map[string]any {
	return map[string]any{
		"now": now,
		"daysSince": func(t time.Time) int {
			return int(now().Sub(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return now().AddDate(0, 0, -days)
		},
		"monthsAgo": func(months int) time.Time {
			return now().AddDate(0, -months, 0)
		},
		"yearsAgo": func(years int) time.Time {
			return now().AddDate(-years, 0, 0)
		},
		"parseDate": func(value string) time.Time {
			t, _ := time.Parse(releaseDateLayout, value)
			return t
		},
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"istartsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"iendsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// movieEnvironment exposes movie fields and movie-bound helpers to expressions
func movieEnvironment(movie tmdb.Movie, helpers map[string]any, now func() time.Time) map[string]any {
	env := make(map[string]any, len(helpers)+12)
	maps.Copy(env, helpers)

	release, hasRelease := parseReleaseDate(movie.ReleaseDate)

	env["ID"] = movie.ID
	env["Title"] = movie.Title
	env["Overview"] = movie.Overview
	env["ReleaseDate"] = movie.ReleaseDate
	env["VoteAverage"] = movie.VoteAverage
	env["HasPoster"] = movie.PosterPath != nil && *movie.PosterPath != ""
	env["HasBackdrop"] = movie.BackdropPath != nil && *movie.BackdropPath != ""

	env["year"] = func() int {
		return movie.Year()
	}
	env["releaseTime"] = func() time.Time {
		return release
	}
	env["released"] = func() bool {
		return hasRelease && !release.After(now())
	}
	env["releasedWithin"] = func(days int) bool {
		if !hasRelease || release.After(now()) {
			return false
		}
		return !release.Before(now().AddDate(0, 0, -days))
	}

	return env
}

func parseReleaseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(releaseDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
