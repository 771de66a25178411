package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/s0up4200/cinesphere/tmdb"
)

// Manager holds named filters, typically loaded from the config file
type Manager struct {
	compiler  Compiler
	evaluator Evaluator
	filters   map[string]CompiledFilter
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator(evaluator Evaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler:  NewExprCompiler(WithCache(100)),
		evaluator: NewConcurrentEvaluator(),
		filters:   make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilters compiles every filter before registering any of them.
// Names are case-insensitive since the config loader lowercases map keys.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))
	for name, expression := range filters {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[normalizeName(name)] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filter, ok := m.filters[normalizeName(name)]
	return filter, ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ListFilters returns the registered names in sorted order
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the named filter, or compiles nameOrExpression when no
// filter has that name
func (m *Manager) Resolve(nameOrExpression string) (CompiledFilter, error) {
	if filter, ok := m.GetFilter(nameOrExpression); ok {
		return filter, nil
	}
	return m.compiler.Compile(nameOrExpression)
}

// Apply filters movies with a named filter or an ad-hoc expression
func (m *Manager) Apply(ctx context.Context, nameOrExpression string, movies []tmdb.Movie) ([]tmdb.Movie, error) {
	filter, err := m.Resolve(nameOrExpression)
	if err != nil {
		return nil, err
	}
	return m.evaluator.Evaluate(ctx, filter, movies)
}

// EvaluateFilter evaluates a single registered filter
func (m *Manager) EvaluateFilter(ctx context.Context, name string, movies []tmdb.Movie) ([]tmdb.Movie, error) {
	filter, ok := m.GetFilter(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
	return m.evaluator.Evaluate(ctx, filter, movies)
}
