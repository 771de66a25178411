package insight

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// mockGenerator records calls and answers with a canned response
type mockGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	panicMsg string
	block    bool

	calls   int
	model   string
	prompt  string
	configs []*genai.GenerateContentConfig
}

func (m *mockGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.model = model
	m.configs = append(m.configs, config)
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		m.prompt = contents[0].Parts[0].Text
	}
	m.mu.Unlock()

	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return textResponse(m.text), nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(text, genai.RoleModel)},
		},
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", zerolog.Nop())
	require.Error(t, err)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(context.Background(), "test-key", zerolog.Nop(), WithModel("gemini-test"))
	require.NoError(t, err)
	assert.True(t, client.Enabled())
	assert.Equal(t, "gemini-test", client.options.model)
}

func TestInsight(t *testing.T) {
	gen := &mockGenerator{text: "  A taut thriller. You will not blink.\n"}
	client := NewClientWithGenerator(gen, zerolog.Nop())

	got := client.Insight(context.Background(), "Heat", "A cop chases a thief.")

	assert.Equal(t, "A taut thriller. You will not blink.", got)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, DefaultModel, gen.model)
	assert.Contains(t, gen.prompt, `"Heat"`)
	assert.Contains(t, gen.prompt, `"A cop chases a thief."`)
	assert.Contains(t, gen.prompt, "2-sentence")

	require.Len(t, gen.configs, 1)
	require.NotNil(t, gen.configs[0].Temperature)
	assert.InDelta(t, 0.7, *gen.configs[0].Temperature, 0.0001)
}

func TestInsightFallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  *mockGenerator
	}{
		{name: "generator error", gen: &mockGenerator{err: errors.New("401 API key not valid")}},
		{name: "empty text", gen: &mockGenerator{text: ""}},
		{name: "whitespace only", gen: &mockGenerator{text: " \n\t "}},
		{name: "panic", gen: &mockGenerator{panicMsg: "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClientWithGenerator(tt.gen, zerolog.Nop())
			got := client.Insight(context.Background(), "Heat", "")
			assert.Equal(t, FallbackInsight, got)
		})
	}
}

func TestInsightTimeout(t *testing.T) {
	gen := &mockGenerator{block: true}
	client := NewClientWithGenerator(gen, zerolog.Nop(), WithTimeout(20*time.Millisecond))

	start := time.Now()
	got := client.Insight(context.Background(), "Heat", "")

	assert.Equal(t, FallbackInsight, got)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestInsightNilResponse(t *testing.T) {
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}

func TestInsightSkipsThoughtParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: "Visible "},
				{Text: "verdict."},
			}},
		}},
	}
	assert.Equal(t, "Visible verdict.", responseText(resp))
}

func TestCustomFallbackInsight(t *testing.T) {
	client := Disabled(zerolog.Nop(), WithFallbackInsight("No verdict today."))
	assert.Equal(t, "No verdict today.", client.Insight(context.Background(), "Heat", ""))
}

func TestMoodRecommendations(t *testing.T) {
	gen := &mockGenerator{text: `["Feel-good comedy", "Heist", "Road movie"]`}
	client := NewClientWithGenerator(gen, zerolog.Nop())

	got := client.MoodRecommendations(context.Background(), "cozy")

	assert.Equal(t, []string{"Feel-good comedy", "Heist", "Road movie"}, got)
	assert.Contains(t, gen.prompt, `"cozy"`)

	require.Len(t, gen.configs, 1)
	config := gen.configs[0]
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, genai.TypeArray, config.ResponseSchema.Type)
	require.NotNil(t, config.ResponseSchema.Items)
	assert.Equal(t, genai.TypeString, config.ResponseSchema.Items.Type)
}

func TestMoodRecommendationsTrimsToThree(t *testing.T) {
	gen := &mockGenerator{text: `["A", "B", "C", "D", "E"]`}
	client := NewClientWithGenerator(gen, zerolog.Nop())

	assert.Equal(t, []string{"A", "B", "C"}, client.MoodRecommendations(context.Background(), "any"))
}

func TestMoodRecommendationsFewerThanThree(t *testing.T) {
	gen := &mockGenerator{text: `["Noir"]`}
	client := NewClientWithGenerator(gen, zerolog.Nop())

	assert.Equal(t, []string{"Noir"}, client.MoodRecommendations(context.Background(), "moody"))
}

func TestMoodRecommendationsFallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  *mockGenerator
	}{
		{name: "generator error", gen: &mockGenerator{err: errors.New("quota exceeded")}},
		{name: "empty text", gen: &mockGenerator{text: ""}},
		{name: "not json", gen: &mockGenerator{text: "Action, Comedy"}},
		{name: "object instead of array", gen: &mockGenerator{text: `{"genres": ["Action"]}`}},
		{name: "empty array", gen: &mockGenerator{text: `[]`}},
		{name: "non-string element", gen: &mockGenerator{text: `["Action", 42]`}},
		{name: "blank element", gen: &mockGenerator{text: `["Action", "  "]`}},
		{name: "panic", gen: &mockGenerator{panicMsg: "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClientWithGenerator(tt.gen, zerolog.Nop())
			got := client.MoodRecommendations(context.Background(), "sad")
			assert.Equal(t, []string{"Action", "Sci-Fi", "Adventure"}, got)
		})
	}
}

func TestMoodRecommendationsReturnsCopy(t *testing.T) {
	client := Disabled(zerolog.Nop())

	first := client.MoodRecommendations(context.Background(), "happy")
	first[0] = "Horror"

	assert.Equal(t, []string{"Action", "Sci-Fi", "Adventure"}, client.MoodRecommendations(context.Background(), "happy"))
	assert.Equal(t, []string{"Action", "Sci-Fi", "Adventure"}, DefaultMoods())
}

func TestDisabled(t *testing.T) {
	client := Disabled(zerolog.Nop())

	assert.False(t, client.Enabled())
	assert.Equal(t, FallbackInsight, client.Insight(context.Background(), "Heat", "overview"))
	assert.Equal(t, DefaultMoods(), client.MoodRecommendations(context.Background(), "happy"))
}

func TestFailuresAreLogged(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf)
	client := NewClientWithGenerator(&mockGenerator{err: errors.New("rate limited")}, logger)

	client.Insight(context.Background(), "Heat", "")

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "rate limited")
	assert.Contains(t, buf.String(), `"title":"Heat"`)
}

func TestOptions(t *testing.T) {
	options := defaultOptions()
	for _, opt := range []Option{
		WithModel(""),
		WithTemperature(-1),
		WithTimeout(-time.Second),
		WithFallbackInsight(""),
		WithFallbackMoods(nil),
	} {
		opt(&options)
	}

	assert.Equal(t, DefaultModel, options.model)
	assert.InDelta(t, 0.7, options.temperature, 0.0001)
	assert.Equal(t, 20*time.Second, options.timeout)
	assert.Equal(t, FallbackInsight, options.fallbackInsight)
	assert.Equal(t, DefaultMoods(), options.fallbackMoods)

	WithTemperature(0.2)(&options)
	WithTimeout(0)(&options)
	WithFallbackMoods([]string{"Drama"})(&options)

	assert.InDelta(t, 0.2, options.temperature, 0.0001)
	assert.Zero(t, options.timeout)
	assert.Equal(t, []string{"Drama"}, options.fallbackMoods)
}
