package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// FallbackInsight is returned whenever an insight cannot be generated
const FallbackInsight = "An epic cinematic journey awaits you with this masterpiece."

// DefaultModel is the Gemini model used for both prompts
const DefaultModel = "gemini-2.5-flash"

// moodCount is the number of labels requested from MoodRecommendations
const moodCount = 3

var defaultMoods = []string{"Action", "Sci-Fi", "Adventure"}

// DefaultMoods returns the labels used when mood recommendations fail
func DefaultMoods() []string {
	return append([]string(nil), defaultMoods...)
}

var (
	// ErrEmptyResponse indicates the model returned no usable text
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrInvalidSchema indicates a structured response did not match its schema
	ErrInvalidSchema = errors.New("response does not match schema")
	// errDisabled is logged by a client built with Disabled
	errDisabled = errors.New("insights are disabled")
)

// Generator is the subset of the genai Models service used here.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client produces decorative AI commentary. None of its methods return an
// error: every failure is logged and replaced by a fixed fallback.
type Client struct {
	generator Generator
	logger    zerolog.Logger
	options   clientOptions
}

// NewClient creates a client backed by the Gemini API
func NewClient(ctx context.Context, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	config := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: options.httpClient,
	}
	if options.baseURL != "" {
		config.HTTPOptions.BaseURL = options.baseURL
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewClientWithGenerator(client.Models, logger, opts...), nil
}

// NewClientWithGenerator creates a client around any Generator
func NewClientWithGenerator(generator Generator, logger zerolog.Logger, opts ...Option) *Client {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		generator: generator,
		logger:    logger,
		options:   options,
	}
}

// Disabled returns a client that always answers with the fallbacks
func Disabled(logger zerolog.Logger, opts ...Option) *Client {
	return NewClientWithGenerator(nil, logger, opts...)
}

// Enabled reports whether the client talks to a model
func (c *Client) Enabled() bool {
	return c.generator != nil
}

// Insight returns a short blurb on why a movie lover might enjoy the film
func (c *Client) Insight(ctx context.Context, title, overview string) string {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.options.temperature),
	}

	text, err := c.generate(ctx, insightPrompt(title, overview), config)
	if err != nil {
		c.logger.Warn().Err(err).Str("title", title).Msg("Failed to generate AI insight, using fallback")
		return c.options.fallbackInsight
	}

	return text
}

// MoodRecommendations suggests genre or theme labels that fit a mood
func (c *Client) MoodRecommendations(ctx context.Context, mood string) []string {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	}

	text, err := c.generate(ctx, moodPrompt(mood), config)
	if err == nil {
		var labels []string
		labels, err = parseLabels(text)
		if err == nil {
			return labels
		}
	}

	c.logger.Warn().Err(err).Str("mood", mood).Msg("Failed to get mood recommendations, using defaults")
	return append([]string(nil), c.options.fallbackMoods...)
}

// generate runs one GenerateContent call and returns the trimmed text.
// Panics from the generator are converted into errors.
func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (text string, err error) {
	if c.generator == nil {
		return "", errDisabled
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panicked: %v", r)
		}
	}()

	if c.options.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.options.timeout)
		defer cancel()
	}

	resp, err := c.generator.GenerateContent(ctx, c.options.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text = strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// parseLabels validates a JSON array of non-empty strings and keeps the first three
func parseLabels(text string) ([]string, error) {
	var raw []any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrInvalidSchema)
	}

	labels := make([]string, 0, moodCount)
	for i, item := range raw {
		label, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T, not a string", ErrInvalidSchema, i, item)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("%w: element %d is empty", ErrInvalidSchema, i)
		}
		if len(labels) < moodCount {
			labels = append(labels, label)
		}
	}

	return labels, nil
}

func insightPrompt(title, overview string) string {
	return fmt.Sprintf(`Analyze the following movie: %q. Summary: %q.
Provide a concise, catchy, 2-sentence "AI Verdict" on why a movie lover might enjoy this film.
Focus on themes, atmosphere, and cinematic appeal.`, title, overview)
}

func moodPrompt(mood string) string {
	return fmt.Sprintf(`The user is in a %q mood. Suggest %d specific movie genres or themes that would fit this mood.
Format as a JSON array of strings.`, mood, moodCount)
}
