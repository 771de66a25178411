package catalog

import (
	"fmt"
	"strings"
)

// Section is one of the browsable movie lists
type Section string

const (
	// SectionTrending is today's trending movies
	SectionTrending Section = "trending"
	// SectionPopular is TMDB's popularity ranking
	SectionPopular Section = "popular"
	// SectionTopRated is the highest rated movies of all time
	SectionTopRated Section = "top-rated"
	// SectionAIPicks is the curated picks feed, served from the popular list
	SectionAIPicks Section = "ai-picks"
)

// Sections lists every section in display order
func Sections() []Section {
	return []Section{SectionTrending, SectionPopular, SectionTopRated, SectionAIPicks}
}

// ParseSection accepts a section name, ignoring case and '_' vs '-'
func ParseSection(value string) (Section, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", "-")
	for _, s := range Sections() {
		if string(s) == normalized {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown section %q (valid: trending, popular, top-rated, ai-picks)", value)
}

// Title returns the heading shown above the section
func (s Section) Title() string {
	switch s {
	case SectionTrending:
		return "Trending Now"
	case SectionPopular:
		return "Popular Releases"
	case SectionTopRated:
		return "Top Rated Masterpieces"
	case SectionAIPicks:
		return "Gemini AI Curated Picks"
	default:
		return "Discover"
	}
}

func (s Section) String() string {
	return string(s)
}
