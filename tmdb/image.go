package tmdb

import (
	"fmt"
	"strings"
)

const (
	// DefaultImageBaseURL is the TMDB image CDN root
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	// PlaceholderImageURL is returned for movies without artwork
	PlaceholderImageURL = "https://images.unsplash.com/photo-1485846234645-a62644ef7467?auto=format&fit=crop&q=80&w=1000"
)

// ImageSize is one of the artwork sizes cinesphere renders
type ImageSize string

const (
	// ImageSizeMedium is used for posters and cards
	ImageSizeMedium ImageSize = "w500"
	// ImageSizeOriginal is used for backdrops
	ImageSizeOriginal ImageSize = "original"
)

// String returns the size token used in image URLs
func (s ImageSize) String() string {
	return string(s)
}

// ParseImageSize accepts "medium", "w500" or "original"
func ParseImageSize(value string) (ImageSize, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "medium", "w500":
		return ImageSizeMedium, nil
	case "original":
		return ImageSizeOriginal, nil
	default:
		return "", fmt.Errorf("unknown image size %q (must be 'medium' or 'original')", value)
	}
}

// ImageURL resolves path against the default TMDB image host
func ImageURL(path *string, size ImageSize) string {
	return resolveImageURL(DefaultImageBaseURL, PlaceholderImageURL, path, size)
}

// ImageURL resolves path against the client's image host
func (c *Client) ImageURL(path *string, size ImageSize) string {
	return resolveImageURL(c.imageBaseURL, c.placeholderURL, path, size)
}

func resolveImageURL(baseURL, placeholder string, path *string, size ImageSize) string {
	if path == nil || *path == "" {
		return placeholder
	}
	if size != ImageSizeMedium && size != ImageSizeOriginal {
		size = ImageSizeMedium
	}
	// TMDB paths carry their own leading slash and are joined as given
	return baseURL + "/" + string(size) + *path
}
