// Package mal provides a client for the MyAnimeList REST API.
package mal

import "fmt"

// ListType identifies which of the user's lists an operation targets.
type ListType string

const (
	Anime ListType = "anime"
	Manga ListType = "manga"
)

// ParseListType validates and converts a raw string into a ListType.
func ParseListType(s string) (ListType, error) {
	switch ListType(s) {
	case Anime:
		return Anime, nil
	case Manga:
		return Manga, nil
	default:
		return "", fmt.Errorf("invalid list type %q, must be %q or %q", s, Anime, Manga)
	}
}

// historyModifier returns the single-letter discriminator the watch history
// endpoint uses to distinguish anime from manga entries.
func (t ListType) historyModifier() string {
	if t == Manga {
		return "m"
	}
	return "a"
}

// Unit returns the consumption unit labels for the list type.
func (t ListType) Unit() (singular, plural string) {
	if t == Manga {
		return "chapter", "chapters"
	}
	return "episode", "episodes"
}

// Verb returns the past-tense consumption verb for the list type.
func (t ListType) Verb() string {
	if t == Manga {
		return "read"
	}
	return "watched"
}
