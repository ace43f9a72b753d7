package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	numberRe  = regexp.MustCompile(`(\d+\.?\d*)`)
	titleCase = cases.Title(language.English)
)

// parseNumber extracts the first number from a free-text score reply and
// clamps it into [lo, hi]. Local models frequently answer "8.5/10" or
// "I'd rate this a 7"; absent any number the midpoint default is used.
func parseNumber(s string, lo, hi, def float64) float64 {
	match := numberRe.FindString(s)
	if match == "" {
		return def
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// splitList splits a model-produced enumeration on sep, trimming whitespace,
// list bullets and empty entries.
func splitList(s, sep string) []string {
	var items []string
	for _, item := range strings.Split(s, sep) {
		item = strings.TrimSpace(item)
		item = strings.TrimPrefix(item, "- ")
		item = strings.TrimSpace(strings.TrimPrefix(item, "*"))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// splitGenres is splitList plus title-casing, so "sci-fi, drama" renders as
// "Sci-Fi, Drama".
func splitGenres(s string) []string {
	items := splitList(s, ",")
	for i, item := range items {
		items[i] = titleCase.String(item)
	}
	return items
}

// starRating buckets a free-text quality judgement into a 1..5 star string
// by looking for quality adjectives, middle bucket when none match.
func starRating(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "excellent"):
		return stars(5)
	case strings.Contains(t, "good"):
		return stars(4)
	case strings.Contains(t, "average"):
		return stars(3)
	case strings.Contains(t, "poor"):
		return stars(2)
	default:
		return stars(3)
	}
}

func stars(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
