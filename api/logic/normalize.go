/* normalize.go
 * Contains the pure logic for canonicalising contest type terms and ordering registrations
 */

package logic

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// CapitalizeType converts a search term to the canonical form contest types
// are stored in: first letter upper case, the rest lower case. Searches are
// exact lookups against this controlled vocabulary, so "web", "WEB" and
// "Web" all address the stored type "Web" and nothing else.
// Preconditions: receives the raw search term from the request path
// Postconditions: returns the canonical form, or "" for an empty term
func CapitalizeType(term string) string {
	if term == "" {
		return ""
	}
	lower := strings.ToLower(term)
	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(first)) + lower[size:]
}

// SortByDeadlineDesc orders registration deadlines newest first without
// mutating the input order of equal elements. Deadlines are the date strings
// stored on the registration documents; values that fail to parse sort last.
// Preconditions: receives a slice of items and a function yielding each item's deadline string
// Postconditions: the slice is reordered in place, most recent deadline first
func SortByDeadlineDesc[T any](items []T, deadline func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, okI := parseDeadline(deadline(items[i]))
		tj, okJ := parseDeadline(deadline(items[j]))
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
}

// parseDeadline accepts the date formats the frontend has historically sent
func parseDeadline(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
