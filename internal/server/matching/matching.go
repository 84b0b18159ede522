// Package matching computes which users share interests with a requester.
package matching

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

// Separator joins stored interest entries.
const Separator = ", "

// Split breaks a stored interests string into its entries.
func Split(interests string) []string {
	return strings.Split(interests, Separator)
}

// Normalize rewrites entries in place: walking the list in order, each entry
// containing a space replaces the second entry with the text after its first
// space. Later entries see earlier rewrites. Lists with fewer than two entries
// are returned unchanged.
func Normalize(entries []string) []string {
	if len(entries) < 2 {
		return entries
	}
	for i := range entries {
		if _, after, ok := strings.Cut(entries[i], " "); ok {
			entries[1] = after
		}
	}
	return entries
}

// Overlap maps each candidate's display name to its sorted, de-duplicated
// interest set, keeping only candidates sharing at least one entry with the
// requester. A later candidate with the same name replaces an earlier one
// before filtering.
func Overlap(requester string, candidates []models.UserInterests) map[string][]string {
	want := make(map[string]struct{})
	for _, e := range Split(requester) {
		want[e] = struct{}{}
	}

	byName := make(map[string][]string, len(candidates))
	for _, c := range candidates {
		byName[c.Name] = Normalize(Split(c.Interests))
	}

	result := make(map[string][]string)
	for name, entries := range byName {
		if !intersects(want, entries) {
			continue
		}
		set := slices.Clone(entries)
		slices.Sort(set)
		result[name] = slices.Compact(set)
	}

	return result
}

func intersects(want map[string]struct{}, entries []string) bool {
	for _, e := range entries {
		if _, ok := want[e]; ok {
			return true
		}
	}
	return false
}
