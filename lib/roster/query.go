package roster

import (
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

type PartyCount struct {
	Party   string
	Members int
}

// PartyCounts returns every distinct party with its member count, ordered
// alphabetically ascending.
func (d Document) PartyCounts() []PartyCount {
	counts := map[string]int{}
	for _, m := range d.Members {
		counts[m.Party]++
	}

	out := make([]PartyCount, 0, len(counts))
	for party, n := range counts {
		out = append(out, PartyCount{Party: party, Members: n})
	}
	slices.SortFunc(out, func(a, b PartyCount) int {
		return strings.Compare(a.Party, b.Party)
	})
	return out
}

// FilterByParty returns the members whose party matches case-insensitively,
// preserving the document order.
func (d Document) FilterByParty(party string) []Member {
	var out []Member
	for _, m := range d.Members {
		if strings.EqualFold(m.Party, party) {
			out = append(out, m)
		}
	}
	return out
}

// ClosestParty returns the known party most similar to the query by
// Jaro-Winkler distance, or "" when the roster is empty.
func (d Document) ClosestParty(party string) string {
	query := strings.ToLower(party)

	best := ""
	bestSimilarity := 0.0
	for _, count := range d.PartyCounts() {
		similarity := matchr.JaroWinkler(query, strings.ToLower(count.Party), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = count.Party
		}
	}
	return best
}
