package domain

import "encoding/json"

// CategoryNA is the sentinel returned when no category can be derived.
const CategoryNA = "N/A"

// DeriveCategory recovers the display category for a nomination from its
// metric selections: the category of the first element wins. Empty lists
// yield the N/A sentinel.
func DeriveCategory(selections []MetricSelection) string {
	if len(selections) == 0 || selections[0].Category == "" {
		return CategoryNA
	}
	return selections[0].Category
}

// DeriveCategoryFromRaw parses selections stored as serialised JSON text
// (legacy rows imported from spreadsheets) and derives the category the
// same way. Any parse failure yields the N/A sentinel.
func DeriveCategoryFromRaw(raw string) string {
	var selections []MetricSelection
	if err := json.Unmarshal([]byte(raw), &selections); err != nil {
		return CategoryNA
	}
	return DeriveCategory(selections)
}

// DedupeByNominee reduces nomination rows, possibly several per nominee, to
// one representative row per nominee. The first row encountered for each
// nominee wins, so the input's ordering decides the representative. Vote
// counts and other aggregates must be computed before calling this.
func DedupeByNominee(noms []*Nomination) []*Nomination {
	seen := make(map[string]struct{}, len(noms))
	out := make([]*Nomination, 0, len(noms))
	for _, n := range noms {
		if _, ok := seen[n.NomineeID]; ok {
			continue
		}
		seen[n.NomineeID] = struct{}{}
		out = append(out, n)
	}
	return out
}

// DistinctNominees counts how many different nominees appear in noms.
func DistinctNominees(noms []*Nomination) int {
	seen := make(map[string]struct{}, len(noms))
	for _, n := range noms {
		seen[n.NomineeID] = struct{}{}
	}
	return len(seen)
}
