package services

import (
	"strings"

	"github.com/antzucaro/matchr"

	"boxoffice-report/models"
	"boxoffice-report/utils"
)

// NoReservation is the reserved count reported when no title matches.
const NoReservation = "0"

// Match is one ranking entry paired with its resolved reservation count.
type Match struct {
	Entry         models.RankingEntry
	ReservedCount string
	Method        models.MatchMethod
	Key           string // reservation key that matched, empty for MatchNone
}

// Reconciler pairs ranking entries with reservation counts by normalized title.
//
// Matching tries, in order: the exact key; any stored key that contains the
// entry's key or is contained by it (first in insertion order); and, when
// FuzzyThreshold > 0, the stored key with the highest Jaro-Winkler similarity
// at or above the threshold. Containment is deliberately loose: two titles
// sharing a substring ("탈주" and "탈주자") can be paired wrongly.
type Reconciler struct {
	FuzzyThreshold float64
	logger         *utils.Logger
}

// NewReconciler creates a Reconciler. A threshold of 0 disables fuzzy matching.
func NewReconciler(fuzzyThreshold float64, logger *utils.Logger) *Reconciler {
	return &Reconciler{FuzzyThreshold: fuzzyThreshold, logger: logger}
}

// Reconcile returns one Match per entry, in entry order.
func (r *Reconciler) Reconcile(entries []models.RankingEntry, reservations *models.Reservations) []Match {
	keys := reservations.Keys()
	out := make([]Match, 0, len(entries))

	for _, e := range entries {
		m := r.match(e, NormalizeTitle(e.RawTitle), reservations, keys)
		if m.Method != models.MatchExact {
			r.logger.Debug("[reconcile] #%d %q -> %s (key %q)", e.Rank, DisplayTitle(e.RawTitle), m.Method, m.Key)
		}
		out = append(out, m)
	}
	return out
}

func (r *Reconciler) match(e models.RankingEntry, key string, reservations *models.Reservations, keys []string) Match {
	none := Match{Entry: e, ReservedCount: NoReservation, Method: models.MatchNone}
	if key == "" {
		return none
	}

	if count, ok := reservations.Get(key); ok {
		return Match{Entry: e, ReservedCount: count, Method: models.MatchExact, Key: key}
	}

	for _, k := range keys {
		if strings.Contains(k, key) || strings.Contains(key, k) {
			count, _ := reservations.Get(k)
			return Match{Entry: e, ReservedCount: count, Method: models.MatchContains, Key: k}
		}
	}

	if r.FuzzyThreshold > 0 {
		best, bestScore := "", 0.0
		for _, k := range keys {
			if score := matchr.JaroWinkler(key, k, false); score > bestScore {
				best, bestScore = k, score
			}
		}
		if best != "" && bestScore >= r.FuzzyThreshold {
			count, _ := reservations.Get(best)
			return Match{Entry: e, ReservedCount: count, Method: models.MatchFuzzy, Key: best}
		}
	}

	return none
}
