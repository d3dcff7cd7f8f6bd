package fleet

import "github.com/fleetops/fleet-asset/internal/models"

// Change is one tracked field whose normalized value differs between the
// current and the candidate record. Old and New are the normalized forms;
// nil means null.
type Change struct {
	Field string
	Old   *string
	New   *string
}

// Diff computes the minimal change set between the current record and the
// resolved candidate, restricted to the tracked-field allow-list. It is
// deterministic (allow-list order) and emits nothing for unchanged or
// untracked fields, so a no-op update produces an empty slice.
func Diff(current, next models.Asset) []Change {
	var changes []Change
	for _, f := range Tracked {
		oldV := Normalize(f.Type, f.Value(current))
		newV := Normalize(f.Type, f.Value(next))
		if !normEqual(oldV, newV) {
			changes = append(changes, Change{Field: f.Field, Old: oldV, New: newV})
		}
	}
	return changes
}

func normEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
