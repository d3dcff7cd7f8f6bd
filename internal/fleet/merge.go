package fleet

import (
	"fmt"
	"time"

	"github.com/fleetops/fleet-asset/internal/models"
)

// Merge assembles the candidate record for an update: patch fields present in
// the body overwrite the current values (explicit null clears), and the
// status/operator pair comes from Resolve rather than the raw request.
func Merge(current models.Asset, patch models.AssetPatch) (models.Asset, error) {
	next := current

	applyString(&next.Code, patch.Code)
	applyString(&next.Plant, patch.Plant)
	applyString(&next.Make, patch.Make)
	applyString(&next.Model, patch.Model)
	applyString(&next.VIN, patch.VIN)
	applyString(&next.Notes, patch.Notes)
	applyInt(&next.CabRating, patch.CabRating)
	applyInt(&next.ExteriorRating, patch.ExteriorRating)
	applyInt(&next.Year, patch.Year)

	if patch.ServiceDate.Set {
		if patch.ServiceDate.Null {
			next.ServiceDate = nil
		} else {
			ts, err := ParseDate(patch.ServiceDate.Value)
			if err != nil {
				return models.Asset{}, fmt.Errorf("invalid serviceDate %q: %w", patch.ServiceDate.Value, err)
			}
			d := ts.UTC().Truncate(24 * time.Hour)
			next.ServiceDate = &d
		}
	}

	next.Status, next.AssignedOperator = Resolve(current, patch)
	return next, nil
}

func applyString(dst *string, o models.Optional[string]) {
	if o.Set {
		if o.Null {
			*dst = ""
		} else {
			*dst = o.Value
		}
	}
}

func applyInt(dst *int, o models.Optional[int]) {
	if o.Set {
		if o.Null {
			*dst = 0
		} else {
			*dst = o.Value
		}
	}
}
