package fleet

import "github.com/fleetops/fleet-asset/internal/models"

// Resolve reconciles the requested status and operator against the current
// record into one mutually consistent pair. Contradictory input is silently
// normalized, never rejected.
//
// The three rules run in this exact order, and the order matters:
//
//  1. no operator (nil, "", or the legacy "0" sentinel) while Active
//     downgrades the status to Spare;
//  2. a non-empty operator while not Active promotes the status to Active —
//     note "0" counts as non-empty here, unlike rule 1, so an Active unit
//     with operator "0" is downgraded by rule 1 and immediately re-promoted;
//  3. a terminal status that still carries an operator clears the operator.
//
// Net effect: a unit with an operator ends up Active unless the same call
// also clears the operator, and a unit without one can never stay Active.
// The "0" asymmetry between rules 1 and 2 is long-standing observed behavior
// and is pinned by tests; do not fold the two checks together.
func Resolve(current models.Asset, patch models.AssetPatch) (string, *string) {
	status := current.Status
	if patch.Status.Set && !patch.Status.Null {
		status = patch.Status.Value
	}

	operator := current.AssignedOperator
	if patch.AssignedOperator.Set {
		if patch.AssignedOperator.Null {
			operator = nil
		} else {
			v := patch.AssignedOperator.Value
			operator = &v
		}
	}

	if unassigned(operator) && status == models.StatusActive {
		status = models.StatusSpare
	}
	if assigned(operator) && status != models.StatusActive {
		status = models.StatusActive
	}
	if models.TerminalStatus(status) && operator != nil {
		operator = nil
	}
	return status, operator
}

func unassigned(op *string) bool {
	return op == nil || *op == "" || *op == "0"
}

func assigned(op *string) bool {
	return op != nil && *op != ""
}
