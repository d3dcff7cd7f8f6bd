package fleet

import "github.com/fleetops/fleet-asset/internal/models"

// FieldType is the declared comparison type of a tracked field.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeDate   FieldType = "date"
	TypeNumber FieldType = "number"
	TypeBool   FieldType = "boolean"
)

// TrackedField declares one audit-tracked column: its history name, the type
// used for normalized comparison, and how to read it off an asset.
type TrackedField struct {
	Field string
	Type  FieldType
	Value func(models.Asset) any
}

// Tracked is the allow-list of audit-tracked fields. Only these columns ever
// produce history rows. Notes, timestamps, and updated_by are deliberately
// absent.
var Tracked = []TrackedField{
	{"code", TypeString, func(a models.Asset) any { return a.Code }},
	{"plant", TypeString, func(a models.Asset) any { return a.Plant }},
	{"assigned_operator", TypeString, func(a models.Asset) any { return a.AssignedOperator }},
	{"status", TypeString, func(a models.Asset) any { return a.Status }},
	{"service_date", TypeDate, func(a models.Asset) any { return a.ServiceDate }},
	{"cab_rating", TypeNumber, func(a models.Asset) any { return a.CabRating }},
	{"exterior_rating", TypeNumber, func(a models.Asset) any { return a.ExteriorRating }},
	{"make", TypeString, func(a models.Asset) any { return a.Make }},
	{"model", TypeString, func(a models.Asset) any { return a.Model }},
	{"year", TypeNumber, func(a models.Asset) any { return a.Year }},
	{"vin", TypeString, func(a models.Asset) any { return a.VIN }},
}

// IsTracked reports whether name is on the audit allow-list.
func IsTracked(name string) bool {
	for _, f := range Tracked {
		if f.Field == name {
			return true
		}
	}
	return false
}
