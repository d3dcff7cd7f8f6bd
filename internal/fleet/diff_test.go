package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-asset/internal/models"
)

func baseAsset() models.Asset {
	return models.Asset{
		ID:               1,
		Code:             "TR-100",
		Plant:            "North",
		AssignedOperator: strptr("E1"),
		Status:           models.StatusActive,
		CabRating:        4,
		ExteriorRating:   3,
		Make:             "Deere",
		Model:            "8R",
		Year:             2021,
		VIN:              "1FT1234",
		Notes:            "spare key in office",
	}
}

func TestDiff_NoChanges(t *testing.T) {
	a := baseAsset()
	assert.Empty(t, Diff(a, a))
}

func TestDiff_ClearOperator(t *testing.T) {
	current := baseAsset()
	next, err := Merge(current, patchOperator(nil))
	require.NoError(t, err)

	changes := Diff(current, next)
	require.Len(t, changes, 2)

	assert.Equal(t, "assigned_operator", changes[0].Field)
	require.NotNil(t, changes[0].Old)
	assert.Equal(t, "E1", *changes[0].Old)
	assert.Nil(t, changes[0].New)

	assert.Equal(t, "status", changes[1].Field)
	assert.Equal(t, models.StatusActive, *changes[1].Old)
	assert.Equal(t, models.StatusSpare, *changes[1].New)
}

func TestDiff_RejectedShopRequestIsNoOp(t *testing.T) {
	// The resolver bounces a shop request that keeps the operator, so the
	// merged candidate equals the current record and no history is due.
	current := baseAsset()
	next, err := Merge(current, patchStatus(models.StatusInShop))
	require.NoError(t, err)

	assert.Empty(t, Diff(current, next))
}

func TestDiff_NumericEquivalence(t *testing.T) {
	current := baseAsset()
	next := current
	// Same numeric value must not diff even across representations.
	assert.Empty(t, Diff(current, next))

	next.Year = 2022
	changes := Diff(current, next)
	require.Len(t, changes, 1)
	assert.Equal(t, "year", changes[0].Field)
	assert.Equal(t, "2021", *changes[0].Old)
	assert.Equal(t, "2022", *changes[0].New)
}

func TestDiff_UntrackedFieldIgnored(t *testing.T) {
	current := baseAsset()
	next := current
	next.Notes = "key moved"
	next.UpdatedBy = "someone-else"

	assert.Empty(t, Diff(current, next))
}

func TestDiff_MultipleFieldsInAllowListOrder(t *testing.T) {
	current := baseAsset()
	next := current
	next.VIN = "1FT9999"
	next.Code = "TR-101"
	next.CabRating = 5

	changes := Diff(current, next)
	require.Len(t, changes, 3)
	assert.Equal(t, "code", changes[0].Field)
	assert.Equal(t, "cab_rating", changes[1].Field)
	assert.Equal(t, "vin", changes[2].Field)
}

func TestDiff_ServiceDate(t *testing.T) {
	current := baseAsset()
	var p models.AssetPatch
	p.ServiceDate.Set = true
	p.ServiceDate.Value = "2024-06-01"
	next, err := Merge(current, p)
	require.NoError(t, err)

	changes := Diff(current, next)
	require.Len(t, changes, 1)
	assert.Equal(t, "service_date", changes[0].Field)
	assert.Nil(t, changes[0].Old)
	assert.Equal(t, "2024-06-01", *changes[0].New)
}

func TestMerge_InvalidServiceDate(t *testing.T) {
	var p models.AssetPatch
	p.ServiceDate.Set = true
	p.ServiceDate.Value = "junk"

	_, err := Merge(baseAsset(), p)
	assert.Error(t, err)
}

func TestMerge_NullClearsScalars(t *testing.T) {
	var p models.AssetPatch
	p.Make.Set, p.Make.Null = true, true
	p.Year.Set, p.Year.Null = true, true

	next, err := Merge(baseAsset(), p)
	require.NoError(t, err)
	assert.Equal(t, "", next.Make)
	assert.Equal(t, 0, next.Year)
}

func TestMerge_ServiceDateTruncatesToDay(t *testing.T) {
	var p models.AssetPatch
	p.ServiceDate.Set = true
	p.ServiceDate.Value = "2024-06-01T13:45:00Z"

	next, err := Merge(baseAsset(), p)
	require.NoError(t, err)
	require.NotNil(t, next.ServiceDate)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *next.ServiceDate)
}
