package keyconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToApplicationForm(t *testing.T) {
	record := map[string]interface{}{
		"rent_out_monthly_rental": 50000.0,
		"geo_maps":                []string{"a.png"},
		"name":                    "Block 3",
	}

	got := ToApplicationForm(record)

	assert.Equal(t, 50000.0, got["rentOutMonthlyRental"])
	assert.Equal(t, []string{"a.png"}, got["geoMaps"])
	assert.Equal(t, "Block 3", got["name"])

	// input must not be mutated
	_, ok := record["geoMaps"]
	assert.False(t, ok)
	assert.Contains(t, record, "geo_maps")
}

func TestToStorageForm(t *testing.T) {
	record := map[string]interface{}{
		"rentOutStartDate": "2024-01-01",
		"tenantId":         7,
		"code":             "A01",
	}

	got := ToStorageForm(record)

	assert.Equal(t, "2024-01-01", got["rent_out_start_date"])
	assert.Equal(t, 7, got["tenant_id"])
	assert.Equal(t, "A01", got["code"])
}

func TestRoundTrip(t *testing.T) {
	keys := []string{
		"id",
		"name",
		"rent_out_monthly_rental",
		"renting_deposit_return_at",
		"geo_maps",
		"v2_url",
		"lot_index",
		"a__b",
	}

	for _, k := range keys {
		record := map[string]interface{}{k: "v"}
		back := ToStorageForm(ToApplicationForm(record))
		require.Equal(t, record, back, "key %q must survive the round trip", k)
	}
}

func TestNilInput(t *testing.T) {
	assert.Nil(t, ToApplicationForm(nil))
	assert.Nil(t, ToStorageForm(nil))
}

func TestSingleWordIdempotent(t *testing.T) {
	record := map[string]interface{}{"status": "holding"}
	assert.Equal(t, record, ToApplicationForm(record))
	assert.Equal(t, record, ToStorageForm(record))
}

func TestCollidingKeysCollapse(t *testing.T) {
	// aB and a_b both translate to a_b; one of the two values survives and
	// which one depends on map iteration order.
	got := ToStorageForm(map[string]interface{}{"aB": 1, "a_b": 2})

	require.Len(t, got, 1)
	assert.Contains(t, []interface{}{1, 2}, got["a_b"])
}

func TestAcronymPolicy(t *testing.T) {
	// Consecutive uppercase letters are translated letter by letter; this is
	// the documented first-transformation-wins policy, not a bug.
	got := ToStorageForm(map[string]interface{}{"geoURL": "x"})
	assert.Contains(t, got, "geo_u_r_l")
}
