package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestNormalize_Number(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"int", 5, "5"},
		{"numeric string", "5", "5"},
		{"float", 5.5, "5.5"},
		{"float whole", 5.0, "5"},
		{"zero", 0, "0"},
		{"unparseable", "abc", "NaN"},
		{"empty string", "", "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(TypeNumber, tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestNormalize_Date(t *testing.T) {
	ts := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	got := Normalize(TypeDate, ts)
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-09", *got)

	got = Normalize(TypeDate, &ts)
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-09", *got)

	got = Normalize(TypeDate, "2024-03-09T15:04:05Z")
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-09", *got)

	got = Normalize(TypeDate, "2024-03-09")
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-09", *got)
}

func TestNormalize_Null(t *testing.T) {
	assert.Nil(t, Normalize(TypeString, nil))
	assert.Nil(t, Normalize(TypeString, (*string)(nil)))
	assert.Nil(t, Normalize(TypeNumber, (*int)(nil)))
	assert.Nil(t, Normalize(TypeDate, (*time.Time)(nil)))

	// Empty string is a value, not null.
	got := Normalize(TypeString, "")
	require.NotNil(t, got)
	assert.Equal(t, "", *got)
}

func TestNormalize_Bool(t *testing.T) {
	got := Normalize(TypeBool, true)
	require.NotNil(t, got)
	assert.Equal(t, "true", *got)

	got = Normalize(TypeBool, "true")
	require.NotNil(t, got)
	assert.Equal(t, "true", *got)

	got = Normalize(TypeBool, "1")
	require.NotNil(t, got)
	assert.Equal(t, "true", *got)
}

// Normalizing an already-normalized value must be the identity operation.
func TestNormalize_Idempotent(t *testing.T) {
	cases := []struct {
		typ FieldType
		in  any
	}{
		{TypeString, "E17"},
		{TypeString, ""},
		{TypeNumber, 5},
		{TypeNumber, "5.25"},
		{TypeNumber, "abc"},
		{TypeDate, time.Date(2023, 11, 1, 8, 0, 0, 0, time.UTC)},
		{TypeDate, "2023-11-01"},
		{TypeBool, true},
	}
	for _, c := range cases {
		first := Normalize(c.typ, c.in)
		require.NotNil(t, first)
		second := Normalize(c.typ, *first)
		require.NotNil(t, second)
		assert.Equal(t, *first, *second, "type=%s in=%v", c.typ, c.in)
	}
}
