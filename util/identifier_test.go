package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveIdentifierShape(t *testing.T) {
	for input, want := range map[string]IdentifierShape{
		"9876543210":     SHAPE_MOBILE,
		"98765432101234": SHAPE_MOBILE_AADHAR,
		"987654321012":   SHAPE_AADHAR,
		"98765432101":    SHAPE_BEN_ID,
		"AB765432101":    SHAPE_BEN_ID,
		"1234567890":     SHAPE_UNKNOWN,
		"987":            SHAPE_UNKNOWN,
		"":               SHAPE_UNKNOWN,
	} {
		require.Equal(t, want, ResolveIdentifierShape(input, DefaultShapeOrder), input)
	}
}

func TestResolveIdentifierShapeCustomOrder(t *testing.T) {
	// With Ben_id tried first, any 11 character input stops there even if a
	// later shape would also match.
	order := []IdentifierShape{SHAPE_BEN_ID, SHAPE_MOBILE}
	require.Equal(t, SHAPE_BEN_ID, ResolveIdentifierShape("98765432101", order))
	require.Equal(t, SHAPE_MOBILE, ResolveIdentifierShape("9876543210", order))
	require.Equal(t, SHAPE_UNKNOWN, ResolveIdentifierShape("987654321012", order))
}

func TestParseShapeOrder(t *testing.T) {
	order, err := ParseShapeOrder([]string{"Aadhar", "Mobile"})
	require.NoError(t, err)
	require.Equal(t, []IdentifierShape{SHAPE_AADHAR, SHAPE_MOBILE}, order)

	order, err = ParseShapeOrder(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultShapeOrder, order)

	_, err = ParseShapeOrder([]string{"Passport"})
	require.Error(t, err)
}
