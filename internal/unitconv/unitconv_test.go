package unitconv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBase(t *testing.T) {
	tests := []struct {
		qty  float64
		unit string
		want int64
	}{
		{2, "kg", 2000},
		{1.5, "l", 1500},
		{1, "dozen", 12},
		{3, "piece", 3},
		{0.5, "tsp", 2}, // 2.46... rounds half-up to 2
		{1, "oz", 28},
		{0, "g", 0},
	}
	for _, tt := range tests {
		got, err := ToBase(tt.qty, tt.unit)
		require.NoError(t, err, "%v %s", tt.qty, tt.unit)
		assert.Equal(t, tt.want, got, "%v %s", tt.qty, tt.unit)
	}
}

func TestToBaseUnknownUnit(t *testing.T) {
	_, err := ToBase(1, "furlong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownUnit))
}

func TestRoundTripIntegralFactors(t *testing.T) {
	// 2 kg -> 2000 g -> displayed back as 2 kg, exactly.
	base, err := ToBase(2, "kg")
	require.NoError(t, err)
	require.Equal(t, int64(2000), base)

	back, err := FromBase(base, "kg")
	require.NoError(t, err)
	assert.Equal(t, 2.0, back)

	base, err = ToBase(3, "dozen")
	require.NoError(t, err)
	back, err = FromBase(base, "dozen")
	require.NoError(t, err)
	assert.Equal(t, 3.0, back)
}

func TestBaseUnit(t *testing.T) {
	for unit, want := range map[string]string{
		"kg": "g", "mg": "g", "litre": "ml", "cup": "ml", "dozen": "piece", "g": "g",
	} {
		got, err := BaseUnit(unit)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestKindOf(t *testing.T) {
	kind, err := KindOf("lb")
	require.NoError(t, err)
	assert.Equal(t, KindWeight, kind)

	_, err = KindOf("")
	assert.Error(t, err)
}

func TestNamesCoversAllKinds(t *testing.T) {
	names := Names()
	kinds := map[Kind]bool{}
	for _, k := range names {
		kinds[k] = true
	}
	assert.Len(t, kinds, 3)
}
