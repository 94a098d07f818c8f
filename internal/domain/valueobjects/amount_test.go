package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	a, err := NewAmount("100")
	require.NoError(t, err)
	assert.Equal(t, "100.0000", a.String())
}

func TestNewAmount_Fractional(t *testing.T) {
	a, err := NewAmount("12.34")
	require.NoError(t, err)
	assert.Equal(t, "12.3400", a.String())
}

func TestNewAmount_RejectsNegative(t *testing.T) {
	_, err := NewAmount("-5")
	assert.Error(t, err)
}

func TestNewAmount_RejectsGarbage(t *testing.T) {
	_, err := NewAmount("not-a-number")
	assert.Error(t, err)
}

func TestZero(t *testing.T) {
	z := Zero()
	assert.True(t, z.IsZero())
	assert.Equal(t, "0.0000", z.String())
}

func TestAdd(t *testing.T) {
	a := MustAmount("500")
	b := MustAmount("100")
	assert.Equal(t, "600.0000", a.Add(b).String())
}

func TestSub(t *testing.T) {
	a := MustAmount("500")
	b := MustAmount("30")
	assert.Equal(t, "470.0000", a.Sub(b).String())
}

func TestSub_Negative(t *testing.T) {
	a := MustAmount("10")
	b := MustAmount("30")
	result := a.Sub(b)
	assert.True(t, result.IsNegative())
	assert.Equal(t, "-20.0000", result.String())
}

func TestNegate(t *testing.T) {
	a := MustAmount("100")
	assert.Equal(t, "-100.0000", a.Negate().String())
	assert.Equal(t, "100.0000", a.Negate().Negate().String())
}

func TestCmp(t *testing.T) {
	assert.Equal(t, 0, MustAmount("5").Cmp(MustAmount("5")))
	assert.Equal(t, -1, MustAmount("4").Cmp(MustAmount("5")))
	assert.Equal(t, 1, MustAmount("6").Cmp(MustAmount("5")))
}

func TestGreaterThanOrEqual(t *testing.T) {
	assert.True(t, MustAmount("5").GreaterThanOrEqual(MustAmount("5")))
	assert.True(t, MustAmount("6").GreaterThanOrEqual(MustAmount("5")))
	assert.False(t, MustAmount("4").GreaterThanOrEqual(MustAmount("5")))
}

func TestLessThan(t *testing.T) {
	assert.True(t, MustAmount("4").LessThan(MustAmount("5")))
	assert.False(t, MustAmount("5").LessThan(MustAmount("5")))
}

// NoFloatingDrift asserts spec's boundary property: adding and
// subtracting 0.0001 repeatedly must preserve the value exactly.
func TestNoFloatingDrift(t *testing.T) {
	start := MustAmount("1")
	step := MustAmount("0.0001")

	acc := start
	for i := 0; i < 10000; i++ {
		acc = acc.Add(step)
	}
	for i := 0; i < 10000; i++ {
		acc = acc.Sub(step)
	}

	assert.True(t, start.Equals(acc))
	assert.Equal(t, "1.0000", acc.String())
}

func TestAmount_JSONRoundTrip(t *testing.T) {
	a := MustAmount("1234.5")

	data, err := a.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1234.5000"`, string(data))

	var decoded Amount
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, a.Equals(decoded))
}
