package xpt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeIBMFloat_RoundTrip(t *testing.T) {
	value, present, err := DecodeIBMFloat([]byte{0x3F, 0xF5, 0xC2, 0x8F, 0x5C, 0x00})
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, 0.059999999997671694, value)

	encoded, err := EncodeIBMFloat(0.059999999997671694, true)
	require.NoError(t, err)
	require.Equal(t, [8]byte{0x3F, 0xF5, 0xC2, 0x8F, 0x5C, 0x00, 0x00, 0x00}, encoded)
}

func TestDecodeIBMFloat_MissingValues(t *testing.T) {
	_, present, err := DecodeIBMFloat([]byte{0x2E, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	require.False(t, present)

	_, present, err = DecodeIBMFloat([]byte{0x41, 0, 0, 0, 0, 0, 0, 0}) // .A
	require.NoError(t, err)
	require.False(t, present)

	value, present, err := DecodeIBMFloat([]byte{0x00, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, 0.0, value)

	value, present, err = DecodeIBMFloat([]byte{0x08, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	require.True(t, present)
	require.True(t, math.Signbit(value))
	require.Equal(t, 0.0, value)
}

func TestDecodeIBMFloat_UnderscoreTaggedMissing(t *testing.T) {
	_, present, err := DecodeIBMFloat([]byte{'_', 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	require.False(t, present)
}

func TestDecodeIBMFloat_UnreadableZeroMantissa(t *testing.T) {
	_, _, err := DecodeIBMFloat([]byte{0x01, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)
}

func TestIBMFloat_RoundTripProperty(t *testing.T) {
	samples := []float64{1.0, -1.0, 0.5, 123456.789, -0.000123, 16.0, 4096.0, 3.14159265}
	for _, s := range samples {
		encoded, err := EncodeIBMFloat(s, true)
		require.NoError(t, err)
		decoded, present, err := DecodeIBMFloat(encoded[:])
		require.NoError(t, err)
		require.True(t, present)
		require.InDelta(t, s, decoded, math.Abs(s)*1e-10+1e-12)
	}
}

func TestEncodeIBMFloat_MissingAndNaN(t *testing.T) {
	encoded, err := EncodeIBMFloat(0, false)
	require.NoError(t, err)
	require.Equal(t, [8]byte{}, encoded)

	encoded, err = EncodeIBMFloat(math.NaN(), true)
	require.NoError(t, err)
	require.Equal(t, [8]byte{}, encoded)
}

func TestEncodeIBMFloat_InfinityFails(t *testing.T) {
	_, err := EncodeIBMFloat(math.Inf(1), true)
	require.Error(t, err)
}
