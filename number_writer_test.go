package fastjson

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendUint(t *testing.T) {
	cases := []uint64{0, 1, 9, 10, 99, 100, 999, 1234567890, math.MaxUint64}
	for _, v := range cases {
		got := string(AppendUint(nil, v))
		require.Equal(t, strconv.FormatUint(v, 10), got)
	}
}

func TestAppendInt(t *testing.T) {
	cases := []int64{0, -1, 1, math.MinInt64, math.MaxInt64, -123456789}
	for _, v := range cases {
		got := string(AppendInt(nil, v))
		require.Equal(t, strconv.FormatInt(v, 10), got)
	}
}

func TestFormatFloatRoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 1.5, 100, 0.1, 9876.543210, 1e21, 1e-7, 1e100, -1e-300, 3.14159265358979}
	for _, f := range cases {
		s, err := FormatFloat(f, false)
		require.NoError(t, err)
		back, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		require.Equalf(t, f, back, "formatted %q from %v", s, f)
	}
}

func TestFormatFloatNegativeZero(t *testing.T) {
	s, err := FormatFloat(math.Copysign(0, -1), false)
	require.NoError(t, err)
	require.Equal(t, "-0.0", s)
}

func TestFormatFloatZero(t *testing.T) {
	s, err := FormatFloat(0, false)
	require.NoError(t, err)
	require.Equal(t, "0.0", s)
}

func TestFormatFloatInteriorDecimal(t *testing.T) {
	s, err := FormatFloat(123.456, false)
	require.NoError(t, err)
	require.Equal(t, "123.456", s)
}

func TestFormatFloatTrailingDotZero(t *testing.T) {
	s, err := FormatFloat(100, false)
	require.NoError(t, err)
	require.Equal(t, "100.0", s)
}

func TestFormatFloatSmallLeadingZeroFraction(t *testing.T) {
	s, err := FormatFloat(0.0001, false)
	require.NoError(t, err)
	require.Equal(t, "0.0001", s)
}

func TestFormatFloatScientificForm(t *testing.T) {
	s, err := FormatFloat(1e22, false)
	require.NoError(t, err)
	require.Equal(t, "1e22", s)

	s, err = FormatFloat(1e-8, false)
	require.NoError(t, err)
	require.Equal(t, "1e-8", s)
}

func TestAppendFloatNaNInfRejectedByDefault(t *testing.T) {
	_, err := FormatFloat(math.NaN(), false)
	require.Error(t, err)

	_, err = FormatFloat(math.Inf(1), false)
	require.Error(t, err)
}

func TestAppendFloatNaNInfAllowed(t *testing.T) {
	s, err := FormatFloat(math.NaN(), true)
	require.NoError(t, err)
	require.Equal(t, "NaN", s)

	s, err = FormatFloat(math.Inf(1), true)
	require.NoError(t, err)
	require.Equal(t, "Infinity", s)

	s, err = FormatFloat(math.Inf(-1), true)
	require.NoError(t, err)
	require.Equal(t, "-Infinity", s)
}
