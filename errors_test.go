package fastjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorCodeString(t *testing.T) {
	require.Equal(t, "invalid-number", ErrInvalidNumber.String())
	require.Equal(t, "exceed-depth", ErrExceedDepth.String())
	require.Equal(t, "unknown", ErrorCode(999).String())
}

func TestNewErrFormatting(t *testing.T) {
	err := newErr(ErrInvalidString, 5, "bad byte %#x", 0xff)
	require.Equal(t, ErrInvalidString, err.Code)
	require.Equal(t, 5, err.Offset)
	require.Contains(t, err.Error(), "invalid-string")
	require.Contains(t, err.Error(), "offset 5")
	require.Contains(t, err.Error(), "0xff")
}

func TestErrorStringOmitsZeroOffset(t *testing.T) {
	err := newErr(ErrMemoryAllocation, 0, "out of memory")
	require.NotContains(t, err.Error(), "offset")
}

func TestErrorStringIncludesOffsetForUnexpectedEnd(t *testing.T) {
	err := newErr(ErrUnexpectedEnd, 0, "truncated")
	require.Contains(t, err.Error(), "offset 0")
}
