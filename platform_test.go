package fastjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlatformStrideIsPositiveAndPow2(t *testing.T) {
	s := platformStride()
	require.Contains(t, []int{4, 8, 16}, s)
}

func TestBlockAllPlain(t *testing.T) {
	require.True(t, blockAllPlain([]byte("abcdefgh")))
	require.False(t, blockAllPlain([]byte("abc\"efgh")))
	require.False(t, blockAllPlain([]byte("abc\\efgh")))
	require.False(t, blockAllPlain([]byte{'a', 'b', 0x80, 'd'}))
	require.True(t, blockAllPlain(nil))
}
