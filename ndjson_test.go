package fastjson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNDStreamBasic(t *testing.T) {
	input := "1\n\n{\"a\":2}\n[3,4]\n"
	ch := ParseNDStream(strings.NewReader(input))

	var results []NDResult
	for r := range ch {
		results = append(results, r)
	}
	require.Len(t, results, 3) // blank line is skipped

	v0, err := results[0].Doc.Root().Int()
	require.NoError(t, err)
	require.Equal(t, int64(1), v0)

	require.True(t, results[1].Doc.Root().IsObject())
	require.True(t, results[2].Doc.Root().IsArray())
}

func TestParseNDStreamPropagatesRecordErrors(t *testing.T) {
	input := "1\nnotjson\n3\n"
	ch := ParseNDStream(strings.NewReader(input))

	var sawErr bool
	for r := range ch {
		if r.Err != nil {
			sawErr = true
		}
	}
	require.True(t, sawErr)
}

func TestParseNDConcurrentPreservesOrder(t *testing.T) {
	records := [][]byte{
		[]byte("1"), []byte("2"), []byte("3"), []byte("4"), []byte("5"),
	}
	docs, err := ParseNDConcurrent(records, 2)
	require.NoError(t, err)
	require.Len(t, docs, 5)
	for i, d := range docs {
		v, err := d.Root().Int()
		require.NoError(t, err)
		require.Equal(t, int64(i+1), v)
	}
}

func TestParseNDConcurrentDefaultWorkers(t *testing.T) {
	records := [][]byte{[]byte("1"), []byte("2")}
	docs, err := ParseNDConcurrent(records, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
}

func TestParseNDConcurrentPropagatesError(t *testing.T) {
	records := [][]byte{[]byte("1"), []byte("not-json"), []byte("3")}
	_, err := ParseNDConcurrent(records, 2)
	require.Error(t, err)
}
