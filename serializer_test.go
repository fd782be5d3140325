package fastjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteRoundTripMinify(t *testing.T) {
	cases := []string{
		`null`, `true`, `false`, `"hi"`, `[1,2,3]`, `{"a":1,"b":[true,null]}`,
	}
	for _, in := range cases {
		doc, err := ReadString(in)
		require.NoError(t, err)
		out, err := Write(doc)
		require.NoError(t, err)
		require.Equal(t, in, string(out))
	}
}

func TestWriteIntegerAndFloatSubtypes(t *testing.T) {
	doc, err := ReadString(`[1, -1, 1.5]`)
	require.NoError(t, err)
	out, err := Write(doc)
	require.NoError(t, err)
	require.Equal(t, `[1,-1,1.5]`, string(out))
}

func TestWritePretty(t *testing.T) {
	doc, err := ReadString(`{"a":1,"b":[1,2]}`)
	require.NoError(t, err)
	out, err := Write(doc, WithPretty(2))
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}", string(out))
}

func TestWritePrettyEmptyContainers(t *testing.T) {
	doc, err := ReadString(`{"a":[],"b":{}}`)
	require.NoError(t, err)
	out, err := Write(doc, WithPretty(2))
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": [],\n  \"b\": {}\n}", string(out))
}

func TestWriteEscapeSlashes(t *testing.T) {
	doc, err := ReadString(`"a/b"`)
	require.NoError(t, err)
	out, err := Write(doc, WithEscapeSlashes())
	require.NoError(t, err)
	require.Equal(t, `"a\/b"`, string(out))
}

func TestWriteRawPassThrough(t *testing.T) {
	doc, err := ReadString("123.4500", WithNumberAsRaw())
	require.NoError(t, err)
	out, err := Write(doc)
	require.NoError(t, err)
	require.Equal(t, "123.4500", string(out))
}

func TestWriteRejectsNaNByDefault(t *testing.T) {
	d := NewMutDoc()
	root := d.NewReal(nanValue())
	d.SetRoot(root)
	_, err := Write(d)
	require.Error(t, err)
}

func TestWriteAllowsNaNWhenOptedIn(t *testing.T) {
	d := NewMutDoc()
	root := d.NewReal(nanValue())
	d.SetRoot(root)
	out, err := Write(d, WithWriteAllowInfAndNaN())
	require.NoError(t, err)
	require.Equal(t, "NaN", string(out))
}

func TestWriteMutDocRoundTrip(t *testing.T) {
	d := NewMutDoc()
	arr := d.NewArray()
	one := d.NewUint(1)
	two := d.NewString("two")
	require.NoError(t, d.ArrAppend(arr, one))
	require.NoError(t, d.ArrAppend(arr, two))
	d.SetRoot(arr)

	out, err := Write(d)
	require.NoError(t, err)
	require.Equal(t, `[1,"two"]`, string(out))
}

func TestDocMutCopyRoundTripsThroughWrite(t *testing.T) {
	doc, err := ReadString(`{"a":1,"b":[true,"x",null]}`)
	require.NoError(t, err)
	mut := DocMutCopy(doc)

	out, err := Write(mut)
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":[true,"x",null]}`, string(out))
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}
