package fastjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValTypeAccessorErrors(t *testing.T) {
	doc, err := ReadString(`"a string"`)
	require.NoError(t, err)
	root := doc.Root()

	_, err = root.Bool()
	require.Error(t, err)
	_, err = root.Uint()
	require.Error(t, err)
	_, err = root.Int()
	require.Error(t, err)
	_, err = root.Float()
	require.Error(t, err)
}

func TestValUintFromNegativeSintFails(t *testing.T) {
	doc, err := ReadString(`-1`)
	require.NoError(t, err)
	_, err = doc.Root().Uint()
	require.Error(t, err)
}

func TestValIntFromOverflowingUintFails(t *testing.T) {
	doc, err := ReadString(`18446744073709551615`) // math.MaxUint64
	require.NoError(t, err)
	_, err = doc.Root().Int()
	require.Error(t, err)
}

func TestValFloatAcceptsIntegerSubtypes(t *testing.T) {
	doc, err := ReadString(`[1, -1]`)
	require.NoError(t, err)
	a, _ := doc.Root().ArrGet(0)
	f, err := a.Float()
	require.NoError(t, err)
	require.Equal(t, 1.0, f)

	b, _ := doc.Root().ArrGet(1)
	f, err = b.Float()
	require.NoError(t, err)
	require.Equal(t, -1.0, f)
}

func TestArrGetFirstAndLast(t *testing.T) {
	doc, err := ReadString(`[10,20,30]`)
	require.NoError(t, err)
	first, err := doc.Root().ArrGetFirst()
	require.NoError(t, err)
	fv, _ := first.Int()
	require.Equal(t, int64(10), fv)

	last, err := doc.Root().ArrGetLast()
	require.NoError(t, err)
	lv, _ := last.Int()
	require.Equal(t, int64(30), lv)
}

func TestArrGetLastOnEmptyArrayFails(t *testing.T) {
	doc, err := ReadString(`[]`)
	require.NoError(t, err)
	_, err = doc.Root().ArrGetLast()
	require.Error(t, err)
}

func TestArrGetOutOfRangeFails(t *testing.T) {
	doc, err := ReadString(`[1,2]`)
	require.NoError(t, err)
	_, err = doc.Root().ArrGet(5)
	require.Error(t, err)
}

func TestObjGetMissingKeyFails(t *testing.T) {
	doc, err := ReadString(`{"a":1}`)
	require.NoError(t, err)
	_, err = doc.Root().ObjGet("missing")
	require.Error(t, err)
}

func TestInterfaceConversion(t *testing.T) {
	doc, err := ReadString(`{"a":1,"b":[true,null,"x"],"c":2.5}`)
	require.NoError(t, err)
	iv, err := doc.Root().Interface()
	require.NoError(t, err)
	m, ok := iv.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, uint64(1), m["a"])
	require.Equal(t, 2.5, m["c"])

	arr, ok := m["b"].([]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{true, nil, "x"}, arr)
}

func TestEqualsStructural(t *testing.T) {
	a, err := ReadString(`{"a":1,"b":[1,2]}`)
	require.NoError(t, err)
	b, err := ReadString(`{"a":1,"b":[1,2]}`)
	require.NoError(t, err)
	require.True(t, Equals(a.Root(), b.Root()))

	c, err := ReadString(`{"a":1,"b":[1,3]}`)
	require.NoError(t, err)
	require.False(t, Equals(a.Root(), c.Root()))
}

func TestEqualsObjectOrderIndependent(t *testing.T) {
	a, err := ReadString(`{"a":1,"b":2}`)
	require.NoError(t, err)
	b, err := ReadString(`{"b":2,"a":1}`)
	require.NoError(t, err)
	require.True(t, Equals(a.Root(), b.Root()))
}

func TestEqualsDifferentTypesFalse(t *testing.T) {
	a, err := ReadString(`1`)
	require.NoError(t, err)
	b, err := ReadString(`"1"`)
	require.NoError(t, err)
	require.False(t, Equals(a.Root(), b.Root()))
}
