package fastjson

import (
	"errors"
	"fmt"
	"math"
)

// Type is the primary JSON value type. It occupies the low 3 bits of a
// value's tag word.
type Type uint8

const (
	TypeNone Type = iota
	TypeRaw
	TypeNull
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeRaw:
		return "raw"
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	}
	return "invalid"
}

// Subtype refines Type and occupies bits 3-7 of the tag word.
type Subtype uint8

// Subtype values are interpreted relative to their Type: SubFalse/SubTrue
// only apply to TypeBool, SubUint/SubSint/SubReal only to TypeNumber.
const (
	SubNone  Subtype = 0
	SubFalse Subtype = 0
	SubTrue  Subtype = 1

	SubUint Subtype = 0
	SubSint Subtype = 1
	SubReal Subtype = 2
)

const (
	tagTypeBits    = 3
	tagTypeMask    = 1<<tagTypeBits - 1
	tagSubtypeBits = 5
	tagSubtypeMask = 1<<tagSubtypeBits - 1
	tagLenShift    = tagTypeBits + tagSubtypeBits
)

func packTag(t Type, sub Subtype, length uint64) uint64 {
	return uint64(t&tagTypeMask) | uint64(sub&tagSubtypeMask)<<tagTypeBits | length<<tagLenShift
}

func tagType(tag uint64) Type       { return Type(tag & tagTypeMask) }
func tagSubtype(tag uint64) Subtype { return Subtype((tag >> tagTypeBits) & tagSubtypeMask) }
func tagLen(tag uint64) uint64      { return tag >> tagLenShift }

// rawValue is one slot of a Doc's contiguous value arena: a packed tag word
// and a 64-bit payload union (see packTag/Doc for the exact encoding).
type rawValue struct {
	tag     uint64
	payload uint64
}

// Doc is an immutable document produced by Read. All values live in one
// contiguous array; all non-in-situ strings live in a companion byte region.
// A Doc owns its arenas; it has no lifecycle beyond being garbage collected.
type Doc struct {
	values   []rawValue
	strs     []byte // owned string arena (absent in in-situ mode)
	msg      []byte // original input, kept alive for in-situ string pointers
	insitu   bool
	consumed int // bytes of the input consumed to parse the root value
}

// Root returns the document's root value.
func (d *Doc) Root() Val {
	return Val{doc: d, idx: 0}
}

// Consumed returns the byte offset just past the root value: whitespace (and
// comments) before the root are counted, anything after it is not. Under
// WithStopWhenDone this is the length of the parsed prefix. Without it, Read
// accepts only whitespace (and allowed comments) after the root, so Consumed
// equals len(input) unless the input ends with such bytes.
func (d *Doc) Consumed() int { return d.consumed }

// Val is a handle to one value inside a Doc. It is a small, copyable
// (doc pointer, index) pair; it has no lifecycle of its own beyond the Doc.
type Val struct {
	doc *Doc
	idx int
}

func (v Val) raw() rawValue { return v.doc.values[v.idx] }

// Type returns the value's primary type.
func (v Val) Type() Type { return tagType(v.raw().tag) }

// Subtype returns the value's subtype (meaningful for Number and Bool).
func (v Val) Subtype() Subtype { return tagSubtype(v.raw().tag) }

// Len returns the declared length: byte length for strings/raw, element
// count for arrays, key/value-pair count for objects, 0 otherwise.
func (v Val) Len() int { return int(tagLen(v.raw().tag)) }

// IsNull, IsBool, IsNumber, IsString, IsArray, IsObject are convenience type
// predicates mirroring the document model's tagged union.
func (v Val) IsNull() bool   { return v.Type() == TypeNull }
func (v Val) IsBool() bool   { return v.Type() == TypeBool }
func (v Val) IsNumber() bool { return v.Type() == TypeNumber }
func (v Val) IsString() bool { return v.Type() == TypeString || v.Type() == TypeRaw }
func (v Val) IsArray() bool  { return v.Type() == TypeArray }
func (v Val) IsObject() bool { return v.Type() == TypeObject }

// Bool returns the boolean value, or an error if the value is not a bool.
func (v Val) Bool() (bool, error) {
	if v.Type() != TypeBool {
		return false, fmt.Errorf("fastjson: value is %s, not bool", v.Type())
	}
	return v.Subtype() == SubTrue, nil
}

// Uint returns the value as a uint64. Real values convert only if they hold
// an exact, non-negative integral value within range.
func (v Val) Uint() (uint64, error) {
	r := v.raw()
	switch v.Type() {
	case TypeNumber:
		switch v.Subtype() {
		case SubUint:
			return r.payload, nil
		case SubSint:
			i := int64(r.payload)
			if i < 0 {
				return 0, errors.New("fastjson: negative integer cannot convert to uint64")
			}
			return uint64(i), nil
		case SubReal:
			f := math.Float64frombits(r.payload)
			if f < 0 || f >= math.MaxUint64 {
				return 0, errors.New("fastjson: float out of uint64 range")
			}
			if f != math.Trunc(f) {
				return 0, errors.New("fastjson: float is not an integral value")
			}
			return uint64(f), nil
		}
	}
	return 0, fmt.Errorf("fastjson: value is %s, not a number", v.Type())
}

// Int returns the value as an int64.
func (v Val) Int() (int64, error) {
	r := v.raw()
	switch v.Type() {
	case TypeNumber:
		switch v.Subtype() {
		case SubSint:
			return int64(r.payload), nil
		case SubUint:
			if r.payload > math.MaxInt64 {
				return 0, errors.New("fastjson: unsigned integer overflows int64")
			}
			return int64(r.payload), nil
		case SubReal:
			f := math.Float64frombits(r.payload)
			if f < math.MinInt64 || f > math.MaxInt64 {
				return 0, errors.New("fastjson: float out of int64 range")
			}
			return int64(f), nil
		}
	}
	return 0, fmt.Errorf("fastjson: value is %s, not a number", v.Type())
}

// Float returns the value as a float64. Integers are always convertible.
func (v Val) Float() (float64, error) {
	r := v.raw()
	switch v.Type() {
	case TypeNumber:
		switch v.Subtype() {
		case SubReal:
			return math.Float64frombits(r.payload), nil
		case SubUint:
			return float64(r.payload), nil
		case SubSint:
			return float64(int64(r.payload)), nil
		}
	}
	return 0, fmt.Errorf("fastjson: value is %s, not a number", v.Type())
}

// String returns the string value.
func (v Val) String() (string, error) {
	b, err := v.StringBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// StringBytes returns the string value without copying when possible.
func (v Val) StringBytes() ([]byte, error) {
	if !v.IsString() {
		return nil, fmt.Errorf("fastjson: value is %s, not string", v.Type())
	}
	r := v.raw()
	length := tagLen(r.tag)
	if r.payload&stringBufBit != 0 {
		off := r.payload &^ stringBufBit
		if off+length > uint64(len(v.doc.strs)) {
			return nil, errors.New("fastjson: string offset outside string arena")
		}
		return v.doc.strs[off : off+length], nil
	}
	off := r.payload
	if off+length > uint64(len(v.doc.msg)) {
		return nil, errors.New("fastjson: string offset outside message buffer")
	}
	return v.doc.msg[off : off+length], nil
}

// stringBufBit marks a string payload as pointing into the Doc's owned
// string arena rather than the original (in-situ) message buffer.
const stringBufBit = 1 << 63

// spanFrom returns the number of value slots occupied by the subtree rooted
// at idx (1 for scalars, computed via the container's own end payload
// otherwise). This is the "subtree skip" described in spec.md §9.
func (d *Doc) spanFrom(idx int) int {
	r := d.values[idx]
	switch tagType(r.tag) {
	case TypeArray, TypeObject:
		return int(r.payload) - idx + 1
	default:
		return 1
	}
}

// --- construction, used only by the parser (C6) and the mutable-to-
// immutable copy path ---

// appendValue appends one fully-formed scalar slot and returns its index.
func (d *Doc) appendValue(t Type, sub Subtype, length uint64, payload uint64) int {
	idx := len(d.values)
	d.values = append(d.values, rawValue{tag: packTag(t, sub, length), payload: payload})
	return idx
}

// startContainer reserves a slot for an array/object header; its length and
// end-payload are patched in by closeContainer once all children are known.
func (d *Doc) startContainer(t Type) int {
	idx := len(d.values)
	d.values = append(d.values, rawValue{tag: packTag(t, 0, 0)})
	return idx
}

// closeContainer patches header's declared length and end-of-subtree
// payload now that the last child has been appended.
func (d *Doc) closeContainer(header int, length uint64) {
	t := tagType(d.values[header].tag)
	last := len(d.values) - 1
	d.values[header] = rawValue{
		tag:     packTag(t, 0, length),
		payload: uint64(last),
	}
}

// appendString copies s into the document's owned string arena and appends
// a string-typed value slot pointing at it.
func (d *Doc) appendString(t Type, s []byte) int {
	off := len(d.strs)
	d.strs = append(d.strs, s...)
	d.strs = append(d.strs, 0) // NUL terminator, not counted in length
	return d.appendValue(t, 0, uint64(len(s)), stringBufBit|uint64(off))
}

// ArrIter iterates over an array's elements in order.
type ArrIter struct {
	doc  *Doc
	next int
	end  int
}

// ArrIter returns an iterator over the array's elements.
func (v Val) ArrIter() (ArrIter, error) {
	if !v.IsArray() {
		return ArrIter{}, fmt.Errorf("fastjson: value is %s, not array", v.Type())
	}
	r := v.raw()
	return ArrIter{doc: v.doc, next: v.idx + 1, end: int(r.payload) + 1}, nil
}

// Next returns the next element, or ok=false when exhausted.
func (it *ArrIter) Next() (Val, bool) {
	if it.next >= it.end {
		return Val{}, false
	}
	val := Val{doc: it.doc, idx: it.next}
	it.next += it.doc.spanFrom(it.next)
	return val, true
}

// ArrGet returns the i-th element of the array (0-based), walking from the
// start; array elements are not random-access in the contiguous layout.
func (v Val) ArrGet(i int) (Val, error) {
	it, err := v.ArrIter()
	if err != nil {
		return Val{}, err
	}
	for n := 0; ; n++ {
		el, ok := it.Next()
		if !ok {
			return Val{}, fmt.Errorf("fastjson: array index %d out of range", i)
		}
		if n == i {
			return el, nil
		}
	}
}

// ArrGetFirst returns the first element of the array.
func (v Val) ArrGetFirst() (Val, error) { return v.ArrGet(0) }

// ArrGetLast returns the last element of the array.
func (v Val) ArrGetLast() (Val, error) {
	if v.Len() == 0 {
		return Val{}, errors.New("fastjson: array is empty")
	}
	return v.ArrGet(v.Len() - 1)
}

// ObjIter iterates over an object's key/value pairs in order.
type ObjIter struct {
	doc  *Doc
	next int
	end  int
}

// ObjIter returns an iterator over the object's key/value pairs.
func (v Val) ObjIter() (ObjIter, error) {
	if !v.IsObject() {
		return ObjIter{}, fmt.Errorf("fastjson: value is %s, not object", v.Type())
	}
	r := v.raw()
	return ObjIter{doc: v.doc, next: v.idx + 1, end: int(r.payload) + 1}, nil
}

// Next returns the next key (as a string) and value, or ok=false when exhausted.
func (it *ObjIter) Next() (key string, val Val, ok bool) {
	if it.next >= it.end {
		return "", Val{}, false
	}
	keyVal := Val{doc: it.doc, idx: it.next}
	k, err := keyVal.String()
	if err != nil {
		return "", Val{}, false
	}
	it.next++
	val = Val{doc: it.doc, idx: it.next}
	it.next += it.doc.spanFrom(it.next)
	return k, val, true
}

// ObjGet performs a linear search for key; keys are not hashed (spec.md §4.8).
func (v Val) ObjGet(key string) (Val, error) {
	it, err := v.ObjIter()
	if err != nil {
		return Val{}, err
	}
	for {
		k, val, ok := it.Next()
		if !ok {
			return Val{}, fmt.Errorf("fastjson: key %q not found", key)
		}
		if k == key {
			return val, nil
		}
	}
}

// Get walks a chain of object keys, e.g. Get("a", "b") is equivalent to
// ObjGet("a") then ObjGet("b") on the result. It is a convenience over
// repeated ObjGet (see SPEC_FULL.md §5); it does not support array indices
// or JSON Pointer escape syntax.
func (v Val) Get(path ...string) (Val, error) {
	cur := v
	for _, key := range path {
		next, err := cur.ObjGet(key)
		if err != nil {
			return Val{}, err
		}
		cur = next
	}
	return cur, nil
}

// Interface converts the value into native Go types: map[string]interface{},
// []interface{}, string, int64/uint64/float64, bool, or nil.
func (v Val) Interface() (interface{}, error) {
	switch v.Type() {
	case TypeNull:
		return nil, nil
	case TypeBool:
		return v.Bool()
	case TypeString, TypeRaw:
		return v.String()
	case TypeNumber:
		switch v.Subtype() {
		case SubUint:
			return v.Uint()
		case SubSint:
			return v.Int()
		default:
			return v.Float()
		}
	case TypeArray:
		it, _ := v.ArrIter()
		out := make([]interface{}, 0, v.Len())
		for {
			el, ok := it.Next()
			if !ok {
				break
			}
			iv, err := el.Interface()
			if err != nil {
				return nil, err
			}
			out = append(out, iv)
		}
		return out, nil
	case TypeObject:
		it, _ := v.ObjIter()
		out := make(map[string]interface{}, v.Len())
		for {
			k, el, ok := it.Next()
			if !ok {
				break
			}
			iv, err := el.Interface()
			if err != nil {
				return nil, err
			}
			out[k] = iv
		}
		return out, nil
	}
	return nil, fmt.Errorf("fastjson: cannot convert %s to interface", v.Type())
}

// Equals reports structural equality between two values: type/subtype must
// match except that numbers compare by canonical numeric value (uint 3,
// sint 3 and real 3.0 are all equal — see spec.md §9's Open Question), and
// strings compare byte-wise (embedded NULs included).
func Equals(a, b Val) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Type() {
	case TypeNull:
		return true
	case TypeBool:
		return a.Subtype() == b.Subtype()
	case TypeNumber:
		if a.Subtype() == b.Subtype() && a.Subtype() != SubReal {
			return a.raw().payload == b.raw().payload
		}
		af, aerr := canonicalNumber(a)
		bf, berr := canonicalNumber(b)
		if aerr != nil || berr != nil {
			return false
		}
		return af == bf
	case TypeString, TypeRaw:
		ab, aerr := a.StringBytes()
		bb, berr := b.StringBytes()
		if aerr != nil || berr != nil {
			return false
		}
		return string(ab) == string(bb)
	case TypeArray:
		ai, _ := a.ArrIter()
		bi, _ := b.ArrIter()
		for {
			av, aok := ai.Next()
			bv, bok := bi.Next()
			if aok != bok {
				return false
			}
			if !aok {
				return true
			}
			if !Equals(av, bv) {
				return false
			}
		}
	case TypeObject:
		if a.Len() != b.Len() {
			return false
		}
		ai, _ := a.ObjIter()
		for {
			k, av, ok := ai.Next()
			if !ok {
				return true
			}
			bv, err := b.ObjGet(k)
			if err != nil || !Equals(av, bv) {
				return false
			}
		}
	}
	return false
}

// Value is the narrow read interface the serializer (C7) walks. Both Val
// (immutable documents) and MutVal (mutable documents) implement it, so
// Write works identically over either document kind — the "doc_mut_copy
// round trip exercised by write" supplement described in SPEC_FULL.md §5.
type Value interface {
	Type() Type
	Subtype() Subtype
	Len() int
	Bool() (bool, error)
	Uint() (uint64, error)
	Int() (int64, error)
	Float() (float64, error)
	StringBytes() ([]byte, error)
	arrNext() func() (Value, bool)
	objNext() func() (string, Value, bool)
}

// Document is a value tree that can be serialized: *Doc or *MutDoc.
type Document interface {
	root() Value
}

func (d *Doc) root() Value { return d.Root() }

var (
	_ Value    = Val{}
	_ Document = (*Doc)(nil)
)

func (v Val) arrNext() func() (Value, bool) {
	it, err := v.ArrIter()
	if err != nil {
		return func() (Value, bool) { return nil, false }
	}
	return func() (Value, bool) {
		val, ok := it.Next()
		if !ok {
			return nil, false
		}
		return val, true
	}
}

func (v Val) objNext() func() (string, Value, bool) {
	it, err := v.ObjIter()
	if err != nil {
		return func() (string, Value, bool) { return "", nil, false }
	}
	return func() (string, Value, bool) {
		k, val, ok := it.Next()
		if !ok {
			return "", nil, false
		}
		return k, val, true
	}
}

// canonicalNumber extracts a comparable float64 for cross-subtype numeric
// equality. This loses precision above 2^53 the same way a naive float
// comparison would; exact integer equality is checked first to avoid that
// in the common case.
func canonicalNumber(v Val) (float64, error) {
	r := v.raw()
	switch v.Subtype() {
	case SubUint:
		return float64(r.payload), nil
	case SubSint:
		return float64(int64(r.payload)), nil
	case SubReal:
		return math.Float64frombits(r.payload), nil
	}
	return 0, fmt.Errorf("fastjson: unknown number subtype %d", v.Subtype())
}
