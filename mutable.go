package fastjson

import (
	"errors"
	"fmt"
	"math"
)

// tailNone marks an empty container's payload: no tail child yet.
const tailNone = ^uint64(0)

// mutNode is one node of a MutDoc: the same packed tag word as an immutable
// rawValue, plus a circular-list sibling pointer instead of the immutable
// layout's contiguous/subtree-skip addressing (spec.md §3 "Mutable
// document"). For containers, payload holds the index of the tail child
// (tail.next is the head); for scalars, payload holds the usual value
// union. Object members are stored as linked (key, value) node pairs: a
// key node's next points directly at its value node, and the value node's
// next points at the following pair's key node (or back to the head key,
// closing the circle, at the last pair) — the same shape yyjson's mutable
// object uses.
type mutNode struct {
	tag     uint64
	payload uint64
	next    int
}

// MutDoc is a mutable document: every value is individually addressable,
// containers are circular singly-linked lists, and strings are copied into
// the document's own arena on insert. It has no lifecycle beyond being
// garbage collected.
type MutDoc struct {
	nodes   []mutNode
	strs    []byte
	rootIdx int
}

// NewMutDoc creates an empty mutable document with no root value set.
func NewMutDoc() *MutDoc {
	return &MutDoc{rootIdx: -1}
}

func (d *MutDoc) newNode(t Type, sub Subtype, length uint64, payload uint64) int {
	idx := len(d.nodes)
	d.nodes = append(d.nodes, mutNode{tag: packTag(t, sub, length), payload: payload, next: -1})
	return idx
}

// NewNull, NewBool, NewUint, NewSint, NewReal, NewString, NewRaw, NewArray
// and NewObject create a new, as-yet-unattached value owned by d.
func (d *MutDoc) NewNull() MutVal { return MutVal{doc: d, idx: d.newNode(TypeNull, SubNone, 0, 0)} }

func (d *MutDoc) NewBool(b bool) MutVal {
	sub := SubFalse
	if b {
		sub = SubTrue
	}
	return MutVal{doc: d, idx: d.newNode(TypeBool, sub, 0, 0)}
}

func (d *MutDoc) NewUint(v uint64) MutVal {
	return MutVal{doc: d, idx: d.newNode(TypeNumber, SubUint, 0, v)}
}

func (d *MutDoc) NewSint(v int64) MutVal {
	return MutVal{doc: d, idx: d.newNode(TypeNumber, SubSint, 0, uint64(v))}
}

func (d *MutDoc) NewReal(v float64) MutVal {
	return MutVal{doc: d, idx: d.newNode(TypeNumber, SubReal, 0, math.Float64bits(v))}
}

func (d *MutDoc) newStringLike(t Type, s string) MutVal {
	off := len(d.strs)
	d.strs = append(d.strs, s...)
	d.strs = append(d.strs, 0)
	return MutVal{doc: d, idx: d.newNode(t, SubNone, uint64(len(s)), uint64(off))}
}

func (d *MutDoc) NewString(s string) MutVal { return d.newStringLike(TypeString, s) }
func (d *MutDoc) NewRaw(s string) MutVal    { return d.newStringLike(TypeRaw, s) }

func (d *MutDoc) NewArray() MutVal  { return MutVal{doc: d, idx: d.newNode(TypeArray, 0, 0, tailNone)} }
func (d *MutDoc) NewObject() MutVal { return MutVal{doc: d, idx: d.newNode(TypeObject, 0, 0, tailNone)} }

// SetRoot makes v the document's root value.
func (d *MutDoc) SetRoot(v MutVal) {
	if v.doc != d {
		panic("fastjson: SetRoot with a value from a different MutDoc")
	}
	d.rootIdx = v.idx
}

// Root returns the document's root value.
func (d *MutDoc) Root() MutVal {
	if d.rootIdx < 0 {
		return MutVal{doc: d, idx: -1}
	}
	return MutVal{doc: d, idx: d.rootIdx}
}

func (d *MutDoc) root() Value { return d.Root() }

// ArrAppend appends child to the end of container's element list in O(1).
func (d *MutDoc) ArrAppend(container, child MutVal) error {
	if container.Type() != TypeArray {
		return fmt.Errorf("fastjson: ArrAppend target is %s, not array", container.Type())
	}
	node := &d.nodes[container.idx]
	childNode := &d.nodes[child.idx]
	if node.payload == tailNone {
		childNode.next = child.idx
	} else {
		tailNode := &d.nodes[node.payload]
		head := tailNode.next
		childNode.next = head
		tailNode.next = child.idx
	}
	node.payload = uint64(child.idx)
	node.tag = packTag(TypeArray, 0, tagLen(node.tag)+1)
	return nil
}

// ObjAppend appends a (key, val) member to the end of container's member
// list in O(1). Duplicate keys are permitted (matching spec.md §4.8's
// linear-search obj_get, which returns the first match).
func (d *MutDoc) ObjAppend(container MutVal, key string, val MutVal) error {
	if container.Type() != TypeObject {
		return fmt.Errorf("fastjson: ObjAppend target is %s, not object", container.Type())
	}
	keyVal := d.NewString(key)
	node := &d.nodes[container.idx]
	keyNode := &d.nodes[keyVal.idx]
	valNode := &d.nodes[val.idx]
	keyNode.next = val.idx
	if node.payload == tailNone {
		valNode.next = keyVal.idx
	} else {
		tailNode := &d.nodes[node.payload]
		headKey := tailNode.next
		valNode.next = headKey
		tailNode.next = keyVal.idx
	}
	node.payload = uint64(val.idx)
	node.tag = packTag(TypeObject, 0, tagLen(node.tag)+1)
	return nil
}

// MutVal is a handle to one value inside a MutDoc.
type MutVal struct {
	doc *MutDoc
	idx int
}

func (v MutVal) raw() mutNode { return v.doc.nodes[v.idx] }

func (v MutVal) Type() Type       { return tagType(v.raw().tag) }
func (v MutVal) Subtype() Subtype { return tagSubtype(v.raw().tag) }
func (v MutVal) Len() int         { return int(tagLen(v.raw().tag)) }

func (v MutVal) IsNull() bool   { return v.Type() == TypeNull }
func (v MutVal) IsBool() bool   { return v.Type() == TypeBool }
func (v MutVal) IsNumber() bool { return v.Type() == TypeNumber }
func (v MutVal) IsString() bool { return v.Type() == TypeString || v.Type() == TypeRaw }
func (v MutVal) IsArray() bool  { return v.Type() == TypeArray }
func (v MutVal) IsObject() bool { return v.Type() == TypeObject }

func (v MutVal) Bool() (bool, error) {
	if v.Type() != TypeBool {
		return false, fmt.Errorf("fastjson: value is %s, not bool", v.Type())
	}
	return v.Subtype() == SubTrue, nil
}

func (v MutVal) Uint() (uint64, error) {
	r := v.raw()
	if v.Type() != TypeNumber {
		return 0, fmt.Errorf("fastjson: value is %s, not a number", v.Type())
	}
	switch v.Subtype() {
	case SubUint:
		return r.payload, nil
	case SubSint:
		i := int64(r.payload)
		if i < 0 {
			return 0, errors.New("fastjson: negative integer cannot convert to uint64")
		}
		return uint64(i), nil
	default:
		f := math.Float64frombits(r.payload)
		if f < 0 || f > math.MaxUint64 {
			return 0, errors.New("fastjson: float out of uint64 range")
		}
		return uint64(f), nil
	}
}

func (v MutVal) Int() (int64, error) {
	r := v.raw()
	if v.Type() != TypeNumber {
		return 0, fmt.Errorf("fastjson: value is %s, not a number", v.Type())
	}
	switch v.Subtype() {
	case SubSint:
		return int64(r.payload), nil
	case SubUint:
		if r.payload > math.MaxInt64 {
			return 0, errors.New("fastjson: unsigned integer overflows int64")
		}
		return int64(r.payload), nil
	default:
		f := math.Float64frombits(r.payload)
		if f < math.MinInt64 || f > math.MaxInt64 {
			return 0, errors.New("fastjson: float out of int64 range")
		}
		return int64(f), nil
	}
}

func (v MutVal) Float() (float64, error) {
	r := v.raw()
	if v.Type() != TypeNumber {
		return 0, fmt.Errorf("fastjson: value is %s, not a number", v.Type())
	}
	switch v.Subtype() {
	case SubReal:
		return math.Float64frombits(r.payload), nil
	case SubUint:
		return float64(r.payload), nil
	default:
		return float64(int64(r.payload)), nil
	}
}

func (v MutVal) StringBytes() ([]byte, error) {
	if !v.IsString() {
		return nil, fmt.Errorf("fastjson: value is %s, not string", v.Type())
	}
	r := v.raw()
	length := tagLen(r.tag)
	if r.payload+length > uint64(len(v.doc.strs)) {
		return nil, errors.New("fastjson: string offset outside string arena")
	}
	return v.doc.strs[r.payload : r.payload+length], nil
}

func (v MutVal) String() (string, error) {
	b, err := v.StringBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MutArrIter iterates over a mutable array's elements in insertion order.
type MutArrIter struct {
	doc       *MutDoc
	cur       int
	remaining int
}

func (v MutVal) ArrIter() (MutArrIter, error) {
	if !v.IsArray() {
		return MutArrIter{}, fmt.Errorf("fastjson: value is %s, not array", v.Type())
	}
	if v.Len() == 0 {
		return MutArrIter{doc: v.doc, cur: -1}, nil
	}
	tail := v.raw().payload
	head := v.doc.nodes[tail].next
	return MutArrIter{doc: v.doc, cur: head, remaining: v.Len()}, nil
}

func (it *MutArrIter) Next() (MutVal, bool) {
	if it.remaining <= 0 {
		return MutVal{}, false
	}
	cur := it.cur
	it.cur = it.doc.nodes[cur].next
	it.remaining--
	return MutVal{doc: it.doc, idx: cur}, true
}

// MutObjIter iterates over a mutable object's (key, value) members in
// insertion order.
type MutObjIter struct {
	doc       *MutDoc
	curKey    int
	remaining int
}

func (v MutVal) ObjIter() (MutObjIter, error) {
	if !v.IsObject() {
		return MutObjIter{}, fmt.Errorf("fastjson: value is %s, not object", v.Type())
	}
	if v.Len() == 0 {
		return MutObjIter{doc: v.doc, curKey: -1}, nil
	}
	tailVal := v.raw().payload
	headKey := v.doc.nodes[tailVal].next
	return MutObjIter{doc: v.doc, curKey: headKey, remaining: v.Len()}, nil
}

func (it *MutObjIter) Next() (key string, val MutVal, ok bool) {
	if it.remaining <= 0 {
		return "", MutVal{}, false
	}
	keyIdx := it.curKey
	valIdx := it.doc.nodes[keyIdx].next
	it.curKey = it.doc.nodes[valIdx].next
	it.remaining--
	k, _ := MutVal{doc: it.doc, idx: keyIdx}.String()
	return k, MutVal{doc: it.doc, idx: valIdx}, true
}

// ObjGet performs a linear search for key (spec.md §4.8; keys are not hashed).
func (v MutVal) ObjGet(key string) (MutVal, error) {
	it, err := v.ObjIter()
	if err != nil {
		return MutVal{}, err
	}
	for {
		k, val, ok := it.Next()
		if !ok {
			return MutVal{}, fmt.Errorf("fastjson: key %q not found", key)
		}
		if k == key {
			return val, nil
		}
	}
}

func (v MutVal) arrNext() func() (Value, bool) {
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

func (v MutVal) objNext() func() (string, Value, bool) {
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

// ValMutCopy deep-copies an immutable value (and its subtree) into dst,
// allocating strings into dst's own arena (spec.md §4.8 "val_mut_copy").
func ValMutCopy(dst *MutDoc, v Val) MutVal {
	switch v.Type() {
	case TypeNull:
		return dst.NewNull()
	case TypeBool:
		b, _ := v.Bool()
		return dst.NewBool(b)
	case TypeNumber:
		switch v.Subtype() {
		case SubUint:
			u, _ := v.Uint()
			return dst.NewUint(u)
		case SubSint:
			i, _ := v.Int()
			return dst.NewSint(i)
		default:
			f, _ := v.Float()
			return dst.NewReal(f)
		}
	case TypeRaw:
		s, _ := v.StringBytes()
		return dst.NewRaw(string(s))
	case TypeString:
		s, _ := v.StringBytes()
		return dst.NewString(string(s))
	case TypeArray:
		arr := dst.NewArray()
		it, _ := v.ArrIter()
		for {
			el, ok := it.Next()
			if !ok {
				break
			}
			_ = dst.ArrAppend(arr, ValMutCopy(dst, el))
		}
		return arr
	case TypeObject:
		obj := dst.NewObject()
		it, _ := v.ObjIter()
		for {
			k, el, ok := it.Next()
			if !ok {
				break
			}
			_ = dst.ObjAppend(obj, k, ValMutCopy(dst, el))
		}
		return obj
	}
	return dst.NewNull()
}

var (
	_ Value    = MutVal{}
	_ Document = (*MutDoc)(nil)
)

// DocMutCopy deep-copies an entire immutable document into a fresh MutDoc
// (spec.md §3 "Mutable document ... produced by doc_mut_copy").
func DocMutCopy(src *Doc) *MutDoc {
	dst := NewMutDoc()
	root := ValMutCopy(dst, src.Root())
	dst.SetRoot(root)
	return dst
}
