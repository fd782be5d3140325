package fastjson

import "math"

// Write serializes doc (a *Doc or *MutDoc; see the Document interface) to
// JSON bytes per the given options. The walk uses an explicit stack of
// frames tracking "what remains to iterate, is this an object" (spec.md
// §4.7) rather than recursing through Go's call stack, mirroring the
// parser's own non-recursive state machine in parser.go.
func Write(doc Document, opts ...WriteOption) ([]byte, error) {
	flags := defaultWriteFlags()
	for _, o := range opts {
		o(&flags)
	}
	w := &writer{flags: flags}
	if err := w.run(doc.root()); err != nil {
		return nil, err
	}
	return w.buf, nil
}

type writer struct {
	buf   []byte
	flags WriteFlags
}

func (w *writer) stringPolicy() escapePolicy {
	return escapePolicy{
		escapeSlash:         w.flags.escapeSlashes,
		escapeUnicode:       w.flags.escapeUnicode,
		allowInvalidUnicode: w.flags.allowInvalidUnicode,
	}
}

func (w *writer) newlineIndent(depth int) {
	w.buf = append(w.buf, '\n')
	for i := 0; i < depth*w.flags.indentWidth; i++ {
		w.buf = append(w.buf, ' ')
	}
}

// sframe is one open container on the walk: an iterator yielding (key,
// value) pairs (key is "" for arrays), whether it is an object, and whether
// the next emitted item is the first (controls comma placement).
type sframe struct {
	iterNext func() (string, Value, bool)
	isObject bool
	first    bool
}

func (w *writer) run(root Value) error {
	var stack []sframe

	emit := func(v Value) error {
		switch v.Type() {
		case TypeArray, TypeObject:
			isObj := v.Type() == TypeObject
			if isObj {
				w.buf = append(w.buf, '{')
			} else {
				w.buf = append(w.buf, '[')
			}
			var iter func() (string, Value, bool)
			if isObj {
				iter = v.objNext()
			} else {
				arrNext := v.arrNext()
				iter = func() (string, Value, bool) {
					val, ok := arrNext()
					return "", val, ok
				}
			}
			stack = append(stack, sframe{iterNext: iter, isObject: isObj, first: true})
			return nil
		default:
			return w.writeScalar(v)
		}
	}

	if err := emit(root); err != nil {
		return err
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		key, val, ok := top.iterNext()
		if !ok {
			depth := len(stack) - 1
			wasEmpty := top.first
			isObject := top.isObject
			stack = stack[:len(stack)-1]
			if w.flags.pretty && !wasEmpty {
				w.newlineIndent(depth)
			}
			if isObject {
				w.buf = append(w.buf, '}')
			} else {
				w.buf = append(w.buf, ']')
			}
			continue
		}
		if !top.first {
			w.buf = append(w.buf, ',')
		}
		top.first = false
		if w.flags.pretty {
			w.newlineIndent(len(stack))
		}
		if top.isObject {
			var werr *Error
			w.buf, werr = writeString(w.buf, []byte(key), w.stringPolicy())
			if werr != nil {
				return werr
			}
			if w.flags.pretty {
				w.buf = append(w.buf, ':', ' ')
			} else {
				w.buf = append(w.buf, ':')
			}
		}
		if err := emit(val); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeScalar(v Value) error {
	switch v.Type() {
	case TypeNull:
		w.buf = append(w.buf, "null"...)
		return nil
	case TypeBool:
		b, err := v.Bool()
		if err != nil {
			return err
		}
		if b {
			w.buf = append(w.buf, "true"...)
		} else {
			w.buf = append(w.buf, "false"...)
		}
		return nil
	case TypeNumber:
		switch v.Subtype() {
		case SubUint:
			u, err := v.Uint()
			if err != nil {
				return err
			}
			w.buf = AppendUint(w.buf, u)
		case SubSint:
			i, err := v.Int()
			if err != nil {
				return err
			}
			w.buf = AppendInt(w.buf, i)
		default:
			f, err := v.Float()
			if err != nil {
				return err
			}
			if (math.IsNaN(f) || math.IsInf(f, 0)) && !w.flags.allowInfAndNaN {
				return newErr(ErrInvalidNumber, 0, "NaN/Inf cannot be written unless allow-inf-and-nan is set")
			}
			b, err := AppendFloat(w.buf, f, w.flags.allowInfAndNaN)
			if err != nil {
				return err
			}
			w.buf = b
		}
		return nil
	case TypeString, TypeRaw:
		sb, err := v.StringBytes()
		if err != nil {
			return newErr(ErrInvalidString, 0, "cannot read string value: %v", err)
		}
		if v.Type() == TypeRaw {
			w.buf = append(w.buf, sb...)
			return nil
		}
		var werr *Error
		w.buf, werr = writeString(w.buf, sb, w.stringPolicy())
		if werr != nil {
			return werr
		}
		return nil
	default:
		return newErr(ErrInvalidParameter, 0, "invalid value type %s in tree", v.Type())
	}
}
