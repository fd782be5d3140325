package fastjson

import (
	"math"
	"strconv"
)

// digitPairs is a 100-entry two-char table: digitPairs[2*n], digitPairs[2*n+1]
// are the ASCII digits of n for n in [0,99]. Integer writing consumes two
// decimal digits at a time through this table instead of one at a time
// through a division-and-mod loop per digit (spec.md §4.5).
var digitPairs = func() (t [200]byte) {
	for n := 0; n < 100; n++ {
		t[2*n] = byte('0' + n/10)
		t[2*n+1] = byte('0' + n%10)
	}
	return
}()

// AppendUint appends the decimal representation of v to dst.
func AppendUint(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	var buf [20]byte
	i := len(buf)
	for v >= 100 {
		q := v / 100
		r := v - q*100
		v = q
		i -= 2
		buf[i], buf[i+1] = digitPairs[r*2], digitPairs[r*2+1]
	}
	if v < 10 {
		i--
		buf[i] = byte('0' + v)
	} else {
		i -= 2
		buf[i], buf[i+1] = digitPairs[v*2], digitPairs[v*2+1]
	}
	return append(dst, buf[i:]...)
}

// AppendInt appends the decimal representation of v to dst.
func AppendInt(dst []byte, v int64) []byte {
	if v >= 0 {
		return AppendUint(dst, uint64(v))
	}
	dst = append(dst, '-')
	if v == math.MinInt64 {
		return append(dst, "9223372036854775808"...)
	}
	return AppendUint(dst, uint64(-v))
}

// AppendFloat appends the shortest decimal representation of f that reads
// back to the identical f64 bit pattern (spec.md §4.5/§8 round-trip
// invariants), in a form that is always valid, re-parseable JSON: a decimal
// point or exponent is always present. NaN/Inf fail unless allowInfNan, in
// which case they are written as the bare literals Infinity/-Infinity/NaN
// (spec.md's allow-inf-and-nan write extension).
func AppendFloat(dst []byte, f float64, allowInfNan bool) ([]byte, error) {
	if math.IsNaN(f) {
		if !allowInfNan {
			return dst, newErr(ErrInvalidNumber, 0, "NaN is not valid JSON")
		}
		return append(dst, "NaN"...), nil
	}
	if math.IsInf(f, 0) {
		if !allowInfNan {
			return dst, newErr(ErrInvalidNumber, 0, "Inf is not valid JSON")
		}
		if f < 0 {
			return append(dst, "-Infinity"...), nil
		}
		return append(dst, "Infinity"...), nil
	}
	neg := math.Signbit(f)
	if neg {
		dst = append(dst, '-')
		f = -f
	}
	if f == 0 {
		return append(dst, "0.0"...), nil
	}

	digits, exp10 := shortestDigits(f)
	return appendFormatted(dst, digits, exp10), nil
}

// shortestDigits returns the shortest round-trip decimal digit string for
// f>0 (no sign, no dot) and the base-10 exponent of its leading digit, i.e.
// f == 0.d1d2...dn * 10^(exp10+1). This delegates the actual Ryu-derived
// shortest-decimal search to strconv.AppendFloat's 'e' mode (see DESIGN.md's
// C5 entry: the teacher's own appendFloat already wraps strconv.AppendFloat
// rather than re-deriving Ryu, and that is the choice we follow here too).
func shortestDigits(f float64) (digits []byte, exp10 int) {
	var buf [32]byte
	out := strconv.AppendFloat(buf[:0], f, 'e', -1, 64)
	// out is "d[.ddd]e±dd"
	ei := indexByte(out, 'e')
	mantissa := out[:ei]
	expPart := out[ei+1:]
	exp, _ := strconv.Atoi(string(expPart))

	digits = make([]byte, 0, len(mantissa)-1)
	for _, c := range mantissa {
		if c != '.' {
			digits = append(digits, byte(c))
		}
	}
	return digits, exp
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == byte(c) {
			return i
		}
	}
	return -1
}

// appendFormatted lays digits/exp10 out per spec.md §4.5 step 4: dot_pos =
// exp10+1 (the decimal point's position relative to the first digit)
// decides between interior-decimal, leading-zero-fraction and scientific
// forms.
func appendFormatted(dst []byte, digits []byte, exp10 int) []byte {
	dotPos := exp10 + 1
	n := len(digits)
	switch {
	case dotPos > 0 && dotPos <= 21:
		if n <= dotPos {
			dst = append(dst, digits...)
			for i := n; i < dotPos; i++ {
				dst = append(dst, '0')
			}
			return append(dst, '.', '0')
		}
		dst = append(dst, digits[:dotPos]...)
		dst = append(dst, '.')
		return append(dst, digits[dotPos:]...)
	case dotPos > -6 && dotPos <= 0:
		dst = append(dst, '0', '.')
		for i := 0; i < -dotPos; i++ {
			dst = append(dst, '0')
		}
		return append(dst, digits...)
	default:
		dst = append(dst, digits[0])
		if n > 1 {
			dst = append(dst, '.')
			dst = append(dst, digits[1:]...)
		}
		dst = append(dst, 'e')
		e := dotPos - 1
		if e < 0 {
			dst = append(dst, '-')
			e = -e
		}
		return AppendUint(dst, uint64(e))
	}
}

// FormatFloat is a convenience wrapper around AppendFloat.
func FormatFloat(f float64, allowInfNan bool) (string, error) {
	b, err := AppendFloat(nil, f, allowInfNan)
	return string(b), err
}
