package fastjson

import "github.com/klauspost/cpuid/v2"

// platformStride reports how many bytes the string scanner's ASCII fast
// path should test per block before falling back to a byte-at-a-time scan.
// The teacher dispatches a whole AVX2 vs. generic code path at build time
// based on cpuid.CPU (simdjson_amd64.go / simdjson_other.go's
// SupportedCPU); we have no SIMD here, but widening the block on hosts with
// cheap unaligned wide loads still cuts the number of mask checks on the
// string fast path (spec.md §4.3's "16-byte unrolled per-byte dispatch").
func platformStride() int {
	switch {
	case cpuid.CPU.X64Level() >= 3:
		return 16
	case cpuid.CPU.X64Level() >= 1:
		return 8
	default:
		return 4
	}
}

// blockAllPlain reports whether every byte in b (len(b) == platformStride
// bytes, the caller's responsibility) is plain ASCII for the string fast
// path, via one OR-reduction instead of a per-byte branch.
func blockAllPlain(b []byte) bool {
	var acc uint8
	for _, c := range b {
		acc |= byteClass[c]
	}
	return acc&(clsStringStop|clsNonASCII) == 0
}
