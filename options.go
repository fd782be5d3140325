package fastjson

// ReadFlags controls parser behaviour (spec.md §4.6/§6). The zero value is
// strict RFC 8259 JSON with no extensions.
type ReadFlags struct {
	insitu              bool
	stopWhenDone        bool
	allowTrailingCommas bool
	allowComments       bool
	allowInfAndNaN      bool
	allowInvalidUnicode bool
	numberAsRaw         bool
	bignumAsRaw         bool
	fastFP              bool
	maxDepth            int
	allocator           Allocator
}

// ReadOption configures a Read call.
type ReadOption func(*ReadFlags)

// WithInsitu decodes in place: the input buffer is mutated, strings point
// back into it, and the caller's buffer must have 4 bytes of spare capacity
// past len(buf) for Read to write its zero padding into.
func WithInsitu() ReadOption { return func(f *ReadFlags) { f.insitu = true } }

// WithStopWhenDone disables the trailing-content check after the root value,
// letting the caller parse one value from a longer buffer.
func WithStopWhenDone() ReadOption { return func(f *ReadFlags) { f.stopWhenDone = true } }

// WithAllowTrailingCommas tolerates one comma before a closing ] or }.
func WithAllowTrailingCommas() ReadOption {
	return func(f *ReadFlags) { f.allowTrailingCommas = true }
}

// WithAllowComments tolerates // line comments and /* block */ comments
// between tokens.
func WithAllowComments() ReadOption { return func(f *ReadFlags) { f.allowComments = true } }

// WithAllowInfAndNaN accepts case-insensitive Infinity/Inf/NaN literals and
// lets numeric overflow produce infinity instead of failing.
func WithAllowInfAndNaN() ReadOption { return func(f *ReadFlags) { f.allowInfAndNaN = true } }

// WithAllowInvalidUnicode accepts malformed UTF-8 and unpaired surrogates in
// strings, substituting U+FFFD.
func WithAllowInvalidUnicode() ReadOption {
	return func(f *ReadFlags) { f.allowInvalidUnicode = true }
}

// WithNumberAsRaw keeps every number as an unconverted raw slice.
func WithNumberAsRaw() ReadOption { return func(f *ReadFlags) { f.numberAsRaw = true } }

// WithBignumAsRaw keeps integers that overflow i64/u64 as raw slices,
// converting everything else normally. A real that overflows to infinity is
// kept raw only together with WithAllowInfAndNaN; without it, such a number
// fails with ErrInvalidNumber.
func WithBignumAsRaw() ReadOption { return func(f *ReadFlags) { f.bignumAsRaw = true } }

// WithFastFP selects the faster, possibly-2-ulp-off real conversion in place
// of the exact/arbitrary-precision path.
func WithFastFP() ReadOption { return func(f *ReadFlags) { f.fastFP = true } }

// WithMaxDepth sets a container nesting limit; 0 (the default) means
// unlimited. Exceeding it fails with ErrExceedDepth.
func WithMaxDepth(n int) ReadOption { return func(f *ReadFlags) { f.maxDepth = n } }

// WithAllocator supplies the allocator used for the document's string arena
// (the value arena itself is a plain Go slice; see DESIGN.md's C2 entry).
func WithAllocator(a Allocator) ReadOption { return func(f *ReadFlags) { f.allocator = a } }

// WriteFlags controls serializer behaviour (spec.md §6, §4.7).
type WriteFlags struct {
	pretty              bool
	indentWidth         int
	escapeSlashes       bool
	escapeUnicode       bool
	allowInfAndNaN      bool
	allowInvalidUnicode bool
}

// WriteOption configures a Write call.
type WriteOption func(*WriteFlags)

// WithPretty enables indented output with the given indent width (2 or 4
// spaces are the conventional choices; any positive width is accepted).
func WithPretty(indentWidth int) WriteOption {
	return func(f *WriteFlags) {
		f.pretty = true
		if indentWidth > 0 {
			f.indentWidth = indentWidth
		}
	}
}

// WithEscapeSlashes escapes '/' as "\/".
func WithEscapeSlashes() WriteOption { return func(f *WriteFlags) { f.escapeSlashes = true } }

// WithEscapeUnicode escapes all non-ASCII as \uXXXX (surrogate pairs for
// non-BMP code points) instead of emitting raw UTF-8.
func WithEscapeUnicode() WriteOption { return func(f *WriteFlags) { f.escapeUnicode = true } }

// WithWriteAllowInfAndNaN permits writing NaN/Infinity/-Infinity as bare
// (non-standard) literals instead of failing.
func WithWriteAllowInfAndNaN() WriteOption {
	return func(f *WriteFlags) { f.allowInfAndNaN = true }
}

// WithWriteAllowInvalidUnicode permits serializing strings containing
// malformed UTF-8, substituting U+FFFD (written as its six-byte ASCII
// escape, not as raw UTF-8, under WithEscapeUnicode).
func WithWriteAllowInvalidUnicode() WriteOption {
	return func(f *WriteFlags) { f.allowInvalidUnicode = true }
}

func defaultReadFlags() ReadFlags {
	return ReadFlags{maxDepth: 0}
}

func defaultWriteFlags() WriteFlags {
	return WriteFlags{indentWidth: 2}
}
