// Package fastjson is a JSON codec built for parse/serialize throughput and
// correct numeric round-tripping. It provides a streaming parser with
// branchless byte classification, a shortest-round-trip float reader/writer,
// a UTF-8 string scanner with escape and surrogate-pair handling, and two
// value-tree representations: an immutable arena-backed Doc produced by
// Read, and a mutable, individually-addressable MutDoc for programmatic
// construction and editing.
package fastjson
