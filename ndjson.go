package fastjson

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NDResult is one parsed record from ParseNDStream.
type NDResult struct {
	Doc  *Doc
	Err  error
	Line int
}

// ParseNDStream parses newline-delimited JSON records from r, one at a
// time, streaming results over the returned channel as they are read. A
// single producer goroutine drives the scan; the channel is closed once r
// is exhausted or returns an error. This mirrors the teacher's own
// goroutine+channel ParseNDStream (simdjson.go) rather than the bounded
// worker pool below, since a single growing input has no independent units
// of work to fan out across.
func ParseNDStream(r io.Reader, opts ...ReadOption) <-chan NDResult {
	out := make(chan NDResult)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), 64<<20)
		line := 0
		for sc.Scan() {
			line++
			text := bytes.TrimSpace(sc.Bytes())
			if len(text) == 0 {
				continue
			}
			buf := make([]byte, len(text))
			copy(buf, text)
			doc, err := Read(buf, opts...)
			out <- NDResult{Doc: doc, Err: err, Line: line}
		}
		if err := sc.Err(); err != nil {
			out <- NDResult{Err: err, Line: line + 1}
		}
	}()
	return out
}

// ParseNDConcurrent parses a batch of independent JSON records across a
// bounded worker pool, collecting errors with errgroup.Group the way
// jonjohnsonjr-targz and rpcpool-yellowstone-faithful both use errgroup for
// bounded fan-out in the wider pack. workers <= 0 defaults to GOMAXPROCS.
// Results preserve the input order. A failure cancels nothing: every record
// is still parsed, and the first error is returned without any documents.
func ParseNDConcurrent(records [][]byte, workers int, opts ...ReadOption) ([]*Doc, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	docs := make([]*Doc, len(records))
	g := new(errgroup.Group)
	sem := make(chan struct{}, workers)

	for i, rec := range records {
		i, rec := i, rec
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			doc, err := Read(rec, opts...)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
