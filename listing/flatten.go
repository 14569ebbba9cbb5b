package listing

import (
	"context"

	"github.com/kbukum/ghusers/errors"
	"github.com/kbukum/ghusers/pipeline"
)

// Flatten streams the Records of every page src produces for mode. The
// first page is requested on the first pull.
func Flatten(src *PageSource, mode Mode) *pipeline.Pipeline[Record] {
	pages := pipeline.From[Page](&pageIter{src: src, mode: mode})
	entries := pipeline.FlatMap(pages, func(_ context.Context, p Page) (pipeline.Iterator[Entry], error) {
		return pipeline.SliceIter(p.Entries), nil
	})
	return pipeline.FlatMap(entries, expandEntry)
}

// LimitCount yields at most n Records. n <= 0 disables the limit.
func LimitCount(p *pipeline.Pipeline[Record], n int64) *pipeline.Pipeline[Record] {
	return pipeline.Take(p, n)
}

// TakeThroughID yields Records while their ID is at most maxID and stops at
// the first one above it. maxID <= 0 disables the threshold.
func TakeThroughID(p *pipeline.Pipeline[Record], maxID int64) *pipeline.Pipeline[Record] {
	if maxID <= 0 {
		return p
	}
	return pipeline.TakeWhile(p, func(r Record) bool { return r.ID <= maxID })
}

func expandEntry(_ context.Context, e Entry) (pipeline.Iterator[Record], error) {
	switch e.Kind {
	case EntryRecord:
		return pipeline.SliceIter([]Record{e.Record}), nil
	case EntryGroup:
		return pipeline.SliceIter(e.Group), nil
	default:
		return nil, errors.Protocolf("malformed page entry: %s", e.Reason).
			WithDetail("entry", truncate(string(e.Raw), 120))
	}
}

// pageIter adapts a PageSource to the pull protocol.
type pageIter struct {
	src     *PageSource
	mode    Mode
	started bool
	failed  bool
}

func (it *pageIter) Next(ctx context.Context) (Page, bool, error) {
	if it.failed {
		return Page{}, false, nil
	}
	var (
		page Page
		err  error
	)
	switch {
	case !it.started:
		it.started = true
		page, err = it.src.Start(ctx, it.mode)
	case it.src.HasNext():
		page, err = it.src.Next(ctx)
	default:
		return Page{}, false, nil
	}
	if err != nil {
		it.failed = true
		return Page{}, false, err
	}
	return page, true, nil
}

func (it *pageIter) Close() error { return nil }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
