package listing

import (
	"context"

	"github.com/kbukum/ghusers/errors"
)

// PageSource walks the pages of one query forward. It owns the pagination
// state of a run and is not safe for concurrent use.
type PageSource struct {
	api API

	started bool
	next    Cursor
	pages   int
}

// NewPageSource creates a source that reads from api.
func NewPageSource(api API) *PageSource {
	return &PageSource{api: api}
}

// Start fetches the first page of mode. It may be called once.
func (s *PageSource) Start(ctx context.Context, mode Mode) (Page, error) {
	if s.started {
		return Page{}, errors.Protocol("page source already started")
	}
	s.started = true

	page, cursor, err := s.api.Fetch(ctx, mode)
	if err != nil {
		return Page{}, err
	}
	s.next = cursor
	s.pages++
	return page, nil
}

// HasNext reports whether another page is available. It does not fetch.
func (s *PageSource) HasNext() bool {
	return s.started && s.next != ""
}

// Next fetches the following page. Calling it when HasNext is false is a
// protocol error.
func (s *PageSource) Next(ctx context.Context) (Page, error) {
	if !s.started {
		return Page{}, errors.Protocol("next page requested before start")
	}
	if s.next == "" {
		return Page{}, errors.Protocol("next page requested but none is available")
	}

	page, cursor, err := s.api.FetchNext(ctx, s.next)
	if err != nil {
		return Page{}, err
	}
	s.next = cursor
	s.pages++
	return page, nil
}

// Pages returns the number of pages fetched so far.
func (s *PageSource) Pages() int {
	return s.pages
}
