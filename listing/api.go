package listing

import "context"

// API is the remote listing service. An empty returned Cursor means there
// is no further page.
type API interface {
	// Fetch requests the first page for mode.
	Fetch(ctx context.Context, mode Mode) (Page, Cursor, error)
	// FetchNext requests the page identified by cursor.
	FetchNext(ctx context.Context, cursor Cursor) (Page, Cursor, error)
}
