package listing

import "strconv"

// ModeKind is the query strategy of a run.
type ModeKind int

const (
	ModeEnumerate ModeKind = iota
	ModeSearch
)

func (k ModeKind) String() string {
	if k == ModeSearch {
		return "search"
	}
	return "enumerate"
}

// Mode selects what the first request asks for. It is fixed for a run.
type Mode struct {
	kind        ModeKind
	lastSeenID  int64
	hasLastSeen bool
	keyword     string
}

// EnumerateAll lists from the first record.
func EnumerateAll() Mode {
	return Mode{kind: ModeEnumerate}
}

// EnumerateFrom lists records after lastSeenID.
func EnumerateFrom(lastSeenID int64) Mode {
	return Mode{kind: ModeEnumerate, lastSeenID: lastSeenID, hasLastSeen: true}
}

// SearchByKeyword lists records matching keyword.
func SearchByKeyword(keyword string) Mode {
	return Mode{kind: ModeSearch, keyword: keyword}
}

// Kind returns the query strategy.
func (m Mode) Kind() ModeKind { return m.kind }

// LastSeenID returns the enumeration start and whether one was set.
func (m Mode) LastSeenID() (int64, bool) { return m.lastSeenID, m.hasLastSeen }

// Keyword returns the search keyword.
func (m Mode) Keyword() string { return m.keyword }

func (m Mode) String() string {
	switch {
	case m.kind == ModeSearch:
		return "search(" + strconv.Quote(m.keyword) + ")"
	case m.hasLastSeen:
		return "enumerate(after " + strconv.FormatInt(m.lastSeenID, 10) + ")"
	default:
		return "enumerate"
	}
}
