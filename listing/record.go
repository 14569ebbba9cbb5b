package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one user returned by the listing API.
type Record struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// EntryKind tags the shape of a raw page entry.
type EntryKind int

const (
	// EntryRecord is a single record-shaped object.
	EntryRecord EntryKind = iota
	// EntryGroup is a list of record-shaped objects.
	EntryGroup
	// EntryMalformed is anything else.
	EntryMalformed
)

func (k EntryKind) String() string {
	switch k {
	case EntryRecord:
		return "record"
	case EntryGroup:
		return "group"
	default:
		return "malformed"
	}
}

// Entry is one classified element of a page.
type Entry struct {
	Kind   EntryKind
	Record Record
	Group  []Record
	// Raw and Reason describe a malformed entry.
	Raw    json.RawMessage
	Reason string
}

// RecordEntry wraps a single record.
func RecordEntry(r Record) Entry {
	return Entry{Kind: EntryRecord, Record: r}
}

// GroupEntry wraps a nested list of records.
func GroupEntry(rs ...Record) Entry {
	return Entry{Kind: EntryGroup, Group: rs}
}

// MalformedEntry marks raw as uninterpretable.
func MalformedEntry(raw json.RawMessage, reason string) Entry {
	return Entry{Kind: EntryMalformed, Raw: raw, Reason: reason}
}

// Page is the ordered batch of entries returned by one API call.
type Page struct {
	Entries []Entry
}

// Cursor identifies the next page. The zero value means there is none.
type Cursor string

// DecodePage classifies each raw item of a page.
func DecodePage(items []json.RawMessage) Page {
	entries := make([]Entry, len(items))
	for i, raw := range items {
		entries[i] = ClassifyEntry(raw)
	}
	return Page{Entries: entries}
}

// ClassifyEntry decides the shape of a raw entry. An object with a numeric
// id and a string login is a record; an array of such objects is a group.
// Only one level of nesting is accepted.
func ClassifyEntry(raw json.RawMessage) Entry {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return MalformedEntry(raw, "empty entry")
	}

	switch trimmed[0] {
	case '{':
		r, err := decodeRecord(trimmed)
		if err != nil {
			return MalformedEntry(raw, err.Error())
		}
		return RecordEntry(r)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return MalformedEntry(raw, "invalid group: "+err.Error())
		}
		group := make([]Record, 0, len(items))
		for i, item := range items {
			item = bytes.TrimSpace(item)
			if len(item) == 0 || item[0] != '{' {
				return MalformedEntry(raw, fmt.Sprintf("group item %d is not an object", i))
			}
			r, err := decodeRecord(item)
			if err != nil {
				return MalformedEntry(raw, fmt.Sprintf("group item %d: %v", i, err))
			}
			group = append(group, r)
		}
		return GroupEntry(group...)
	default:
		return MalformedEntry(raw, "entry is neither an object nor a list")
	}
}

func decodeRecord(data []byte) (Record, error) {
	var probe struct {
		ID    *int64  `json:"id"`
		Login *string `json:"login"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Record{}, fmt.Errorf("invalid record: %w", err)
	}
	if probe.ID == nil {
		return Record{}, fmt.Errorf("record has no id")
	}
	if probe.Login == nil {
		return Record{}, fmt.Errorf("record has no login")
	}
	return Record{ID: *probe.ID, Login: *probe.Login}, nil
}
