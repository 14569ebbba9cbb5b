package listing

import "github.com/kbukum/ghusers/validation"

// Params are the invocation parameters of a run. Zero means absent for
// every numeric field.
type Params struct {
	// StartID is the first id to list (enumerate mode).
	StartID int64 `json:"from" validate:"gte=0"`
	// StopID is the last id to list.
	StopID int64 `json:"to" validate:"omitempty,gte=0,gtfield=StartID"`
	// MaxCount bounds the number of Records written.
	MaxCount int64 `json:"num" validate:"gte=0"`
	// Search selects search mode when non-empty.
	Search string `json:"search"`
}

// Validate checks the parameters, reporting every invalid field at once.
func (p Params) Validate() error {
	return validation.Validate(p)
}

// Mode derives the query mode. Enumeration resumes after StartID-1 so that
// StartID itself is included.
func (p Params) Mode() Mode {
	if p.Search != "" {
		return SearchByKeyword(p.Search)
	}
	if p.StartID > 1 {
		return EnumerateFrom(p.StartID - 1)
	}
	return EnumerateAll()
}
