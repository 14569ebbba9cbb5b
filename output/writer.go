package output

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/kbukum/ghusers/listing"
)

// Format selects how a Record is rendered.
type Format int

const (
	// FormatLogin writes the login alone.
	FormatLogin Format = iota
	// FormatIDLogin writes "id,login".
	FormatIDLogin
)

// LineWriter is a listing.Sink writing one Record per line. Each line is
// written as soon as its Record arrives.
type LineWriter struct {
	w      io.Writer
	format Format
	n      int
}

var _ listing.Sink = (*LineWriter)(nil)

// NewLineWriter creates a writer rendering Records to w in format.
func NewLineWriter(w io.Writer, format Format) *LineWriter {
	return &LineWriter{w: w, format: format}
}

// Write renders r.
func (lw *LineWriter) Write(_ context.Context, r listing.Record) error {
	line := r.Login
	if lw.format == FormatIDLogin {
		line = strconv.FormatInt(r.ID, 10) + "," + r.Login
	}
	if _, err := io.WriteString(lw.w, line+"\n"); err != nil {
		return fmt.Errorf("write record %d: %w", r.ID, err)
	}
	lw.n++
	return nil
}

// Lines returns the number of lines written.
func (lw *LineWriter) Lines() int {
	return lw.n
}
