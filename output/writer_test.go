package output

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/ghusers/listing"
)

func TestLineWriter(t *testing.T) {
	records := []listing.Record{{ID: 1, Login: "mojombo"}, {ID: 2, Login: "defunkt"}}
	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{"login", FormatLogin, "mojombo\ndefunkt\n"},
		{"id and login", FormatIDLogin, "1,mojombo\n2,defunkt\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewLineWriter(&buf, tc.format)
			for _, r := range records {
				if err := w.Write(context.Background(), r); err != nil {
					t.Fatal(err)
				}
			}
			if buf.String() != tc.want {
				t.Errorf("got %q, want %q", buf.String(), tc.want)
			}
			if w.Lines() != 2 {
				t.Errorf("Lines = %d", w.Lines())
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestLineWriter_Error(t *testing.T) {
	w := NewLineWriter(failingWriter{}, FormatLogin)
	err := w.Write(context.Background(), listing.Record{ID: 7, Login: "x"})
	if err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Errorf("expected wrapped write error, got %v", err)
	}
	if w.Lines() != 0 {
		t.Error("failed write must not be counted")
	}
}
