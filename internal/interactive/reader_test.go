package interactive

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestBufioReader_ReadLine(t *testing.T) {
	var out bytes.Buffer
	r := NewBufioReader(strings.NewReader("link=https://x\r\n1=20\nlast"), &out)

	want := []string{"link=https://x", "1=20", "last"}
	for _, expected := range want {
		got, err := r.ReadLine("> ")
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		if got != expected {
			t.Errorf("ReadLine() = %q, expected %q", got, expected)
		}
	}

	if _, err := r.ReadLine("> "); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF at end of input, got %v", err)
	}
	if got := out.String(); got != strings.Repeat("> ", 4) {
		t.Errorf("prompts written = %q", got)
	}
}

func TestBufioReader_EmptyLine(t *testing.T) {
	r := NewBufioReader(strings.NewReader("\n"), io.Discard)
	got, err := r.ReadLine("")
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if got != "" {
		t.Errorf("ReadLine() = %q, expected empty line", got)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&KeyNotFoundError{Key: "badkey"}, `cannot find any key relating to "badkey"`},
		{&RequiredParameterError{Key: "LINK"}, "parameter LINK is required"},
		{ErrNoPair, "please provide a key=value pair, not only key"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, expected %q", got, tt.want)
		}
	}
}
