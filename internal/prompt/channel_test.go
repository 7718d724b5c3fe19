package prompt

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestLineChannelReadsLines(t *testing.T) {
	lc := NewLineChannel(strings.NewReader("first\r\n\nlast"), io.Discard)
	ctx := context.Background()

	for _, want := range []string{"first", "", "last"} {
		got, err := lc.ReadLine(ctx)
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if got != want {
			t.Errorf("ReadLine = %q, want %q", got, want)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := lc.ReadLine(ctx); !errors.Is(err, io.EOF) {
			t.Fatalf("ReadLine after input closed: err = %v, want io.EOF", err)
		}
	}
}

func TestLineChannelPromptWritesVerbatim(t *testing.T) {
	var out strings.Builder
	lc := NewLineChannel(strings.NewReader(""), &out)
	if err := lc.Prompt("Name? "); err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if out.String() != "Name? " {
		t.Errorf("output = %q, want %q", out.String(), "Name? ")
	}
}

func TestLineChannelKeepsPendingLineAfterCancel(t *testing.T) {
	pr, pw := io.Pipe()
	lc := NewLineChannel(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := lc.ReadLine(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}

	go func() {
		io.WriteString(pw, "late\n")
		pw.Close()
	}()

	got, err := lc.ReadLine(context.Background())
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if got != "late" {
		t.Errorf("ReadLine = %q, want %q", got, "late")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestLineChannelPropagatesReadErrors(t *testing.T) {
	lc := NewLineChannel(failingReader{}, io.Discard)
	_, err := lc.ReadLine(context.Background())
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("err = %v, want the reader's error", err)
	}
}

func TestSequentialCollectorsShareInput(t *testing.T) {
	pr, pw := io.Pipe()
	go func() {
		io.WriteString(pw, "setup-answer\n")
		io.WriteString(pw, "ask-answer\n")
		pw.Close()
	}()
	in := bufio.NewReader(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, want := range []string{"setup-answer", "ask-answer"} {
		c, err := New([]string{"Q? "}, nil)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		got, err := c.Run(ctx, NewLineChannel(in, io.Discard))
		if err != nil {
			t.Fatalf("Run: %v (state %s)", err, c.State())
		}
		if len(got) != 1 || got[0] != want {
			t.Errorf("answers = %q, want [%q]", got, want)
		}
	}
}

func TestLineChannelSharesBufferedReader(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a\nb\n"))

	for _, want := range []string{"a", "b"} {
		got, err := NewLineChannel(in, io.Discard).ReadLine(context.Background())
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if got != want {
			t.Errorf("ReadLine = %q, want %q", got, want)
		}
	}
}

type countingReader struct {
	r     io.Reader
	calls int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.calls++
	return c.r.Read(p)
}

func TestLineChannelReadsOnlyOnDemand(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	cr := &countingReader{r: pr}
	lc := NewLineChannel(cr, io.Discard)

	time.Sleep(20 * time.Millisecond)
	if cr.calls != 0 {
		t.Fatalf("input read %d times before any ReadLine", cr.calls)
	}

	go io.WriteString(pw, "one\n")
	if got, err := lc.ReadLine(context.Background()); err != nil || got != "one" {
		t.Fatalf("ReadLine = %q, %v", got, err)
	}
	calls := cr.calls

	time.Sleep(20 * time.Millisecond)
	if cr.calls != calls {
		t.Errorf("input read again without a ReadLine: %d calls, want %d", cr.calls, calls)
	}
}
