package prompt

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// Channel is a line-oriented text transport between a collector and its
// respondent.
type Channel interface {
	// Prompt writes question as-is; no newline is added.
	Prompt(question string) error
	// ReadLine blocks until one line of input is available. It returns
	// io.EOF once the input is closed.
	ReadLine(ctx context.Context) (string, error)
}

type lineResult struct {
	line string
	err  error
}

// LineChannel is a Channel over a reader and a writer, typically os.Stdin
// and os.Stdout.
//
// Input is only read while a ReadLine call asks for it, one line per call,
// so nothing is consumed once the collector stops reading. If ReadLine
// returns early because its context was cancelled, the read stays
// outstanding and its line is returned by the next call.
type LineChannel struct {
	in  *bufio.Reader
	out io.Writer

	pending chan lineResult
	eof     bool
}

// NewLineChannel returns a LineChannel reading from r and writing to w.
// If r is already a *bufio.Reader it is used as-is, so channels created one
// after another over the same reader don't lose buffered input.
func NewLineChannel(r io.Reader, w io.Writer) *LineChannel {
	return &LineChannel{
		in:  bufio.NewReader(r),
		out: w,
	}
}

// Prompt writes question to the output.
func (lc *LineChannel) Prompt(question string) error {
	_, err := io.WriteString(lc.out, question)
	return err
}

// ReadLine returns the next line without its line terminator.
func (lc *LineChannel) ReadLine(ctx context.Context) (string, error) {
	if lc.eof {
		return "", io.EOF
	}
	if lc.pending == nil {
		ch := make(chan lineResult, 1)
		lc.pending = ch
		go func() {
			line, err := lc.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-lc.pending:
		lc.pending = nil
		if res.line != "" {
			// A final line without a terminator comes before EOF.
			return strings.TrimRight(res.line, "\r\n"), nil
		}
		if errors.Is(res.err, io.EOF) {
			lc.eof = true
			return "", io.EOF
		}
		return "", res.err
	}
}
