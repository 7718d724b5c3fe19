// Package prompt implements a sequential question/answer collector.
//
// A Collector asks a fixed, ordered list of questions one at a time and
// records one trimmed answer per question. The state machine is driven either
// by Run over a line-oriented Channel or directly through Begin/Record by a
// front-end that delivers lines its own way (see the tui package).
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	// ErrEmptyQuestionList is returned by New when no questions are given.
	ErrEmptyQuestionList = errors.New("question list is empty")
	// ErrChannelClosed is returned by Run when the input closes before every
	// question has been answered.
	ErrChannelClosed = errors.New("input closed before all questions were answered")
	// ErrAborted is returned when the run is aborted before it completes.
	ErrAborted = errors.New("collection aborted")
	// ErrAlreadyStarted is returned by Begin on a collector that is not idle.
	ErrAlreadyStarted = errors.New("collector already started")
	// ErrNotAwaiting is returned by Record when no question is pending.
	ErrNotAwaiting = errors.New("collector is not awaiting an answer")
)

// State is the lifecycle position of a Collector.
type State int

const (
	StateIdle State = iota
	StateAwaiting
	StateComplete
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting"
	case StateComplete:
		return "complete"
	case StateAborted:
		return "aborted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithNotifier attaches an existing Notifier instead of a fresh one, so
// several collectors can share observers.
func WithNotifier(n *Notifier) Option {
	return func(c *Collector) {
		if n != nil {
			c.events = n
		}
	}
}

// Collector asks questions in order and records the answers.
// A Collector is single-use and not safe for concurrent use.
type Collector struct {
	questions  []string
	answers    []string
	state      State
	onComplete func([]string)
	events     *Notifier
	logger     *slog.Logger
}

// New returns an idle collector for questions. onComplete is called exactly
// once, with the full answer log, when the last answer is recorded. It may be
// nil.
func New(questions []string, onComplete func([]string), opts ...Option) (*Collector, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionList
	}
	c := &Collector{
		questions:  append([]string(nil), questions...),
		answers:    make([]string, 0, len(questions)),
		onComplete: onComplete,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.events == nil {
		c.events = NewNotifier(c.logger)
	}
	return c, nil
}

// Begin moves an idle collector to the first question and returns it.
func (c *Collector) Begin() (string, error) {
	if c.state != StateIdle {
		return "", fmt.Errorf("%w (state %s)", ErrAlreadyStarted, c.state)
	}
	c.state = StateAwaiting
	c.logger.Debug("collector started", "questions", len(c.questions))
	return c.questions[0], nil
}

// Record stores line, trimmed of surrounding whitespace, as the answer to the
// pending question. An empty line is a valid answer. It returns the next
// question, or done=true once the answer log is complete. If an answer
// handler aborts the collector, Record returns ErrAborted.
func (c *Collector) Record(line string) (next string, done bool, err error) {
	if c.state != StateAwaiting {
		return "", false, fmt.Errorf("%w (state %s)", ErrNotAwaiting, c.state)
	}
	idx := len(c.answers)
	answer := strings.TrimSpace(line)
	c.answers = append(c.answers, answer)
	c.logger.Debug("answer recorded", "index", idx)

	c.events.Publish(Event{
		Type:     EventAnswer,
		Index:    idx,
		Question: c.questions[idx],
		Answer:   answer,
	})
	// An observer may have aborted the run.
	if c.state != StateAwaiting {
		return "", false, ErrAborted
	}

	if len(c.answers) < len(c.questions) {
		return c.questions[len(c.answers)], false, nil
	}

	c.state = StateComplete
	c.logger.Debug("collector complete", "answers", len(c.answers))
	c.events.Publish(Event{Type: EventComplete, Answers: c.Answers()})
	if c.onComplete != nil {
		c.onComplete(c.Answers())
	}
	return "", true, nil
}

// Abort stops a collector that has not completed. It has no effect once the
// collector is complete or already aborted.
func (c *Collector) Abort() {
	if c.state == StateComplete || c.state == StateAborted {
		return
	}
	c.logger.Debug("collector aborted", "index", len(c.answers), "state", c.state)
	c.state = StateAborted
}

// Run drives the collector over ch: prompt, wait for one line, record, repeat.
// It returns the answer log on completion. If the input closes first the
// collector is aborted and the error wraps ErrChannelClosed; if ctx is
// cancelled the collector is aborted and ctx.Err() is returned.
func (c *Collector) Run(ctx context.Context, ch Channel) ([]string, error) {
	q, err := c.Begin()
	if err != nil {
		return nil, err
	}
	for {
		if err := ch.Prompt(q); err != nil {
			c.Abort()
			return nil, fmt.Errorf("writing prompt %d: %w", len(c.answers), err)
		}
		line, err := ch.ReadLine(ctx)
		if err != nil {
			c.Abort()
			switch {
			case ctx.Err() != nil:
				return nil, ctx.Err()
			case errors.Is(err, io.EOF):
				return nil, fmt.Errorf("%w: %d of %d answered", ErrChannelClosed, len(c.answers), len(c.questions))
			}
			return nil, fmt.Errorf("reading answer %d: %w", len(c.answers), err)
		}
		var done bool
		q, done, err = c.Record(line)
		if err != nil {
			return nil, err
		}
		if done {
			return c.Answers(), nil
		}
	}
}

// State reports the current lifecycle state.
func (c *Collector) State() State { return c.state }

// Index is the position of the pending question, equal to the number of
// answers recorded so far.
func (c *Collector) Index() int { return len(c.answers) }

// Questions returns a copy of the question list.
func (c *Collector) Questions() []string {
	return append([]string(nil), c.questions...)
}

// Answers returns a copy of the answers recorded so far.
func (c *Collector) Answers() []string {
	return append([]string(nil), c.answers...)
}

// Events returns the notifier that receives answer and complete events.
func (c *Collector) Events() *Notifier { return c.events }

// Collect creates a collector for questions and runs it over ch.
func Collect(ctx context.Context, ch Channel, questions []string, onComplete func([]string), opts ...Option) error {
	c, err := New(questions, onComplete, opts...)
	if err != nil {
		return err
	}
	_, err = c.Run(ctx, ch)
	return err
}
