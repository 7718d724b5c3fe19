// Package transcript records completed question/answer runs and persists,
// renders and parses them.
package transcript

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fakeyudi/qna/internal/prompt"
)

// Transcript is the record of one completed collector run.
type Transcript struct {
	ID         string    `json:"id"`
	Set        string    `json:"set,omitempty"`
	Respondent string    `json:"respondent,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Entries    []Entry   `json:"entries"`
}

// Entry is one answered question.
type Entry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// Answers returns the answers in question order.
func (t *Transcript) Answers() []string {
	out := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.Answer
	}
	return out
}

// Duration is the time between the start of the run and its last answer.
func (t *Transcript) Duration() time.Duration {
	if t.EndTime.IsZero() {
		return 0
	}
	return t.EndTime.Sub(t.StartTime)
}

// Recorder builds a Transcript from a collector's events.
type Recorder struct {
	mu    sync.Mutex
	t     Transcript
	done  bool
	now   func() time.Time
	unsub func()
}

// NewRecorder returns a recorder for a run of the named set. The start time
// is taken now.
func NewRecorder(set, respondent string) *Recorder {
	r := &Recorder{now: time.Now}
	r.t = Transcript{
		ID:         uuid.New().String(),
		Set:        set,
		Respondent: respondent,
		StartTime:  r.now(),
		Entries:    []Entry{},
	}
	return r
}

// Attach subscribes the recorder to n. It stops listening once the complete
// event arrives.
func (r *Recorder) Attach(n *prompt.Notifier) {
	r.unsub = n.SubscribeAll(r.handle)
}

func (r *Recorder) handle(e prompt.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}
	switch e.Type {
	case prompt.EventAnswer:
		r.t.Entries = append(r.t.Entries, Entry{
			Question:  e.Question,
			Answer:    e.Answer,
			Timestamp: r.now(),
		})
	case prompt.EventComplete:
		r.t.EndTime = r.now()
		r.done = true
		if r.unsub != nil {
			r.unsub()
		}
	}
}

// Complete reports whether the complete event has been seen.
func (r *Recorder) Complete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Transcript returns a copy of what has been recorded so far.
func (r *Recorder) Transcript() *Transcript {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.t
	t.Entries = append([]Entry(nil), r.t.Entries...)
	return &t
}
