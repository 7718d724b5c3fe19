package prompt

import (
	"io"
	"log/slog"
	"sync"
)

// EventType names a collector notification.
type EventType string

const (
	// EventAnswer fires once per recorded answer.
	EventAnswer EventType = "answer"
	// EventComplete fires once, after the last answer event.
	EventComplete EventType = "complete"
)

// Event is a collector notification. Answer events carry Index, Question and
// Answer; complete events carry the full answer log in Answers.
type Event struct {
	Type     EventType
	Index    int
	Question string
	Answer   string
	Answers  []string
}

// Handler receives collector events.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Notifier fans collector events out to subscribers.
//
// Handlers run synchronously on the publishing goroutine, in the order they
// subscribed, so every answer event is delivered before the complete event
// that follows it. Subscribing and unsubscribing are safe from any goroutine.
type Notifier struct {
	mu      sync.RWMutex
	typed   map[EventType][]subscription
	allSubs []subscription
	nextID  uint64
	logger  *slog.Logger
}

// NewNotifier creates an empty notifier. A nil logger discards handler
// panics silently.
func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Notifier{
		typed:  make(map[EventType][]subscription),
		logger: logger,
	}
}

// Subscribe registers handler for one event type.
// Returns an unsubscribe function.
func (n *Notifier) Subscribe(eventType EventType, handler Handler) func() {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.typed[eventType] = append(n.typed[eventType], subscription{id: id, handler: handler})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.typed[eventType] = remove(n.typed[eventType], id)
	}
}

// SubscribeAll registers handler for every event type.
// Returns an unsubscribe function.
func (n *Notifier) SubscribeAll(handler Handler) func() {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.allSubs = append(n.allSubs, subscription{id: id, handler: handler})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.allSubs = remove(n.allSubs, id)
	}
}

// Publish delivers event to every matching subscriber in the order they
// subscribed, typed and all-event subscribers interleaved.
func (n *Notifier) Publish(event Event) {
	n.mu.RLock()
	subs := merge(n.typed[event.Type], n.allSubs)
	n.mu.RUnlock()

	for _, sub := range subs {
		n.dispatch(event, sub)
	}
}

func (n *Notifier) dispatch(event Event, sub subscription) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("event handler panicked",
				"event", string(event.Type),
				"panic", r,
			)
		}
	}()
	sub.handler(event)
}

// merge interleaves two id-ordered subscription lists by id.
func merge(a, b []subscription) []subscription {
	out := make([]subscription, 0, len(a)+len(b))
	for len(a) > 0 && len(b) > 0 {
		if a[0].id < b[0].id {
			out, a = append(out, a[0]), a[1:]
		} else {
			out, b = append(out, b[0]), b[1:]
		}
	}
	out = append(out, a...)
	return append(out, b...)
}

func remove(subs []subscription, id uint64) []subscription {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}
