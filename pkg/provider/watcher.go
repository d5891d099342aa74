package provider

import (
	"sync"
	"time"

	"github.com/akili-ai/akili-cli/pkg/logger"
)

// Event is an auth-state transition pushed to listeners
type Event string

const (
	EventSignedIn  Event = "SIGNED_IN"
	EventSignedOut Event = "SIGNED_OUT"
)

// Listener receives (event, session) pairs. The session is nil for
// sign-out events. Listeners run on the watcher goroutine or on the
// goroutine that emitted a local transition; they must not block.
type Listener func(Event, *Session)

// SessionSource reports the currently persisted session, nil when
// signed out. The watcher polls it to detect transitions made outside
// this process.
type SessionSource func() *Session

// Watcher turns the provider's auth state into a subscription stream.
// It fans local transitions out immediately and polls the session
// source for external ones, for the lifetime of the app.
type Watcher struct {
	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
	source    SessionSource
	interval  time.Duration
	stop      chan struct{}
	started   bool
	lastUser  string
}

// NewWatcher creates a watcher over the given session source
func NewWatcher(source SessionSource, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Watcher{
		listeners: make(map[int]Listener),
		source:    source,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Subscribe registers a listener and returns an unsubscribe func
func (w *Watcher) Subscribe(l Listener) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	w.listeners[id] = l

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.listeners, id)
	}
}

// Start begins polling for external auth transitions
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	if sess := w.source(); sess != nil {
		w.lastUser = sess.User.ID
	}
	w.mu.Unlock()

	go w.loop()
}

// Stop ends the poll loop; subscribed listeners stop receiving events
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.started = false
	close(w.stop)
}

func (w *Watcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	sess := w.source()

	w.mu.Lock()
	var event Event
	switch {
	case sess != nil && w.lastUser == "":
		w.lastUser = sess.User.ID
		event = EventSignedIn
	case sess == nil && w.lastUser != "":
		w.lastUser = ""
		event = EventSignedOut
	default:
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	logger.Debug("Auth state transition detected", "event", string(event))
	w.Emit(event, sess)
}

// Emit delivers an event to every listener. Local transitions (our own
// sign-in/sign-out) call this directly so listeners don't wait a poll
// interval.
func (w *Watcher) Emit(event Event, sess *Session) {
	w.mu.Lock()
	if event == EventSignedIn && sess != nil {
		w.lastUser = sess.User.ID
	}
	if event == EventSignedOut {
		w.lastUser = ""
	}
	snapshot := make([]Listener, 0, len(w.listeners))
	for _, l := range w.listeners {
		snapshot = append(snapshot, l)
	}
	w.mu.Unlock()

	for _, l := range snapshot {
		l(event, sess)
	}
}
