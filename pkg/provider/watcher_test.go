package provider

import (
	"sync"
	"testing"
	"time"
)

// TestSubscribeAndEmit delivers events to listeners until unsubscribed
func TestSubscribeAndEmit(t *testing.T) {
	w := NewWatcher(func() *Session { return nil }, time.Hour)

	var mu sync.Mutex
	var events []Event
	unsub := w.Subscribe(func(e Event, s *Session) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	sess := &Session{AccessToken: "tok", User: User{ID: "u1"}}
	w.Emit(EventSignedIn, sess)
	w.Emit(EventSignedOut, nil)

	mu.Lock()
	if len(events) != 2 || events[0] != EventSignedIn || events[1] != EventSignedOut {
		t.Errorf("Unexpected events: %v", events)
	}
	mu.Unlock()

	unsub()
	w.Emit(EventSignedIn, sess)

	mu.Lock()
	if len(events) != 2 {
		t.Errorf("Unsubscribed listener still received events: %v", events)
	}
	mu.Unlock()
}

// TestWatcherPoll detects external sign-in and sign-out transitions
func TestWatcherPoll(t *testing.T) {
	var mu sync.Mutex
	var current *Session

	w := NewWatcher(func() *Session {
		mu.Lock()
		defer mu.Unlock()
		return current
	}, 10*time.Millisecond)
	defer w.Stop()

	events := make(chan Event, 4)
	w.Subscribe(func(e Event, s *Session) {
		events <- e
	})

	w.Start()

	// External sign-in appears in the session source
	mu.Lock()
	current = &Session{AccessToken: "tok", User: User{ID: "u1"}}
	mu.Unlock()

	select {
	case e := <-events:
		if e != EventSignedIn {
			t.Fatalf("Expected SIGNED_IN, got %s", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for sign-in event")
	}

	// External sign-out
	mu.Lock()
	current = nil
	mu.Unlock()

	select {
	case e := <-events:
		if e != EventSignedOut {
			t.Fatalf("Expected SIGNED_OUT, got %s", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for sign-out event")
	}
}

// TestWatcherStart_AdoptsExistingSession does not announce a session
// that existed before the watcher started.
func TestWatcherStart_AdoptsExistingSession(t *testing.T) {
	sess := &Session{AccessToken: "tok", User: User{ID: "u1"}}
	w := NewWatcher(func() *Session { return sess }, 10*time.Millisecond)
	defer w.Stop()

	events := make(chan Event, 4)
	w.Subscribe(func(e Event, s *Session) {
		events <- e
	})

	w.Start()

	select {
	case e := <-events:
		t.Fatalf("Pre-existing session should not fire an event, got %s", e)
	case <-time.After(100 * time.Millisecond):
	}
}

// TestWatcherStopIdempotent tolerates double stop and stop-before-start
func TestWatcherStopIdempotent(t *testing.T) {
	w := NewWatcher(func() *Session { return nil }, time.Hour)

	w.Stop() // never started

	w.Start()
	w.Stop()
	w.Stop()
}

// TestSessionExpiresAt converts relative expiry to a future instant
func TestSessionExpiresAt(t *testing.T) {
	sess := &Session{ExpiresIn: 3600}

	at := sess.ExpiresAt()
	if at.Before(time.Now().Add(59 * time.Minute)) {
		t.Errorf("ExpiresAt too early: %v", at)
	}
	if at.After(time.Now().Add(61 * time.Minute)) {
		t.Errorf("ExpiresAt too late: %v", at)
	}
}

// TestIsUnauthorized classifies provider rejections
func TestIsUnauthorized(t *testing.T) {
	testCases := []struct {
		err    error
		expect bool
		name   string
	}{
		{&ProviderError{StatusCode: 401, Detail: "bad token"}, true, "401"},
		{&ProviderError{StatusCode: 400, Detail: "invalid grant"}, true, "400"},
		{&ProviderError{StatusCode: 500, Detail: "oops"}, false, "500"},
		{nil, false, "nil"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUnauthorized(tc.err); got != tc.expect {
				t.Errorf("IsUnauthorized = %v, want %v", got, tc.expect)
			}
		})
	}
}
