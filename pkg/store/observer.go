package store

import "sync"

// Slice names a region of store state a subscriber can watch
type Slice int

const (
	SliceSessions Slice = iota // session list / active id / mode
	SliceTranscript            // active transcript contents
	SliceFlags                 // loading + error banners
	SliceMerge                 // pending guest merge
	SliceProgress              // xp / coins / streak / paid
)

type subscription struct {
	id    int
	slice Slice
	fn    func()
}

// subscribers is the store's change-notification registry. Listeners
// register interest per slice and are called after the mutation
// completes, never while the store lock is held.
type subscribers struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

func (s *subscribers) add(slice Slice, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, slice: slice, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *subscribers) notify(slices ...Slice) {
	s.mu.Lock()
	var fns []func()
	for _, sub := range s.subs {
		for _, sl := range slices {
			if sub.slice == sl {
				fns = append(fns, sub.fn)
				break
			}
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribe registers fn to run whenever the given slice changes;
// returns an unsubscribe func.
func (s *Store) Subscribe(slice Slice, fn func()) func() {
	return s.subs.add(slice, fn)
}
