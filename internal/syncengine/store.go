package syncengine

import (
	"sync"

	"github.com/osse101/PixelFarm_Go/internal/domain"
)

// Store holds the latest State for readers such as a UI. Subscribers get the
// newest state only; intermediate states are dropped for slow readers.
type Store struct {
	mu     sync.RWMutex
	state  State
	subs   map[uint64]chan State
	nextID uint64
	closed bool
}

func newStore(initial State) *Store {
	return &Store{
		state: initial,
		subs:  make(map[uint64]chan State),
	}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Queue = cloneQueue(st.Queue)
	return st
}

// GameState returns the last authoritative game state, nil before initialization
func (s *Store) GameState() *domain.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GameState
}

// Subscribe returns a channel receiving state changes and a function that
// cancels the subscription. The channel is closed on cancel or engine close.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Store) publish(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.state = st

	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
			// Replace the unread state with the newer one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}

func (s *Store) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
