package state

import (
	"sync"

	"go.uber.org/zap"

	"clinic-console-api/internal/action"
)

// Store owns the current State. Subscribers get a snapshot after each
// transition on a buffered channel; a full channel misses that snapshot
// rather than holding up the writer.
type Store struct {
	mu    sync.Mutex
	state State
	subs  map[int]chan State
	next  int
	log   *zap.Logger
}

func NewStore(initial State, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		state: initial.Clone(),
		subs:  make(map[int]chan State),
		log:   log.Named("state"),
	}
}

// Dispatch applies a and returns the resulting snapshot.
func (s *Store) Dispatch(a action.Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	s.log.Debug("dispatched", zap.String("action", a.Type()))

	snap := s.state.Clone()
	for id, ch := range s.subs {
		select {
		case ch <- snap.Clone():
		default:
			s.log.Warn("subscriber lagging, snapshot dropped", zap.Int("subscriber", id), zap.String("action", a.Type()))
		}
	}
	return snap
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers a listener. The returned func unregisters it and
// closes the channel.
func (s *Store) Subscribe(buffer int) (<-chan State, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan State, buffer)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}
