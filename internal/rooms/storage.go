package rooms

import (
	"fmt"
	"log"
	"sync"
	"time"

	"housie/internal/game"
)

// Store is the process-wide registry of active rooms. Rooms that never start
// a round are reclaimed lazily: Get deletes and reports not-found once they
// outlive the TTL. Active and finished rooms are never swept; they go away
// only through Delete.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*game.Room
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		rooms: make(map[string]*game.Room),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create builds a fresh room under a collision-checked code, with the host
// seated and holding no tickets yet.
func (s *Store) Create(host game.Identity, settings game.Settings) (*game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Try up to 10 times to generate a unique code
	for range 10 {
		code, err := NewCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := s.rooms[code]; exists {
			continue
		}
		room := game.NewRoom(code, host, settings)
		s.rooms[code] = room
		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room code after 10 attempts")
}

// Get returns the room, or nil. An abandoned lobby past its TTL is deleted
// here and reported as missing.
func (s *Store) Get(code string) *game.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil
	}
	if !room.Started() && s.now().Sub(room.CreatedAt()) > s.ttl {
		delete(s.rooms, code)
		log.Printf("[Rooms] expired idle room %s", code)
		return nil
	}
	return room
}

func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

func (s *Store) List() []*game.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*game.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		list = append(list, r)
	}
	return list
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
