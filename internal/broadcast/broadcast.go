package broadcast

import "sync"

// Event kinds pushed to room subscribers.
const (
	EventRoomState   = "room_state"
	EventGameStarted = "game_started"
	EventGameOver    = "game_over"
	EventRoomError   = "room_error"
)

type Event struct {
	Room    string `json:"room"`
	Kind    string `json:"kind"`
	Payload any    `json:"payload,omitempty"`
}

// Hub fans room events out to that room's subscribers. Publishing is
// fire-and-forget: a subscriber with a full channel misses the event rather
// than stalling the game loop.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Event]bool),
	}
}

func (h *Hub) Subscribe(roomID string) chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	if h.subs[roomID] == nil {
		h.subs[roomID] = make(map[chan Event]bool)
	}
	h.subs[roomID][ch] = true
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(roomID string, ch chan Event) {
	h.mu.Lock()
	if set, ok := h.subs[roomID]; ok && set[ch] {
		delete(set, ch)
		if len(set) == 0 {
			delete(h.subs, roomID)
		}
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(roomID, kind string, payload any) {
	ev := Event{Room: roomID, Kind: kind, Payload: payload}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[roomID] {
		select {
		case ch <- ev:
		default:
			// skip subscribers with full channels
		}
	}
}

// DropRoom closes every subscription of a deleted room.
func (h *Hub) DropRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[roomID] {
		close(ch)
	}
	delete(h.subs, roomID)
}

// Subscribers reports how many channels are attached to a room.
func (h *Hub) Subscribers(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[roomID])
}
