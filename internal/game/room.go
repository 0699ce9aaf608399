package game

import (
	"sync"
	"time"

	"housie/internal/housie"
)

// TicketGenerator produces one fresh ticket grid. Injected so tests can pin
// layouts.
type TicketGenerator func() housie.Ticket

// ClaimValidator checks a prize pattern against a ticket and the called
// numbers. Injected for the same reason.
type ClaimValidator func(housie.Ticket, []int, housie.Prize) bool

// Identity is the caller-supplied player identity.
type Identity struct {
	ID   string
	Name string
}

// Settings is the room configuration, frozen at creation.
type Settings struct {
	LobbySize        int           `json:"lobbySize"`
	TicketsPerPlayer int           `json:"ticketsPerPlayer"`
	MinPlayers       int           `json:"minPlayers"`
	PrizeFormat      housie.Format `json:"prizeFormat"`
}

type Player struct {
	ID      string
	Name    string
	IsHost  bool
	Tickets []housie.Ticket
}

// Room is one round of housie with its players and state. All operations
// lock the room, so a join, a claim and a scheduled draw never interleave
// mid-mutation even though they arrive on different goroutines.
type Room struct {
	mu       sync.Mutex
	code     string
	hostID   string
	players  []*Player // insertion order = join order
	settings Settings

	pool           *housie.Pool
	called         []int
	current        int // 0 before the first draw
	ledger         *housie.Ledger
	started        bool
	over           bool
	roundStartedAt time.Time
	lastCalledAt   time.Time
	createdAt      time.Time
}

// NewRoom seats the host as the first player with zero tickets; tickets are
// issued when the host joins like everyone else.
func NewRoom(code string, host Identity, s Settings) *Room {
	r := &Room{
		code:      code,
		hostID:    host.ID,
		settings:  s,
		createdAt: time.Now(),
	}
	r.players = append(r.players, &Player{ID: host.ID, Name: host.Name, IsHost: true})
	return r
}

func (r *Room) Code() string { return r.code }

func (r *Room) HostID() string { return r.hostID }

func (r *Room) CreatedAt() time.Time { return r.createdAt }

// Started reports whether a round has ever been started in this room. It
// stays true once the round ends; Over distinguishes STARTED from OVER.
func (r *Room) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

func (r *Room) Over() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.over
}

func (r *Room) RoundStartedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roundStartedAt
}

func (r *Room) findPlayer(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Join seats a player, or issues tickets to an already-seated player who has
// none. A player who already holds tickets gets a no-op, so retried joins are
// harmless. ticketCount <= 0 means the room default; the issued count is
// never below one.
func (r *Room) Join(identity Identity, ticketCount int, gen TicketGenerator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.findPlayer(identity.ID); p != nil {
		if len(p.Tickets) > 0 {
			return nil
		}
		if r.started {
			return ErrGameStarted
		}
		p.Tickets = issueTickets(gen, r.ticketCount(ticketCount))
		return nil
	}

	if r.started {
		return ErrGameStarted
	}
	if len(r.players) >= r.settings.LobbySize {
		return ErrRoomFull
	}
	r.players = append(r.players, &Player{
		ID:      identity.ID,
		Name:    identity.Name,
		IsHost:  identity.ID == r.hostID,
		Tickets: issueTickets(gen, r.ticketCount(ticketCount)),
	})
	return nil
}

func (r *Room) ticketCount(requested int) int {
	n := requested
	if n <= 0 {
		n = r.settings.TicketsPerPlayer
	}
	if n < 1 {
		n = 1
	}
	return n
}

func issueTickets(gen TicketGenerator, n int) []housie.Ticket {
	tickets := make([]housie.Ticket, 0, n)
	for i := 0; i < n; i++ {
		tickets = append(tickets, gen())
	}
	return tickets
}

// Start begins a round, or restarts one after it ended. Restarting re-runs
// the same entry actions with a fresh pool and ledger and reissues every
// ticketed player the same number of fresh tickets.
func (r *Room) Start(requesterID string, gen TicketGenerator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.hostID {
		return ErrNotHost
	}
	if r.started && !r.over {
		return ErrGameStarted
	}
	host := r.findPlayer(r.hostID)
	if host == nil || len(host.Tickets) == 0 {
		return ErrHostHasNoTickets
	}

	eligible := 0
	for _, p := range r.players {
		if len(p.Tickets) > 0 {
			eligible++
		}
	}
	min := r.settings.MinPlayers
	if min < 1 {
		min = 1
	}
	if eligible < min {
		return ErrNotEnoughPlayers
	}

	restarting := r.started
	if restarting {
		for _, p := range r.players {
			if n := len(p.Tickets); n > 0 {
				p.Tickets = issueTickets(gen, n)
			}
		}
	}

	r.started = true
	r.over = false
	r.pool = housie.NewPool()
	r.called = nil
	r.current = 0
	r.ledger = housie.NewLedger(r.settings.PrizeFormat)
	r.roundStartedAt = time.Now()
	r.lastCalledAt = time.Time{}
	return nil
}

// DrawResult describes the outcome of one call.
type DrawResult struct {
	Number    int  // the number drawn, or the last one when the round is over
	Over      bool // round is over after this call
	Exhausted bool // round ended because the pool ran out
}

// CallNext draws one number. An empty pool ends the round and is reported as
// a normal result, not an error; the scheduler treats it as its stop signal.
func (r *Room) CallNext() (DrawResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return DrawResult{}, ErrGameNotStarted
	}
	if r.over {
		return DrawResult{Number: r.current, Over: true}, ErrGameOver
	}

	n, ok := r.pool.Draw()
	if !ok {
		r.over = true
		r.lastCalledAt = time.Now()
		return DrawResult{Number: r.current, Over: true, Exhausted: true}, nil
	}
	r.current = n
	r.called = append(r.called, n)
	r.lastCalledAt = time.Now()
	return DrawResult{Number: n}, nil
}
