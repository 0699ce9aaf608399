package game

import (
	"errors"
	"testing"

	"housie/internal/housie"
)

func testSettings() Settings {
	return Settings{
		LobbySize:        4,
		TicketsPerPlayer: 2,
		MinPlayers:       1,
		PrizeFormat:      housie.FormatClassic,
	}
}

// fixedTicket mirrors the housie package's test fixture:
//
//	row 0: 1 10 20 30 40
//	row 1: 2 50 60 70 80
//	row 2: 41 51 61 71 81
func fixedTicket() housie.Ticket {
	return housie.Ticket{
		{1, 10, 20, 30, 40, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 50, 60, 70, 80},
		{0, 0, 0, 0, 41, 51, 61, 71, 81},
	}
}

func fixedGen() housie.Ticket { return fixedTicket() }

func alwaysValid(housie.Ticket, []int, housie.Prize) bool { return true }

func host() Identity { return Identity{ID: "host-1", Name: "Alice"} }

// startedRoom returns a room with the host joined and a round running.
func startedRoom(t *testing.T) *Room {
	t.Helper()
	r := NewRoom("ABCDE", host(), testSettings())
	if err := r.Join(host(), 0, fixedGen); err != nil {
		t.Fatalf("Join(host) error: %v", err)
	}
	if err := r.Start(host().ID, fixedGen); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return r
}

func TestNewRoom_SeatsHost(t *testing.T) {
	r := NewRoom("ABCDE", host(), testSettings())

	if r.Code() != "ABCDE" {
		t.Errorf("Code() = %q, want %q", r.Code(), "ABCDE")
	}
	if r.HostID() != "host-1" {
		t.Errorf("HostID() = %q, want %q", r.HostID(), "host-1")
	}
	if len(r.players) != 1 {
		t.Fatalf("players = %d, want 1", len(r.players))
	}
	p := r.players[0]
	if !p.IsHost {
		t.Error("seated host missing host flag")
	}
	if len(p.Tickets) != 0 {
		t.Errorf("host has %d tickets before joining, want 0", len(p.Tickets))
	}
	if r.Started() {
		t.Error("fresh room reports started")
	}
}

func TestJoin_IssuesDefaultTickets(t *testing.T) {
	r := NewRoom("ABCDE", host(), testSettings())

	if err := r.Join(host(), 0, fixedGen); err != nil {
		t.Fatalf("Join() error: %v", err)
	}
	if got := len(r.players[0].Tickets); got != 2 {
		t.Errorf("host tickets = %d, want settings default 2", got)
	}
}

func TestJoin_TicketCountFloorsAtOne(t *testing.T) {
	s := testSettings()
	s.TicketsPerPlayer = 0
	r := NewRoom("ABCDE", host(), s)

	if err := r.Join(host(), -3, fixedGen); err != nil {
		t.Fatalf("Join() error: %v", err)
	}
	if got := len(r.players[0].Tickets); got != 1 {
		t.Errorf("host tickets = %d, want floor of 1", got)
	}
}

func TestJoin_Idempotent(t *testing.T) {
	r := NewRoom("ABCDE", host(), testSettings())

	if err := r.Join(host(), 3, fixedGen); err != nil {
		t.Fatalf("first Join() error: %v", err)
	}
	before := r.players[0].Tickets
	if err := r.Join(host(), 1, fixedGen); err != nil {
		t.Fatalf("second Join() error: %v", err)
	}
	after := r.players[0].Tickets
	if len(after) != len(before) {
		t.Errorf("repeat join changed ticket count: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("repeat join changed ticket %d", i)
		}
	}
}

func TestJoin_NewPlayerOrderAndHostFlag(t *testing.T) {
	r := NewRoom("ABCDE", host(), testSettings())
	r.Join(host(), 0, fixedGen)

	if err := r.Join(Identity{ID: "p2", Name: "Bob"}, 1, fixedGen); err != nil {
		t.Fatalf("Join(p2) error: %v", err)
	}
	if err := r.Join(Identity{ID: "p3", Name: "Carol"}, 1, fixedGen); err != nil {
		t.Fatalf("Join(p3) error: %v", err)
	}

	if r.players[1].ID != "p2" || r.players[2].ID != "p3" {
		t.Error("players not in join order")
	}
	if r.players[1].IsHost || r.players[2].IsHost {
		t.Error("non-host player has host flag")
	}
}

func TestJoin_RoomFull(t *testing.T) {
	s := testSettings()
	s.LobbySize = 2
	r := NewRoom("ABCDE", host(), s)
	r.Join(host(), 0, fixedGen)
	r.Join(Identity{ID: "p2", Name: "Bob"}, 1, fixedGen)

	err := r.Join(Identity{ID: "p3", Name: "Carol"}, 1, fixedGen)
	if !errors.Is(err, ErrRoomFull) {
		t.Errorf("Join() on full lobby = %v, want ErrRoomFull", err)
	}
}

func TestJoin_AfterStart(t *testing.T) {
	r := startedRoom(t)

	if err := r.Join(Identity{ID: "late", Name: "Dan"}, 1, fixedGen); !errors.Is(err, ErrGameStarted) {
		t.Errorf("new player after start = %v, want ErrGameStarted", err)
	}

	// A seated but ticketless player is locked out too.
	r2 := NewRoom("FGHJK", host(), testSettings())
	r2.Join(host(), 0, fixedGen)
	r2.players = append(r2.players, &Player{ID: "p2", Name: "Bob"})
	if err := r2.Start(host().ID, fixedGen); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := r2.Join(Identity{ID: "p2", Name: "Bob"}, 1, fixedGen); !errors.Is(err, ErrGameStarted) {
		t.Errorf("ticketless player after start = %v, want ErrGameStarted", err)
	}

	// A ticketed player retrying their join is still a no-op.
	if err := r.Join(host(), 0, fixedGen); err != nil {
		t.Errorf("ticketed player rejoin after start = %v, want nil", err)
	}
}

func TestStart_Guards(t *testing.T) {
	r := NewRoom("ABCDE", host(), testSettings())

	if err := r.Start("p2", fixedGen); !errors.Is(err, ErrNotHost) {
		t.Errorf("Start by non-host = %v, want ErrNotHost", err)
	}
	if err := r.Start(host().ID, fixedGen); !errors.Is(err, ErrHostHasNoTickets) {
		t.Errorf("Start before host joins = %v, want ErrHostHasNoTickets", err)
	}

	r.Join(host(), 0, fixedGen)
	if err := r.Start(host().ID, fixedGen); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := r.Start(host().ID, fixedGen); !errors.Is(err, ErrGameStarted) {
		t.Errorf("Start while running = %v, want ErrGameStarted", err)
	}
}

func TestStart_NotEnoughPlayers(t *testing.T) {
	s := testSettings()
	s.MinPlayers = 2
	r := NewRoom("ABCDE", host(), s)
	r.Join(host(), 0, fixedGen)

	if err := r.Start(host().ID, fixedGen); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("Start with 1 eligible player = %v, want ErrNotEnoughPlayers", err)
	}

	r.Join(Identity{ID: "p2", Name: "Bob"}, 1, fixedGen)
	if err := r.Start(host().ID, fixedGen); err != nil {
		t.Errorf("Start with 2 eligible players = %v, want nil", err)
	}
}

func TestStart_InitializesRound(t *testing.T) {
	r := startedRoom(t)

	if !r.Started() || r.Over() {
		t.Error("room not in STARTED state after Start")
	}
	if r.pool.Remaining() != housie.NumberCount {
		t.Errorf("pool size = %d, want %d", r.pool.Remaining(), housie.NumberCount)
	}
	if len(r.called) != 0 {
		t.Errorf("called = %d numbers, want 0", len(r.called))
	}
	if r.current != 0 {
		t.Errorf("current = %d, want none before the first draw", r.current)
	}
	if r.RoundStartedAt().IsZero() {
		t.Error("round start time not stamped")
	}
}

func TestStart_RestartAfterOver(t *testing.T) {
	r := startedRoom(t)

	// End the round via full house.
	if _, err := r.Claim(host().ID, housie.PrizeFullHouse, 0, alwaysValid); err != nil {
		t.Fatalf("Claim() error: %v", err)
	}
	if !r.Over() {
		t.Fatal("round not over after full house")
	}

	if err := r.Start(host().ID, fixedGen); err != nil {
		t.Fatalf("restart error: %v", err)
	}
	if r.Over() {
		t.Error("room still over after restart")
	}
	if r.pool.Remaining() != housie.NumberCount {
		t.Errorf("pool size after restart = %d, want %d", r.pool.Remaining(), housie.NumberCount)
	}
	if r.ledger.Claimed(housie.PrizeFullHouse) {
		t.Error("ledger carried a claim across restart")
	}
	if got := len(r.players[0].Tickets); got != 2 {
		t.Errorf("host tickets after restart = %d, want reissued 2", got)
	}
}

func TestCallNext_NotStarted(t *testing.T) {
	r := NewRoom("ABCDE", host(), testSettings())
	r.Join(host(), 0, fixedGen)

	if _, err := r.CallNext(); !errors.Is(err, ErrGameNotStarted) {
		t.Errorf("CallNext before start = %v, want ErrGameNotStarted", err)
	}
	if len(r.called) != 0 || r.current != 0 {
		t.Error("failed call mutated room state")
	}
}

func TestCallNext_PartitionInvariant(t *testing.T) {
	r := startedRoom(t)

	seen := make(map[int]bool)
	for i := 0; i < housie.NumberCount; i++ {
		res, err := r.CallNext()
		if err != nil {
			t.Fatalf("CallNext() #%d error: %v", i+1, err)
		}
		if res.Over {
			t.Fatalf("round over after %d draws, want %d", i+1, housie.NumberCount)
		}
		if seen[res.Number] {
			t.Fatalf("number %d drawn twice", res.Number)
		}
		seen[res.Number] = true

		if r.pool.Remaining()+len(r.called) != housie.NumberCount {
			t.Fatalf("pool(%d) + called(%d) != %d", r.pool.Remaining(), len(r.called), housie.NumberCount)
		}
		if res.Number != r.current {
			t.Fatalf("current = %d, want last draw %d", r.current, res.Number)
		}
		if r.lastCalledAt.IsZero() {
			t.Fatal("draw did not stamp lastCalledAt")
		}
	}
	if len(seen) != housie.NumberCount {
		t.Errorf("drew %d distinct numbers, want %d", len(seen), housie.NumberCount)
	}
}

func TestCallNext_ExhaustionEndsRound(t *testing.T) {
	r := startedRoom(t)
	for i := 0; i < housie.NumberCount; i++ {
		if _, err := r.CallNext(); err != nil {
			t.Fatalf("CallNext() error: %v", err)
		}
	}

	res, err := r.CallNext()
	if err != nil {
		t.Fatalf("exhaustion call returned error %v, want nil", err)
	}
	if !res.Over || !res.Exhausted {
		t.Errorf("exhaustion result = %+v, want Over and Exhausted", res)
	}
	if !r.Over() {
		t.Error("room not over after exhaustion")
	}

	// Further calls keep reporting game over without changing anything.
	for i := 0; i < 3; i++ {
		res, err = r.CallNext()
		if !errors.Is(err, ErrGameOver) {
			t.Fatalf("call after exhaustion = %v, want ErrGameOver", err)
		}
		if !res.Over {
			t.Error("post-over result missing Over flag")
		}
	}
	if len(r.called) != housie.NumberCount {
		t.Errorf("called = %d, want %d", len(r.called), housie.NumberCount)
	}
}
