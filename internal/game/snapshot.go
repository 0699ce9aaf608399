package game

import (
	"time"

	"housie/internal/housie"
)

// PlayerView is the client-visible slice of a seated player.
type PlayerView struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	IsHost  bool            `json:"isHost"`
	Tickets []housie.Ticket `json:"tickets"`
}

// PrizeView renders one prize's claim status. An unclaimed prize is present
// with Claimed=false, never absent.
type PrizeView struct {
	Claimed      bool     `json:"claimed"`
	Winners      []string `json:"winners,omitempty"`
	FirstClaimAt string   `json:"firstClaimAt,omitempty"`
}

// View is the client-safe room projection. It never carries the number pool:
// a client that saw the remaining sequence could read future draws.
type View struct {
	Code          string               `json:"code"`
	HostID        string               `json:"hostId"`
	Players       []PlayerView         `json:"players"`
	Settings      Settings             `json:"settings"`
	CalledNumbers []int                `json:"calledNumbers"`
	CurrentNumber int                  `json:"currentNumber,omitempty"`
	Started       bool                 `json:"started"`
	Over          bool                 `json:"over"`
	Prizes        map[string]PrizeView `json:"prizes"`
	LastCalledAt  string               `json:"lastCalledAt,omitempty"`
	CreatedAt     string               `json:"createdAt"`
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Snapshot builds the client view of the room's current state.
func (r *Room) Snapshot() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]PlayerView, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, PlayerView{
			ID:      p.ID,
			Name:    p.Name,
			IsHost:  p.IsHost,
			Tickets: append([]housie.Ticket(nil), p.Tickets...),
		})
	}

	// The prize map is re-derived from the configured format so it only ever
	// carries that format's prize set, claimed or not.
	prizes := make(map[string]PrizeView, len(r.settings.PrizeFormat.Prizes()))
	for _, prize := range r.settings.PrizeFormat.Prizes() {
		view := PrizeView{}
		if r.ledger != nil {
			if rec := r.ledger.Record(prize); rec != nil {
				view = PrizeView{
					Claimed:      true,
					Winners:      rec.Winners,
					FirstClaimAt: stamp(rec.FirstClaimAt),
				}
			}
		}
		prizes[string(prize)] = view
	}

	return View{
		Code:          r.code,
		HostID:        r.hostID,
		Players:       players,
		Settings:      r.settings,
		CalledNumbers: append([]int(nil), r.called...),
		CurrentNumber: r.current,
		Started:       r.started,
		Over:          r.over,
		Prizes:        prizes,
		LastCalledAt:  stamp(r.lastCalledAt),
		CreatedAt:     stamp(r.createdAt),
	}
}

// SafeSnapshot never panics out to its caller: a missing room or a projection
// failure both come back as ErrSnapshotUnavailable.
func SafeSnapshot(r *Room) (view View, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			view, err = View{}, ErrSnapshotUnavailable
		}
	}()
	if r == nil {
		return View{}, ErrSnapshotUnavailable
	}
	return r.Snapshot(), nil
}
