package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"housie/internal/broadcast"
	"housie/internal/config"
	"housie/internal/db"
	"housie/internal/game"
	"housie/internal/housie"
	"housie/internal/metrics"
	"housie/internal/rooms"
	"housie/internal/scheduler"
)

type Server struct {
	Rooms *rooms.Store
	Sched *scheduler.Scheduler
	Hub   *broadcast.Hub
	DB    *db.DB // nil if no database configured
	Cfg   config.Config

	Generate game.TicketGenerator
	Validate game.ClaimValidator
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrRoomNotFound),
		errors.Is(err, game.ErrPlayerNotInRoom),
		errors.Is(err, game.ErrSnapshotUnavailable):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, game.ErrRoomFull),
		errors.Is(err, game.ErrGameStarted),
		errors.Is(err, game.ErrGameNotStarted),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrRoundOver),
		errors.Is(err, game.ErrHostHasNoTickets),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrAlreadyClaimed),
		errors.Is(err, game.ErrFullHouseTaken):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidTicketIndex),
		errors.Is(err, game.ErrBogeyClaim):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) roomSettings(lobbySize, ticketsPerPlayer int, prizeFormat string) game.Settings {
	settings := game.Settings{
		LobbySize:        s.Cfg.LobbySize,
		TicketsPerPlayer: s.Cfg.TicketsPerPlayer,
		MinPlayers:       s.Cfg.MinPlayers,
		PrizeFormat:      housie.ParseFormat(s.Cfg.PrizeFormat),
	}
	if lobbySize > 0 {
		settings.LobbySize = lobbySize
	}
	if ticketsPerPlayer > 0 {
		settings.TicketsPerPlayer = ticketsPerPlayer
	}
	if prizeFormat != "" {
		settings.PrizeFormat = housie.ParseFormat(prizeFormat)
	}
	if !s.Cfg.Production() {
		// Solo rounds allowed outside production.
		settings.MinPlayers = 1
	}
	return settings
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HostName         string `json:"hostName"`
		LobbySize        int    `json:"lobbySize"`
		TicketsPerPlayer int    `json:"ticketsPerPlayer"`
		PrizeFormat      string `json:"prizeFormat"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.HostName) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "hostName is required"})
		return
	}

	host := game.Identity{ID: uuid.New().String(), Name: req.HostName}
	room, err := s.Rooms.Create(host, s.roomSettings(req.LobbySize, req.TicketsPerPlayer, req.PrizeFormat))
	if err != nil {
		log.Printf("[HTTP] creating room: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create room"})
		return
	}
	metrics.RoomsCreated.Inc()
	log.Printf("[Rooms] created room %s (host %s)", room.Code(), host.ID)

	writeJSON(w, http.StatusCreated, map[string]any{
		"playerId": host.ID,
		"room":     room.Snapshot(),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	room := s.Rooms.Get(strings.ToUpper(r.PathValue("code")))
	view, err := game.SafeSnapshot(room)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	room := s.Rooms.Get(strings.ToUpper(r.PathValue("code")))
	if room == nil {
		writeError(w, game.ErrRoomNotFound)
		return
	}

	var req struct {
		PlayerID string `json:"playerId"`
		Name     string `json:"name"`
		Tickets  int    `json:"tickets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = uuid.New().String()
	}

	identity := game.Identity{ID: req.PlayerID, Name: req.Name}
	if err := room.Join(identity, req.Tickets, s.Generate); err != nil {
		writeError(w, err)
		return
	}
	s.pushState(room)

	writeJSON(w, http.StatusOK, map[string]any{
		"playerId": req.PlayerID,
		"room":     room.Snapshot(),
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))
	room := s.Rooms.Get(code)
	if room == nil {
		writeError(w, game.ErrRoomNotFound)
		return
	}

	var req struct {
		PlayerID string `json:"playerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := room.Start(req.PlayerID, s.Generate); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("[Game] room %s round started", code)

	// Start cancels any prior timer for the room before creating a new one.
	s.Sched.Start(code, func() bool { return s.callTick(code) })

	view := room.Snapshot()
	s.Hub.Publish(code, broadcast.EventGameStarted, view)
	s.Hub.Publish(code, broadcast.EventRoomState, view)
	writeJSON(w, http.StatusOK, view)
}

// callTick advances one room by one draw. Returning true removes the room's
// timer; any internal failure stops this room only and never escapes.
func (s *Server) callTick(code string) bool {
	room := s.Rooms.Get(code)
	if room == nil {
		log.Printf("[Sched] room %s vanished, stopping calls", code)
		s.Hub.Publish(code, broadcast.EventRoomError, map[string]string{"error": "room no longer exists"})
		return true
	}

	res, err := room.CallNext()
	if err != nil {
		// Not started or already over: nothing left to call.
		return true
	}
	if !res.Exhausted {
		metrics.NumbersCalled.Inc()
	}

	view, snapErr := game.SafeSnapshot(room)
	if snapErr != nil {
		log.Printf("[Sched] room %s snapshot failed, stopping calls", code)
		s.Hub.Publish(code, broadcast.EventRoomError, map[string]string{"error": "room state unavailable"})
		return true
	}
	s.Hub.Publish(code, broadcast.EventRoomState, view)

	if res.Over {
		s.Hub.Publish(code, broadcast.EventGameOver, view)
		s.recordRound(room, db.EndingExhausted)
		metrics.RoundsCompleted.WithLabelValues(db.EndingExhausted).Inc()
		log.Printf("[Game] room %s round over, numbers exhausted", code)
		return true
	}
	return false
}

// handleCall draws one number on demand; the same operation the scheduler
// runs every interval.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))
	room := s.Rooms.Get(code)
	if room == nil {
		writeError(w, game.ErrRoomNotFound)
		return
	}

	res, err := room.CallNext()
	if err != nil {
		if errors.Is(err, game.ErrGameOver) {
			s.Sched.Stop(code)
		}
		writeError(w, err)
		return
	}
	if !res.Exhausted {
		metrics.NumbersCalled.Inc()
	}

	view := room.Snapshot()
	s.Hub.Publish(code, broadcast.EventRoomState, view)
	if res.Over {
		s.Sched.Stop(code)
		s.Hub.Publish(code, broadcast.EventGameOver, view)
		s.recordRound(room, db.EndingExhausted)
		metrics.RoundsCompleted.WithLabelValues(db.EndingExhausted).Inc()
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))
	room := s.Rooms.Get(code)
	if room == nil {
		writeError(w, game.ErrRoomNotFound)
		return
	}

	var req struct {
		PlayerID string `json:"playerId"`
		Prize    string `json:"prize"`
		Ticket   int    `json:"ticket"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	res, err := room.Claim(req.PlayerID, housie.Prize(req.Prize), req.Ticket, s.Validate)
	if err != nil {
		metrics.ClaimsRejected.Inc()
		writeError(w, err)
		return
	}
	metrics.ClaimsAccepted.Inc()
	log.Printf("[Game] room %s player %s won %s", code, req.PlayerID, res.Prize)

	view := room.Snapshot()
	s.Hub.Publish(code, broadcast.EventRoomState, view)
	if res.RoundEnded {
		s.Sched.Stop(code)
		s.Hub.Publish(code, broadcast.EventGameOver, view)
		s.recordRound(room, db.EndingFullHouse)
		metrics.RoundsCompleted.WithLabelValues(db.EndingFullHouse).Inc()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"prize":       res.Prize,
		"autoAwarded": res.AutoAwarded,
		"room":        view,
	})
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))
	room := s.Rooms.Get(code)
	if room == nil {
		writeError(w, game.ErrRoomNotFound)
		return
	}

	s.Sched.Stop(code)
	s.Hub.DropRoom(code)
	s.Rooms.Delete(code)
	log.Printf("[Rooms] deleted room %s", code)
	w.WriteHeader(http.StatusNoContent)
}

// pushState broadcasts the room's current view; failures only cost the push.
func (s *Server) pushState(room *game.Room) {
	view, err := game.SafeSnapshot(room)
	if err != nil {
		return
	}
	s.Hub.Publish(view.Code, broadcast.EventRoomState, view)
}

// recordRound writes a finished round to history, asynchronously so game
// traffic never waits on the database.
func (s *Server) recordRound(room *game.Room, ending string) {
	if s.DB == nil {
		return
	}

	view := room.Snapshot()
	names := make(map[string]string, len(view.Players))
	for _, p := range view.Players {
		names[p.ID] = p.Name
	}

	rec := db.RoundRecord{
		ID:            uuid.New().String(),
		RoomCode:      view.Code,
		StartedAt:     room.RoundStartedAt(),
		EndedAt:       time.Now(),
		NumbersCalled: len(view.CalledNumbers),
		Ending:        ending,
	}
	for prize, pv := range view.Prizes {
		if !pv.Claimed {
			continue
		}
		awardedAt, _ := time.Parse(time.RFC3339, pv.FirstClaimAt)
		for _, winner := range pv.Winners {
			rec.Awards = append(rec.Awards, db.PrizeAward{
				Prize:      prize,
				PlayerID:   winner,
				PlayerName: names[winner],
				AwardedAt:  awardedAt,
			})
		}
	}

	go func() {
		if err := s.DB.RecordRound(rec); err != nil {
			log.Printf("[DB] RecordRound error: %v", err)
		}
	}()
}

func (s *Server) handleHistoryRounds(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history unavailable: no database configured"})
		return
	}
	records, err := s.DB.RecentRounds(20)
	if err != nil {
		log.Printf("[DB] RecentRounds error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load history"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rounds": records})
}

func (s *Server) handleHistoryWinners(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history unavailable: no database configured"})
		return
	}
	winners, err := s.DB.TopWinners(20)
	if err != nil {
		log.Printf("[DB] TopWinners error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load winners"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"winners": winners})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": status, "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}
