package game

import "errors"

// Domain failures surfaced to callers. Handlers match these with errors.Is
// and relay the message; none of them crash a room's ongoing state.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrGameStarted         = errors.New("game already started")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrGameOver            = errors.New("game is over")
	ErrHostHasNoTickets    = errors.New("host has no tickets")
	ErrNotEnoughPlayers    = errors.New("not enough players with tickets")
	ErrNotHost             = errors.New("only the host can start the game")
	ErrPlayerNotInRoom     = errors.New("player is not in this room")
	ErrInvalidTicketIndex  = errors.New("invalid ticket index")
	ErrRoundOver           = errors.New("round is over")
	ErrAlreadyClaimed      = errors.New("prize already claimed by this player")
	ErrFullHouseTaken      = errors.New("full house already claimed, no further prizes")
	ErrBogeyClaim          = errors.New("bogey claim: pattern not satisfied by called numbers")
	ErrSnapshotUnavailable = errors.New("room snapshot unavailable")
)
