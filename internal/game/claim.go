package game

import (
	"fmt"
	"time"

	"housie/internal/housie"
)

// ClaimResult reports what a successful claim changed.
type ClaimResult struct {
	Prize       housie.Prize
	AutoAwarded []housie.Prize // line prizes cascaded on a full house
	RoundEnded  bool
}

// Claim validates and records a prize claim against one of the player's
// tickets. A rejected claim changes nothing.
//
// After the round is over only full house may still be claimed, and only
// while nobody holds it (the pool-exhaustion ending); once full house is won
// the round has a single full-house winner.
func (r *Room) Claim(playerID string, prize housie.Prize, ticketIndex int, validate ClaimValidator) (ClaimResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return ClaimResult{}, ErrGameNotStarted
	}
	p := r.findPlayer(playerID)
	if p == nil {
		return ClaimResult{}, ErrPlayerNotInRoom
	}
	if ticketIndex < 0 || ticketIndex >= len(p.Tickets) {
		return ClaimResult{}, ErrInvalidTicketIndex
	}
	if !r.ledger.InPlay(prize) {
		return ClaimResult{}, fmt.Errorf("prize %q not in play this round: %w", prize, ErrBogeyClaim)
	}
	if r.over && prize != housie.PrizeFullHouse {
		return ClaimResult{}, ErrRoundOver
	}
	if r.ledger.ClaimedBy(prize, playerID) {
		return ClaimResult{}, ErrAlreadyClaimed
	}
	if r.ledger.Claimed(housie.PrizeFullHouse) {
		if prize != housie.PrizeFullHouse {
			return ClaimResult{}, ErrFullHouseTaken
		}
		return ClaimResult{}, ErrRoundOver
	}

	ticket := p.Tickets[ticketIndex]
	if !validate(ticket, r.called, prize) {
		return ClaimResult{}, ErrBogeyClaim
	}

	now := time.Now()
	r.ledger.Award(prize, playerID, now)
	result := ClaimResult{Prize: prize}

	if prize == housie.PrizeFullHouse {
		r.over = true
		result.RoundEnded = true
		for _, line := range housie.LinePrizes() {
			if !r.ledger.InPlay(line) || r.ledger.ClaimedBy(line, playerID) {
				continue
			}
			if validate(ticket, r.called, line) && r.ledger.Award(line, playerID, now) {
				result.AutoAwarded = append(result.AutoAwarded, line)
			}
		}
	}
	return result, nil
}
