package housie

import "time"

// ClaimRecord lists everyone who validly claimed one prize. A prize can have
// several winners; the first claim's time is kept for display.
type ClaimRecord struct {
	Winners      []string
	FirstClaimAt time.Time
}

// Ledger tracks claims for the prize set of one round. It is not safe for
// concurrent use on its own; the owning room's lock guards it.
type Ledger struct {
	format Format
	claims map[Prize]*ClaimRecord
}

func NewLedger(f Format) *Ledger {
	return &Ledger{
		format: f,
		claims: make(map[Prize]*ClaimRecord),
	}
}

func (l *Ledger) Format() Format {
	return l.format
}

func (l *Ledger) InPlay(p Prize) bool {
	return l.format.Has(p)
}

func (l *Ledger) Claimed(p Prize) bool {
	rec, ok := l.claims[p]
	return ok && len(rec.Winners) > 0
}

func (l *Ledger) ClaimedBy(p Prize, playerID string) bool {
	rec, ok := l.claims[p]
	if !ok {
		return false
	}
	for _, w := range rec.Winners {
		if w == playerID {
			return true
		}
	}
	return false
}

// Award adds the player to the prize's claim record. It returns false without
// changing anything if the player already holds the prize or the prize is not
// part of the round's format.
func (l *Ledger) Award(p Prize, playerID string, at time.Time) bool {
	if !l.InPlay(p) || l.ClaimedBy(p, playerID) {
		return false
	}
	rec, ok := l.claims[p]
	if !ok {
		rec = &ClaimRecord{FirstClaimAt: at}
		l.claims[p] = rec
	}
	rec.Winners = append(rec.Winners, playerID)
	return true
}

// Record returns a copy of the claim record for a prize, or nil if unclaimed.
func (l *Ledger) Record(p Prize) *ClaimRecord {
	rec, ok := l.claims[p]
	if !ok {
		return nil
	}
	return &ClaimRecord{
		Winners:      append([]string(nil), rec.Winners...),
		FirstClaimAt: rec.FirstClaimAt,
	}
}
