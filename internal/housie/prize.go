package housie

// Prize identifies one claimable pattern.
type Prize string

const (
	PrizeEarlyFive  Prize = "early_five"
	PrizeTopLine    Prize = "top_line"
	PrizeMiddleLine Prize = "middle_line"
	PrizeBottomLine Prize = "bottom_line"
	PrizeFullHouse  Prize = "full_house"
)

// Format names the prize set active for a round.
type Format string

const (
	FormatClassic Format = "classic"
	FormatQuick   Format = "quick"
)

// ParseFormat falls back to classic for anything unrecognized.
func ParseFormat(s string) Format {
	if Format(s) == FormatQuick {
		return FormatQuick
	}
	return FormatClassic
}

// Prizes returns the prize set of the format, in display order.
func (f Format) Prizes() []Prize {
	switch f {
	case FormatQuick:
		return []Prize{PrizeTopLine, PrizeFullHouse}
	default:
		return []Prize{PrizeEarlyFive, PrizeTopLine, PrizeMiddleLine, PrizeBottomLine, PrizeFullHouse}
	}
}

func (f Format) Has(p Prize) bool {
	for _, fp := range f.Prizes() {
		if fp == p {
			return true
		}
	}
	return false
}

// LinePrizes are the row prizes auto-evaluated when full house is won.
func LinePrizes() []Prize {
	return []Prize{PrizeTopLine, PrizeMiddleLine, PrizeBottomLine}
}

// IsWinningClaim reports whether the ticket satisfies the prize pattern given
// the numbers called so far. Pure and deterministic.
func IsWinningClaim(t Ticket, called []int, prize Prize) bool {
	calledSet := make(map[int]bool, len(called))
	for _, n := range called {
		calledSet[n] = true
	}

	rowDone := func(r int) bool {
		for _, n := range t.Row(r) {
			if !calledSet[n] {
				return false
			}
		}
		return true
	}

	switch prize {
	case PrizeEarlyFive:
		hits := 0
		for _, n := range t.Numbers() {
			if calledSet[n] {
				hits++
			}
		}
		return hits >= 5
	case PrizeTopLine:
		return rowDone(0)
	case PrizeMiddleLine:
		return rowDone(1)
	case PrizeBottomLine:
		return rowDone(2)
	case PrizeFullHouse:
		return rowDone(0) && rowDone(1) && rowDone(2)
	default:
		return false
	}
}
