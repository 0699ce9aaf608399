package housie

import (
	"math/rand"
	"sort"
)

const (
	TicketRows    = 3
	TicketCols    = 9
	TicketNumbers = 15
	NumbersPerRow = 5
)

// Ticket is a 3x9 housie grid. A zero cell is blank. Column c holds numbers
// from that column's band (1-9, 10-19, ..., 80-90), sorted top to bottom.
type Ticket [TicketRows][TicketCols]int

// colBand returns the inclusive number range for a column.
func colBand(col int) (int, int) {
	switch col {
	case 0:
		return 1, 9
	case TicketCols - 1:
		return 80, 90
	default:
		return col * 10, col*10 + 9
	}
}

// GenerateTicket builds a random ticket: 15 numbers, exactly 5 per row, every
// column occupied by 1 to 3 numbers from its band.
func GenerateTicket() Ticket {
	// One number per column, then spread the remaining six.
	counts := [TicketCols]int{}
	for c := range counts {
		counts[c] = 1
	}
	for placed := TicketCols; placed < TicketNumbers; {
		c := rand.Intn(TicketCols)
		if counts[c] < TicketRows {
			counts[c]++
			placed++
		}
	}

	var t Ticket
	// Columns with more numbers are placed first so row capacity never runs
	// out: assigning each number to the emptiest rows keeps the three row
	// totals within one of each other.
	order := make([]int, TicketCols)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	rowLeft := [TicketRows]int{NumbersPerRow, NumbersPerRow, NumbersPerRow}
	for _, c := range order {
		rows := pickRows(rowLeft, counts[c])
		nums := pickNumbers(c, counts[c])
		for i, r := range rows {
			t[r][c] = nums[i]
			rowLeft[r]--
		}
	}
	return t
}

// pickRows selects n rows with the most remaining capacity.
func pickRows(rowLeft [TicketRows]int, n int) []int {
	rows := []int{0, 1, 2}
	sort.Slice(rows, func(i, j int) bool { return rowLeft[rows[i]] > rowLeft[rows[j]] })
	picked := append([]int(nil), rows[:n]...)
	sort.Ints(picked)
	return picked
}

// pickNumbers draws n distinct numbers from the column band, sorted ascending.
func pickNumbers(col, n int) []int {
	lo, hi := colBand(col)
	band := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		band = append(band, v)
	}
	rand.Shuffle(len(band), func(i, j int) { band[i], band[j] = band[j], band[i] })
	nums := append([]int(nil), band[:n]...)
	sort.Ints(nums)
	return nums
}

// Numbers returns every number on the ticket in row-major order.
func (t Ticket) Numbers() []int {
	nums := make([]int, 0, TicketNumbers)
	for r := range t {
		for c := range t[r] {
			if t[r][c] != 0 {
				nums = append(nums, t[r][c])
			}
		}
	}
	return nums
}

// Row returns the non-blank numbers of one row.
func (t Ticket) Row(r int) []int {
	nums := make([]int, 0, NumbersPerRow)
	for c := range t[r] {
		if t[r][c] != 0 {
			nums = append(nums, t[r][c])
		}
	}
	return nums
}
