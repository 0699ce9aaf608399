package housie

import "math/rand"

// The full housie number range, inclusive.
const (
	NumberMin = 1
	NumberMax = 90
)

// NumberCount is the total count of callable numbers in one round.
const NumberCount = NumberMax - NumberMin + 1

// Pool holds the not-yet-called numbers for one round, pre-shuffled so that
// Draw is a plain pop. A fresh Pool is built on every round start.
type Pool struct {
	numbers []int
}

func NewPool() *Pool {
	nums := make([]int, 0, NumberCount)
	for n := NumberMin; n <= NumberMax; n++ {
		nums = append(nums, n)
	}
	rand.Shuffle(len(nums), func(i, j int) {
		nums[i], nums[j] = nums[j], nums[i]
	})
	return &Pool{numbers: nums}
}

// Draw removes and returns the next number. The second return is false once
// the pool is exhausted, which is the normal end of a round with no full
// house, not a failure.
func (p *Pool) Draw() (int, bool) {
	if len(p.numbers) == 0 {
		return 0, false
	}
	n := p.numbers[len(p.numbers)-1]
	p.numbers = p.numbers[:len(p.numbers)-1]
	return n, true
}

func (p *Pool) Remaining() int {
	return len(p.numbers)
}

// Numbers returns a copy of the remaining draw sequence.
func (p *Pool) Numbers() []int {
	return append([]int(nil), p.numbers...)
}
