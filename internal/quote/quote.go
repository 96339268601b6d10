// Package quote picks motivational quotes.
package quote

import (
	"math/rand"
	"time"
)

// Picker selects quotes at random without repeating the previous pick.
type Picker struct {
	rnd    *rand.Rand
	quotes []string
	last   int
}

// New returns a Picker seeded with the current time.
func New(quotes []string) *Picker {
	return NewSeeded(quotes, time.Now().UnixNano())
}

// NewSeeded returns a Picker with a fixed seed.
func NewSeeded(quotes []string, seed int64) *Picker {
	return &Picker{
		rnd:    rand.New(rand.NewSource(seed)),
		quotes: append([]string(nil), quotes...),
		last:   -1,
	}
}

// Pick returns a quote, or "" when there are none.
func (p *Picker) Pick() string {
	switch len(p.quotes) {
	case 0:
		return ""
	case 1:
		return p.quotes[0]
	}
	var idx int
	if p.last < 0 {
		idx = p.rnd.Intn(len(p.quotes))
	} else {
		idx = p.rnd.Intn(len(p.quotes) - 1)
		if idx >= p.last {
			idx++
		}
	}
	p.last = idx
	return p.quotes[idx]
}
