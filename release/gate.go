package release

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julender/julender/common"
)

type Gate struct {
	clock *Clock
}

func NewGate(clock *Clock) *Gate {
	return &Gate{clock: clock}
}

func (g *Gate) Clock() *Clock {
	return g.clock
}

// ParseDay converts a raw day token to an id within the calendar's range.
func (g *Gate) ParseDay(raw string) (int, error) {
	day, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !g.clock.InRange(day) {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidItem, raw)
	}
	return day, nil
}

// Authorize returns the day id when it is valid and already released at ref.
func (g *Gate) Authorize(raw string, ref time.Time) (int, error) {
	day, err := g.ParseDay(raw)
	if err != nil {
		return 0, err
	}
	released, err := g.clock.IsReleased(day, ref)
	if err != nil {
		return 0, err
	}
	if !released {
		return 0, fmt.Errorf("%w: day %d", common.ErrNotYetReleased, day)
	}
	return day, nil
}
