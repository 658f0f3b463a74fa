package release

import (
	"fmt"
	"time"

	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
)

// Clock computes when each calendar item becomes available. It holds no state beyond its
// configuration and never reads the wall clock itself.
type Clock struct {
	location *time.Location
	month    time.Month
	firstDay int
	lastDay  int
}

type Release struct {
	Day           int
	ReleaseTs     time.Time
	Released      bool
	DaysRemaining int
}

func NewClock(cfg config.CalendarConfig) (*Clock, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if cfg.Month < 1 || cfg.Month > 12 {
		return nil, fmt.Errorf("%w: month %d is out of range", common.ErrBadConfiguration, cfg.Month)
	}
	if cfg.FirstDay < 1 || cfg.LastDay < cfg.FirstDay {
		return nil, fmt.Errorf("%w: day range %d..%d is invalid", common.ErrBadConfiguration, cfg.FirstDay, cfg.LastDay)
	}

	month := time.Month(cfg.Month)
	// 2024 is a leap year, so this is the longest the month can ever be
	if maxDays := daysIn(2024, month); cfg.LastDay > maxDays {
		return nil, fmt.Errorf("%w: %s has at most %d days but the calendar ends on day %d", common.ErrBadConfiguration, month, maxDays, cfg.LastDay)
	}

	return &Clock{
		location: loc,
		month:    month,
		firstDay: cfg.FirstDay,
		lastDay:  cfg.LastDay,
	}, nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (c *Clock) FirstDay() int {
	return c.firstDay
}

func (c *Clock) LastDay() int {
	return c.lastDay
}

func (c *Clock) InRange(day int) bool {
	return day >= c.firstDay && day <= c.lastDay
}

func (c *Clock) Location() *time.Location {
	return c.location
}

// ReleaseInstant is local midnight of the given day in the configured month, in the calendar year
// that ref falls in when viewed from the configured timezone.
func (c *Clock) ReleaseInstant(day int, ref time.Time) (time.Time, error) {
	year := ref.In(c.location).Year()
	ts := time.Date(year, c.month, day, 0, 0, 0, 0, c.location)
	if ts.Day() != day || ts.Month() != c.month {
		return time.Time{}, fmt.Errorf("%w: day %d does not exist in %s %d", common.ErrBadConfiguration, day, c.month, year)
	}
	return ts, nil
}

func (c *Clock) IsReleased(day int, ref time.Time) (bool, error) {
	ts, err := c.ReleaseInstant(day, ref)
	if err != nil {
		return false, err
	}
	return !ts.After(ref), nil
}

// All lists every day of the calendar with its release state. DaysRemaining counts whole days until
// the release plus one, and is zero once the day is released.
func (c *Clock) All(ref time.Time) ([]Release, error) {
	releases := make([]Release, 0, c.lastDay-c.firstDay+1)
	for day := c.firstDay; day <= c.lastDay; day++ {
		ts, err := c.ReleaseInstant(day, ref)
		if err != nil {
			return nil, err
		}
		r := Release{
			Day:       day,
			ReleaseTs: ts,
			Released:  !ts.After(ref),
		}
		if !r.Released {
			r.DaysRemaining = int(ts.Sub(ref)/(24*time.Hour)) + 1
		}
		releases = append(releases, r)
	}
	return releases, nil
}
