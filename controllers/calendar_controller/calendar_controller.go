package calendar_controller

import (
	"time"

	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/release"
	"github.com/julender/julender/sessions"
)

type Day struct {
	Day           int    `json:"day"`
	ReleasesAt    string `json:"releases_at"`
	ReleaseTs     int64  `json:"release_ts"`
	Released      bool   `json:"released"`
	DaysRemaining int    `json:"days_remaining"`
	Opened        bool   `json:"opened"`
}

type Calendar struct {
	Title string `json:"title"`
	Days  []Day  `json:"days"`
}

type Controller struct {
	title    string
	clock    *release.Clock
	sessions sessions.Store
	now      func() time.Time
}

func New(title string, clock *release.Clock, store sessions.Store) *Controller {
	return &Controller{
		title:    title,
		clock:    clock,
		sessions: store,
		now:      time.Now,
	}
}

func (c *Controller) SetNow(now func() time.Time) {
	c.now = now
}

func (c *Controller) GetCalendar(ctx rcontext.RequestContext, sessionId string) (*Calendar, error) {
	releases, err := c.clock.All(c.now())
	if err != nil {
		return nil, err
	}

	opened, err := sessions.GetOpened(ctx, c.sessions, sessionId)
	if err != nil {
		ctx.Log.Warn("Failed to read opened days: ", err)
		opened = make(map[int]bool)
	}

	days := make([]Day, 0, len(releases))
	for _, r := range releases {
		days = append(days, Day{
			Day:           r.Day,
			ReleasesAt:    r.ReleaseTs.Format(time.RFC3339),
			ReleaseTs:     r.ReleaseTs.UnixMilli(),
			Released:      r.Released,
			DaysRemaining: r.DaysRemaining,
			Opened:        opened[r.Day],
		})
	}
	return &Calendar{Title: c.title, Days: days}, nil
}
