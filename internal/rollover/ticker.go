package rollover

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Ticker drives the rollover check on a fixed cadence. The core never owns
// a wake-at-midnight timer; it self-corrects by comparing the wall-clock
// date on every tick and at startup.
type Ticker struct {
	cron *cron.Cron
}

func NewTicker(loc *time.Location) *Ticker {
	if loc == nil {
		loc = time.Local
	}
	return &Ticker{cron: cron.New(cron.WithLocation(loc))}
}

// Every registers a periodic job at the given interval.
func (t *Ticker) Every(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("rollover: interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	return t.cron.AddFunc(spec, job)
}

func (t *Ticker) Start() {
	t.cron.Start()
}

func (t *Ticker) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
}
