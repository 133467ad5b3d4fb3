package countdown

import (
	"context"
	"time"

	"github.com/couplediaries/couplediaries/internal/timex"
)

// Ticker recomputes the countdown on a fixed interval and hands every
// result to publish. The date is re-read on each tick so profile edits show
// up without a restart.
type Ticker struct {
	interval time.Duration
	clock    timex.Clock
	date     func() string
	publish  func(Result)
}

// NewTicker returns a ticker reading the date with date and handing each
// result to publish. Zero interval means one minute.
func NewTicker(interval time.Duration, clock timex.Clock, date func() string, publish func(Result)) *Ticker {
	if interval <= 0 {
		interval = time.Minute
	}
	if clock == nil {
		clock = timex.SystemClock
	}
	return &Ticker{interval: interval, clock: clock, date: date, publish: publish}
}

// Tick publishes one fresh result.
func (t *Ticker) Tick() Result {
	r := Compute(t.date(), t.clock())
	t.publish(r)
	return r
}

// Run publishes immediately and then on every interval until ctx is done.
func (t *Ticker) Run(ctx context.Context) {
	t.Tick()

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			t.Tick()
		}
	}
}
