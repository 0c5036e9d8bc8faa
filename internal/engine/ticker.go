package engine

import (
	"sync"
	"time"
)

// Ticker is the countdown capability a session owns. Start registers the
// callback invoked once per second; Stop cancels it. Stop must be safe
// to call more than once and from within the tick callback itself, since
// finalization can be triggered by a tick.
type Ticker interface {
	Start(tick func())
	Stop()
}

// wallTicker ticks on a fixed wall-clock interval, independent of
// whoever is consuming the session.
type wallTicker struct {
	interval time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewWallTicker returns a Ticker firing every second.
func NewWallTicker() Ticker {
	return &wallTicker{
		interval: time.Second,
		done:     make(chan struct{}),
	}
}

func (t *wallTicker) Start(tick func()) {
	go func() {
		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-tk.C:
				tick()
			}
		}
	}()
}

func (t *wallTicker) Stop() {
	t.once.Do(func() { close(t.done) })
}
