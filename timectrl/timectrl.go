package timectrl

import (
	"sync"
	"time"
)

// IndexSource is an interface for reading the current simulation index.
// Presentation components depend on this abstraction rather than the
// concrete controller type, which keeps them testable.
type IndexSource interface {
	// Current returns the current simulation index.
	Current() int
}

// Mode describes how the IndexController advances the simulation index.
type Mode int

const (
	// RealTime advances one index per tick interval of wall-clock time.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run.
	Accelerated
)

// IndexController drives the discrete simulation index and notifies
// registered listeners once per step. It is the replay's external
// clock: the telemetry coordinator is wired up as a listener and does
// all derivation synchronously inside the callback, so listeners always
// observe a single sequential timeline.
type IndexController struct {
	mu       sync.RWMutex
	Start    int
	Interval time.Duration
	Mode     Mode

	// current tracks the simulation index. It is updated as the
	// controller advances.
	current int

	listeners []func(int)
}

// NewIndexController constructs a controller.
func NewIndexController(start int, interval time.Duration, mode Mode) *IndexController {
	return &IndexController{
		Start:    start,
		Interval: interval,
		Mode:     mode,
		current:  start,
	}
}

// Current returns the current simulation index. Implements IndexSource.
func (ic *IndexController) Current() int {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.current
}

// AddListener registers a callback invoked on every index advance.
// Listeners must be registered before Run starts.
func (ic *IndexController) AddListener(fn func(int)) {
	ic.listeners = append(ic.listeners, fn)
}

// Run advances the index from Start+1 through maxIndex inclusive in a
// separate goroutine, invoking listeners after each advance. It returns
// a channel that is closed when the controller finishes.
func (ic *IndexController) Run(maxIndex int) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		ic.mu.Lock()
		index := ic.Start
		ic.current = index
		ic.mu.Unlock()

		var ticker *time.Ticker
		if ic.Mode == RealTime {
			ticker = time.NewTicker(ic.Interval)
			defer ticker.Stop()
		}

		for index < maxIndex {
			if ticker != nil {
				<-ticker.C
			}
			index++

			ic.mu.Lock()
			ic.current = index
			ic.mu.Unlock()

			for _, fn := range ic.listeners {
				fn(index)
			}
		}
	}()
	return done
}
