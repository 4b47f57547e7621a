// -- internal/engine/replay.go --
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/kynelabs/graphscope/internal/metrics"
	"go.uber.org/zap"
)

// StartReplay steps the time-travel timestamp from the current snapshot's
// min to max entity timestamp in a fixed number of equal increments, one per
// tick, stopping automatically at max. Any manual filter/limit/time change
// or an explicit Live() cancels it. Returns an error when the snapshot's
// metadata carries no usable timestamp range.
func (e *Explorer) StartReplay() error {
	e.stopReplay()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("explorer is closed")
	}
	if e.snapshot == nil || e.snapshot.Meta.MinTimestamp == nil || e.snapshot.Meta.MaxTimestamp == nil {
		e.mu.Unlock()
		return fmt.Errorf("current snapshot has no timestamp range to replay")
	}
	min := *e.snapshot.Meta.MinTimestamp
	max := *e.snapshot.Meta.MaxTimestamp
	if !max.After(min) {
		e.mu.Unlock()
		return fmt.Errorf("snapshot timestamp range is empty")
	}

	steps := e.cfg.Replay.Steps
	interval := e.cfg.Replay.Interval
	stop := make(chan struct{})
	e.replayStop = stop
	e.wg.Add(1)
	e.mu.Unlock()

	step := max.Sub(min) / time.Duration(steps)
	e.log.Info("Starting replay",
		zap.Time("from", min), zap.Time("to", max),
		zap.Int("steps", steps), zap.Duration("interval", interval))

	go e.replayLoop(stop, min, max, step, interval)
	return nil
}

// Replaying reports whether a replay is in progress.
func (e *Explorer) Replaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replayStop != nil
}

func (e *Explorer) replayLoop(stop chan struct{}, min, max time.Time, step, interval time.Duration) {
	defer e.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	current := min
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		current = current.Add(step)
		if !current.Before(max) {
			current = max
		}
		metrics.ReplayTicksTotal.Inc()

		at := current
		e.mu.Lock()
		e.snapshotAt = &at
		e.mu.Unlock()
		e.publish(Event{Kind: EventFilters})
		_ = e.Refresh(context.Background())

		if current.Equal(max) {
			e.finishReplay(stop)
			return
		}
	}
}

// finishReplay clears the replay state if this loop still owns it.
func (e *Explorer) finishReplay(stop chan struct{}) {
	e.mu.Lock()
	if e.replayStop == stop {
		e.replayStop = nil
	}
	e.mu.Unlock()
	e.log.Info("Replay finished")
}

// stopReplay cancels a running replay, if any. Safe to call repeatedly.
func (e *Explorer) stopReplay() {
	e.mu.Lock()
	stop := e.replayStop
	e.replayStop = nil
	e.mu.Unlock()
	if stop != nil {
		close(stop)
	}
}
