package sim

import (
	"context"
	"time"

	"github.com/tidwall/btree"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/series"
)

// Driver receives the merged event stream. OnPeek fires before the cursor
// advances, so the driver still observes the pre-event cursor state at the
// moment the new timestamp is known; OnData fires after the advance and is
// where bars are actually consumed. Errors propagate uncaught and abort the
// run mid-stream.
type Driver interface {
	OnTradingDayStart(ctx context.Context, day time.Time)
	OnTradingDayEnd(ctx context.Context, day time.Time)
	OnPeek(ctx context.Context, cursor *series.Cursor, candle common.Candle, newTimestamp bool) error
	OnData(ctx context.Context, cursor *series.Cursor, candle common.Candle) error
}

// scheduleKey orders pending streams by next-event time, ties broken by the
// series' position in the input slice.
type scheduleKey struct {
	ts     int64
	index  int
	cursor *series.Cursor
}

func scheduleLess(a, b scheduleKey) bool {
	if a.ts != b.ts {
		return a.ts < b.ts
	}
	return a.index < b.index
}

// Runner interleaves per-symbol chronological streams in global time order
// and raises trading-day boundary callbacks around fixed midnight crossings.
type Runner struct{}

func NewRunner() *Runner { return &Runner{} }

// Run drains all cursors. Each loop turn pops the minimum-time stream,
// delivers its next event in two phases and reinserts the stream keyed by its
// new head. Fires a final day-end after the last event.
func (r *Runner) Run(ctx context.Context, cursors []*series.Cursor, driver Driver) error {
	schedule := btree.NewBTreeG[scheduleKey](scheduleLess)
	for i, cursor := range cursors {
		if ts, ok := cursor.PeekTime(); ok {
			schedule.Set(scheduleKey{ts: ts.UnixNano(), index: i, cursor: cursor})
		}
	}

	var (
		started       bool
		lastEventTime time.Time
		nextDayTime   time.Time
	)

	for schedule.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, _ := schedule.PopMin()
		event, ok := entry.cursor.Peek()
		if !ok {
			continue
		}
		eventTime := event.Time

		if !started {
			nextDayTime = nextMidnight(eventTime)
			driver.OnTradingDayStart(ctx, startOfDay(eventTime))
		} else if !eventTime.Before(nextDayTime) {
			// The boundary is fixed at the next midnight after the
			// previous event; sparse streams that skip whole days
			// still produce a single end/start pair per crossing.
			driver.OnTradingDayEnd(ctx, startOfDay(lastEventTime))
			driver.OnTradingDayStart(ctx, startOfDay(eventTime))
			nextDayTime = nextMidnight(eventTime)
		}

		newTimestamp := !started || eventTime.After(lastEventTime)
		if err := driver.OnPeek(ctx, entry.cursor, event, newTimestamp); err != nil {
			return err
		}
		entry.cursor.Next()
		if err := driver.OnData(ctx, entry.cursor, event); err != nil {
			return err
		}

		started = true
		lastEventTime = eventTime

		if ts, ok := entry.cursor.PeekTime(); ok {
			schedule.Set(scheduleKey{ts: ts.UnixNano(), index: entry.index, cursor: entry.cursor})
		}
	}

	if started {
		driver.OnTradingDayEnd(ctx, startOfDay(lastEventTime))
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

func nextMidnight(t time.Time) time.Time {
	return startOfDay(t).Add(24 * time.Hour)
}
