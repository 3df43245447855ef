package sim

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
	"github.com/mfolta/backsim/pkg/series"
)

// recordingDriver writes every callback into a flat trace for ordering
// assertions.
type recordingDriver struct {
	trace []string
}

func (d *recordingDriver) OnTradingDayStart(_ context.Context, day time.Time) {
	d.trace = append(d.trace, "day-start "+day.Format("01-02"))
}

func (d *recordingDriver) OnTradingDayEnd(_ context.Context, day time.Time) {
	d.trace = append(d.trace, "day-end "+day.Format("01-02"))
}

func (d *recordingDriver) OnPeek(_ context.Context, cursor *series.Cursor, candle common.Candle, newTimestamp bool) error {
	d.trace = append(d.trace, fmt.Sprintf("peek %s %s new=%v", cursor.Symbol(), candle.Time.Format("15:04"), newTimestamp))
	return nil
}

func (d *recordingDriver) OnData(_ context.Context, cursor *series.Cursor, candle common.Candle) error {
	d.trace = append(d.trace, fmt.Sprintf("data %s %s", cursor.Symbol(), candle.Time.Format("15:04")))
	return nil
}

func flatCandle(symbol string, ts time.Time) common.Candle {
	price := fixed.FromInt(100)
	return common.Candle{
		Symbol: symbol, Time: ts, Period: time.Hour,
		Open: price, High: price, Low: price, Close: price,
	}
}

func TestRunner_MergesStreamsInTimeOrder(t *testing.T) {
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	a := series.NewCursor("AAA", []common.Candle{
		flatCandle("AAA", base),
		flatCandle("AAA", base.Add(2*time.Hour)),
	})
	b := series.NewCursor("BBB", []common.Candle{
		flatCandle("BBB", base),
		flatCandle("BBB", base.Add(time.Hour)),
	})

	driver := &recordingDriver{}
	require.NoError(t, NewRunner().Run(context.Background(), []*series.Cursor{a, b}, driver))

	assert.Equal(t, []string{
		"day-start 03-04",
		// Equal timestamps break ties by input order, the second stream's
		// bar at the same instant is not a new timestamp.
		"peek AAA 10:00 new=true",
		"data AAA 10:00",
		"peek BBB 10:00 new=false",
		"data BBB 10:00",
		"peek BBB 11:00 new=true",
		"data BBB 11:00",
		"peek AAA 12:00 new=true",
		"data AAA 12:00",
		"day-end 03-04",
	}, driver.trace)
}

func TestRunner_DayBoundaries(t *testing.T) {
	base := time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC)

	cursor := series.NewCursor("AAA", []common.Candle{
		flatCandle("AAA", base),
		flatCandle("AAA", base.Add(2*time.Hour)),  // 03-05 01:00
		flatCandle("AAA", base.Add(26*time.Hour)), // 03-06 01:00
	})

	driver := &recordingDriver{}
	require.NoError(t, NewRunner().Run(context.Background(), []*series.Cursor{cursor}, driver))

	var boundaries []string
	for _, entry := range driver.trace {
		if entry == "day-start 03-04" || entry == "day-end 03-04" ||
			entry == "day-start 03-05" || entry == "day-end 03-05" ||
			entry == "day-start 03-06" || entry == "day-end 03-06" {
			boundaries = append(boundaries, entry)
		}
	}
	assert.Equal(t, []string{
		"day-start 03-04",
		"day-end 03-04",
		"day-start 03-05",
		"day-end 03-05",
		"day-start 03-06",
		"day-end 03-06",
	}, boundaries)
}

func TestRunner_SparseStreamSkipsWholeDays(t *testing.T) {
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	cursor := series.NewCursor("AAA", []common.Candle{
		flatCandle("AAA", base),
		flatCandle("AAA", base.AddDate(0, 0, 3)), // 03-07, days 05 and 06 empty
	})

	driver := &recordingDriver{}
	require.NoError(t, NewRunner().Run(context.Background(), []*series.Cursor{cursor}, driver))

	// One end/start pair per crossing, skipped days produce no callbacks.
	assert.Equal(t, []string{
		"day-start 03-04",
		"peek AAA 10:00 new=true",
		"data AAA 10:00",
		"day-end 03-04",
		"day-start 03-07",
		"peek AAA 10:00 new=true",
		"data AAA 10:00",
		"day-end 03-07",
	}, driver.trace)
}

func TestRunner_ContextCancellation(t *testing.T) {
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	cursor := series.NewCursor("AAA", []common.Candle{flatCandle("AAA", base)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner().Run(ctx, []*series.Cursor{cursor}, &recordingDriver{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_EmptyInput(t *testing.T) {
	driver := &recordingDriver{}
	require.NoError(t, NewRunner().Run(context.Background(), nil, driver))
	assert.Empty(t, driver.trace)
}
