package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

func makeCandles(count int) []common.Candle {
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	candles := make([]common.Candle, count)
	for i := range candles {
		candles[i] = common.Candle{
			Symbol: "EURUSD",
			Time:   base.Add(time.Duration(i) * time.Hour),
			Close:  fixed.FromInt(100 + i),
		}
	}
	return candles
}

func TestCursor_Iteration(t *testing.T) {
	cursor := NewCursor("EURUSD", makeCandles(3))

	assert.Equal(t, "EURUSD", cursor.Symbol())
	assert.Equal(t, 3, cursor.Len())

	// Before the first Next there is no current candle.
	assert.True(t, cursor.Current().Time.IsZero())

	seen := 0
	for cursor.HasNext() {
		peeked, ok := cursor.Peek()
		require.True(t, ok)

		consumed, ok := cursor.Next()
		require.True(t, ok)
		assert.Equal(t, peeked, consumed)
		assert.Equal(t, consumed, cursor.Current())
		seen++
	}
	assert.Equal(t, 3, seen)

	_, ok := cursor.Next()
	assert.False(t, ok)
	// Current keeps pointing at the last consumed candle after exhaustion.
	assert.Equal(t, "102", cursor.Current().Close.String())
}

func TestCursor_PeekDoesNotConsume(t *testing.T) {
	cursor := NewCursor("EURUSD", makeCandles(2))

	first, ok := cursor.PeekTime()
	require.True(t, ok)
	second, ok := cursor.PeekTime()
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestCursor_Empty(t *testing.T) {
	cursor := NewCursor("EURUSD", nil)

	assert.False(t, cursor.HasNext())
	_, ok := cursor.Peek()
	assert.False(t, ok)
	_, ok = cursor.Next()
	assert.False(t, ok)
}
