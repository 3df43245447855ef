package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statsStart = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func addDays(s *EquitySummary, equities ...float64) {
	for i, equity := range equities {
		s.Add(equity, statsStart.AddDate(0, 0, i))
	}
}

func TestEquitySummary_Empty(t *testing.T) {
	s := NewEquitySummary()

	assert.True(t, math.IsNaN(s.AnnualSharpeRatio()))
	assert.True(t, math.IsNaN(s.AnnualSortinoRatio()))
	assert.True(t, math.IsNaN(s.AverageDrawdown()))
	assert.True(t, math.IsNaN(s.TimeEquityCorrelation()))
	assert.True(t, math.IsNaN(s.RecoveryFactor()))
	assert.Equal(t, int64(0), s.DataPoints())
}

func TestEquitySummary_FlatEquityHasNoSharpe(t *testing.T) {
	s := NewEquitySummary()
	addDays(s, 10000, 10000, 10000, 10000)

	// All daily returns are zero, the variance is zero and the ratio is
	// undefined rather than infinite.
	assert.True(t, math.IsNaN(s.AnnualSharpeRatio()))
	assert.True(t, math.IsNaN(s.AnnualSortinoRatio()))
	assert.Equal(t, int64(3), s.CompletedDays())
}

func TestEquitySummary_Drawdown(t *testing.T) {
	s := NewEquitySummary()
	addDays(s, 100, 120, 90, 110)

	drawdown, at := s.MaxDrawdown()
	assert.InDelta(t, 30.0, drawdown, 1e-12)
	assert.Equal(t, statsStart.AddDate(0, 0, 2), at)

	percent, _ := s.MaxDrawdownPercent()
	assert.InDelta(t, 0.25, percent, 1e-12)

	high, highTime := s.EquityHigh()
	assert.Equal(t, 120.0, high)
	assert.Equal(t, statsStart.AddDate(0, 0, 1), highTime)

	low, _ := s.EquityLow()
	assert.Equal(t, 90.0, low)

	// Still underwater from day one of the drawdown through the last point.
	assert.Equal(t, 2*24*time.Hour, s.LongestDrawdownDuration())

	// Net profit 10 over a max drawdown of 30.
	assert.InDelta(t, 10.0/30.0, s.RecoveryFactor(), 1e-12)
}

func TestEquitySummary_SharpeSign(t *testing.T) {
	rising := NewEquitySummary()
	addDays(rising, 10000, 10100, 10150, 10300, 10320)
	assert.Positive(t, rising.AnnualSharpeRatio())

	falling := NewEquitySummary()
	addDays(falling, 10000, 9900, 9850, 9700, 9680)
	assert.Negative(t, falling.AnnualSharpeRatio())
	assert.Negative(t, falling.AnnualSortinoRatio())
}

func TestEquitySummary_SortinoIgnoresUpside(t *testing.T) {
	// Only gains: no downside deviation, the ratio is undefined.
	s := NewEquitySummary()
	addDays(s, 10000, 10100, 10250, 10400)
	assert.True(t, math.IsNaN(s.AnnualSortinoRatio()))
	assert.False(t, math.IsNaN(s.AnnualSharpeRatio()))
}

func TestEquitySummary_IntradayPointsShareOneBucket(t *testing.T) {
	s := NewEquitySummary()
	s.Add(10000, statsStart)
	s.Add(10050, statsStart.Add(time.Hour))
	s.Add(10020, statsStart.Add(2*time.Hour))

	assert.Equal(t, int64(3), s.DataPoints())
	assert.Equal(t, int64(0), s.CompletedDays())

	// The day closes on the first point of the next one.
	s.Add(10030, statsStart.AddDate(0, 0, 1))
	assert.Equal(t, int64(1), s.CompletedDays())
}

func TestEquitySummary_ReplayIsDeterministic(t *testing.T) {
	equities := []float64{10000, 10080, 9990, 10120, 10060, 10200, 10150}

	run := func() *EquitySummary {
		s := NewEquitySummary()
		for i, equity := range equities {
			s.Add(equity, statsStart.Add(time.Duration(i)*13*time.Hour))
		}
		return s
	}

	first, second := run(), run()

	// Bit-identical, not merely close: replaying the same stream must give
	// the same accumulator state.
	assert.Equal(t, first.AnnualSharpeRatio(), second.AnnualSharpeRatio())
	assert.Equal(t, first.AnnualSortinoRatio(), second.AnnualSortinoRatio())
	assert.Equal(t, first.TimeEquityCorrelation(), second.TimeEquityCorrelation())
	assert.Equal(t, first.EquitySlope(), second.EquitySlope())
	d1, _ := first.MaxDrawdown()
	d2, _ := second.MaxDrawdown()
	assert.Equal(t, d1, d2)
}

func TestEquitySummary_Correlation(t *testing.T) {
	s := NewEquitySummary()
	for i := 0; i < 10; i++ {
		s.Add(10000+float64(i)*50, statsStart.AddDate(0, 0, i))
	}

	// Linear growth in time correlates perfectly.
	assert.InDelta(t, 1.0, s.TimeEquityCorrelation(), 1e-9)
	assert.InDelta(t, 1.0, s.TimeLogEquityCorrelation(), 1e-3)
	assert.Positive(t, s.EquitySlope())
}

func TestEquitySummary_RiskFreeBenchmark(t *testing.T) {
	plain := NewEquitySummary()
	benchmarked := NewEquitySummaryWithRiskFree(0.01)

	for i, equity := range []float64{10000, 10100, 10150, 10300, 10320} {
		ts := statsStart.AddDate(0, 0, i)
		plain.Add(equity, ts)
		benchmarked.Add(equity, ts)
	}

	require.False(t, math.IsNaN(plain.AnnualSharpeRatio()))
	assert.Less(t, benchmarked.AnnualSharpeRatio(), plain.AnnualSharpeRatio())
}
