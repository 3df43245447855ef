// Package stats accumulates equity-curve statistics incrementally, so a
// simulation run never has to buffer its full equity series.
package stats

import (
	"math"
	"time"

	"go.uber.org/zap"
)

const (
	nanosPerDay = int64(24 * time.Hour)

	// Daily returns are annualized over trading days.
	tradingDaysPerYear = 252
)

// EquitySummary is an append-only accumulator over the realized equity curve.
// Add is the sole mutator and must be called in non-decreasing time order.
// Ratio getters return NaN while there is not enough data to answer, that is
// an "insufficient data" signal, not an error.
type EquitySummary struct {
	riskFreeDaily float64

	initialized bool
	startTime   time.Time
	dataPoints  int64

	startingEquity float64
	endingEquity   float64
	endingTime     time.Time

	equityHigh     float64
	equityHighTime time.Time
	equityLow      float64
	equityLowTime  time.Time

	maxDrawdown            float64
	maxDrawdownTime        time.Time
	maxDrawdownPercent     float64
	maxDrawdownPercentTime time.Time

	drawdownTotal           float64
	drawdownPercentTotal    float64
	longestDrawdownDuration time.Duration

	// Day-bucketed return series. currentDay is the integer bucket of the
	// last point, prevDayClose the equity at the previous bucket's close.
	currentDay   int64
	prevDayClose float64
	lastEquity   float64

	// Welford accumulator over closed daily returns plus the downside sum
	// for Sortino.
	returnCount   int64
	returnMean    float64
	returnM2      float64
	downsideSumSq float64

	equityRegression    Regression
	logEquityRegression Regression
}

func NewEquitySummary() *EquitySummary {
	return &EquitySummary{}
}

// NewEquitySummaryWithRiskFree uses the given daily risk-free rate as the
// Sharpe/Sortino benchmark instead of zero.
func NewEquitySummaryWithRiskFree(riskFreeDaily float64) *EquitySummary {
	return &EquitySummary{riskFreeDaily: riskFreeDaily}
}

// Add appends one equity observation.
func (s *EquitySummary) Add(equity float64, now time.Time) {
	day := now.UnixNano() / nanosPerDay

	if !s.initialized {
		s.initialized = true
		s.startTime = now
		s.startingEquity = equity
		s.equityHigh, s.equityLow = equity, equity
		s.equityHighTime, s.equityLowTime = now, now
		s.currentDay = day
		s.prevDayClose = equity
	} else if day > s.currentDay {
		s.closeDay()
		s.currentDay = day
	}

	if equity > s.equityHigh {
		s.equityHigh = equity
		s.equityHighTime = now
	}
	if equity < s.equityLow {
		s.equityLow = equity
		s.equityLowTime = now
	}

	drawdown := s.equityHigh - equity
	if drawdown > s.maxDrawdown {
		s.maxDrawdown = drawdown
		s.maxDrawdownTime = now
	}
	var drawdownPercent float64
	if s.equityHigh > 0 {
		drawdownPercent = drawdown / s.equityHigh
	}
	if drawdownPercent > s.maxDrawdownPercent {
		s.maxDrawdownPercent = drawdownPercent
		s.maxDrawdownPercentTime = now
	}
	s.drawdownTotal += drawdown
	s.drawdownPercentTotal += drawdownPercent
	if drawdown > 0 {
		if underwater := now.Sub(s.equityHighTime); underwater > s.longestDrawdownDuration {
			s.longestDrawdownDuration = underwater
		}
	}

	x := now.Sub(s.startTime).Seconds()
	s.equityRegression.Add(x, equity)
	if equity > 0 {
		s.logEquityRegression.Add(x, math.Log(equity))
	}

	s.lastEquity = equity
	s.endingEquity = equity
	s.endingTime = now
	s.dataPoints++
}

// closeDay folds the finished bucket's return into the Welford state.
func (s *EquitySummary) closeDay() {
	ret := s.lastEquity/s.prevDayClose - 1
	s.prevDayClose = s.lastEquity

	s.returnCount++
	delta := ret - s.returnMean
	s.returnMean += delta / float64(s.returnCount)
	s.returnM2 += delta * (ret - s.returnMean)

	if deviation := ret - s.riskFreeDaily; deviation < 0 {
		s.downsideSumSq += deviation * deviation
	}
}

func (s *EquitySummary) StartingEquity() float64 { return s.startingEquity }
func (s *EquitySummary) EndingEquity() float64   { return s.endingEquity }
func (s *EquitySummary) EndingTime() time.Time   { return s.endingTime }
func (s *EquitySummary) DataPoints() int64       { return s.dataPoints }
func (s *EquitySummary) CompletedDays() int64    { return s.returnCount }

func (s *EquitySummary) EquityHigh() (float64, time.Time) { return s.equityHigh, s.equityHighTime }
func (s *EquitySummary) EquityLow() (float64, time.Time)  { return s.equityLow, s.equityLowTime }

func (s *EquitySummary) MaxDrawdown() (float64, time.Time) {
	return s.maxDrawdown, s.maxDrawdownTime
}

func (s *EquitySummary) MaxDrawdownPercent() (float64, time.Time) {
	return s.maxDrawdownPercent, s.maxDrawdownPercentTime
}

func (s *EquitySummary) AverageDrawdown() float64 {
	if s.dataPoints == 0 {
		return math.NaN()
	}
	return s.drawdownTotal / float64(s.dataPoints)
}

func (s *EquitySummary) AverageDrawdownPercent() float64 {
	if s.dataPoints == 0 {
		return math.NaN()
	}
	return s.drawdownPercentTotal / float64(s.dataPoints)
}

func (s *EquitySummary) LongestDrawdownDuration() time.Duration {
	return s.longestDrawdownDuration
}

// RecoveryFactor is net profit over the maximum drawdown. NaN until a
// drawdown has been observed.
func (s *EquitySummary) RecoveryFactor() float64 {
	if s.maxDrawdown <= 0 {
		return math.NaN()
	}
	return (s.endingEquity - s.startingEquity) / s.maxDrawdown
}

// AnnualSharpeRatio recomputes the ratio as if the still-in-progress day were
// closed at the latest equity, so the value tracks the newest observation
// without waiting for a day boundary. NaN with fewer than one completed day
// or zero variance.
func (s *EquitySummary) AnnualSharpeRatio() float64 {
	if s.returnCount < 1 {
		return math.NaN()
	}
	count, mean, m2, _ := s.withTodayReturn()
	variance := m2 / float64(count-1)
	if variance <= 0 {
		return math.NaN()
	}
	return (mean - s.riskFreeDaily) / math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
}

// AnnualSortinoRatio mirrors AnnualSharpeRatio with downside deviation as the
// denominator.
func (s *EquitySummary) AnnualSortinoRatio() float64 {
	if s.returnCount < 1 {
		return math.NaN()
	}
	count, mean, _, downsideSumSq := s.withTodayReturn()
	downsideVariance := downsideSumSq / float64(count)
	if downsideVariance <= 0 {
		return math.NaN()
	}
	return (mean - s.riskFreeDaily) / math.Sqrt(downsideVariance) * math.Sqrt(tradingDaysPerYear)
}

// withTodayReturn applies one hypothetical Welford step for the in-progress
// day on top of the closed-day state, without mutating it.
func (s *EquitySummary) withTodayReturn() (count int64, mean, m2, downsideSumSq float64) {
	today := s.endingEquity/s.prevDayClose - 1

	count = s.returnCount + 1
	delta := today - s.returnMean
	mean = s.returnMean + delta/float64(count)
	m2 = s.returnM2 + delta*(today-mean)

	downsideSumSq = s.downsideSumSq
	if deviation := today - s.riskFreeDaily; deviation < 0 {
		downsideSumSq += deviation * deviation
	}
	return count, mean, m2, downsideSumSq
}

// TimeEquityCorrelation is the Pearson correlation of time against equity.
func (s *EquitySummary) TimeEquityCorrelation() float64 {
	return s.equityRegression.Correlation()
}

// TimeLogEquityCorrelation is the Pearson correlation of time against the
// natural log of equity. Non-positive equity points are excluded.
func (s *EquitySummary) TimeLogEquityCorrelation() float64 {
	return s.logEquityRegression.Correlation()
}

func (s *EquitySummary) EquitySlope() float64 {
	return s.equityRegression.Slope()
}

func (s *EquitySummary) Fields() []zap.Field {
	return []zap.Field{
		zap.Float64("starting_equity", s.startingEquity),
		zap.Float64("ending_equity", s.endingEquity),
		zap.Float64("equity_high", s.equityHigh),
		zap.Float64("equity_low", s.equityLow),
		zap.Float64("max_drawdown", s.maxDrawdown),
		zap.Float64("max_drawdown_pct", s.maxDrawdownPercent),
		zap.Duration("longest_drawdown", s.longestDrawdownDuration),
		zap.Float64("recovery_factor", s.RecoveryFactor()),
		zap.Float64("sharpe", s.AnnualSharpeRatio()),
		zap.Float64("sortino", s.AnnualSortinoRatio()),
		zap.Float64("time_equity_corr", s.TimeEquityCorrelation()),
		zap.Int64("data_points", s.dataPoints),
		zap.Int64("completed_days", s.returnCount),
	}
}
