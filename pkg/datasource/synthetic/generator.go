// Package synthetic generates geometric-Brownian-motion candles for demos
// and engine smoke runs. A fixed seed gives a reproducible stream.
package synthetic

import (
	"math"
	"math/rand"
	"time"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

const intraBarSteps = 4

// CandleGenerator produces one symbol's bar stream. Mu and sigma are
// annualized drift and volatility of the log price.
type CandleGenerator struct {
	symbol string
	rng    *rand.Rand

	period time.Duration
	mu     float64
	sigma  float64

	// Pre-computed per-step GBM terms.
	drift     float64
	diffusion float64

	lastTime  time.Time
	lastPrice float64
}

func NewCandleGenerator(symbol string, seed int64, start time.Time, startPrice, mu, sigma float64, period time.Duration) *CandleGenerator {
	secondsPerYear := 365.25 * 24 * 3600
	deltaT := period.Seconds() / secondsPerYear / intraBarSteps

	return &CandleGenerator{
		symbol:    symbol,
		rng:       rand.New(rand.NewSource(seed)),
		period:    period,
		mu:        mu,
		sigma:     sigma,
		drift:     (mu - sigma*sigma/2) * deltaT,
		diffusion: sigma * math.Sqrt(deltaT),
		lastTime:  start,
		lastPrice: startPrice,
	}
}

// Next produces the following bar. The close of one bar is the open of the
// next.
func (g *CandleGenerator) Next() common.Candle {
	open := g.lastPrice
	high, low := open, open

	price := open
	for step := 0; step < intraBarSteps; step++ {
		price *= math.Exp(g.drift + g.diffusion*g.rng.NormFloat64())
		if price > high {
			high = price
		}
		if price < low {
			low = price
		}
	}

	candle := common.Candle{
		Symbol: g.symbol,
		Time:   g.lastTime,
		Period: g.period,
		Open:   fixed.FromFloat64(open),
		High:   fixed.FromFloat64(high),
		Low:    fixed.FromFloat64(low),
		Close:  fixed.FromFloat64(price),
		Volume: fixed.FromInt(100 + g.rng.Intn(900)),
	}

	g.lastPrice = price
	g.lastTime = g.lastTime.Add(g.period)
	return candle
}

// Generate returns count consecutive bars.
func (g *CandleGenerator) Generate(count int) []common.Candle {
	candles := make([]common.Candle, count)
	for i := range candles {
		candles[i] = g.Next()
	}
	return candles
}
