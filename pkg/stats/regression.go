package stats

import "math"

// Regression accumulates a simple least-squares fit incrementally.
type Regression struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXY float64
	sumXX float64
	sumYY float64
}

func (r *Regression) Add(x, y float64) {
	r.n++
	r.sumX += x
	r.sumY += y
	r.sumXY += x * y
	r.sumXX += x * x
	r.sumYY += y * y
}

func (r *Regression) Count() int64 { return int64(r.n) }

// Slope returns NaN until two points with distinct x values were added.
func (r *Regression) Slope() float64 {
	denom := r.n*r.sumXX - r.sumX*r.sumX
	if r.n < 2 || denom == 0 {
		return math.NaN()
	}
	return (r.n*r.sumXY - r.sumX*r.sumY) / denom
}

func (r *Regression) Intercept() float64 {
	slope := r.Slope()
	if math.IsNaN(slope) {
		return math.NaN()
	}
	return (r.sumY - slope*r.sumX) / r.n
}

// Correlation returns the Pearson coefficient, NaN when either variable has
// zero variance.
func (r *Regression) Correlation() float64 {
	if r.n < 2 {
		return math.NaN()
	}
	cov := r.n*r.sumXY - r.sumX*r.sumY
	varX := r.n*r.sumXX - r.sumX*r.sumX
	varY := r.n*r.sumYY - r.sumY*r.sumY
	if varX <= 0 || varY <= 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
