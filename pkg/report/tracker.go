// Package report aggregates closed trades into a summary suitable for
// end-of-run printing.
package report

import (
	"context"
	"time"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

// Tracker collects realized position legs, typically subscribed to the
// position-closed event.
type Tracker struct {
	closed []common.TransactionData
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) OnPositionClosed(_ context.Context, tx common.TransactionData) {
	t.closed = append(t.closed, tx)
}

func (t *Tracker) ClosedTrades() int { return len(t.closed) }

// Generate folds the collected legs into a Report. Net result of one leg is
// realized profit minus its commission share.
func (t *Tracker) Generate() Report {
	report := Report{}

	var (
		totalDuration time.Duration
		totalProfit   fixed.Point
		totalLoss     fixed.Point
	)
	for _, tx := range t.closed {
		report.TotalTrades++

		if tx.Duration > 0 {
			totalDuration += tx.Duration
		}

		net := tx.RealizedProfit.Sub(tx.Commission)
		if net.Gt(fixed.Zero) {
			totalProfit = totalProfit.Add(net)
			report.WinningTrades++
		} else {
			totalLoss = totalLoss.Add(net.Neg())
			report.LosingTrades++
		}
	}

	if report.WinningTrades > 0 {
		report.AverageWin = totalProfit.DivInt(report.WinningTrades)
	}
	if report.LosingTrades > 0 {
		report.AverageLoss = totalLoss.DivInt(report.LosingTrades)
	}
	if totalLoss.Gt(fixed.Zero) {
		report.ProfitFactor = totalProfit.Div(totalLoss)
	}
	if report.AverageLoss.Gt(fixed.Zero) {
		report.RiskRewardRatio = report.AverageWin.Div(report.AverageLoss)
	}
	if report.TotalTrades > 0 {
		report.Expectancy = totalProfit.Sub(totalLoss).DivInt(report.TotalTrades)
		report.AverageTradeDuration = totalDuration / time.Duration(report.TotalTrades)
		report.WinRate = fixed.FromInt(report.WinningTrades).DivInt(report.TotalTrades).MulInt(100).Rescale(2)
	}

	return report
}
