package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mfolta/backsim/pkg/fixed"
)

type Report struct {
	TotalTrades          int
	WinningTrades        int
	LosingTrades         int
	WinRate              fixed.Point
	Expectancy           fixed.Point
	ProfitFactor         fixed.Point
	AverageWin           fixed.Point
	AverageLoss          fixed.Point
	RiskRewardRatio      fixed.Point
	AverageTradeDuration time.Duration
}

func (r Report) Print() {
	slog.Info("trade statistics",
		"total_trades", r.TotalTrades,
		"winning_trades", r.WinningTrades,
		"losing_trades", r.LosingTrades,
		"win_rate", fmt.Sprintf("%s%%", r.WinRate),
		"expectancy", r.Expectancy,
		"profit_factor", r.ProfitFactor,
		"average_win", r.AverageWin,
		"average_loss", r.AverageLoss,
		"risk_reward_ratio", r.RiskRewardRatio,
		"average_trade_duration", fmt.Sprintf("%.2fm", r.AverageTradeDuration.Minutes()))
}
