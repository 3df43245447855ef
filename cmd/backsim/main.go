package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfolta/backsim/examples/strategy"
	"github.com/mfolta/backsim/internal/dbg"
	"github.com/mfolta/backsim/pkg/bus"
	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/datasource/binary"
	"github.com/mfolta/backsim/pkg/datasource/clickhouse"
	"github.com/mfolta/backsim/pkg/datasource/duckdb"
	"github.com/mfolta/backsim/pkg/datasource/synthetic"
	"github.com/mfolta/backsim/pkg/fixed"
	"github.com/mfolta/backsim/pkg/middleware"
	"github.com/mfolta/backsim/pkg/series"
	"github.com/mfolta/backsim/pkg/sim"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "backsim",
	Short: "Deterministic bar-replay backtesting engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "backsim.yaml", "run configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "development logging")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger := dbg.NewLogger(debug)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	period, err := cfg.Data.ParsePeriod()
	if err != nil {
		return fmt.Errorf("data.period: %w", err)
	}
	latency, err := cfg.Strategy.ParseLatency()
	if err != nil {
		return fmt.Errorf("strategy.latency: %w", err)
	}

	candles, err := loadCandles(ctx, cfg, period)
	if err != nil {
		return err
	}
	if len(candles) == 0 {
		return fmt.Errorf("no candles in [%s, %s]", cfg.Simulation.Start, cfg.Simulation.End)
	}
	logger.Info("candles loaded", zap.String("symbol", cfg.Symbol.Name), zap.Int("count", len(candles)))

	// Assemble
	router := bus.NewRouter()
	monitor := middleware.NewMonitor(middleware.MonitorPositionsOpened | middleware.MonitorPositionsClosed)
	telemetry := middleware.NewTelemetry(logger)

	router.CandleHandler = telemetry.WithCandle(monitor.WithCandle(middleware.NoopCandleHdl))
	router.ExecutionHandler = telemetry.WithExecution(monitor.WithExecution(middleware.NoopExecutionHdl))
	router.OrderStatusHandler = telemetry.WithOrderStatus(monitor.WithOrderStatus(middleware.NoopOrderStatusHdl))
	router.EquityHandler = telemetry.WithEquity(monitor.WithEquity(middleware.NoopEquityHdl))
	router.BalanceHandler = telemetry.WithBalance(monitor.WithBalance(middleware.NoopBalanceHdl))
	router.PositionOpenedHandler = telemetry.WithPositionOpened(monitor.WithPositionOpened(middleware.NoopPosOpnHdl))
	router.PositionClosedHandler = telemetry.WithPositionClosed(monitor.WithPositionClosed(middleware.NoopPosClsHdl))

	account := sim.NewAccount(router, fixed.FromFloat64(cfg.Account.Balance))
	account.DefineSymbol(common.SymbolInfo{
		Name:         cfg.Symbol.Name,
		Digits:       cfg.Symbol.Digits,
		Spread:       fixed.FromFloat64(cfg.Symbol.Spread),
		ContractSize: fixed.FromFloat64(cfg.Symbol.ContractSize),
	})

	var engineOpts []sim.EngineOption
	if cfg.Engine.SameBarExit {
		engineOpts = append(engineOpts, sim.WithSameBarExit())
	}
	if cfg.Engine.LiquidateOnFinish {
		engineOpts = append(engineOpts, sim.WithLiquidateOnFinish())
	}
	engine := sim.NewMatchingEngine(account, router, engineOpts...)

	smaCross := strategy.NewSmaCross(
		cfg.Symbol.Name,
		fixed.FromFloat64(cfg.Strategy.Quantity),
		cfg.Strategy.FastWindow,
		cfg.Strategy.SlowWindow,
		latency,
	)

	session := sim.NewSession(router, account, engine, smaCross)

	// Execute
	result, err := session.Run(ctx, []*series.Cursor{series.NewCursor(cfg.Symbol.Name, candles)})
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	// Report
	logger.Info("simulation finished", result.Fields()...)
	logger.Info("equity summary", result.Summary.Fields()...)
	result.Trades.Print()
	telemetry.Print()
	router.Statistics().Print()
	return nil
}

func loadCandles(ctx context.Context, cfg *Config, period time.Duration) ([]common.Candle, error) {
	from, to := cfg.Simulation.Start, cfg.Simulation.End

	switch cfg.Data.Source {
	case "binary":
		loader := binary.NewCandleLoader(cfg.Data.Path, cfg.Symbol.Name, period)
		if err := loader.Open(); err != nil {
			return nil, err
		}
		defer loader.Close()
		return loader.Load(from, to)

	case "duckdb":
		reader := duckdb.NewReader(cfg.Data.Path)
		if err := reader.Connect(); err != nil {
			return nil, err
		}
		defer reader.Close()
		return reader.Candles(ctx, cfg.Symbol.Name, period, from, to)

	case "clickhouse":
		reader := clickhouse.NewReader(clickhouse.Options{
			Addr:     cfg.Data.Addr,
			Database: cfg.Data.Database,
			Username: cfg.Data.Username,
			Password: cfg.Data.Password,
			Table:    cfg.Data.Table,
		})
		if err := reader.Connect(ctx); err != nil {
			return nil, err
		}
		defer reader.Close()
		return reader.Candles(ctx, cfg.Symbol.Name, cfg.Data.Interval, period, from, to)

	case "synthetic":
		generator := synthetic.NewCandleGenerator(
			cfg.Symbol.Name,
			cfg.Data.Seed,
			from,
			cfg.Data.StartPrice,
			cfg.Data.Drift,
			cfg.Data.Volatility,
			period,
		)
		count := int(to.Sub(from) / period)
		return generator.Generate(count), nil

	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}
