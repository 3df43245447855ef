package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML run description: instrument, data source, window and
// strategy parameters.
type Config struct {
	Symbol     SymbolConfig     `yaml:"symbol"`
	Data       DataConfig       `yaml:"data"`
	Account    AccountConfig    `yaml:"account"`
	Engine     EngineConfig     `yaml:"engine"`
	Strategy   StrategyConfig   `yaml:"strategy"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type SymbolConfig struct {
	Name         string  `yaml:"name"`
	Digits       int     `yaml:"digits"`
	Spread       float64 `yaml:"spread"`
	ContractSize float64 `yaml:"contract_size"`
}

type DataConfig struct {
	// Source selects the loader: "binary", "duckdb", "clickhouse" or
	// "synthetic".
	Source   string `yaml:"source"`
	Path     string `yaml:"path,omitempty"`
	Addr     string `yaml:"addr,omitempty"`
	Database string `yaml:"database,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Table    string `yaml:"table,omitempty"`
	Interval string `yaml:"interval,omitempty"`
	Period   string `yaml:"period"`

	// Synthetic stream parameters, drift and volatility are annualized.
	Seed       int64   `yaml:"seed,omitempty"`
	StartPrice float64 `yaml:"start_price,omitempty"`
	Drift      float64 `yaml:"drift,omitempty"`
	Volatility float64 `yaml:"volatility,omitempty"`
}

type AccountConfig struct {
	Balance float64 `yaml:"balance"`
}

type EngineConfig struct {
	SameBarExit       bool `yaml:"same_bar_exit"`
	LiquidateOnFinish bool `yaml:"liquidate_on_finish"`
}

type StrategyConfig struct {
	FastWindow int     `yaml:"fast_window"`
	SlowWindow int     `yaml:"slow_window"`
	Quantity   float64 `yaml:"quantity"`
	Latency    string  `yaml:"latency,omitempty"`
}

type SimulationConfig struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

func (d DataConfig) ParsePeriod() (time.Duration, error) {
	return time.ParseDuration(d.Period)
}

func (s StrategyConfig) ParseLatency() (time.Duration, error) {
	if s.Latency == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Latency)
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Symbol.Name == "" {
		return nil, fmt.Errorf("symbol.name is required")
	}
	if cfg.Strategy.FastWindow <= 0 || cfg.Strategy.SlowWindow <= cfg.Strategy.FastWindow {
		return nil, fmt.Errorf("strategy windows must satisfy 0 < fast < slow")
	}
	if !cfg.Simulation.End.After(cfg.Simulation.Start) {
		return nil, fmt.Errorf("simulation.end must be after simulation.start")
	}
	return cfg, nil
}
