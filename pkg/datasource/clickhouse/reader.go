// Package clickhouse loads historical bars from a ClickHouse candle store.
package clickhouse

import (
	"context"
	"fmt"
	"time"

	clickhouse "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

type Options struct {
	Addr     string
	Database string
	Username string
	Password string
	Table    string
}

type Reader struct {
	options Options
	conn    driver.Conn
}

func NewReader(options Options) *Reader {
	if options.Table == "" {
		options.Table = "candles"
	}
	return &Reader{options: options}
}

func (r *Reader) Connect(ctx context.Context) error {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{r.options.Addr},
		Auth: clickhouse.Auth{
			Database: r.options.Database,
			Username: r.options.Username,
			Password: r.options.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": uint64(0),
		},
	})
	if err != nil {
		return fmt.Errorf("clickhouse open: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("clickhouse ping: %w", err)
	}
	r.conn = conn
	return nil
}

func (r *Reader) Close() {
	_ = r.conn.Close()
}

// Candles reads bars for one symbol and interval in time order.
func (r *Reader) Candles(ctx context.Context, symbol, interval string, period time.Duration, from, to time.Time) ([]common.Candle, error) {

	query := fmt.Sprintf(`SELECT ts, open, high, low, close, volume
		FROM %s
		WHERE symbol = ? AND interval = ? AND ts BETWEEN ? AND ?
		ORDER BY ts`, r.options.Table)

	rows, err := r.conn.Query(ctx, query, symbol, interval, from, to)
	if err != nil {
		return nil, fmt.Errorf("clickhouse query: %w", err)
	}
	defer rows.Close()

	var candles []common.Candle
	for rows.Next() {
		var ts time.Time
		var open, high, low, closePrice, volume float64
		if err := rows.Scan(&ts, &open, &high, &low, &closePrice, &volume); err != nil {
			return nil, fmt.Errorf("clickhouse scan: %w", err)
		}
		candles = append(candles, common.Candle{
			Symbol: symbol,
			Time:   ts.UTC(),
			Period: period,
			Open:   fixed.FromFloat64(open),
			High:   fixed.FromFloat64(high),
			Low:    fixed.FromFloat64(low),
			Close:  fixed.FromFloat64(closePrice),
			Volume: fixed.FromFloat64(volume),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("clickhouse rows: %w", err)
	}

	return candles, nil
}
