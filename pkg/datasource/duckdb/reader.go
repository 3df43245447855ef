// Package duckdb loads historical bars out of a DuckDB database file.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

// LoadCandles reads the <symbol>_candles table in time order and invokes the
// handler for each bar. A handler error stops the scan.
func (r *Reader) LoadCandles(ctx context.Context, symbol string, period time.Duration, from, to time.Time, handler func(candle common.Candle) error) error {

	query := fmt.Sprintf(`SELECT ts, open, high, low, close, volume FROM %s_candles WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			panic(err)
		}
	}(rows)

	for rows.Next() {
		var ts time.Time
		var open, high, low, closePrice, volume float64
		if err := rows.Scan(&ts, &open, &high, &low, &closePrice, &volume); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		candle := common.Candle{
			Symbol: symbol,
			Time:   ts.UTC(),
			Period: period,
			Open:   fixed.FromFloat64(open),
			High:   fixed.FromFloat64(high),
			Low:    fixed.FromFloat64(low),
			Close:  fixed.FromFloat64(closePrice),
			Volume: fixed.FromFloat64(volume),
		}
		if err := handler(candle); err != nil {
			return fmt.Errorf("error processing candle: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}

// Candles is a convenience wrapper collecting LoadCandles output into a slice.
func (r *Reader) Candles(ctx context.Context, symbol string, period time.Duration, from, to time.Time) ([]common.Candle, error) {
	var candles []common.Candle
	err := r.LoadCandles(ctx, symbol, period, from, to, func(candle common.Candle) error {
		candles = append(candles, candle)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candles, nil
}
