package binary

import (
	"errors"
	"fmt"
	"time"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

// CandleRecord is the on-disk layout of one bar. Times are UTC nanoseconds,
// prices raw float64.
type CandleRecord struct {
	TimestampNs int64
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
}

// CandleLoader reads a contiguous [from, to] slice of bars out of a
// memory-mapped record file.
type CandleLoader struct {
	source *Source[CandleRecord]
	symbol string
	period time.Duration
}

func NewCandleLoader(fileName, symbol string, period time.Duration) *CandleLoader {
	return &CandleLoader{
		source: NewSource[CandleRecord](fileName),
		symbol: symbol,
		period: period,
	}
}

func (l *CandleLoader) Open() error {
	return l.source.Open()
}

func (l *CandleLoader) Close() {
	l.source.Close()
}

// Load returns all bars with from <= time <= to, in time order. The file is
// assumed sorted by timestamp; the start index is located by binary search.
func (l *CandleLoader) Load(from, to time.Time) ([]common.Candle, error) {
	count, err := l.source.EntryCount()
	if err != nil {
		return nil, err
	}

	start, err := l.searchStart(count, from.UnixNano())
	if err != nil {
		return nil, err
	}

	toNs := to.UnixNano()
	candles := make([]common.Candle, 0, count-start)

	var record CandleRecord
	for index := start; index < count; index++ {
		if err := l.source.Read(index, &record); err != nil {
			if errors.Is(err, ErrEOF) {
				break
			}
			return nil, fmt.Errorf("read record %d: %w", index, err)
		}
		if record.TimestampNs > toNs {
			break
		}
		candles = append(candles, l.toCandle(record))
	}

	return candles, nil
}

// searchStart finds the first record with timestamp >= fromNs.
func (l *CandleLoader) searchStart(count, fromNs int64) (int64, error) {
	low, high := int64(0), count
	var record CandleRecord
	for low < high {
		mid := low + (high-low)/2
		if err := l.source.Read(mid, &record); err != nil {
			return 0, fmt.Errorf("read record %d: %w", mid, err)
		}
		if record.TimestampNs < fromNs {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low, nil
}

func (l *CandleLoader) toCandle(record CandleRecord) common.Candle {
	return common.Candle{
		Symbol: l.symbol,
		Time:   time.Unix(0, record.TimestampNs).UTC(),
		Period: l.period,
		Open:   fixed.FromFloat64(record.Open),
		High:   fixed.FromFloat64(record.High),
		Low:    fixed.FromFloat64(record.Low),
		Close:  fixed.FromFloat64(record.Close),
		Volume: fixed.FromFloat64(record.Volume),
	}
}
