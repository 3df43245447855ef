package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/mfolta/backsim/pkg/bus"
	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

// CachePolicy bounds the instrument cache: it returns the maximum number of
// cached instruments given the live count (instruments holding a position or
// orders). Exposed so the eviction behavior is testable in isolation.
type CachePolicy func(live int) int

// DefaultCachePolicy keeps up to four times the live instrument count plus
// four, which absorbs symbol churn without unbounded growth.
func DefaultCachePolicy(live int) int {
	return 4*live + 4
}

// Account owns the symbol to instrument map and the monetary state. Equity is
// always derived as balance + credit + profit, never stored.
type Account struct {
	router *bus.Router

	balance fixed.Point
	credit  fixed.Point
	profit  fixed.Point

	instruments map[string]*Instrument
	symbols     map[string]common.SymbolInfo
	cachePolicy CachePolicy
	useSeq      int64
}

func NewAccount(router *bus.Router, startingBalance fixed.Point) *Account {
	return &Account{
		router:      router,
		balance:     startingBalance,
		instruments: make(map[string]*Instrument),
		symbols:     make(map[string]common.SymbolInfo),
		cachePolicy: DefaultCachePolicy,
	}
}

// SetCachePolicy overrides the instrument cache bound.
func (a *Account) SetCachePolicy(policy CachePolicy) {
	a.cachePolicy = policy
}

// DefineSymbol registers instrument metadata, unknown symbols fall back to a
// zero-spread default.
func (a *Account) DefineSymbol(info common.SymbolInfo) {
	a.symbols[info.Name] = info
}

func (a *Account) Balance() fixed.Point { return a.balance }
func (a *Account) Credit() fixed.Point  { return a.credit }
func (a *Account) Profit() fixed.Point  { return a.profit }

func (a *Account) AddCredit(amount fixed.Point) {
	a.credit = a.credit.Add(amount)
}

// Equity is the derived account value.
func (a *Account) Equity() fixed.Point {
	return a.balance.Add(a.credit).Add(a.profit)
}

// Instrument returns the per-symbol state, creating it lazily. Creation may
// evict idle instruments per the cache policy.
func (a *Account) Instrument(symbol string) *Instrument {
	in, ok := a.instruments[symbol]
	if !ok {
		info, defined := a.symbols[symbol]
		if !defined {
			info = common.SymbolInfo{Name: symbol}
		}
		in = newInstrument(info)
		a.instruments[symbol] = in
	}
	a.useSeq++
	in.lastUse = a.useSeq
	if !ok {
		a.evictIdle(in)
	}
	return in
}

// LiveInstruments counts instruments holding a position or orders.
func (a *Account) LiveInstruments() int {
	live := 0
	for _, in := range a.instruments {
		if !in.Idle() {
			live++
		}
	}
	return live
}

// CachedInstruments is the current cache size.
func (a *Account) CachedInstruments() int { return len(a.instruments) }

// evictIdle removes least-recently-used idle instruments until the cache fits
// the policy bound. Live instruments and keep, the instrument whose lookup
// triggered the eviction, are never evicted.
func (a *Account) evictIdle(keep *Instrument) {
	limit := a.cachePolicy(a.LiveInstruments())
	for len(a.instruments) > limit {
		var victim *Instrument
		var victimSymbol string
		for symbol, in := range a.instruments {
			if in == keep || !in.Idle() {
				continue
			}
			if victim == nil || in.lastUse < victim.lastUse {
				victim = in
				victimSymbol = symbol
			}
		}
		if victim == nil {
			return
		}
		delete(a.instruments, victimSymbol)
	}
}

// EnterPosition installs the position on its instrument and notifies
// listeners. Instrument state is updated before dispatch.
func (a *Account) EnterPosition(ctx context.Context, in *Instrument, position *common.Position) {
	in.Position = position
	if err := a.router.Post(ctx, bus.PositionOpenedEvent, *position); err != nil {
		slog.Warn("unable to post position opened event", "error", err)
	}
}

// RealizeClose books a realized P&L leg into the balance and notifies
// listeners. When destroy is set the position is removed from the instrument.
// Unrealized profit attributable to the closed quantity is surrendered by the
// caller through a subsequent mark-to-market.
func (a *Account) RealizeClose(ctx context.Context, in *Instrument, tx common.TransactionData, destroy bool) {
	a.balance = a.balance.Add(tx.RealizedProfit).Sub(tx.Commission)
	if destroy {
		in.Position = nil
	}

	if err := a.router.Post(ctx, bus.BalanceEvent, common.Balance{Time: tx.Time, Value: a.balance}); err != nil {
		slog.Warn("unable to post balance event", "error", err)
	}
	if err := a.router.Post(ctx, bus.PositionClosedEvent, tx); err != nil {
		slog.Warn("unable to post position closed event", "error", err)
	}
}

// UpdateProfit marks the symbol's open position to the bar's close and folds
// the change into the account-wide unrealized profit.
func (a *Account) UpdateProfit(in *Instrument, candle common.Candle) {
	a.MarkPosition(in, candle.Close, candle.Time)
}

// MarkPosition re-marks the open position at an arbitrary price, keeping the
// invariant that account profit equals the sum of position profits.
func (a *Account) MarkPosition(in *Instrument, price fixed.Point, now time.Time) {
	if in.Position == nil {
		return
	}
	previous := in.Position.Profit
	in.Position.UpdateProfit(price, now)
	a.profit = a.profit.Add(in.Position.Profit.Sub(previous))
}

// SurrenderProfit removes a closed quantity's unrealized P&L from the account
// aggregate, used when a position is reduced or destroyed.
func (a *Account) SurrenderProfit(amount fixed.Point) {
	a.profit = a.profit.Sub(amount)
}

// MarkEquity emits the current derived equity at the given time.
func (a *Account) MarkEquity(ctx context.Context, now time.Time) {
	if err := a.router.Post(ctx, bus.EquityEvent, common.Equity{Time: now, Value: a.Equity()}); err != nil {
		slog.Warn("unable to post equity event", "error", err)
	}
}
