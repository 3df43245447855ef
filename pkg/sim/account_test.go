package sim

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfolta/backsim/pkg/bus"
	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

func TestAccount_EquityIsDerived(t *testing.T) {
	account := NewAccount(bus.NewRouter(), fixed.FromInt(10000))

	assert.Equal(t, "10000", account.Equity().String())

	account.AddCredit(fixed.FromInt(500))
	assert.Equal(t, "10500", account.Equity().String())

	in := account.Instrument("EURUSD")
	in.Position = &common.Position{
		Symbol:     "EURUSD",
		Direction:  common.PositionLong,
		Quantity:   fixed.FromInt(2),
		EntryPrice: fixed.FromFloat64(1.1000),
	}
	account.MarkPosition(in, fixed.FromFloat64(1.1100), time.Now())

	assert.Equal(t, "0.02", account.Profit().Rescale(2).String())
	assert.Equal(t, "10500.02", account.Equity().Rescale(2).String())
}

func TestAccount_ProfitMatchesPositionSum(t *testing.T) {
	account := NewAccount(bus.NewRouter(), fixed.FromInt(10000))

	first := account.Instrument("EURUSD")
	first.Position = &common.Position{
		Direction: common.PositionLong, Quantity: fixed.FromInt(1),
		EntryPrice: fixed.FromFloat64(1.10),
	}
	second := account.Instrument("GBPUSD")
	second.Position = &common.Position{
		Direction: common.PositionShort, Quantity: fixed.FromInt(1),
		EntryPrice: fixed.FromFloat64(1.25),
	}

	now := time.Now()
	account.MarkPosition(first, fixed.FromFloat64(1.12), now)
	account.MarkPosition(second, fixed.FromFloat64(1.24), now)
	// Re-marking must fold deltas, not re-add totals.
	account.MarkPosition(first, fixed.FromFloat64(1.11), now)

	want := first.Position.Profit.Add(second.Position.Profit)
	assert.Equal(t, want.String(), account.Profit().String())
}

func TestAccount_InstrumentCacheEviction(t *testing.T) {
	router := bus.NewRouter()
	account := NewAccount(router, fixed.FromInt(10000))
	account.SetCachePolicy(func(live int) int { return live + 2 })

	live := account.Instrument("LIVE")
	live.Position = &common.Position{Direction: common.PositionLong, Quantity: fixed.FromInt(1)}

	for i := 0; i < 10; i++ {
		account.Instrument(fmt.Sprintf("IDLE%d", i))
	}

	assert.LessOrEqual(t, account.CachedInstruments(), 3)
	assert.Equal(t, 1, account.LiveInstruments())

	// The live instrument survives any amount of churn.
	require.NotNil(t, account.Instrument("LIVE").Position)
}

func TestAccount_EvictsLeastRecentlyUsed(t *testing.T) {
	account := NewAccount(bus.NewRouter(), fixed.FromInt(10000))
	account.SetCachePolicy(func(live int) int { return 2 })

	account.Instrument("OLD")
	account.Instrument("NEW")
	// Touch OLD so NEW becomes the eviction candidate.
	account.Instrument("OLD")
	account.Instrument("THIRD")

	assert.Equal(t, 2, account.CachedInstruments())
	assert.Contains(t, account.instruments, "OLD")
	assert.Contains(t, account.instruments, "THIRD")
	assert.NotContains(t, account.instruments, "NEW")
}

func TestAccount_SubmitOnFreshSymbolSurvivesEviction(t *testing.T) {
	ctx := context.Background()
	router := bus.NewRouter()
	account := NewAccount(router, fixed.FromInt(10000))
	account.SetCachePolicy(func(live int) int { return 2 })
	engine := NewMatchingEngine(account, router)

	account.Instrument("EURUSD")
	account.Instrument("GBPUSD")

	order := &common.Order{
		Symbol:      "USDJPY",
		Side:        common.OrderSideBuy,
		Type:        common.OrderTypeMarket,
		Quantity:    fixed.FromInt(1),
		TimeInForce: common.TimeInForceOpen,
	}
	engine.SubmitOrder(ctx, order, time.Now())

	// The lookup that created the instrument must not evict it in the same
	// breath, the pending order would vanish without ever reaching a
	// terminal status otherwise.
	require.Contains(t, account.instruments, "USDJPY")
	require.Len(t, account.instruments["USDJPY"].transmit, 1)
	assert.Same(t, order, account.instruments["USDJPY"].transmit[0])
	assert.Equal(t, common.OrderStatusSubmitted, order.Status)
}

func TestAccount_RealizeCloseUpdatesBalance(t *testing.T) {
	router := bus.NewRouter()

	var balances []common.Balance
	router.BalanceHandler = func(_ context.Context, balance common.Balance) {
		balances = append(balances, balance)
	}

	account := NewAccount(router, fixed.FromInt(10000))
	in := account.Instrument("EURUSD")
	in.Position = &common.Position{Direction: common.PositionLong, Quantity: fixed.FromInt(1)}

	account.RealizeClose(context.Background(), in, common.TransactionData{
		Symbol:         "EURUSD",
		Time:           time.Now(),
		RealizedProfit: fixed.FromInt(25),
		Commission:     fixed.FromInt(2),
	}, true)

	assert.Equal(t, "10023", account.Balance().String())
	assert.Nil(t, in.Position)
	require.Len(t, balances, 1)
	assert.Equal(t, "10023", balances[0].Value.String())
}

func TestAccount_UndefinedSymbolFallsBack(t *testing.T) {
	account := NewAccount(bus.NewRouter(), fixed.FromInt(10000))
	in := account.Instrument("UNKNOWN")
	assert.Equal(t, "UNKNOWN", in.Symbol())
	assert.True(t, in.Info.Spread.IsZero())
}
