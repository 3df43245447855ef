package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/mfolta/backsim/pkg/bus"
	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

// MatchingEngine turns pending orders into executions against OHLC bars. All
// state transitions are applied before listeners are notified, so account and
// queue state stays consistent even if a listener panics or throws.
type MatchingEngine struct {
	account *Account
	router  *bus.Router

	// allowSameBarExit lets a fill that just opened a position be stopped
	// out against the same bar's close.
	allowSameBarExit  bool
	liquidateOnFinish bool

	orderSeq     int64
	executionSeq int64
}

type EngineOption func(*MatchingEngine)

func WithSameBarExit() EngineOption {
	return func(e *MatchingEngine) { e.allowSameBarExit = true }
}

func WithLiquidateOnFinish() EngineOption {
	return func(e *MatchingEngine) { e.liquidateOnFinish = true }
}

func NewMatchingEngine(account *Account, router *bus.Router, options ...EngineOption) *MatchingEngine {
	e := &MatchingEngine{account: account, router: router}
	for _, option := range options {
		option(e)
	}
	return e
}

// SubmitOrder assigns an id and admits the order to its instrument's transmit
// queue. The order is first considered when the next bar arrives.
func (e *MatchingEngine) SubmitOrder(ctx context.Context, order *common.Order, now time.Time) {
	e.orderSeq++
	order.ID = e.orderSeq
	if order.SubmittedTime.IsZero() {
		order.SubmittedTime = now
	}
	order.Status = common.OrderStatusSubmitted

	in := e.account.Instrument(order.Symbol)
	in.EnqueueTransmit(order)

	e.notifyStatus(ctx, order, now, "")
}

// OnData runs the per-bar matching algorithm, once per candle per symbol:
//
//  1. close-of-previous-bar sweep over the transmit queue
//  2. open-of-new-bar sweep over the orders deferred by step 1
//  3. stop-loss / take-profit check on the open position
//  4. working-order sweep via the per-type fill table
//  5. mark-to-market against the bar's close
func (e *MatchingEngine) OnData(ctx context.Context, candle common.Candle) error {
	in := e.account.Instrument(candle.Symbol)
	previous := in.LastCandle
	hasPrevious := !previous.Time.IsZero()

	openPhase, err := e.sweepTransmitAtClose(ctx, in, previous, hasPrevious, candle)
	if err != nil {
		return err
	}
	if err := e.sweepTransmitAtOpen(ctx, in, candle, openPhase); err != nil {
		return err
	}
	if err := e.checkProtectiveExits(ctx, in, candle); err != nil {
		return err
	}
	if err := e.sweepWorkingOrders(ctx, in, candle); err != nil {
		return err
	}

	e.account.UpdateProfit(in, candle)
	in.LastCandle = candle
	return nil
}

// sweepTransmitAtClose applies the close-of-previous-bar phase. Orders that
// must wait for the new bar's open are returned for phase two; orders not yet
// accepted at the previous bar's close stay queued for the next bar.
func (e *MatchingEngine) sweepTransmitAtClose(ctx context.Context, in *Instrument, previous common.Candle, hasPrevious bool, candle common.Candle) ([]*common.Order, error) {
	closeTime := candle.Time
	if hasPrevious {
		closeTime = previousCloseTime(previous, candle)
	}

	var openPhase []*common.Order
	for _, order := range in.DrainTransmit() {
		switch {
		case order.CancelRequested:
			order.Status = common.OrderStatusCancelled
			e.notifyStatus(ctx, order, closeTime, "")
		case order.ExpiredBy(closeTime):
			order.Status = common.OrderStatusExpired
			e.notifyStatus(ctx, order, closeTime, "")
		case !order.AcceptedBy(closeTime):
			// Left for the open phase, or the next bar entirely.
			openPhase = append(openPhase, order)
		case order.TimeInForce == common.TimeInForceClose:
			e.accept(ctx, order, closeTime)
			if !hasPrevious {
				e.reject(ctx, order, closeTime, "no bar close available")
				continue
			}
			if err := e.FillOrder(ctx, order, previous, previous.Close, closeTime); err != nil {
				return nil, err
			}
		case order.TimeInForce == common.TimeInForceOpen || order.ImmediateOrCancel():
			e.accept(ctx, order, closeTime)
			openPhase = append(openPhase, order)
		default:
			e.accept(ctx, order, closeTime)
			in.AddWorking(order)
		}
	}
	return openPhase, nil
}

// sweepTransmitAtOpen resolves deferred orders against the new bar's open.
// The acceptance gate runs again with the new bar's time: an order that was
// too late for its close is rejected here.
func (e *MatchingEngine) sweepTransmitAtOpen(ctx context.Context, in *Instrument, candle common.Candle, orders []*common.Order) error {
	now := candle.Time
	for _, order := range orders {
		switch {
		case order.CancelRequested:
			order.Status = common.OrderStatusCancelled
			e.notifyStatus(ctx, order, now, "")
		case order.ExpiredBy(now):
			order.Status = common.OrderStatusExpired
			e.notifyStatus(ctx, order, now, "")
		case !order.AcceptedBy(now):
			in.EnqueueTransmit(order)
		case order.TimeInForce == common.TimeInForceClose:
			// The close this order was bound to has already passed.
			e.accept(ctx, order, now)
			e.reject(ctx, order, now, "close-bound order reached next open")
		case order.TimeInForce == common.TimeInForceOpen || order.ImmediateOrCancel():
			e.accept(ctx, order, now)
			if err := e.FillOrder(ctx, order, candle, candle.Open, now); err != nil {
				return err
			}
		default:
			e.accept(ctx, order, now)
			in.AddWorking(order)
		}
	}
	return nil
}

// checkProtectiveExits evaluates the position's exit stop and exit limit
// against the bar. Closing the position on the first hit removes it, so at
// most one exit applies to a fully closed position per bar.
func (e *MatchingEngine) checkProtectiveExits(ctx context.Context, in *Instrument, candle common.Candle) error {
	position := in.Position
	if position == nil {
		return nil
	}

	if price, hit := stopLossPrice(position, in.Info.Spread, candle); hit {
		return e.closePosition(ctx, in, candle, price, candle.Time, exitStopLoss)
	}
	if price, hit := profitTargetPrice(position, in.Info.Spread, candle); hit {
		return e.closePosition(ctx, in, candle, price, candle.Time, exitProfitTarget)
	}
	return nil
}

// stopLossPrice returns the matched (pre-spread) exit price when the bar hits
// the position's stop. If the bar's open already gapped through the level the
// open becomes the effective price, keeping it within the realizable range.
func stopLossPrice(position *common.Position, spread fixed.Point, candle common.Candle) (fixed.Point, bool) {
	if position.ExitStop.IsZero() {
		return fixed.Zero, false
	}
	if position.Direction == common.PositionLong {
		if candle.Low.Lte(position.ExitStop) {
			if candle.Open.Lte(position.ExitStop) {
				return candle.Open, true
			}
			return position.ExitStop, true
		}
		return fixed.Zero, false
	}
	// Short exit is a buy, the ask touches the stop one spread early.
	level := position.ExitStop.Sub(spread)
	if candle.High.Gte(level) {
		if candle.Open.Gte(level) {
			return candle.Open, true
		}
		return level, true
	}
	return fixed.Zero, false
}

func profitTargetPrice(position *common.Position, spread fixed.Point, candle common.Candle) (fixed.Point, bool) {
	if position.ExitLimit.IsZero() {
		return fixed.Zero, false
	}
	if position.Direction == common.PositionLong {
		if candle.High.Gte(position.ExitLimit) {
			if candle.Open.Gte(position.ExitLimit) {
				return candle.Open, true
			}
			return position.ExitLimit, true
		}
		return fixed.Zero, false
	}
	level := position.ExitLimit.Sub(spread)
	if candle.Low.Lte(level) {
		if candle.Open.Lte(level) {
			return candle.Open, true
		}
		return level, true
	}
	return fixed.Zero, false
}

// fillFunc consumes a bar and yields the matched price, or reports no fill.
type fillFunc func(order *common.Order, candle common.Candle) (fixed.Point, bool)

// fillTable dispatches on the order type, each variant consumes the bar and
// produces at most one execution.
var fillTable = map[common.OrderType]fillFunc{
	common.OrderTypeMarket: tryFillMarket,
	common.OrderTypeStop:   tryFillStop,
	common.OrderTypeLimit:  tryFillLimit,
}

func tryFillMarket(_ *common.Order, candle common.Candle) (fixed.Point, bool) {
	return candle.Open, true
}

func tryFillStop(order *common.Order, candle common.Candle) (fixed.Point, bool) {
	stop := order.StopPrice
	if order.IsBuy() {
		if candle.High.Gte(stop) {
			if candle.Open.Gte(stop) {
				return candle.Open, true
			}
			return stop, true
		}
		return fixed.Zero, false
	}
	if candle.Low.Lte(stop) {
		if candle.Open.Lte(stop) {
			return candle.Open, true
		}
		return stop, true
	}
	return fixed.Zero, false
}

func tryFillLimit(order *common.Order, candle common.Candle) (fixed.Point, bool) {
	limit := order.LimitPrice
	if order.IsBuy() {
		if candle.Low.Lte(limit) {
			if candle.Open.Lte(limit) {
				return candle.Open, true
			}
			return limit, true
		}
		return fixed.Zero, false
	}
	if candle.High.Gte(limit) {
		if candle.Open.Gte(limit) {
			return candle.Open, true
		}
		return limit, true
	}
	return fixed.Zero, false
}

func (e *MatchingEngine) sweepWorkingOrders(ctx context.Context, in *Instrument, candle common.Candle) error {
	now := candle.Time

	working := make([]*common.Order, len(in.WorkingOrders()))
	copy(working, in.WorkingOrders())

	for _, order := range working {
		switch {
		case order.CancelRequested:
			in.RemoveWorking(order)
			order.Status = common.OrderStatusCancelled
			e.notifyStatus(ctx, order, now, "")
			continue
		case order.ExpiredBy(now):
			in.RemoveWorking(order)
			order.Status = common.OrderStatusExpired
			e.notifyStatus(ctx, order, now, "")
			continue
		case !order.AcceptedBy(now):
			continue
		}

		tryFill, ok := fillTable[order.Type]
		if !ok {
			slog.Warn("no fill strategy for order type", "type", order.Type)
			continue
		}
		price, filled := tryFill(order, candle)
		if !filled {
			continue
		}
		if err := e.FillOrder(ctx, order, candle, price, now); err != nil {
			return err
		}
	}
	return nil
}

// FillOrder executes one order at the matched price. The matched price must
// lie within the bar's range, a violation aborts the run. Buy-side fills pay
// the symbol's spread on top of the matched price.
func (e *MatchingEngine) FillOrder(ctx context.Context, order *common.Order, candle common.Candle, matched fixed.Point, now time.Time) error {
	if !candle.Contains(matched) {
		return &PriceBoundError{Symbol: order.Symbol, Price: matched, Bar: candle}
	}

	in := e.account.Instrument(order.Symbol)
	price := matched
	if order.IsBuy() {
		price = price.Add(in.Info.Spread)
	}
	return e.fillAtMarket(ctx, in, order, candle, price, now)
}

// fillAtMarket applies the position-transition algorithm: new entry,
// scale-in, scale-out or stop-and-reverse, producing exactly one execution
// for an accepted fill.
func (e *MatchingEngine) fillAtMarket(ctx context.Context, in *Instrument, order *common.Order, candle common.Candle, price fixed.Point, now time.Time) error {
	position := in.Position

	switch {
	case position == nil:
		if !order.OpensPosition() {
			// Nothing to close: a failed transition match is a modeled
			// rejection, not an error.
			in.RemoveWorking(order)
			e.reject(ctx, order, now, "no position to close")
			return nil
		}
		return e.openPosition(ctx, in, order, candle, price, now)

	case sameDirection(position, order):
		return e.scaleIn(ctx, in, order, price, now)

	case order.Quantity.Lte(position.Quantity.Add(fixed.CloseEpsilon)):
		return e.scaleOut(ctx, in, order, price, now)

	default:
		return e.reverse(ctx, in, order, candle, price, now)
	}
}

func sameDirection(position *common.Position, order *common.Order) bool {
	long := position.Direction == common.PositionLong
	return long == order.IsBuy()
}

func (e *MatchingEngine) openPosition(ctx context.Context, in *Instrument, order *common.Order, candle common.Candle, price fixed.Point, now time.Time) error {
	direction := common.PositionLong
	if order.Side == common.OrderSideSellShort {
		direction = common.PositionShort
	}
	openingCommission := order.CommissionFor(price, order.Quantity, nil)

	position := &common.Position{
		Symbol:            order.Symbol,
		Direction:         direction,
		Quantity:          order.Quantity,
		EntryPrice:        price,
		EntryTime:         now,
		EntryOrder:        order,
		ExitStop:          order.ExitStop,
		ExitLimit:         order.ExitLimit,
		OpeningCommission: openingCommission,
	}

	e.completeFill(in, order)
	e.account.EnterPosition(ctx, in, position)
	e.emitExecution(ctx, common.Execution{
		Order:             order,
		Symbol:            order.Symbol,
		Time:              now,
		Price:             price,
		Size:              order.Quantity,
		Side:              order.Side,
		OpeningCommission: openingCommission,
	})
	e.notifyStatus(ctx, order, now, "")

	if e.allowSameBarExit {
		return e.sameBarExit(ctx, in, candle)
	}
	return nil
}

func (e *MatchingEngine) scaleIn(ctx context.Context, in *Instrument, order *common.Order, price fixed.Point, now time.Time) error {
	position := in.Position
	addCommission := order.CommissionFor(price, order.Quantity, position)

	// Blend the cost basis by quantity weight.
	total := position.Quantity.Add(order.Quantity)
	blended := position.EntryPrice.Mul(position.Quantity).Add(price.Mul(order.Quantity)).Div(total)

	e.account.SurrenderProfit(position.Profit)
	position.Profit = fixed.Zero
	position.EntryPrice = blended
	position.Quantity = total
	position.OpeningCommission = position.OpeningCommission.Add(addCommission)
	e.account.MarkPosition(in, price, now)

	e.completeFill(in, order)
	e.emitExecution(ctx, common.Execution{
		Order:             order,
		Symbol:            order.Symbol,
		Time:              now,
		Price:             price,
		Size:              order.Quantity,
		Side:              order.Side,
		OpeningCommission: addCommission,
		ScaleIn:           true,
	})
	e.notifyStatus(ctx, order, now, "")
	return nil
}

func (e *MatchingEngine) scaleOut(ctx context.Context, in *Instrument, order *common.Order, price fixed.Point, now time.Time) error {
	position := in.Position
	closeQuantity := order.Quantity.Min(position.Quantity)
	remaining := position.Quantity.Sub(closeQuantity)
	fullClose := remaining.Lte(fixed.CloseEpsilon)
	if fullClose {
		closeQuantity = position.Quantity
		remaining = fixed.Zero
	}

	realized := realizedProfit(position, price, closeQuantity)
	closingCommission := order.CommissionFor(price, closeQuantity, position)
	openingShare := position.OpeningCommission
	if !fullClose {
		openingShare = position.OpeningCommission.Mul(closeQuantity).Div(position.Quantity)
	}

	e.account.SurrenderProfit(position.Profit)
	position.Profit = fixed.Zero
	duration := now.Sub(position.EntryTime)

	if fullClose {
		e.completeFill(in, order)
		e.account.RealizeClose(ctx, in, common.TransactionData{
			Symbol:         order.Symbol,
			Time:           now,
			Price:          price,
			Quantity:       closeQuantity,
			RealizedProfit: realized,
			Commission:     closingCommission.Add(openingShare),
			Duration:       duration,
		}, true)
	} else {
		position.Quantity = remaining
		position.OpeningCommission = position.OpeningCommission.Sub(openingShare)
		e.account.MarkPosition(in, price, now)
		e.completeFill(in, order)
		e.account.RealizeClose(ctx, in, common.TransactionData{
			Symbol:         order.Symbol,
			Time:           now,
			Price:          price,
			Quantity:       closeQuantity,
			RealizedProfit: realized,
			Commission:     closingCommission.Add(openingShare),
			Duration:       duration,
		}, false)
	}

	e.emitExecution(ctx, common.Execution{
		Order:             order,
		Symbol:            order.Symbol,
		Time:              now,
		Price:             price,
		Size:              closeQuantity,
		Side:              order.Side,
		ClosingCommission: closingCommission,
		ScaleOut:          true,
	})
	e.notifyStatus(ctx, order, now, "")
	return nil
}

// reverse closes the existing position in full and opens the opposite
// direction from the same fill. The execution covers both legs.
func (e *MatchingEngine) reverse(ctx context.Context, in *Instrument, order *common.Order, candle common.Candle, price fixed.Point, now time.Time) error {
	position := in.Position
	closedQuantity := position.Quantity
	openQuantity := order.Quantity.Sub(closedQuantity)

	realized := realizedProfit(position, price, closedQuantity)
	closingCommission := order.CommissionFor(price, closedQuantity, position)
	openingShare := position.OpeningCommission
	duration := now.Sub(position.EntryTime)

	e.account.SurrenderProfit(position.Profit)
	position.Profit = fixed.Zero
	e.account.RealizeClose(ctx, in, common.TransactionData{
		Symbol:         order.Symbol,
		Time:           now,
		Price:          price,
		Quantity:       closedQuantity,
		RealizedProfit: realized,
		Commission:     closingCommission.Add(openingShare),
		Duration:       duration,
	}, true)

	direction := common.PositionLong
	if !order.IsBuy() {
		direction = common.PositionShort
	}
	openingCommission := order.CommissionFor(price, openQuantity, nil)
	next := &common.Position{
		Symbol:            order.Symbol,
		Direction:         direction,
		Quantity:          openQuantity,
		EntryPrice:        price,
		EntryTime:         now,
		EntryOrder:        order,
		ExitStop:          order.ExitStop,
		ExitLimit:         order.ExitLimit,
		OpeningCommission: openingCommission,
	}

	e.completeFill(in, order)
	e.account.EnterPosition(ctx, in, next)
	e.emitExecution(ctx, common.Execution{
		Order:             order,
		Symbol:            order.Symbol,
		Time:              now,
		Price:             price,
		Size:              order.Quantity,
		Side:              order.Side,
		OpeningCommission: openingCommission,
		ClosingCommission: closingCommission,
	})
	e.notifyStatus(ctx, order, now, "")

	if e.allowSameBarExit {
		return e.sameBarExit(ctx, in, candle)
	}
	return nil
}

// sameBarExit checks a freshly opened position against the opening bar's
// close, modeling an immediate intra-bar stop-out.
func (e *MatchingEngine) sameBarExit(ctx context.Context, in *Instrument, candle common.Candle) error {
	position := in.Position
	if position == nil || candle.Time.IsZero() {
		return nil
	}

	long := position.Direction == common.PositionLong
	if !position.ExitStop.IsZero() {
		stopHit := (long && candle.Close.Lte(position.ExitStop)) ||
			(!long && candle.Close.Gte(position.ExitStop))
		if stopHit {
			price := position.ExitStop
			if !candle.Contains(price) {
				price = candle.Close
			}
			return e.closePosition(ctx, in, candle, price, candle.Time, exitStopLoss)
		}
	}
	if !position.ExitLimit.IsZero() {
		limitHit := (long && candle.Close.Gte(position.ExitLimit)) ||
			(!long && candle.Close.Lte(position.ExitLimit))
		if limitHit {
			price := position.ExitLimit
			if !candle.Contains(price) {
				price = candle.Close
			}
			return e.closePosition(ctx, in, candle, price, candle.Time, exitProfitTarget)
		}
	}
	return nil
}

type exitKind int

const (
	exitStopLoss exitKind = iota
	exitProfitTarget
	exitLiquidation
)

// closePosition closes the full open position at the matched price, used by
// protective exits and end-of-data liquidation. A synthetic closing order
// carries the entry order's commission function.
func (e *MatchingEngine) closePosition(ctx context.Context, in *Instrument, candle common.Candle, matched fixed.Point, now time.Time, kind exitKind) error {
	position := in.Position

	side := common.OrderSideSell
	if position.Direction == common.PositionShort {
		side = common.OrderSideBuyToCover
	}

	if !candle.Contains(matched) {
		return &PriceBoundError{Symbol: position.Symbol, Price: matched, Bar: candle}
	}
	price := matched
	if side == common.OrderSideBuyToCover {
		price = price.Add(in.Info.Spread)
	}

	var commissionFn common.CommissionFunc
	if position.EntryOrder != nil {
		commissionFn = position.EntryOrder.Commission
	}
	exit := &common.Order{
		Symbol:        position.Symbol,
		Side:          side,
		Type:          common.OrderTypeMarket,
		Quantity:      position.Quantity,
		SubmittedTime: now,
		Status:        common.OrderStatusFilled,
		Commission:    commissionFn,
	}
	e.orderSeq++
	exit.ID = e.orderSeq

	realized := realizedProfit(position, price, position.Quantity)
	closingCommission := exit.CommissionFor(price, position.Quantity, position)
	duration := now.Sub(position.EntryTime)

	e.account.SurrenderProfit(position.Profit)
	position.Profit = fixed.Zero
	e.account.RealizeClose(ctx, in, common.TransactionData{
		Symbol:         position.Symbol,
		Time:           now,
		Price:          price,
		Quantity:       position.Quantity,
		RealizedProfit: realized,
		Commission:     closingCommission.Add(position.OpeningCommission),
		Duration:       duration,
	}, true)

	e.emitExecution(ctx, common.Execution{
		Order:             exit,
		Symbol:            position.Symbol,
		Time:              now,
		Price:             price,
		Size:              exit.Quantity,
		Side:              side,
		ClosingCommission: closingCommission,
		StopLossHit:       kind == exitStopLoss,
		ProfitTargetHit:   kind == exitProfitTarget,
		Liquidation:       kind == exitLiquidation,
	})
	return nil
}

// AfterLast finishes a symbol's stream: close-bound orders fill at the final
// bar's close, everything else pending is cancelled, and the open position is
// liquidated when the engine was configured to do so.
func (e *MatchingEngine) AfterLast(ctx context.Context, symbol string, candle common.Candle) error {
	in := e.account.Instrument(symbol)
	now := candle.Time

	for _, order := range in.DrainTransmit() {
		switch {
		case order.CancelRequested:
			order.Status = common.OrderStatusCancelled
			e.notifyStatus(ctx, order, now, "")
		case order.TimeInForce == common.TimeInForceClose && order.AcceptedBy(now):
			e.accept(ctx, order, now)
			if err := e.FillOrder(ctx, order, candle, candle.Close, now); err != nil {
				return err
			}
		default:
			order.Status = common.OrderStatusCancelled
			e.notifyStatus(ctx, order, now, "end of data")
		}
	}

	working := make([]*common.Order, len(in.WorkingOrders()))
	copy(working, in.WorkingOrders())
	for _, order := range working {
		in.RemoveWorking(order)
		order.Status = common.OrderStatusCancelled
		e.notifyStatus(ctx, order, now, "end of data")
	}

	if e.liquidateOnFinish && in.Position != nil {
		if err := e.closePosition(ctx, in, candle, candle.Close, now, exitLiquidation); err != nil {
			return err
		}
	}

	e.account.UpdateProfit(in, candle)
	return nil
}

// realizedProfit computes the direction-aware P&L of closing quantity at
// price.
func realizedProfit(position *common.Position, price, quantity fixed.Point) fixed.Point {
	diff := price.Sub(position.EntryPrice)
	if position.Direction == common.PositionShort {
		diff = position.EntryPrice.Sub(price)
	}
	return diff.Mul(quantity)
}

// previousCloseTime is the moment the previous bar's close became known.
func previousCloseTime(previous, current common.Candle) time.Time {
	if previous.Period > 0 {
		t := previous.Time.Add(previous.Period)
		if t.Before(current.Time) {
			return t
		}
	}
	return current.Time
}

// completeFill flips the order terminal before any listener runs.
func (e *MatchingEngine) completeFill(in *Instrument, order *common.Order) {
	in.RemoveWorking(order)
	order.Status = common.OrderStatusFilled
}

func (e *MatchingEngine) accept(ctx context.Context, order *common.Order, now time.Time) {
	if order.Status != common.OrderStatusSubmitted {
		return
	}
	order.Status = common.OrderStatusAccepted
	e.notifyStatus(ctx, order, now, "")
}

func (e *MatchingEngine) reject(ctx context.Context, order *common.Order, now time.Time, reason string) {
	order.Status = common.OrderStatusRejected
	e.notifyStatus(ctx, order, now, reason)
}

func (e *MatchingEngine) emitExecution(ctx context.Context, execution common.Execution) {
	e.executionSeq++
	execution.ID = e.executionSeq
	if err := e.router.Post(ctx, bus.ExecutionEvent, execution); err != nil {
		slog.Warn("unable to post execution event", "error", err)
	}
}

func (e *MatchingEngine) notifyStatus(ctx context.Context, order *common.Order, now time.Time, reason string) {
	change := common.OrderStatusChange{Order: order, Status: order.Status, Time: now, Reason: reason}
	if err := e.router.Post(ctx, bus.OrderStatusEvent, change); err != nil {
		slog.Warn("unable to post order status event", "error", err)
	}
}

// Executions returns the number of executions produced so far.
func (e *MatchingEngine) Executions() int64 { return e.executionSeq }
