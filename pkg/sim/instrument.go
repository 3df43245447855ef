package sim

import (
	"github.com/mfolta/backsim/pkg/common"
)

// Instrument is the per-symbol simulation state: the long-lived working-order
// list, the transmit queue of freshly submitted orders awaiting their first
// bar, the open position (nil when flat) and the last bar seen.
type Instrument struct {
	Info common.SymbolInfo

	working  []*common.Order
	transmit []*common.Order

	Position   *common.Position
	LastCandle common.Candle

	// lastUse orders idle instruments for cache eviction.
	lastUse int64
}

func newInstrument(info common.SymbolInfo) *Instrument {
	return &Instrument{Info: info}
}

func (in *Instrument) Symbol() string { return in.Info.Name }

// EnqueueTransmit admits a newly submitted order. It is not considered for
// fills until the next bar is processed.
func (in *Instrument) EnqueueTransmit(order *common.Order) {
	in.transmit = append(in.transmit, order)
}

// DrainTransmit empties and returns the transmit queue.
func (in *Instrument) DrainTransmit() []*common.Order {
	drained := in.transmit
	in.transmit = nil
	return drained
}

func (in *Instrument) AddWorking(order *common.Order) {
	in.working = append(in.working, order)
}

// WorkingOrders returns the live list, callers must not mutate it while the
// engine sweeps.
func (in *Instrument) WorkingOrders() []*common.Order {
	return in.working
}

// RemoveWorking drops an order by identity. Index-based removal, assumes no
// concurrent structural modification.
func (in *Instrument) RemoveWorking(order *common.Order) {
	for i := range in.working {
		if in.working[i] == order {
			in.working = append(in.working[:i], in.working[i+1:]...)
			return
		}
	}
}

// Flat reports whether the instrument holds no position.
func (in *Instrument) Flat() bool { return in.Position == nil }

// Idle reports whether the instrument can be evicted from the account cache:
// flat and nothing queued.
func (in *Instrument) Idle() bool {
	return in.Position == nil && len(in.working) == 0 && len(in.transmit) == 0
}

// OrderCount is the number of non-terminal orders tracked for this symbol.
func (in *Instrument) OrderCount() int {
	return len(in.working) + len(in.transmit)
}
