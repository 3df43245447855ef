package bus

type EventId uint8

const (
	CandleEvent EventId = iota
	ExecutionEvent
	OrderStatusEvent
	PositionOpenedEvent
	PositionClosedEvent
	EquityEvent
	BalanceEvent
)

func (id EventId) String() string {
	switch id {
	case CandleEvent:
		return "candle"
	case ExecutionEvent:
		return "execution"
	case OrderStatusEvent:
		return "order-status"
	case PositionOpenedEvent:
		return "position-opened"
	case PositionClosedEvent:
		return "position-closed"
	case EquityEvent:
		return "equity"
	case BalanceEvent:
		return "balance"
	default:
		return "unknown"
	}
}
