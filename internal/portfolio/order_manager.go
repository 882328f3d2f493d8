package portfolio

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	scrErrors "github.com/quantbench/stock-screener/internal/errors"
)

// OrderSide is the buy/sell direction of an order.
type OrderSide int

const (
	OrderBuy OrderSide = iota
	OrderSell
)

func (s OrderSide) String() string {
	if s == OrderSell {
		return "SELL"
	}
	return "BUY"
}

// OrderType is the simulated order type.
type OrderType int

const (
	OrderMarket OrderType = iota
	OrderLimit
	OrderStop
)

func (t OrderType) String() string {
	switch t {
	case OrderLimit:
		return "LIMIT"
	case OrderStop:
		return "STOP"
	default:
		return "MARKET"
	}
}

// OrderStatus is the order lifecycle state.
type OrderStatus int

const (
	OrderPending OrderStatus = iota
	OrderFilled
	OrderPartiallyFilled
	OrderCancelled
	OrderRejected
)

func (s OrderStatus) String() string {
	switch s {
	case OrderFilled:
		return "FILLED"
	case OrderPartiallyFilled:
		return "PARTIALLY_FILLED"
	case OrderCancelled:
		return "CANCELLED"
	case OrderRejected:
		return "REJECTED"
	default:
		return "PENDING"
	}
}

// Order is one simulated order. After creation, only status and fill
// bookkeeping mutate.
type Order struct {
	ID       string
	Symbol   string
	Side     OrderSide
	Type     OrderType
	Quantity float64

	// Price is the limit or stop trigger; ignored for market orders.
	Price float64

	Status         OrderStatus
	FilledQuantity float64
	FilledPrice    float64
	Commission     float64
	CreatedAt      time.Time
	FilledAt       time.Time
}

// Fill describes a completed (possibly partial) execution.
type Fill struct {
	OrderID    string
	Symbol     string
	Side       OrderSide
	Quantity   float64
	Price      float64
	Commission float64
	Timestamp  time.Time
}

// OrderManager simulates fills against the latest available close price
// and charges a configurable commission rate.
type OrderManager struct {
	mu             sync.Mutex
	commissionRate float64
	orders         map[string]*Order
}

// NewOrderManager creates an order manager charging commissionRate per
// fill (fraction of notional, e.g. 0.0005).
func NewOrderManager(commissionRate float64) *OrderManager {
	return &OrderManager{
		commissionRate: commissionRate,
		orders:         make(map[string]*Order),
	}
}

// Submit registers a new order in Pending state. Non-positive quantity
// is rejected immediately.
func (m *OrderManager) Submit(symbol string, side OrderSide, orderType OrderType, quantity, price float64) *Order {
	order := &Order{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Side:      side,
		Type:      orderType,
		Quantity:  quantity,
		Price:     price,
		Status:    OrderPending,
		CreatedAt: time.Now().UTC(),
	}
	if quantity <= 0 {
		order.Status = OrderRejected
	}

	m.mu.Lock()
	m.orders[order.ID] = order
	m.mu.Unlock()
	return order
}

// Execute attempts to fill a pending order against the latest close.
// Market orders always fill. Limit and stop orders fill only when the
// close satisfies their trigger; otherwise the order stays pending and
// a nil fill is returned.
func (m *OrderManager) Execute(orderID string, lastClose float64, ts time.Time) (*Fill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, scrErrors.New(scrErrors.ErrorCategoryOrder, "order_manager", "execute",
			fmt.Sprintf("unknown order %s", orderID))
	}
	if order.Status != OrderPending && order.Status != OrderPartiallyFilled {
		return nil, scrErrors.New(scrErrors.ErrorCategoryOrder, "order_manager", "execute",
			fmt.Sprintf("order %s is %s", orderID, order.Status))
	}
	if lastClose <= 0 {
		order.Status = OrderRejected
		return nil, scrErrors.New(scrErrors.ErrorCategoryComputationDegenerate, "order_manager", "execute",
			"no valid price to fill against").WithSymbol(order.Symbol)
	}

	if !m.triggered(order, lastClose) {
		return nil, nil
	}

	remaining := order.Quantity - order.FilledQuantity
	commission := lastClose * remaining * m.commissionRate

	order.FilledQuantity = order.Quantity
	order.FilledPrice = lastClose
	order.Commission += commission
	order.Status = OrderFilled
	order.FilledAt = ts

	return &Fill{
		OrderID:    order.ID,
		Symbol:     order.Symbol,
		Side:       order.Side,
		Quantity:   remaining,
		Price:      lastClose,
		Commission: commission,
		Timestamp:  ts,
	}, nil
}

// triggered reports whether the close price satisfies the order's
// trigger condition.
func (m *OrderManager) triggered(order *Order, lastClose float64) bool {
	switch order.Type {
	case OrderLimit:
		if order.Side == OrderBuy {
			return lastClose <= order.Price
		}
		return lastClose >= order.Price
	case OrderStop:
		if order.Side == OrderBuy {
			return lastClose >= order.Price
		}
		return lastClose <= order.Price
	default:
		return true
	}
}

// Cancel moves a pending order to Cancelled.
func (m *OrderManager) Cancel(orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return scrErrors.New(scrErrors.ErrorCategoryOrder, "order_manager", "cancel",
			fmt.Sprintf("unknown order %s", orderID))
	}
	if order.Status != OrderPending && order.Status != OrderPartiallyFilled {
		return scrErrors.New(scrErrors.ErrorCategoryOrder, "order_manager", "cancel",
			fmt.Sprintf("order %s is %s", orderID, order.Status))
	}
	order.Status = OrderCancelled
	return nil
}

// Get returns a copy of an order by ID.
func (m *OrderManager) Get(orderID string) (Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return Order{}, false
	}
	return *order, true
}

// Pending returns copies of all orders still awaiting execution.
func (m *OrderManager) Pending() []Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Order, 0)
	for _, order := range m.orders {
		if order.Status == OrderPending || order.Status == OrderPartiallyFilled {
			out = append(out, *order)
		}
	}
	return out
}
