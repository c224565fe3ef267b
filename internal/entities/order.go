package entities

import "time"

type Order struct {
	ID              string
	CustomerName    string
	CustomerContact string
	MerchantRef     string
	Status          OrderStatusType
	Version         int64
	CreatedAt       time.Time
	// nil пока заказ ни разу не менял статус
	UpdatedAt *time.Time
}

type OrderStatusType string

const (
	OrderCreated   OrderStatusType = "created"
	OrderPickedUp  OrderStatusType = "picked_up"
	OrderInTransit OrderStatusType = "in_transit"
	OrderDelivered OrderStatusType = "delivered"
	OrderCancelled OrderStatusType = "cancelled"
)

const (
	DefaultOrderStatus  = OrderCreated
	InitialOrderVersion = int64(1)
)

func (s OrderStatusType) String() string {
	return string(s)
}

type OrderModify struct {
	ID              *string
	CustomerName    *string
	CustomerContact *string
	MerchantRef     *string
	Status          *OrderStatusType
	CreatedAt       *time.Time
}

// StatusUpdate запрос на смену статуса от внешнего источника (REST, kafka).
type StatusUpdate struct {
	OrderID   string
	NewStatus OrderStatusType
	Source    string
}

// StatusChange закоммиченная смена статуса. Это же уходит наблюдателям.
type StatusChange struct {
	OrderID   string
	NewStatus OrderStatusType
	UpdatedAt time.Time
}
