package entities

import "time"

// StatusEvent запись в журнале статусов заказа. После вставки не меняется.
type StatusEvent struct {
	ID        int64
	OrderID   string
	Status    OrderStatusType
	Source    string
	Timestamp time.Time
}
