package dto

import "time"

type PingResponse struct {
	Message   *string `json:"message,omitempty"`
	Observers *int    `json:"observers,omitempty"`
}

type OrderCreate struct {
	CustomerName    *string `json:"customer_name"`
	CustomerContact *string `json:"customer_contact"`
	MerchantRef     *string `json:"merchant_ref"`
}

type Order struct {
	ID              string     `json:"id"`
	CustomerName    string     `json:"customer_name"`
	CustomerContact string     `json:"customer_contact"`
	MerchantRef     string     `json:"merchant_ref"`
	CurrentStatus   string     `json:"current_status"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// ActiveOrder краткая запись для GET /orders.
type ActiveOrder struct {
	OrderID   string     `json:"order_id"`
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type StatusUpdate struct {
	NewStatus string `json:"new_status"`
	Source    string `json:"source"`
}

// StatusChange ответ на смену статуса и сообщение для наблюдателей по websocket.
type StatusChange struct {
	OrderID   string    `json:"order_id"`
	NewStatus string    `json:"new_status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StatusEvent struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
