package order

import "time"

type OrderDB struct {
	ID              string
	CustomerName    string
	CustomerContact string
	MerchantRef     string
	CurrentStatus   string
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

type OrderModifyDB struct {
	ID              *string
	CustomerName    *string
	CustomerContact *string
	MerchantRef     *string
	CurrentStatus   *string
	CreatedAt       *time.Time
}
