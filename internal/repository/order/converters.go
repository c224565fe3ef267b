package order

import (
	"tracker/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	return &entities.Order{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerContact: o.CustomerContact,
		MerchantRef:     o.MerchantRef,
		Status:          entities.OrderStatusType(o.CurrentStatus),
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromDomainModify(orderModify *entities.OrderModify) *OrderModifyDB {
	if orderModify == nil {
		return nil
	}
	orderDB := &OrderModifyDB{
		ID:              orderModify.ID,
		CustomerName:    orderModify.CustomerName,
		CustomerContact: orderModify.CustomerContact,
		MerchantRef:     orderModify.MerchantRef,
		CreatedAt:       orderModify.CreatedAt,
	}

	if orderModify.Status != nil {
		status := orderModify.Status.String()
		orderDB.CurrentStatus = &status
	}

	return orderDB
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i, orderDB := range ordersDB {
		result[i] = *ToDomain(&orderDB)
	}
	return result
}
