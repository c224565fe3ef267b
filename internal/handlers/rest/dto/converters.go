package dto

import (
	"tracker/internal/entities"
)

func FromOrder(o *entities.Order) Order {
	return Order{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerContact: o.CustomerContact,
		MerchantRef:     o.MerchantRef,
		CurrentStatus:   o.Status.String(),
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromActiveOrders(orders []entities.Order) []ActiveOrder {
	result := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		result[i] = ActiveOrder{
			OrderID:   o.ID,
			Status:    o.Status.String(),
			UpdatedAt: o.UpdatedAt,
		}
	}
	return result
}

func FromStatusChange(change entities.StatusChange) StatusChange {
	return StatusChange{
		OrderID:   change.OrderID,
		NewStatus: change.NewStatus.String(),
		UpdatedAt: change.UpdatedAt,
	}
}

func ToStatusChange(change StatusChange) entities.StatusChange {
	return entities.StatusChange{
		OrderID:   change.OrderID,
		NewStatus: entities.OrderStatusType(change.NewStatus),
		UpdatedAt: change.UpdatedAt,
	}
}

func FromStatusEvents(events []entities.StatusEvent) []StatusEvent {
	result := make([]StatusEvent, len(events))
	for i, e := range events {
		result[i] = StatusEvent{
			ID:        e.ID,
			Status:    e.Status.String(),
			Source:    e.Source,
			Timestamp: e.Timestamp,
		}
	}
	return result
}
