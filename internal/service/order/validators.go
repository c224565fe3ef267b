package order

import (
	"slices"
	"strings"

	"tracker/internal/entities"
)

var transitions = map[entities.OrderStatusType][]entities.OrderStatusType{
	entities.OrderCreated:   {entities.OrderPickedUp, entities.OrderCancelled},
	entities.OrderPickedUp:  {entities.OrderInTransit, entities.OrderCancelled},
	entities.OrderInTransit: {entities.OrderDelivered},
	entities.OrderDelivered: {},
	entities.OrderCancelled: {},
}

// IsValidTransition сообщает, допустим ли переход current -> next.
// Переход в тот же статус и переходы из неизвестных статусов запрещены.
func IsValidTransition(current, next entities.OrderStatusType) bool {
	return slices.Contains(transitions[current], next)
}

// IsTerminal true только для delivered и cancelled.
func IsTerminal(status entities.OrderStatusType) bool {
	next, known := transitions[status]
	return known && len(next) == 0
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
