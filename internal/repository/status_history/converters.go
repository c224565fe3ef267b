package status_history

import (
	"tracker/internal/entities"
)

func ToDomain(e *StatusEventDB) *entities.StatusEvent {
	if e == nil {
		return nil
	}

	return &entities.StatusEvent{
		ID:        e.ID,
		OrderID:   e.OrderID,
		Status:    entities.OrderStatusType(e.Status),
		Source:    e.Source,
		Timestamp: e.Timestamp,
	}
}

func ToDomainList(eventsDB []StatusEventDB) []entities.StatusEvent {
	if len(eventsDB) == 0 {
		return []entities.StatusEvent{}
	}

	result := make([]entities.StatusEvent, len(eventsDB))
	for i, eventDB := range eventsDB {
		result[i] = *ToDomain(&eventDB)
	}
	return result
}
